// Package sealed recovers values embedded by envcrypt generate.
//
// Generated code calls Reveal, Present or Absent. None of them read the
// environment: the value was fixed at build time and travels inside the
// binary only as a wire representation.
//
// A representation that fails to decode means the generated file and the
// runtime disagree on the format, or the binary was modified. There is no
// meaningful way to continue, so Reveal and Present panic with a
// *ConsistencyError. Use Open when an error value is preferable, for
// example in tooling.
package sealed

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/PolarWolf314/envcrypt/wire"
)

// ErrInvalidUTF8 indicates the decrypted bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("decrypted value is not valid UTF-8")

// ConsistencyError is the panic value raised when an embedded
// representation cannot be decoded.
type ConsistencyError struct {
	Err error
}

func (e *ConsistencyError) Error() string {
	return "envcrypt: internal consistency failure: " + e.Err.Error()
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// Open decodes, verifies and decrypts representation.
func Open(representation []byte) (string, error) {
	env, err := wire.Unmarshal(representation)
	if err != nil {
		return "", err
	}

	plaintext, err := wire.Open(env)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", ErrInvalidUTF8
	}
	return string(plaintext), nil
}

// Reveal returns the value embedded in representation.
// It panics with a *ConsistencyError if the representation is corrupt.
func Reveal(representation string) string {
	buf := []byte(representation)
	defer clear(buf)

	value, err := Open(buf)
	if err != nil {
		panic(&ConsistencyError{Err: fmt.Errorf("decoding %d byte representation: %w", len(buf), err)})
	}
	return value
}

// Present is the optional form of Reveal for a variable that was set at
// build time.
func Present(representation string) (string, bool) {
	return Reveal(representation), true
}

// Absent is the optional form for a variable that was unset at build time.
func Absent() (string, bool) {
	return "", false
}
