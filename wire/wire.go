package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVersion indicates the leading version byte is not a known format.
	ErrUnknownVersion = errors.New("unknown representation version")

	// ErrTruncated indicates the representation is shorter than its layout requires.
	ErrTruncated = errors.New("representation is truncated")

	// ErrAuthentication indicates the ciphertext failed tag verification.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrKeySize indicates key material of the wrong length for the version.
	ErrKeySize = errors.New("invalid key length")

	// ErrNonceSize indicates a nonce of the wrong length for the version.
	ErrNonceSize = errors.New("invalid nonce length")
)

// Version is the leading format byte of a representation.
type Version byte

const (
	// V1ChaCha20Poly1305 is ChaCha20-Poly1305 with a 12 byte nonce.
	V1ChaCha20Poly1305 Version = 0x01

	// V2Secretbox is NaCl secretbox with a 24 byte nonce.
	V2Secretbox Version = 0x02

	// Current is the version written by the generator.
	Current = V2Secretbox
)

// KeyLen is the symmetric key length shared by every version.
const KeyLen = 32

// Layout gives the fixed field widths of a version.
type Layout struct {
	KeyLen   int
	NonceLen int
	Overhead int
}

// HeaderLen is the number of bytes preceding the ciphertext.
func (l Layout) HeaderLen() int {
	return 1 + l.KeyLen + l.NonceLen
}

// MinLen is the length of a representation holding an empty plaintext.
func (l Layout) MinLen() int {
	return l.HeaderLen() + l.Overhead
}

var layouts = map[Version]Layout{
	V1ChaCha20Poly1305: {KeyLen: KeyLen, NonceLen: 12, Overhead: 16},
	V2Secretbox:        {KeyLen: KeyLen, NonceLen: 24, Overhead: 16},
}

// Layout returns the field widths for v.
func (v Version) Layout() (Layout, error) {
	l, ok := layouts[v]
	if !ok {
		return Layout{}, fmt.Errorf("%w: 0x%02x", ErrUnknownVersion, byte(v))
	}
	return l, nil
}

func (v Version) String() string {
	switch v {
	case V1ChaCha20Poly1305:
		return "v1-chacha20poly1305"
	case V2Secretbox:
		return "v2-secretbox"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(v))
	}
}

// Versions lists every version this package can read, oldest first.
func Versions() []Version {
	return []Version{V1ChaCha20Poly1305, V2Secretbox}
}

// Envelope is the decoded form of a representation.
type Envelope struct {
	Version    Version
	Key        []byte
	Nonce      []byte
	Ciphertext []byte
}

// Marshal serializes e as version || key || nonce || ciphertext.
func (e Envelope) Marshal() []byte {
	out := make([]byte, 0, 1+len(e.Key)+len(e.Nonce)+len(e.Ciphertext))
	out = append(out, byte(e.Version))
	out = append(out, e.Key...)
	out = append(out, e.Nonce...)
	out = append(out, e.Ciphertext...)
	return out
}

// Unmarshal splits data at the fixed offsets of its version.
// The returned envelope aliases data.
func Unmarshal(data []byte) (Envelope, error) {
	if len(data) == 0 {
		return Envelope{}, fmt.Errorf("%w: empty input", ErrTruncated)
	}

	v := Version(data[0])
	l, err := v.Layout()
	if err != nil {
		return Envelope{}, err
	}

	if len(data) < l.MinLen() {
		return Envelope{}, fmt.Errorf("%w: %s needs at least %d bytes, got %d", ErrTruncated, v, l.MinLen(), len(data))
	}

	keyEnd := 1 + l.KeyLen
	nonceEnd := keyEnd + l.NonceLen

	return Envelope{
		Version:    v,
		Key:        data[1:keyEnd:keyEnd],
		Nonce:      data[keyEnd:nonceEnd:nonceEnd],
		Ciphertext: data[nonceEnd:],
	}, nil
}
