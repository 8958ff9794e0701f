package secrets

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/PolarWolf314/envcrypt/internal/directives"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/sealed"
	"github.com/PolarWolf314/envcrypt/wire"
)

// Kind selects the shape of the generated expression.
type Kind int

const (
	// Absent is an optional variable that was unset. Nothing is encrypted.
	Absent Kind = iota
	// Required evaluates to the value.
	Required
	// Optional evaluates to the value and true.
	Optional
)

func (k Kind) String() string {
	switch k {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return "absent"
	}
}

// Expression is the encoder's output for one annotation.
type Expression struct {
	Kind Kind

	// Representation is the marshalled wire envelope. Empty for Absent.
	Representation []byte
}

// BuildError is a diagnostic that must stop the build. Error returns
// Message, prefixed by Site when one is known.
type BuildError struct {
	Site    directives.Site
	Name    string
	Message string
	Err     error
}

func (e *BuildError) Error() string {
	if e.Site.IsZero() {
		return e.Message
	}
	return e.Site.String() + ": " + e.Message
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Encoder turns build environment variables into embeddable representations.
// It holds no mutable state, so one Encoder may serve concurrent calls.
type Encoder struct {
	Env     Environment
	Rand    io.Reader
	Version wire.Version
}

// NewEncoder returns an Encoder that reads env and draws from crypto/rand.
func NewEncoder(env Environment) *Encoder {
	return &Encoder{Env: env, Rand: rand.Reader, Version: wire.Current}
}

// Encode looks up name and seals its value. An empty missingMessage selects
// the default diagnostic for a missing required variable.
func (e *Encoder) Encode(name string, required bool, missingMessage string) (*Expression, error) {
	source, err := Lookup(e.Env, name)
	if err != nil {
		return nil, err
	}

	if !source.Present {
		if !required {
			return &Expression{Kind: Absent}, nil
		}
		msg := missingMessage
		if msg == "" {
			msg = fmt.Sprintf("environment variable '%s' not defined", name)
		}
		return nil, &BuildError{Name: name, Message: msg, Err: kerrors.ErrVariableNotDefined}
	}

	env, err := SealValue(e.Rand, e.Version, []byte(source.Value))
	if err != nil {
		return nil, &BuildError{Name: name, Message: fmt.Sprintf("failed to encrypt environment variable '%s': %v", name, err), Err: err}
	}
	representation := env.Marshal()

	// Decoder and encoder must agree on the layout; check before anything is emitted.
	recovered, err := sealed.Open(representation)
	if err != nil || recovered != source.Value {
		return nil, &BuildError{Name: name, Message: fmt.Sprintf("encrypted value of '%s' does not round-trip", name), Err: kerrors.ErrEncryptFailed}
	}

	kind := Required
	if !required {
		kind = Optional
	}
	return &Expression{Kind: kind, Representation: representation}, nil
}

// EncodeAnnotation runs Encode for a directive and attaches its site to any
// diagnostic.
func (e *Encoder) EncodeAnnotation(a directives.Annotation) (*Expression, error) {
	msg := ""
	if a.Call.HasMessage {
		msg = a.Call.Message
	}

	expr, err := e.Encode(a.Call.Var, a.Call.Required(), msg)
	if err != nil {
		var be *BuildError
		if errors.As(err, &be) {
			be.Site = a.Site
		}
		return nil, err
	}
	return expr, nil
}
