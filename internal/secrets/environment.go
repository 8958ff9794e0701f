package secrets

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
)

// Environment is the build environment variables are read from.
type Environment interface {
	LookupEnv(name string) (string, bool)
}

// EnvironmentFunc adapts a lookup function to Environment.
type EnvironmentFunc func(name string) (string, bool)

func (f EnvironmentFunc) LookupEnv(name string) (string, bool) {
	return f(name)
}

// OSEnvironment reads the process environment.
var OSEnvironment Environment = EnvironmentFunc(os.LookupEnv)

// MapEnvironment is a fixed set of variables, as loaded from dotenv files.
type MapEnvironment map[string]string

func (m MapEnvironment) LookupEnv(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Layered consults each environment in order and returns the first hit.
type Layered []Environment

func (l Layered) LookupEnv(name string) (string, bool) {
	for _, env := range l {
		if v, ok := env.LookupEnv(name); ok {
			return v, true
		}
	}
	return "", false
}

// LoadDotEnv reads dotenv files. Later files override earlier ones.
func LoadDotEnv(paths ...string) (MapEnvironment, error) {
	merged := MapEnvironment{}
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, kerrors.ErrFileNotFound)
		}

		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", path, kerrors.ErrEnvFileInvalid, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged, nil
}

// BuildEnvironment returns the process environment overlaid on the given
// dotenv files. Variables set in the process take precedence.
func BuildEnvironment(envFiles []string) (Environment, error) {
	if len(envFiles) == 0 {
		return OSEnvironment, nil
	}

	dotenv, err := LoadDotEnv(envFiles...)
	if err != nil {
		return nil, err
	}
	return Layered{OSEnvironment, dotenv}, nil
}

// SourceValue is one variable as read from the build environment.
type SourceValue struct {
	Name    string
	Present bool
	Value   string
}

// Lookup reads name from env. A present value that is not valid UTF-8 is
// an error.
func Lookup(env Environment, name string) (SourceValue, error) {
	value, ok := env.LookupEnv(name)
	if !ok {
		return SourceValue{Name: name}, nil
	}
	if !utf8.ValidString(value) {
		return SourceValue{Name: name}, &BuildError{
			Name:    name,
			Message: fmt.Sprintf("environment variable '%s' contains non-unicode value", name),
			Err:     kerrors.ErrNonUnicodeValue,
		}
	}
	return SourceValue{Name: name, Present: true, Value: value}, nil
}
