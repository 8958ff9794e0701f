package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envcrypt/internal/directives"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/utils"
)

const (
	// ManifestFile is the per-package configuration file name.
	ManifestFile = "envcrypt.toml"

	// DefaultOutput is the generated file name when the manifest names none.
	DefaultOutput = "envcrypt_gen.go"
)

// Manifest is the contents of envcrypt.toml.
type Manifest struct {
	// Package is the package clause of the generated file. When empty it is
	// taken from the scanned sources, then from the directory name.
	Package string `toml:"package,omitempty"`

	// Output is the generated file, relative to the manifest directory.
	Output string `toml:"output,omitempty"`

	// EnvFiles are dotenv files layered under the process environment.
	EnvFiles []string `toml:"env_files,omitempty"`

	// Sources are doublestar globs of Go files scanned for directives.
	Sources []string `toml:"sources,omitempty"`

	Secrets []SecretEntry `toml:"secret,omitempty"`
}

// SecretEntry declares one generated function without a directive comment.
type SecretEntry struct {
	Func     string `toml:"func"`
	Var      string `toml:"var"`
	Optional bool   `toml:"optional,omitempty"`
	Message  string `toml:"message,omitempty"`
}

// DefaultManifest returns the settings used when no envcrypt.toml exists.
func DefaultManifest() *Manifest {
	return &Manifest{
		Output:  DefaultOutput,
		Sources: []string{"*.go"},
	}
}

// LoadManifest reads envcrypt.toml from dir. A missing file yields the
// defaults and found == false.
func LoadManifest(dir string) (m *Manifest, found bool, err error) {
	path := filepath.Join(dir, ManifestFile)

	m = DefaultManifest()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m, false, nil
	}

	if err := LoadTOML(path, m); err != nil {
		return nil, true, fmt.Errorf("%w: %v", kerrors.ErrInvalidManifest, err)
	}

	if m.Output == "" {
		m.Output = DefaultOutput
	}
	if len(m.Sources) == 0 {
		m.Sources = []string{"*.go"}
	}
	if m.Package != "" && !utils.IsIdentifier(m.Package) {
		return nil, true, fmt.Errorf("%w: package %q: %w", kerrors.ErrInvalidManifest, m.Package, kerrors.ErrInvalidPackageName)
	}
	return m, true, nil
}

// SaveManifest writes m to dir/envcrypt.toml.
func SaveManifest(dir string, m *Manifest) error {
	return SaveTOML(filepath.Join(dir, ManifestFile), m)
}

// Annotations converts the [[secret]] tables into directive annotations.
// path labels the diagnostics.
func (m *Manifest) Annotations(path string) ([]directives.Annotation, error) {
	var annotations []directives.Annotation
	var errs []error

	for i, s := range m.Secrets {
		site := directives.Site{File: fmt.Sprintf("%s [[secret]] #%d", path, i+1)}

		switch {
		case !utils.IsIdentifier(s.Func):
			errs = append(errs, &directives.SyntaxError{Site: site, Msg: fmt.Sprintf("invalid function name %q in envcrypt.toml", s.Func)})
			continue
		case s.Var == "":
			errs = append(errs, &directives.SyntaxError{Site: site, Msg: fmt.Sprintf("secret %s has no var", s.Func)})
			continue
		case s.Optional && s.Message != "":
			errs = append(errs, &directives.SyntaxError{Site: site, Msg: directives.OptionEnvcSyntaxMessage})
			continue
		}

		call := directives.Call{Macro: directives.Envc, Var: s.Var}
		if s.Optional {
			call.Macro = directives.OptionEnvc
		}
		if s.Message != "" {
			call.Message = s.Message
			call.HasMessage = true
		}
		annotations = append(annotations, directives.Annotation{Func: s.Func, Call: call, Site: site})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return annotations, nil
}
