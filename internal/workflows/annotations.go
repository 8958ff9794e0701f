package workflows

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envcrypt/internal/configs"
	"github.com/PolarWolf314/envcrypt/internal/directives"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/secrets"
)

// collected is everything generate and scan learn about a package directory.
type collected struct {
	// Package is the package clause of the scanned sources, if any.
	Package     string
	Sources     []string
	Annotations []directives.Annotation
}

// collectAnnotations gathers directive comments from the manifest's source
// globs (skipping output) and appends the manifest's [[secret]] entries.
// Duplicate function names are rejected.
func collectAnnotations(dir string, m *configs.Manifest, output string) (*collected, error) {
	sources, err := secrets.ResolveSourceFiles(m.Sources, dir, output)
	if err != nil {
		return nil, fmt.Errorf("resolving source files: %w", err)
	}

	if len(sources) == 0 && len(m.Secrets) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", kerrors.ErrNoFilesFound, strings.Join(m.Sources, ", "), dir)
	}

	result := &collected{Sources: sources}

	if len(sources) > 0 {
		scanned, err := directives.ScanFiles(sources)
		if err != nil {
			return nil, err
		}
		result.Package = scanned.Package
		result.Annotations = scanned.Annotations
	}

	fromManifest, err := m.Annotations(configs.ManifestFile)
	if err != nil {
		return nil, err
	}
	result.Annotations = append(result.Annotations, fromManifest...)

	seen := make(map[string]directives.Site, len(result.Annotations))
	for _, a := range result.Annotations {
		if first, ok := seen[a.Func]; ok {
			return nil, fmt.Errorf("%w: %s is declared at %s and %s", kerrors.ErrDuplicateFunc, a.Func, first, a.Site)
		}
		seen[a.Func] = a.Site
	}

	return result, nil
}

// resolveOutput returns the absolute output path. Relative paths are taken
// from dir.
func resolveOutput(dir, output string) string {
	if output == "" {
		output = configs.DefaultOutput
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(dir, output)
}

// buildEnvironment layers the process environment over the manifest's
// env_files (relative to dir) and extra (relative to the working directory).
func buildEnvironment(dir string, m *configs.Manifest, extra []string) (secrets.Environment, []string, error) {
	fromManifest, err := secrets.ResolveEnvFiles(m.EnvFiles, dir)
	if err != nil {
		return nil, nil, err
	}
	fromFlags, err := secrets.ResolveEnvFiles(extra, ".")
	if err != nil {
		return nil, nil, err
	}

	files := append(fromManifest, fromFlags...)
	env, err := secrets.BuildEnvironment(files)
	if err != nil {
		return nil, nil, err
	}
	return env, files, nil
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}
