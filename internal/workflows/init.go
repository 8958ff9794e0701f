package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envcrypt/internal/audit"
	"github.com/PolarWolf314/envcrypt/internal/configs"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/utils"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Dir is the package directory. Defaults to the working directory.
	Dir string

	// Package pins the package clause of the generated file. If empty,
	// generate infers it.
	Package string

	// EnvFiles are dotenv files, relative to Dir, recorded in the manifest.
	EnvFiles []string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// ManifestPath is the absolute path of the new envcrypt.toml.
	ManifestPath string

	// Manifest is what was written.
	Manifest *configs.Manifest

	// GoModRoot is the enclosing module root, or empty if there is none.
	GoModRoot string
}

// Init writes a default envcrypt.toml into a package directory.
//
// Returns ErrManifestExists if the directory already has one.
// Returns ErrInvalidPackageName if Package is not a Go identifier.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := absDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(dir, configs.ManifestFile)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, kerrors.ErrManifestExists)
	}

	if opts.Package != "" && !utils.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("%q: %w", opts.Package, kerrors.ErrInvalidPackageName)
	}

	manifest := configs.DefaultManifest()
	manifest.Package = opts.Package
	manifest.EnvFiles = opts.EnvFiles

	if err := configs.SaveManifest(dir, manifest); err != nil {
		return nil, fmt.Errorf("writing %s: %w", manifestPath, err)
	}

	root, err := utils.FindModuleRoot(dir)
	if err != nil {
		root = ""
	}

	auditEntry := audit.NewEntry("init")
	auditEntry.Output = configs.ManifestFile
	auditEntry.Package = opts.Package
	audit.Log(dir, auditEntry)

	return &InitResult{ManifestPath: manifestPath, Manifest: manifest, GoModRoot: root}, nil
}
