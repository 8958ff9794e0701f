package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/PolarWolf314/envcrypt/internal/audit"
	"github.com/PolarWolf314/envcrypt/internal/codegen"
	"github.com/PolarWolf314/envcrypt/internal/configs"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/secrets"
	"github.com/PolarWolf314/envcrypt/internal/utils"
	"github.com/PolarWolf314/envcrypt/wire"
)

// GenerateOptions configures the generate workflow.
type GenerateOptions struct {
	// Dir is the package directory. Defaults to the working directory.
	Dir string

	// Output overrides the manifest's output file.
	Output string

	// Package overrides the package clause of the generated file.
	Package string

	// EnvFiles are extra dotenv files, relative to the working directory,
	// layered after the manifest's env_files.
	EnvFiles []string

	// DryRun renders the file without writing it.
	DryRun bool

	// Environment replaces the process environment and every dotenv file.
	// If nil, the build environment is assembled from them.
	Environment secrets.Environment

	// Version selects the wire format. Zero means wire.Current.
	Version wire.Version
}

// GeneratedFunc describes one emitted accessor.
type GeneratedFunc struct {
	Name string
	Var  string
	Kind secrets.Kind
}

// GenerateResult contains the outcome of a generate operation.
type GenerateResult struct {
	// OutputPath is the absolute path of the generated file.
	OutputPath string

	// Package is the package clause that was emitted.
	Package string

	// Funcs lists the generated accessors in declaration order.
	Funcs []GeneratedFunc

	// Source is the rendered file.
	Source []byte

	// Sources lists the scanned Go files.
	Sources []string

	// EnvFiles lists the dotenv files that were read.
	EnvFiles []string

	// ManifestFound reports whether envcrypt.toml was present.
	ManifestFound bool

	// Version is the wire format of every representation in Source.
	Version wire.Version

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Generate encrypts every annotated variable of a package and writes the
// generated accessors.
//
// Annotations come from //envcrypt: directives in the package sources and
// from [[secret]] tables in envcrypt.toml. Each one is encoded concurrently
// with a fresh key and nonce. If any variable fails to encode, nothing is
// written.
//
// Returns ErrInvalidManifest if envcrypt.toml cannot be read.
// Returns ErrInvalidSyntax if a directive is malformed.
// Returns ErrDuplicateFunc if two annotations declare the same function.
// Returns ErrNoDirectives if the package declares nothing to generate.
// Returns a *secrets.BuildError (wrapping ErrVariableNotDefined or
// ErrNonUnicodeValue) if a variable cannot be encoded.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := absDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	manifest, found, err := configs.LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = manifest.Output
	}
	outputPath := resolveOutput(dir, output)

	pkgInfo, err := collectAnnotations(dir, manifest, outputPath)
	if err != nil {
		return nil, err
	}
	if len(pkgInfo.Annotations) == 0 {
		return nil, fmt.Errorf("%w in %s", kerrors.ErrNoDirectives, dir)
	}

	pkg, err := choosePackage(dir, outputPath, opts.Package, manifest.Package, pkgInfo.Package)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		OutputPath:    outputPath,
		Package:       pkg,
		Sources:       pkgInfo.Sources,
		ManifestFound: found,
		Version:       opts.Version,
		DryRun:        opts.DryRun,
	}
	if result.Version == 0 {
		result.Version = wire.Current
	}

	env := opts.Environment
	if env == nil {
		env, result.EnvFiles, err = buildEnvironment(dir, manifest, opts.EnvFiles)
		if err != nil {
			return nil, err
		}
	}

	encoder := secrets.NewEncoder(env)
	encoder.Version = result.Version

	exprs := make([]*secrets.Expression, len(pkgInfo.Annotations))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, a := range pkgInfo.Annotations {
		i, a := i, a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			expr, err := encoder.EncodeAnnotation(a)
			if err != nil {
				return err
			}
			exprs[i] = expr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	file := codegen.File{Package: pkg, Funcs: make([]codegen.Func, len(exprs))}
	result.Funcs = make([]GeneratedFunc, len(exprs))
	for i, a := range pkgInfo.Annotations {
		file.Funcs[i] = codegen.Func{Name: a.Func, Var: a.Call.Var, Expr: exprs[i]}
		result.Funcs[i] = GeneratedFunc{Name: a.Func, Var: a.Call.Var, Kind: exprs[i].Kind}
	}

	result.Source, err = codegen.Render(file)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		// #nosec G306 -- generated source is committed alongside the package.
		if err := utils.WriteFileAtomic(outputPath, result.Source, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outputPath, err)
		}
	}

	auditEntry := audit.NewEntry("generate")
	auditEntry.Package = pkg
	auditEntry.Output = relativeTo(dir, outputPath)
	auditEntry.Format = result.Version.String()
	auditEntry.DryRun = opts.DryRun
	for _, fn := range result.Funcs {
		auditEntry.Vars = append(auditEntry.Vars, fn.Var)
	}
	audit.Log(dir, auditEntry)

	return result, nil
}

// choosePackage picks the package clause: the explicit override, then the
// manifest, then the scanned sources, then the directory name. A file
// written into dir must agree with the sources already there.
func choosePackage(dir, outputPath, override, fromManifest, scanned string) (string, error) {
	pkg := scanned
	switch {
	case override != "":
		pkg = override
	case fromManifest != "":
		pkg = fromManifest
	case pkg == "":
		pkg = utils.SanitizePackageName(filepath.Base(dir))
	}

	if !utils.IsIdentifier(pkg) {
		return "", fmt.Errorf("%q: %w", pkg, kerrors.ErrInvalidPackageName)
	}
	if scanned != "" && pkg != scanned && filepath.Dir(outputPath) == dir {
		return "", fmt.Errorf("package %s conflicts with package %s in %s: %w", pkg, scanned, dir, kerrors.ErrInvalidPackageName)
	}
	return pkg, nil
}

func relativeTo(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
