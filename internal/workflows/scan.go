package workflows

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/envcrypt/internal/audit"
	"github.com/PolarWolf314/envcrypt/internal/configs"
	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/internal/secrets"
)

// DefaultMinLength is the shortest value scan will search for. Shorter
// values match by chance too often to mean anything.
const DefaultMinLength = 4

// ScanOptions configures the scan workflow.
type ScanOptions struct {
	// Binary is the compiled artifact to search.
	Binary string

	// Dir is the package directory used to discover variables and to
	// locate envcrypt.toml. Defaults to the working directory.
	Dir string

	// Vars names the variables to check. If empty, every variable annotated
	// in Dir is checked.
	Vars []string

	// EnvFiles are extra dotenv files, relative to the working directory.
	EnvFiles []string

	// MinLength skips values shorter than this. Zero means DefaultMinLength.
	MinLength int

	// Environment replaces the process environment and every dotenv file.
	Environment secrets.Environment
}

// ScanResult contains the outcome of a scan operation.
type ScanResult struct {
	// Binary is the file that was searched.
	Binary string

	// Checked lists the variables whose values were searched for.
	Checked []string

	// Skipped lists variables that were unset or shorter than MinLength.
	Skipped []string

	// Leaks lists the variables whose values appear verbatim in Binary.
	Leaks []string
}

// Scan searches a compiled binary for the plaintext of build environment
// variables. It is the check that a generated package keeps its promise.
//
// Returns ErrFileNotFound if the binary does not exist.
// Returns ErrNoDirectives if no variables were named and none are annotated.
// Returns ErrPlaintextLeak, together with the result, if any value was found.
func Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := absDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.Binary)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", opts.Binary, kerrors.ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Binary, err)
	}

	manifest, _, err := configs.LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	vars := opts.Vars
	if len(vars) == 0 {
		pkgInfo, err := collectAnnotations(dir, manifest, resolveOutput(dir, manifest.Output))
		if err != nil {
			return nil, err
		}
		for _, a := range pkgInfo.Annotations {
			vars = append(vars, a.Call.Var)
		}
	}
	vars = dedupe(vars)
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w in %s", kerrors.ErrNoDirectives, dir)
	}

	env := opts.Environment
	if env == nil {
		env, _, err = buildEnvironment(dir, manifest, opts.EnvFiles)
		if err != nil {
			return nil, err
		}
	}

	minLength := opts.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	result := &ScanResult{Binary: opts.Binary}
	for _, name := range vars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, ok := env.LookupEnv(name)
		if !ok || len(value) < minLength {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		result.Checked = append(result.Checked, name)
		if bytes.Contains(data, []byte(value)) {
			result.Leaks = append(result.Leaks, name)
		}
	}

	auditEntry := audit.NewEntry("scan")
	auditEntry.Binary = opts.Binary
	auditEntry.Vars = result.Checked
	auditEntry.Leaks = result.Leaks
	audit.Log(dir, auditEntry)

	if len(result.Leaks) > 0 {
		return result, fmt.Errorf("%w: %s", kerrors.ErrPlaintextLeak, strings.Join(result.Leaks, ", "))
	}
	return result, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
