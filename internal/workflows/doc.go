// Package workflows provides high-level orchestration for envcrypt commands.
//
// Workflows coordinate the configs, directives, secrets, codegen and audit
// packages to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Init: Writes a default envcrypt.toml
//   - Generate: Encrypts annotated variables and writes envcrypt_gen.go
//   - Scan: Searches a compiled binary for plaintext secret values
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Generate(ctx, opts)
//	if errors.Is(err, kerrors.ErrVariableNotDefined) {
//	    // A required variable is missing from the build environment.
//	}
//
// # Context Support
//
// All workflows accept a context.Context. Generate stops encoding as soon
// as the context is cancelled or any variable fails.
package workflows
