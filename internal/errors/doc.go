// Package errors provides typed error values for envcrypt.
//
// Sentinel errors let the CLI layer decide how to present a failure with
// errors.Is() rather than by matching strings.
//
// # Error Categories
//
//   - Build errors: the generator must not emit output (ErrVariableNotDefined,
//     ErrNonUnicodeValue, ErrInvalidSyntax, ErrRandomSource)
//   - Project errors: directive and manifest problems (ErrNoDirectives,
//     ErrDuplicateFunc, ErrInvalidManifest)
//   - File errors: file discovery and dotenv parsing (ErrNoFilesFound,
//     ErrEnvFileInvalid)
//   - Scan errors: ErrPlaintextLeak
//
// Runtime decode faults are not here. They belong to the public sealed and
// wire packages, which generated code imports.
//
// # Usage
//
// Wrap with context and keep the sentinel reachable:
//
//	return fmt.Errorf("reading %s: %w", path, kerrors.ErrEnvFileInvalid)
package errors
