// Package utils provides shared helpers for envcrypt.
//
// # Filesystem Utilities
//
//   - FindModuleRoot: walks up directories to the nearest go.mod
//   - WriteFileAtomic: temp file + rename, used for generated output
//
// # System Utilities
//
//   - GetUsername: the current user, recorded in the audit log
//   - SanitizePackageName: derives a Go package name from a directory
//   - IsIdentifier: validates generated function names
//
// # Terminal Utilities
//
//   - IsTerminal: gates the spinner so piped output stays clean
package utils
