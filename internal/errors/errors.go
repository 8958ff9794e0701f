package errors

import "errors"

// Build errors are reported at generate time and stop the build.
var (
	// ErrVariableNotDefined indicates a required variable is absent from the build environment.
	ErrVariableNotDefined = errors.New("environment variable not defined")

	// ErrNonUnicodeValue indicates a variable holds bytes that are not valid UTF-8.
	ErrNonUnicodeValue = errors.New("environment variable contains non-unicode value")

	// ErrInvalidSyntax indicates a malformed envc or option_envc call.
	ErrInvalidSyntax = errors.New("invalid envcrypt syntax")

	// ErrRandomSource indicates the operating system random source could not be read.
	ErrRandomSource = errors.New("random source unavailable")

	// ErrEncryptFailed indicates a value could not be sealed.
	ErrEncryptFailed = errors.New("failed to encrypt value")
)

// Project errors indicate issues with the package being generated.
var (
	// ErrNoDirectives indicates no envcrypt directives or manifest entries were found.
	ErrNoDirectives = errors.New("no envcrypt directives found")

	// ErrDuplicateFunc indicates two annotations declare the same function name.
	ErrDuplicateFunc = errors.New("duplicate generated function")

	// ErrInvalidManifest indicates envcrypt.toml is malformed.
	ErrInvalidManifest = errors.New("envcrypt.toml is invalid")

	// ErrManifestExists indicates envcrypt.toml already exists.
	ErrManifestExists = errors.New("envcrypt.toml already exists")

	// ErrInvalidPackageName indicates the target package name is not a Go identifier.
	ErrInvalidPackageName = errors.New("invalid package name")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrEnvFileInvalid indicates a dotenv file could not be parsed.
	ErrEnvFileInvalid = errors.New("invalid env file")
)

// Scan errors are reported by envcrypt scan.
var (
	// ErrPlaintextLeak indicates a secret value was found verbatim in a binary.
	ErrPlaintextLeak = errors.New("plaintext secret found in binary")
)
