// Package secrets is the build-time half of envcrypt: it reads variables
// from the build environment and seals them into wire representations.
//
// # Encryption
//
// Every value gets its own 256-bit key and its own nonce, both read from
// crypto/rand. Nothing is reused between values, not even two values in the
// same generated file. The key travels next to the ciphertext in the
// representation; the point is to keep plaintext out of the binary, not to
// hide the key from someone holding the binary.
//
// # Environment
//
// Variables come from an Environment. BuildEnvironment layers the process
// environment over zero or more dotenv files, with the process winning, so
// CI can override a checked-in default.
//
// # Diagnostics
//
// Encode reports user errors as *BuildError:
//
//	environment variable 'API_KEY' not defined
//	environment variable 'API_KEY' contains non-unicode value
//
// A custom envc message replaces the first form. An optional variable that
// is missing is not an error; it yields an Absent expression.
package secrets
