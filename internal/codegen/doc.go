// Package codegen writes envcrypt_gen.go.
//
// Each annotation becomes one function. Required variables return string,
// optional ones return (string, bool):
//
//	// APIKey returns $API_KEY as it was when the package was generated.
//	func APIKey() string {
//		return sealed.Reveal("\x02\x9c\x1e..." +
//			"\x4f\x07...")
//	}
//
// Representations are spelled entirely in \x escapes, so no printable run
// of the plaintext or its ciphertext appears in the source.
package codegen
