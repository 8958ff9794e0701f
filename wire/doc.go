// Package wire defines the frozen byte layout shared by the envcrypt
// generator and the sealed runtime.
//
// A Representation is a single byte string:
//
//	version (1 byte) || key || nonce || ciphertext || tag
//
// The version byte selects the AEAD construction and therefore the key,
// nonce and tag widths. Field widths never change within a version; a new
// layout always gets a new version byte.
//
// # Versions
//
//	Version              Cipher                 Key  Nonce  Tag
//	V1ChaCha20Poly1305   ChaCha20-Poly1305      32   12     16
//	V2Secretbox          XSalsa20-Poly1305      32   24     16
//
// The generator only ever writes Current. Readers accept every version in
// the table so that code generated by an older generator keeps working after
// the runtime is upgraded.
//
// # Usage
//
//	env, err := wire.Seal(wire.Current, key, nonce, []byte("value"))
//	literal := env.Marshal()
//
//	env, err = wire.Unmarshal(literal)
//	plaintext, err := wire.Open(env)
package wire
