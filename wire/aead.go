package wire

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/nacl/secretbox"
)

// AEAD returns the cipher for v keyed with key.
func (v Version) AEAD(key []byte) (cipher.AEAD, error) {
	l, err := v.Layout()
	if err != nil {
		return nil, err
	}
	if len(key) != l.KeyLen {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrKeySize, v, l.KeyLen, len(key))
	}

	switch v {
	case V1ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	case V2Secretbox:
		box := &secretboxAEAD{}
		copy(box.key[:], key)
		return box, nil
	}
	return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownVersion, byte(v))
}

// Seal encrypts plaintext under key and nonce with the cipher of v.
// The key and nonce are copied into the returned envelope.
func Seal(v Version, key, nonce, plaintext []byte) (Envelope, error) {
	aead, err := v.AEAD(key)
	if err != nil {
		return Envelope{}, err
	}
	if len(nonce) != aead.NonceSize() {
		return Envelope{}, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrNonceSize, v, aead.NonceSize(), len(nonce))
	}

	return Envelope{
		Version:    v,
		Key:        append([]byte(nil), key...),
		Nonce:      append([]byte(nil), nonce...),
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Open verifies and decrypts e.
func Open(e Envelope) ([]byte, error) {
	l, err := e.Version.Layout()
	if err != nil {
		return nil, err
	}
	if len(e.Nonce) != l.NonceLen {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrNonceSize, e.Version, l.NonceLen, len(e.Nonce))
	}
	if len(e.Ciphertext) < l.Overhead {
		return nil, fmt.Errorf("%w: ciphertext shorter than the %d byte tag", ErrTruncated, l.Overhead)
	}

	aead, err := e.Version.AEAD(e.Key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, e.Nonce, e.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return plaintext, nil
}

var errSecretboxOpen = errors.New("secretbox: open failed")

// secretboxAEAD exposes NaCl secretbox through cipher.AEAD.
// Additional data is not authenticated and must be empty.
type secretboxAEAD struct {
	key [32]byte
}

func (a *secretboxAEAD) NonceSize() int { return 24 }

func (a *secretboxAEAD) Overhead() int { return secretbox.Overhead }

func (a *secretboxAEAD) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != a.NonceSize() {
		panic("wire: incorrect nonce length given to secretbox")
	}
	if len(additionalData) > 0 {
		panic("wire: secretbox cannot authenticate additional data")
	}

	var n [24]byte
	copy(n[:], nonce)
	return secretbox.Seal(dst, plaintext, &n, &a.key)
}

func (a *secretboxAEAD) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != a.NonceSize() || len(additionalData) > 0 {
		return nil, errSecretboxOpen
	}

	var n [24]byte
	copy(n[:], nonce)
	out, ok := secretbox.Open(dst, ciphertext, &n, &a.key)
	if !ok {
		return nil, errSecretboxOpen
	}
	return out, nil
}
