package secrets

import (
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/envcrypt/internal/errors"
	"github.com/PolarWolf314/envcrypt/wire"
)

// CreateSymmetricKey draws a fresh key from r.
func CreateSymmetricKey(r io.Reader) ([]byte, error) {
	symKey := make([]byte, wire.KeyLen)
	if _, err := io.ReadFull(r, symKey); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrRandomSource, err)
	}
	return symKey, nil
}

// CreateNonce draws a fresh nonce of the width v requires.
func CreateNonce(r io.Reader, v wire.Version) ([]byte, error) {
	l, err := v.Layout()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, l.NonceLen)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrRandomSource, err)
	}
	return nonce, nil
}

// SealValue encrypts plaintext under a key and nonce used for nothing else.
func SealValue(r io.Reader, v wire.Version, plaintext []byte) (wire.Envelope, error) {
	key, err := CreateSymmetricKey(r)
	if err != nil {
		return wire.Envelope{}, err
	}
	defer zeroBytes(key)

	nonce, err := CreateNonce(r, v)
	if err != nil {
		return wire.Envelope{}, err
	}

	env, err := wire.Seal(v, key, nonce, plaintext)
	if err != nil {
		return wire.Envelope{}, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}
	return env, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
