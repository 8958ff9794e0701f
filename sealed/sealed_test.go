package sealed

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/envcrypt/wire"
)

func represent(t *testing.T, v wire.Version, plaintext []byte) string {
	t.Helper()
	l, err := v.Layout()
	require.NoError(t, err)

	key := make([]byte, l.KeyLen)
	nonce := make([]byte, l.NonceLen)
	_, err = rand.Read(key)
	require.NoError(t, err)
	_, err = rand.Read(nonce)
	require.NoError(t, err)

	env, err := wire.Seal(v, key, nonce, plaintext)
	require.NoError(t, err)
	return string(env.Marshal())
}

// consistencyPanic runs fn and returns the *ConsistencyError it panicked with.
func consistencyPanic(t *testing.T, fn func()) (fault *ConsistencyError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.As(err, &fault), "panic value %T is not a *ConsistencyError", r)
	}()
	fn()
	return nil
}

func TestReveal(t *testing.T) {
	inputs := []string{"", "hello", "ENCRYPTED_VALUE", "ключ 🔐 鍵", strings.Repeat("0123456789abcdef", 256)}

	for _, v := range wire.Versions() {
		for _, input := range inputs {
			r := represent(t, v, []byte(input))
			assert.Equal(t, input, Reveal(r), "version %s", v)
		}
	}
}

func TestPresentAndAbsent(t *testing.T) {
	value, ok := Present(represent(t, wire.Current, []byte("hello")))
	assert.True(t, ok)
	assert.Equal(t, "hello", value)

	value, ok = Absent()
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRevealDoesNotRetainState(t *testing.T) {
	r := represent(t, wire.Current, []byte("first"))
	first := Reveal(r)
	second := Reveal(r)
	assert.Equal(t, "first", first)
	assert.Equal(t, first, second)
}

func TestRevealTamperedBlobPanics(t *testing.T) {
	r := []byte(represent(t, wire.Current, []byte("do not leak")))
	l, _ := wire.Current.Layout()

	for i := l.HeaderLen(); i < len(r); i++ {
		tampered := append([]byte(nil), r...)
		tampered[i] ^= 0x01

		fault := consistencyPanic(t, func() { Reveal(string(tampered)) })
		assert.ErrorIs(t, fault, wire.ErrAuthentication)
		assert.Contains(t, fault.Error(), "internal consistency failure")
	}
}

func TestRevealMalformedRepresentationPanics(t *testing.T) {
	valid := represent(t, wire.Current, []byte("value"))

	t.Run("empty", func(t *testing.T) {
		fault := consistencyPanic(t, func() { Reveal("") })
		assert.ErrorIs(t, fault, wire.ErrTruncated)
	})

	t.Run("unknown version", func(t *testing.T) {
		fault := consistencyPanic(t, func() { Reveal("\x7f" + valid[1:]) })
		assert.ErrorIs(t, fault, wire.ErrUnknownVersion)
	})

	t.Run("version drift", func(t *testing.T) {
		// A v2 body read as v1 puts the nonce boundary in the wrong place.
		fault := consistencyPanic(t, func() { Reveal("\x01" + valid[1:]) })
		assert.ErrorIs(t, fault, wire.ErrAuthentication)
	})

	t.Run("optional form", func(t *testing.T) {
		consistencyPanic(t, func() { Present(valid[:10]) })
	})
}

func TestOpenRejectsInvalidUTF8(t *testing.T) {
	r := represent(t, wire.Current, []byte{0xff, 0xfe, 0xfd})

	_, err := Open([]byte(r))
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	fault := consistencyPanic(t, func() { Reveal(r) })
	assert.ErrorIs(t, fault, ErrInvalidUTF8)
}

func TestRevealConcurrent(t *testing.T) {
	r := represent(t, wire.Current, []byte("shared"))

	var wg sync.WaitGroup
	for n := 0; n < 32; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "shared", Reveal(r))
		}()
	}
	wg.Wait()
}
