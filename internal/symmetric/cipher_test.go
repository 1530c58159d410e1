package symmetric

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/registry"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestAESECBKnownAnswer(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := mustHex(t, "00112233445566778899aabbccddeeff")

	out, err := EncryptBytes("aes-128-ecb", plain, key, nil)
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.Equal(t, "69c4e0d86a7b0430d8cdb78070b4c55a", hex.EncodeToString(out[:16]))

	out, err = EncryptBytes("aes-128-ecb", plain, key, nil, WithPadding(false))
	require.NoError(t, err)
	assert.Equal(t, "69c4e0d86a7b0430d8cdb78070b4c55a", hex.EncodeToString(out))
}

func TestRoundTripEveryCipher(t *testing.T) {
	names, err := registry.Canonical(registry.KindCiphers)
	require.NoError(t, err)

	for _, name := range names {
		alg, err := registry.LookupCipher(name)
		require.NoError(t, err)
		key := sequence(alg.KeyLen)
		iv := bytes.Repeat([]byte{0x5a}, alg.IVLen)
		bs := alg.BlockSize
		if bs == 1 {
			bs = 16
		}

		t.Run(name, func(t *testing.T) {
			for n := 0; n <= 3*bs+1; n++ {
				plain := sequence(n)
				ct, err := EncryptBytes(name, plain, key, iv, WithKeyPolicy(Strict))
				require.NoError(t, err, "len %d", n)
				if alg.Mode.Padded() {
					assert.Zero(t, len(ct)%alg.BlockSize)
					assert.Greater(t, len(ct), n)
				} else {
					assert.Len(t, ct, n)
				}
				pt, err := DecryptBytes(name, ct, key, iv, WithKeyPolicy(Strict))
				require.NoError(t, err, "len %d", n)
				assert.Equal(t, plain, pt, "len %d", n)
			}
		})
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	key := sequence(32)
	iv := sequence(16)
	plain := []byte(strings.Repeat("chunked input that crosses blocks ", 7))

	for _, name := range []string{"aes-256-cbc", "aes-256-ctr", "chacha20", "bf-cfb"} {
		t.Run(name, func(t *testing.T) {
			want, err := EncryptBytes(name, plain, key, iv)
			require.NoError(t, err)

			enc, err := NewEncrypter(name, key, iv)
			require.NoError(t, err)
			var got []byte
			for _, chunk := range [][]byte{plain[:3], plain[3:17], plain[17:18], plain[18:]} {
				out, err := enc.Update(chunk)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(out), len(chunk)+16)
				got = append(got, out...)
			}
			tail, err := enc.Final()
			require.NoError(t, err)
			got = append(got, tail...)
			assert.Equal(t, want, got)

			dec, err := NewDecrypter(name, key, iv)
			require.NoError(t, err)
			var back []byte
			for i := 0; i < len(got); i += 5 {
				end := min(i+5, len(got))
				out, err := dec.Update(got[i:end])
				require.NoError(t, err)
				back = append(back, out...)
			}
			tail, err = dec.Final()
			require.NoError(t, err)
			assert.Equal(t, plain, append(back, tail...))
		})
	}
}

func TestDecryptHoldsBackLastBlock(t *testing.T) {
	key := sequence(16)
	ct, err := EncryptBytes("aes-128-cbc", sequence(32), key, nil)
	require.NoError(t, err)
	require.Len(t, ct, 48)

	dec, err := NewDecrypter("aes-128-cbc", key, nil)
	require.NoError(t, err)
	out, err := dec.Update(ct)
	require.NoError(t, err)
	assert.Len(t, out, 32)
	tail, err := dec.Final()
	require.NoError(t, err)
	assert.Empty(t, tail)
}

func TestDecryptErrors(t *testing.T) {
	key := sequence(16)

	_, err := DecryptBytes("aes-128-cbc", sequence(15), key, nil)
	assert.ErrorIs(t, err, kerrors.ErrBlockLength)

	_, err = DecryptBytes("aes-128-cbc", nil, key, nil)
	assert.ErrorIs(t, err, kerrors.ErrBlockLength)

	ct, err := EncryptBytes("aes-128-cbc", []byte("secret"), key, nil)
	require.NoError(t, err)
	_, err = DecryptBytes("aes-128-cbc", ct, sequence(15), nil, WithKeyPolicy(Lenient))
	// A wrong key almost always yields invalid padding.
	if err != nil {
		assert.ErrorIs(t, err, kerrors.ErrPadding)
		assert.Equal(t, kerrors.CategoryLibrary, kerrors.Classify(err))
	}

	// Plaintext with a zero final byte never passes the padding check.
	raw, err := EncryptBytes("aes-128-ecb", make([]byte, 16), key, nil, WithPadding(false))
	require.NoError(t, err)
	_, err = DecryptBytes("aes-128-ecb", raw, key, nil)
	assert.ErrorIs(t, err, kerrors.ErrPadding)
}

func TestNoPaddingRequiresFullBlocks(t *testing.T) {
	_, err := EncryptBytes("aes-128-cbc", sequence(10), sequence(16), nil, WithPadding(false))
	assert.ErrorIs(t, err, kerrors.ErrBlockLength)
}

func TestKeyPolicy(t *testing.T) {
	var adjusted []string
	notify := WithAdjustNotify(func(field string, got, want int) {
		adjusted = append(adjusted, field)
	})

	c, err := NewEncrypter("aes-256-cbc", []byte("short"), []byte("iv"), notify)
	require.NoError(t, err)
	assert.True(t, c.KeyAdjusted())
	assert.True(t, c.IVAdjusted())
	assert.Equal(t, []string{"key", "iv"}, adjusted)

	padded := make([]byte, 32)
	copy(padded, "short")
	a, err := EncryptBytes("aes-256-cbc", []byte("x"), []byte("short"), nil)
	require.NoError(t, err)
	b, err := EncryptBytes("aes-256-cbc", []byte("x"), padded, make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = NewEncrypter("aes-256-cbc", []byte("short"), nil, WithKeyPolicy(Strict))
	assert.ErrorIs(t, err, kerrors.ErrKeyLength)
	assert.Equal(t, kerrors.CategoryArgument, kerrors.Classify(err))

	_, err = NewEncrypter("aes-256-cbc", padded, []byte("iv"), WithKeyPolicy(Strict))
	assert.ErrorIs(t, err, kerrors.ErrIVLength)

	_, err = NewEncrypter("rc4", sequence(16), []byte("x"), WithKeyPolicy(Strict))
	assert.ErrorIs(t, err, kerrors.ErrIVLength)

	c, err = NewEncrypter("aes-256-cbc", padded, nil, WithKeyPolicy(Strict))
	require.NoError(t, err)
	assert.False(t, c.KeyAdjusted())
	assert.False(t, c.IVAdjusted())
}

func TestFinalizedAndClosed(t *testing.T) {
	c, err := NewEncrypter("aes-128-cbc", sequence(16), nil)
	require.NoError(t, err)
	_, err = c.Final()
	require.NoError(t, err)

	_, err = c.Update([]byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrContextFinalized)
	_, err = c.Final()
	assert.ErrorIs(t, err, kerrors.ErrContextFinalized)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	_, err = c.Update([]byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrContextClosed)
}

func TestUnknownCipher(t *testing.T) {
	_, err := NewDecrypter("aes-100-cbc", nil, nil)
	assert.ErrorIs(t, err, kerrors.ErrInvalidAlgorithm)
}

func TestString(t *testing.T) {
	enc, err := NewEncrypter("rc4", sequence(16), nil)
	require.NoError(t, err)
	dec, err := NewDecrypter("rc4", sequence(16), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc.String(), "crypto.encrypt 0x"))
	assert.True(t, strings.HasPrefix(dec.String(), "crypto.decrypt 0x"))
	assert.Equal(t, Decrypt, dec.Direction())
}

func TestChaCha20CounterInIV(t *testing.T) {
	key := sequence(32)
	iv := make([]byte, 16)
	iv[0] = 1 // counter starts at block 1

	zeros := make([]byte, 128)
	full, err := EncryptBytes("chacha20", zeros, key, make([]byte, 16))
	require.NoError(t, err)
	skipped, err := EncryptBytes("chacha20", zeros[:64], key, iv)
	require.NoError(t, err)
	assert.Equal(t, full[64:], skipped)
}

func TestChaCha20CounterCarriesIntoNonce(t *testing.T) {
	key := sequence(32)
	iv := make([]byte, 16)
	copy(iv, []byte{0xff, 0xff, 0xff, 0xff})
	plain := sequence(128)

	var out []byte
	require.NotPanics(t, func() {
		var err error
		out, err = EncryptBytes("chacha20", plain, key, iv)
		require.NoError(t, err)
	})
	require.Len(t, out, 128)

	// The second block runs at counter 0 with the first nonce word bumped.
	carried := make([]byte, 16)
	carried[4] = 1
	next, err := EncryptBytes("chacha20", plain[64:], key, carried)
	require.NoError(t, err)
	assert.Equal(t, next, out[64:])

	back, err := DecryptBytes("chacha20", out, key, iv)
	require.NoError(t, err)
	assert.Equal(t, plain, back)
}

func TestChaCha20CarryAcrossUpdates(t *testing.T) {
	key := sequence(32)
	iv := make([]byte, 16)
	copy(iv, []byte{0xff, 0xff, 0xff, 0xff})
	plain := sequence(200)

	oneShot, err := EncryptBytes("chacha20", plain, key, iv)
	require.NoError(t, err)

	c, err := NewEncrypter("chacha20", key, iv)
	require.NoError(t, err)
	var got []byte
	for _, chunk := range [][]byte{plain[:10], plain[10:70], plain[70:]} {
		out, err := c.Update(chunk)
		require.NoError(t, err)
		got = append(got, out...)
	}
	tail, err := c.Final()
	require.NoError(t, err)
	assert.Equal(t, oneShot, append(got, tail...))
}
