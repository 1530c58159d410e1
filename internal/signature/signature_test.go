package signature

import (
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/pkey"
)

var (
	keysOnce sync.Once
	rsaKey   *pkey.KeyPair
	ecKey    *pkey.KeyPair
	keysErr  error
)

func testKeys(t *testing.T) (*pkey.KeyPair, *pkey.KeyPair) {
	t.Helper()
	keysOnce.Do(func() {
		rsaKey, keysErr = pkey.Generate("rsa", 2048)
		if keysErr != nil {
			return
		}
		ecKey, keysErr = pkey.Generate("ec", 256)
	})
	require.NoError(t, keysErr)
	return rsaKey, ecKey
}

func publicOnly(t *testing.T, k *pkey.KeyPair) *pkey.KeyPair {
	t.Helper()
	data, err := k.PublicPEM()
	require.NoError(t, err)
	pub, err := pkey.Parse(data, false)
	require.NoError(t, err)
	return pub
}

func TestSignVerifyRoundTrip(t *testing.T) {
	rsaK, ecK := testKeys(t)
	data := []byte("the quick brown fox")

	tests := []struct {
		name   string
		digest string
		key    *pkey.KeyPair
	}{
		{"rsa-sha256", "sha256", rsaK},
		{"rsa-sha1", "sha1", rsaK},
		{"rsa-md5", "md5", rsaK},
		{"ec-sha256", "sha256", ecK},
		{"ec-sha3", "sha3-256", ecK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := Sign(tt.digest, data, tt.key)
			require.NoError(t, err)

			pub := publicOnly(t, tt.key)
			res, err := Verify(tt.digest, data, sig, pub)
			require.NoError(t, err)
			assert.Equal(t, ResultValid, res)

			tampered := append([]byte(nil), data...)
			tampered[0] ^= 1
			res, err = Verify(tt.digest, tampered, sig, pub)
			require.NoError(t, err)
			assert.Equal(t, ResultInvalid, res)
		})
	}
}

func TestStreamingSign(t *testing.T) {
	rsaK, _ := testKeys(t)

	s, err := NewSigner("sha256")
	require.NoError(t, err)
	require.NoError(t, s.Update([]byte("hello ")))
	require.NoError(t, s.Update([]byte("world")))
	sig, err := s.Final(rsaK)
	require.NoError(t, err)

	// PKCS#1 v1.5 is deterministic.
	oneShot, err := Sign("sha256", []byte("hello world"), rsaK)
	require.NoError(t, err)
	assert.Equal(t, oneShot, sig)

	_, err = s.Final(rsaK)
	assert.ErrorIs(t, err, kerrors.ErrContextFinalized)
	assert.ErrorIs(t, s.Update([]byte("x")), kerrors.ErrContextFinalized)

	v, err := NewVerifier("sha256")
	require.NoError(t, err)
	require.NoError(t, v.Update([]byte("hello world")))
	res, err := v.Final(sig, rsaK)
	require.NoError(t, err)
	assert.Equal(t, ResultValid, res)

	res, err = v.Final(sig, rsaK)
	assert.Equal(t, ResultError, res)
	assert.ErrorIs(t, err, kerrors.ErrVerification)
	assert.ErrorIs(t, err, kerrors.ErrContextFinalized)
}

func TestMalformedSignatures(t *testing.T) {
	rsaK, ecK := testKeys(t)
	data := []byte("data")

	res, err := Verify("sha256", data, []byte("short"), rsaK)
	assert.Equal(t, ResultError, res)
	assert.ErrorIs(t, err, kerrors.ErrVerification)

	res, err = Verify("sha256", data, []byte{0x30, 0x03, 0x02, 0x01}, ecK)
	assert.Equal(t, ResultError, res)
	assert.ErrorIs(t, err, kerrors.ErrVerification)

	// Well-formed DER with the wrong values is a plain mismatch.
	wrong, err := marshalRS(bigOne(), bigOne())
	require.NoError(t, err)
	res, err = Verify("sha256", data, wrong, ecK)
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, res)
}

func TestSignErrors(t *testing.T) {
	rsaK, _ := testKeys(t)

	_, err := Sign("sha256", []byte("x"), publicOnly(t, rsaK))
	assert.ErrorIs(t, err, kerrors.ErrSignature)
	assert.ErrorIs(t, err, kerrors.ErrNoPrivateKey)
	assert.Equal(t, kerrors.CategoryLibrary, kerrors.Classify(err))

	_, err = Sign("blake2b512", []byte("x"), rsaK)
	assert.ErrorIs(t, err, kerrors.ErrSignature)

	_, err = Sign("whirlpool", []byte("x"), rsaK)
	assert.ErrorIs(t, err, kerrors.ErrInvalidAlgorithm)

	_, err = Sign("sha256", []byte("x"), nil)
	assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)
}

func TestDSASignVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("dsa parameter generation is slow")
	}
	k, err := pkey.Generate("dsa", 1024)
	require.NoError(t, err)

	// sha512 is longer than the 160-bit subgroup and must be truncated.
	for _, d := range []string{"sha1", "sha512"} {
		sig, err := Sign(d, []byte("dsa data"), k)
		require.NoError(t, err)
		res, err := Verify(d, []byte("dsa data"), sig, publicOnly(t, k))
		require.NoError(t, err)
		assert.Equal(t, ResultValid, res, d)

		res, err = Verify(d, []byte("other"), sig, k)
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, res, d)
	}

	res, err := Verify("sha1", []byte("dsa data"), []byte("garbage"), k)
	assert.Equal(t, ResultError, res)
	assert.ErrorIs(t, err, kerrors.ErrVerification)
}

func TestCloseAndString(t *testing.T) {
	s, err := NewSigner("sha256")
	require.NoError(t, err)
	v, err := NewVerifier("sha256")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.String(), "crypto.sign 0x"))
	assert.True(t, strings.HasPrefix(v.String(), "crypto.verify 0x"))
	assert.Equal(t, "valid", ResultValid.String())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.NoError(t, v.Close())
	assert.ErrorIs(t, s.Update(nil), kerrors.ErrContextClosed)
	res, err := v.Final(nil, nil)
	assert.Equal(t, ResultError, res)
	assert.ErrorIs(t, err, kerrors.ErrContextClosed)
}

func bigOne() *big.Int { return big.NewInt(1) }
