package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/registry"
)

const abcSHA256 = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func TestSum(t *testing.T) {
	out, err := Sum("sha256", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, abcSHA256, out.Hex())
	assert.Len(t, out.Format(true), 32)

	out, err = Sum("MD5", nil)
	require.NoError(t, err)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", out.Hex())
}

func TestSumUnknownAlgorithm(t *testing.T) {
	_, err := Sum("nope", []byte("abc"))
	assert.ErrorIs(t, err, kerrors.ErrInvalidAlgorithm)
}

func TestStreamingMatchesOneShot(t *testing.T) {
	names, err := registry.Canonical(registry.KindDigests)
	require.NoError(t, err)

	data := []byte(strings.Repeat("luacrypto streaming input ", 20))
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			want, err := Sum(name, data)
			require.NoError(t, err)

			c, err := New(name)
			require.NoError(t, err)
			defer c.Close()
			require.NoError(t, c.Update(data[:7]))
			require.NoError(t, c.Update(data[7:300]))
			got, err := c.Final(data[300:])
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFinalIsNotDestructive(t *testing.T) {
	c, err := New("sha256")
	require.NoError(t, err)

	first, err := c.Final([]byte("ab"))
	require.NoError(t, err)
	again, err := c.Final(nil)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	out, err := c.Final([]byte("c"))
	require.NoError(t, err)
	assert.Equal(t, abcSHA256, out.Hex())
}

func TestResetIdempotence(t *testing.T) {
	c, err := New("sha1")
	require.NoError(t, err)
	require.NoError(t, c.Update([]byte("junk")))
	require.NoError(t, c.Reset())
	require.NoError(t, c.Reset())

	out, err := c.Final(nil)
	require.NoError(t, err)
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", out.Hex())
}

func TestCloneEquivalence(t *testing.T) {
	// md4 and ripemd160 fork by replay, the others by snapshot.
	for _, name := range []string{"sha256", "sha3-256", "blake2b512", "md4", "ripemd160"} {
		t.Run(name, func(t *testing.T) {
			c, err := New(name)
			require.NoError(t, err)
			require.NoError(t, c.Update([]byte("shared prefix")))

			fork, err := c.Clone()
			require.NoError(t, err)

			require.NoError(t, c.Update([]byte("-a")))
			require.NoError(t, fork.Update([]byte("-a")))
			a, err := c.Final(nil)
			require.NoError(t, err)
			b, err := fork.Final(nil)
			require.NoError(t, err)
			assert.Equal(t, a, b)

			require.NoError(t, fork.Update([]byte("diverge")))
			b, err = fork.Final(nil)
			require.NoError(t, err)
			assert.NotEqual(t, a, b)

			want, err := Sum(name, []byte("shared prefix-a"))
			require.NoError(t, err)
			assert.Equal(t, want, a)
		})
	}
}

func TestClose(t *testing.T) {
	c, err := New("sha256")
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, c.Closed())

	assert.ErrorIs(t, c.Update([]byte("x")), kerrors.ErrContextClosed)
	_, err = c.Final(nil)
	assert.ErrorIs(t, err, kerrors.ErrContextClosed)
	_, err = c.Clone()
	assert.ErrorIs(t, err, kerrors.ErrContextClosed)
	assert.ErrorIs(t, c.Reset(), kerrors.ErrContextClosed)
}

func TestString(t *testing.T) {
	c, err := New("sha256")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.String(), "crypto.digest 0x"))
	assert.Equal(t, "sha256", c.Name())
	assert.Equal(t, 32, c.Size())
}

func TestStreamKeepsNoJournal(t *testing.T) {
	c, err := NewStream("md4")
	require.NoError(t, err)
	defer c.Close()

	chunk := make([]byte, 64*1024)
	for i := 0; i < 16; i++ {
		require.NoError(t, c.Update(chunk))
	}
	assert.Empty(t, c.state.journal)
	assert.Equal(t, 0, cap(c.state.journal))

	_, err = c.Clone()
	assert.ErrorIs(t, err, ErrNotForkable)

	out, err := c.Final(nil)
	require.NoError(t, err)
	buffered, err := New("md4")
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		require.NoError(t, buffered.Update(chunk))
	}
	want, err := buffered.Final(nil)
	require.NoError(t, err)
	assert.Equal(t, want, out)
}
