package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(path), 0600))
}

func TestResolveFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"))
	touch(t, filepath.Join(dir, "b.lua"))
	touch(t, filepath.Join(dir, "keys", "k.pem"))
	touch(t, filepath.Join(dir, "keys", "deep", "k2.pem"))

	rel := func(files []string) []string {
		out := make([]string, len(files))
		for i, f := range files {
			r, err := filepath.Rel(dir, f)
			require.NoError(t, err)
			out[i] = filepath.ToSlash(r)
		}
		sort.Strings(out)
		return out
	}

	t.Run("literal", func(t *testing.T) {
		files, err := ResolveFiles([]string{"a.txt"}, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, rel(files))
	})

	t.Run("directory walks recursively", func(t *testing.T) {
		files, err := ResolveFiles([]string{"keys"}, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"keys/deep/k2.pem", "keys/k.pem"}, rel(files))
	})

	t.Run("doublestar glob", func(t *testing.T) {
		files, err := ResolveFiles([]string{"**/*.pem"}, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"keys/deep/k2.pem", "keys/k.pem"}, rel(files))
	})

	t.Run("deduplicates", func(t *testing.T) {
		files, err := ResolveFiles([]string{"a.txt", "*.txt", filepath.Join(dir, "a.txt")}, dir)
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("missing literal", func(t *testing.T) {
		_, err := ResolveFiles([]string{"nope.txt"}, dir)
		require.ErrorIs(t, err, kerrors.ErrFile)
		assert.Contains(t, err.Error(), "nope.txt")
	})

	t.Run("glob matching nothing", func(t *testing.T) {
		_, err := ResolveFiles([]string{"*.rs"}, dir)
		require.ErrorIs(t, err, kerrors.ErrFile)
	})

	t.Run("bad glob", func(t *testing.T) {
		_, err := ResolveFiles([]string{"[a-"}, dir)
		require.ErrorIs(t, err, kerrors.ErrInvalidArgument)
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, ".rnd"), ExpandHome("~/.rnd"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 1, 2}, 0600))

	data, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, data)

	_, err = ReadInput(path + ".missing")
	require.ErrorIs(t, err, kerrors.ErrFile)
}

func TestOpenInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.bin")
	require.NoError(t, os.WriteFile(path, []byte("stream"), 0600))

	rc, err := OpenInput(path)
	require.NoError(t, err)
	buf := make([]byte, 6)
	_, err = rc.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "stream", string(buf))
	require.NoError(t, rc.Close())

	_, err = OpenInput(path + ".missing")
	require.ErrorIs(t, err, kerrors.ErrFile)
}

func TestDecodeKey(t *testing.T) {
	b, err := DecodeKey("hex:00ff10")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, b)

	b, err = DecodeKey("plain secret")
	require.NoError(t, err)
	assert.Equal(t, []byte("plain secret"), b)

	_, err = DecodeKey("hex:zz")
	require.ErrorIs(t, err, kerrors.ErrInvalidArgument)
}

func TestFormatPaths(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := FormatPaths([]string{"a.pem", "b.pem"})
	assert.Equal(t, "\n    - a.pem\n    - b.pem\n", out)
	assert.True(t, strings.HasPrefix(FormatPaths(nil), "\n"))
}
