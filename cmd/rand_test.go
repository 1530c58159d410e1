package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/random"
)

func TestRandBytesCommand_Hex(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := executeCommand(t, "rand", "bytes", "--hex", "16")
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{32}\n$`, stdout)

	again, _, err := executeCommand(t, "rand", "bytes", "--hex", "16")
	require.NoError(t, err)
	assert.NotEqual(t, stdout, again)
}

func TestRandBytesCommand_PseudoRaw(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := executeCommand(t, "rand", "bytes", "--pseudo", "24")
	require.NoError(t, err)
	assert.Len(t, stdout, 24)
}

func TestRandBytesCommand_BadCount(t *testing.T) {
	setupTestEnvironment(t)

	_, _, err := executeCommand(t, "rand", "bytes", "many")
	require.ErrorIs(t, err, kerrors.ErrInvalidArgument)

	_, _, err = executeCommand(t, "rand", "bytes", "-1")
	require.Error(t, err)
}

func TestRandStatusCommand(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := executeCommand(t, "rand", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "seeded")
}

func TestRandWriteLoadCommand(t *testing.T) {
	dir := setupTestEnvironment(t)
	seed := filepath.Join(dir, "custom.rnd")

	stdout, _, err := executeCommand(t, "rand", "write", seed)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote")

	info, err := os.Stat(seed)
	require.NoError(t, err)
	assert.Equal(t, int64(random.StateFileBytes), info.Size())

	stdout, _, err = executeCommand(t, "rand", "load", "--max", "100", seed)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Loaded 100 bytes")
}

func TestRandWriteCommand_DefaultsToRANDFILE(t *testing.T) {
	dir := setupTestEnvironment(t)

	stdout, _, err := executeCommand(t, "rand", "write")
	require.NoError(t, err)
	assert.True(t, strings.Contains(stdout, filepath.Join(dir, "seed.rnd")), "got %q", stdout)
}
