package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

func TestLogCommand_Empty(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := executeCommand(t, "log")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No audit log entries found.")
}

func TestLogCommand_RecordsOperations(t *testing.T) {
	dir := setupTestEnvironment(t)
	path := writeFile(t, dir, "abc.txt", "abc")

	_, _, err := executeCommand(t, "digest", "-a", "sha256", path)
	require.NoError(t, err)
	_, _, err = executeCommand(t, "rand", "bytes", "--hex", "8")
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "log")
	require.NoError(t, err)
	assert.Contains(t, stdout, "digest")
	assert.Contains(t, stdout, "rand.bytes")

	stdout, _, err = executeCommand(t, "log", "--json", "--operation", "digest")
	require.NoError(t, err)

	var entries []audit.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "sha256", entries[0].Algorithm)
	assert.Equal(t, []string{path}, entries[0].Paths)
	assert.NotEmpty(t, entries[0].ID)

	stdout, _, err = executeCommand(t, "log", "--algorithm", "md5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "matching the filters")
}

func TestLogCommand_BadDate(t *testing.T) {
	setupTestEnvironment(t)

	_, _, err := executeCommand(t, "log", "--since", "yesterday")
	require.ErrorIs(t, err, kerrors.ErrInvalidArgument)
}
