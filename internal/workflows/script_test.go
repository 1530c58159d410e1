package workflows

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/luacrypto/internal/configs"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	logger "github.com/PolarWolf314/luacrypto/internal/logging"
	"github.com/PolarWolf314/luacrypto/internal/random"
)

func TestRunScript_ArgTableAndModule(t *testing.T) {
	dir := setupConfig(t, nil)
	script := writeTestFile(t, dir, "check.lua", `
assert(arg[0]:match("check.lua$"), "arg[0] is " .. tostring(arg[0]))
assert(arg[1] == "one" and arg[2] == "two" and #arg == 2)
local c = require("crypto")
assert(c == crypto or c._VERSION == crypto._VERSION)
assert(crypto.digest("md5", "") == "d41d8cd98f00b204e9800998ecf8427e")
`)

	err := RunScript(context.Background(), ScriptOptions{Path: script, Args: []string{"one", "two"}})
	assert.NoError(t, err)
}

func TestRunScript_Source(t *testing.T) {
	setupConfig(t, nil)

	err := RunScript(context.Background(), ScriptOptions{
		Path:   "inline",
		Source: `assert(arg[0] == "inline")`,
	})
	assert.NoError(t, err)
}

func TestRunScript_RuntimeError(t *testing.T) {
	setupConfig(t, nil)

	err := RunScript(context.Background(), ScriptOptions{Path: "inline", Source: `error("kaboom")`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running inline")
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRunScript_SyntaxError(t *testing.T) {
	setupConfig(t, nil)

	err := RunScript(context.Background(), ScriptOptions{Path: "inline", Source: `local = 1`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading inline")
}

func TestRunScript_MissingFile(t *testing.T) {
	dir := setupConfig(t, nil)

	err := RunScript(context.Background(), ScriptOptions{Path: filepath.Join(dir, "none.lua")})
	assert.ErrorIs(t, err, kerrors.ErrFile)
}

func TestRunScript_StrictFromConfig(t *testing.T) {
	setupConfig(t, func(c *configs.Config) { c.Keys.StrictLength = true })

	err := RunScript(context.Background(), ScriptOptions{
		Path:   "inline",
		Source: `crypto.encrypt("aes-128-cbc", "data", "short")`,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key length")
}

func TestRunScript_LenientWarns(t *testing.T) {
	setupConfig(t, nil)

	var stderr bytes.Buffer
	err := RunScript(context.Background(), ScriptOptions{
		Path:   "inline",
		Source: `assert(#crypto.encrypt("aes-128-cbc", "data", "short") == 16)`,
		Logger: logger.Logger{Err: &stderr},
	})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "[warn]")
}

func TestRunScript_Pool(t *testing.T) {
	setupConfig(t, nil)
	pool := random.New(bytes.NewReader(bytes.Repeat([]byte{0xab}, 16)))

	err := RunScript(context.Background(), ScriptOptions{
		Path:   "inline",
		Source: `assert(crypto.hex(crypto.rand.bytes(4)) == "abababab")`,
		Pool:   pool,
	})
	assert.NoError(t, err)
}

func TestRunScript_Cancelled(t *testing.T) {
	setupConfig(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := RunScript(ctx, ScriptOptions{Path: "inline", Source: `while true do end`})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
