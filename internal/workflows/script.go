package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	logger "github.com/PolarWolf314/luacrypto/internal/logging"
	"github.com/PolarWolf314/luacrypto/internal/luacrypto"
	"github.com/PolarWolf314/luacrypto/internal/random"
	"github.com/PolarWolf314/luacrypto/internal/symmetric"
	"github.com/PolarWolf314/luacrypto/internal/utils"
)

// ScriptOptions configures the script runner.
type ScriptOptions struct {
	// Path is the script file, or "-" for stdin.
	Path string

	// Source runs this chunk instead of reading Path. Path then only names
	// the chunk in arg[0] and error messages.
	Source string

	// Args become arg[1..n].
	Args []string

	// Strict rejects mismatched key and IV lengths in crypto.encrypt and
	// crypto.decrypt. It is also enabled by keys.strict_length.
	Strict bool

	Logger logger.Logger

	// Pool serves crypto.rand. Nil means random.Default.
	Pool *random.Pool
}

// RunScript executes a Lua script with the crypto module preloaded and set
// as a global. Cancelling ctx stops the script.
//
// Script errors carry the Lua message, which names the chunk and line; a
// cancelled context returns ctx.Err().
func RunScript(ctx context.Context, opts ScriptOptions) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	name := displayPath(opts.Path)
	source := opts.Source
	if source == "" {
		data, err := utils.ReadInput(opts.Path)
		if err != nil {
			return err
		}
		source = string(data)
	}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	module := &luacrypto.Module{Logger: opts.Logger, Pool: opts.Pool}
	if opts.Strict || config.Keys.StrictLength {
		module.KeyPolicy = symmetric.Strict
	}
	module.Open(L)

	argTable := L.NewTable()
	argTable.RawSetInt(0, lua.LString(name))
	for i, a := range opts.Args {
		argTable.RawSetInt(i+1, lua.LString(a))
	}
	L.SetGlobal("arg", argTable)

	opts.Logger.Debugf("running %s with %d argument(s)", name, len(opts.Args))

	fn, err := L.Load(strings.NewReader(source), name)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var apiErr *lua.ApiError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("running %s: %s", name, apiErr.Object.String())
		}
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}
