package luacrypto

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/random"
)

func (m *Module) randFuncs() map[string]lua.LGFunction {
	mixer := func(fn func(p *random.Pool, buf []byte, entropy float64) error) lua.LGFunction {
		return func(L *lua.LState) int {
			buf := checkBytes(L, 1)
			entropy := float64(L.OptNumber(2, lua.LNumber(len(buf))))
			if err := fn(m.pool(), buf, entropy); err != nil {
				return fail(L, 1, err)
			}
			return 0
		}
	}
	return map[string]lua.LGFunction{
		"bytes": func(L *lua.LState) int {
			return m.randBytes(L, m.pool().Bytes)
		},
		"pseudo_bytes": func(L *lua.LState) int {
			return m.randBytes(L, m.pool().PseudoBytes)
		},
		"add":  mixer((*random.Pool).Add),
		"seed": mixer((*random.Pool).Seed),
		"status": func(L *lua.LState) int {
			L.Push(lua.LBool(m.pool().Status()))
			return 1
		},
		"load": func(L *lua.LState) int {
			path, ok := statePath(L)
			if !ok {
				return 2
			}
			n, err := m.pool().Load(path, random.StateFileBytes)
			if err != nil {
				return fail(L, 1, err)
			}
			L.Push(lua.LNumber(n))
			return 1
		},
		"write": func(L *lua.LState) int {
			path, ok := statePath(L)
			if !ok {
				return 2
			}
			n, err := m.pool().Write(path)
			if err != nil {
				return fail(L, 1, err)
			}
			L.Push(lua.LNumber(n))
			return 1
		},
		"cleanup": func(L *lua.LState) int {
			m.pool().Cleanup()
			return 0
		},
	}
}

func (m *Module) randBytes(L *lua.LState, fn func(int) ([]byte, error)) int {
	n := L.CheckInt(1)
	if n < 0 {
		L.ArgError(1, fmt.Sprintf("count must not be negative, got %d", n))
	}
	b, err := fn(n)
	if err != nil {
		return fail(L, 1, err)
	}
	L.Push(lua.LString(b))
	return 1
}

// statePath returns argument 1 or the default state file. When neither is
// available it pushes nil and a message and reports false.
func statePath(L *lua.LState) (string, bool) {
	if path := optPath(L, 1); path != "" {
		return path, true
	}
	if path := random.DefaultStateFile(); path != "" {
		return path, true
	}
	L.Push(lua.LNil)
	L.Push(lua.LString(fmt.Errorf("%w: no random state file: set RANDFILE or HOME", kerrors.ErrRng).Error()))
	return "", false
}
