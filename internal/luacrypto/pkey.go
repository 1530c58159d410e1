package luacrypto

import (
	lua "github.com/yuin/gopher-lua"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/pkey"
)

var keyKinds = []string{"rsa", "dsa", "ec"}

// crypto.pkey.generate(kind, bits)
func (m *Module) pkeyGenerate(L *lua.LState) int {
	kind := keyKinds[L.CheckOption(1, keyKinds)]
	bits := L.CheckInt(2)
	k, err := pkey.Generate(kind, bits)
	if err != nil {
		arg := 1
		if kerrors.Is(err, kerrors.ErrInvalidArgument) {
			arg = 2
		}
		return fail(L, arg, err)
	}
	pushUserData(L, pkeyType, k)
	return 1
}

// crypto.pkey.read(path, [private])
func (m *Module) pkeyRead(L *lua.LState) int {
	path := L.CheckString(1)
	private := L.Get(2) == lua.LTrue
	k, err := pkey.Read(path, private)
	if err != nil {
		return fail(L, 1, err)
	}
	pushUserData(L, pkeyType, k)
	return 1
}

func (m *Module) pkeyMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"write": func(L *lua.LState) int {
			k := checkKey(L, 1)
			pub := optPath(L, 2)
			priv := optPath(L, 3)
			if priv != "" && k.HasPrivate() {
				m.Logger.WarnfAlways("writing unencrypted private key to %s", priv)
			}
			if err := k.Write(pub, priv); err != nil {
				return fail(L, 1, err)
			}
			L.Push(lua.LTrue)
			return 1
		},
		"type": func(L *lua.LState) int {
			L.Push(lua.LString(checkKey(L, 1).Type()))
			return 1
		},
		"bits": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkKey(L, 1).Bits()))
			return 1
		},
		"tostring": func(L *lua.LState) int {
			L.Push(lua.LString(checkKey(L, 1).String()))
			return 1
		},
		"close": func(L *lua.LState) int {
			_ = checkKey(L, 1).Close()
			return 0
		},
	}
}

// optPath returns "" when argument n is absent or nil.
func optPath(L *lua.LState, n int) string {
	if L.Get(n) == lua.LNil {
		return ""
	}
	return L.CheckString(n)
}
