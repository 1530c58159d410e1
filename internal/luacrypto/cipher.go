package luacrypto

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/PolarWolf314/luacrypto/internal/registry"
	"github.com/PolarWolf314/luacrypto/internal/symmetric"
)

func (m *Module) cipherOptions(name string) []symmetric.Option {
	return []symmetric.Option{
		symmetric.WithKeyPolicy(m.KeyPolicy),
		symmetric.WithAdjustNotify(func(field string, got, want int) {
			m.Logger.WarnfAlways("%s: %s is %d bytes, cipher expects %d; zero-padded or truncated", name, field, got, want)
		}),
	}
}

// cipherArg maps an error from a cipher constructor back to the argument that
// caused it: the name, the key or the IV.
func cipherArg(err error, base int) int {
	switch {
	case isKeyLength(err):
		return base + 1
	case isIVLength(err):
		return base + 2
	}
	return base
}

func (m *Module) newCipher(L *lua.LState, dir symmetric.Direction) (*symmetric.Context, bool) {
	name := L.CheckString(1)
	key := checkBytes(L, 2)
	iv := optBytes(L, 3)
	newFn := symmetric.NewEncrypter
	if dir == symmetric.Decrypt {
		newFn = symmetric.NewDecrypter
	}
	c, err := newFn(name, key, iv, m.cipherOptions(name)...)
	if err != nil {
		fail(L, cipherArg(err, 1), err)
		return nil, false
	}
	return c, true
}

// crypto.encrypt.new(name, key, [iv])
func (m *Module) encryptNew(L *lua.LState) int {
	c, ok := m.newCipher(L, symmetric.Encrypt)
	if !ok {
		return 2
	}
	pushUserData(L, encryptType, c)
	return 1
}

// crypto.decrypt.new(name, key, [iv])
func (m *Module) decryptNew(L *lua.LState) int {
	c, ok := m.newCipher(L, symmetric.Decrypt)
	if !ok {
		return 2
	}
	pushUserData(L, decryptType, c)
	return 1
}

// crypto.encrypt(name, data, key, [iv], [raw])
func (m *Module) encryptOneShot(L *lua.LState) int {
	return m.cipherOneShot(L, symmetric.EncryptBytes)
}

// crypto.decrypt(name, data, key, [iv], [raw])
func (m *Module) decryptOneShot(L *lua.LState) int {
	return m.cipherOneShot(L, symmetric.DecryptBytes)
}

type cryptFunc func(name string, data, key, iv []byte, opts ...symmetric.Option) ([]byte, error)

func (m *Module) cipherOneShot(L *lua.LState, fn cryptFunc) int {
	name := L.CheckString(1)
	data := checkBytes(L, 2)
	key := checkBytes(L, 3)
	iv := optBytes(L, 4)
	out, err := fn(name, data, key, iv, m.cipherOptions(name)...)
	if err != nil {
		// Shift past data: key is argument 3, iv argument 4.
		arg := cipherArg(err, 1)
		if arg > 1 {
			arg++
		}
		return fail(L, arg, err)
	}
	return pushOutput(L, registry.Output(out), optCipherRaw(L, 5))
}

// optCipherRaw reads the raw flag of a cipher final. Unlike digests, cipher
// output stays raw unless the flag is given as false.
func optCipherRaw(L *lua.LState, n int) bool {
	v := L.Get(n)
	if v == lua.LNil {
		return true
	}
	return lua.LVAsBool(v)
}

func (m *Module) cipherMethods(dir symmetric.Direction) map[string]lua.LGFunction {
	typeName := encryptType
	if dir == symmetric.Decrypt {
		typeName = decryptType
	}
	check := func(L *lua.LState) *symmetric.Context {
		c := checkUserData[*symmetric.Context](L, 1, typeName)
		if c.Direction() != dir {
			L.ArgError(1, typeName+" expected")
		}
		return c
	}
	return map[string]lua.LGFunction{
		"update": func(L *lua.LState) int {
			c := check(L)
			out, err := c.Update(checkBytes(L, 2))
			if err != nil {
				return fail(L, 2, err)
			}
			L.Push(lua.LString(out))
			return 1
		},
		"final": func(L *lua.LState) int {
			c := check(L)
			raw := optCipherRaw(L, 2)
			out, err := c.Final()
			if err != nil {
				return fail(L, 1, err)
			}
			return pushOutput(L, registry.Output(out), raw)
		},
		"tostring": func(L *lua.LState) int {
			L.Push(lua.LString(check(L).String()))
			return 1
		},
		"close": func(L *lua.LState) int {
			_ = check(L).Close()
			return 0
		},
	}
}
