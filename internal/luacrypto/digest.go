package luacrypto

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/PolarWolf314/luacrypto/internal/digest"
	"github.com/PolarWolf314/luacrypto/internal/mac"
)

// crypto.digest(name, data, [raw])
func (m *Module) digestOneShot(L *lua.LState) int {
	name := L.CheckString(1)
	data := checkBytes(L, 2)
	out, err := digest.Sum(name, data)
	if err != nil {
		return fail(L, 1, err)
	}
	return pushOutput(L, out, lua.LVAsBool(L.Get(3)))
}

// crypto.digest.new(name)
func (m *Module) digestNew(L *lua.LState) int {
	c, err := digest.New(L.CheckString(1))
	if err != nil {
		return fail(L, 1, err)
	}
	pushUserData(L, digestType, c)
	return 1
}

func checkDigest(L *lua.LState) *digest.Context {
	return checkUserData[*digest.Context](L, 1, digestType)
}

func (m *Module) digestMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"update": func(L *lua.LState) int {
			c := checkDigest(L)
			if err := c.Update(checkBytes(L, 2)); err != nil {
				return fail(L, 2, err)
			}
			L.SetTop(1)
			return 1
		},
		"final": func(L *lua.LState) int {
			out, err := checkDigest(L).Final(trailingData(L, 2))
			if err != nil {
				return fail(L, 2, err)
			}
			return pushOutput(L, out, lua.LVAsBool(L.Get(3)))
		},
		"clone": func(L *lua.LState) int {
			c, err := checkDigest(L).Clone()
			if err != nil {
				return fail(L, 1, err)
			}
			pushUserData(L, digestType, c)
			return 1
		},
		"reset": func(L *lua.LState) int {
			if err := checkDigest(L).Reset(); err != nil {
				return fail(L, 1, err)
			}
			L.SetTop(1)
			return 1
		},
		"tostring": func(L *lua.LState) int {
			L.Push(lua.LString(checkDigest(L).String()))
			return 1
		},
		"close": func(L *lua.LState) int {
			_ = checkDigest(L).Close()
			return 0
		},
	}
}

// crypto.hmac.digest(name, data, key, [raw])
func (m *Module) hmacOneShot(L *lua.LState) int {
	name := L.CheckString(1)
	data := checkBytes(L, 2)
	key := checkBytes(L, 3)
	out, err := mac.Sum(name, data, key)
	if err != nil {
		return fail(L, 1, err)
	}
	return pushOutput(L, out, lua.LVAsBool(L.Get(4)))
}

// crypto.hmac.new(name, key)
func (m *Module) hmacNew(L *lua.LState) int {
	name := L.CheckString(1)
	key := checkBytes(L, 2)
	c, err := mac.New(name, key)
	if err != nil {
		return fail(L, 1, err)
	}
	pushUserData(L, hmacType, c)
	return 1
}

func checkHMAC(L *lua.LState) *mac.Context {
	return checkUserData[*mac.Context](L, 1, hmacType)
}

func (m *Module) hmacMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"update": func(L *lua.LState) int {
			c := checkHMAC(L)
			if err := c.Update(checkBytes(L, 2)); err != nil {
				return fail(L, 2, err)
			}
			L.SetTop(1)
			return 1
		},
		"final": func(L *lua.LState) int {
			out, err := checkHMAC(L).Final(trailingData(L, 2))
			if err != nil {
				return fail(L, 2, err)
			}
			return pushOutput(L, out, lua.LVAsBool(L.Get(3)))
		},
		"clone": func(L *lua.LState) int {
			c, err := checkHMAC(L).Clone()
			if err != nil {
				return fail(L, 1, err)
			}
			pushUserData(L, hmacType, c)
			return 1
		},
		"reset": func(L *lua.LState) int {
			if err := checkHMAC(L).Reset(); err != nil {
				return fail(L, 1, err)
			}
			L.SetTop(1)
			return 1
		},
		"tostring": func(L *lua.LState) int {
			L.Push(lua.LString(checkHMAC(L).String()))
			return 1
		},
		"close": func(L *lua.LState) int {
			_ = checkHMAC(L).Close()
			return 0
		},
	}
}
