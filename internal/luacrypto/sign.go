package luacrypto

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/PolarWolf314/luacrypto/internal/pkey"
	"github.com/PolarWolf314/luacrypto/internal/signature"
)

func checkKey(L *lua.LState, n int) *pkey.KeyPair {
	return checkUserData[*pkey.KeyPair](L, n, pkeyType)
}

// pushVerdict pushes true or false, or nil and a message when the check
// could not run.
func pushVerdict(L *lua.LState, res signature.Result, err error) int {
	if res == signature.ResultError {
		return fail(L, 1, err)
	}
	L.Push(lua.LBool(res == signature.ResultValid))
	return 1
}

// crypto.sign(name, data, key)
func (m *Module) signOneShot(L *lua.LState) int {
	name := L.CheckString(1)
	data := checkBytes(L, 2)
	key := checkKey(L, 3)
	sig, err := signature.Sign(name, data, key)
	if err != nil {
		return fail(L, 1, err)
	}
	L.Push(lua.LString(sig))
	return 1
}

// crypto.sign.new(name)
func (m *Module) signNew(L *lua.LState) int {
	s, err := signature.NewSigner(L.CheckString(1))
	if err != nil {
		return fail(L, 1, err)
	}
	pushUserData(L, signType, s)
	return 1
}

func checkSigner(L *lua.LState) *signature.Signer {
	return checkUserData[*signature.Signer](L, 1, signType)
}

func (m *Module) signMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"update": func(L *lua.LState) int {
			s := checkSigner(L)
			if err := s.Update(checkBytes(L, 2)); err != nil {
				return fail(L, 2, err)
			}
			L.SetTop(1)
			return 1
		},
		"final": func(L *lua.LState) int {
			s := checkSigner(L)
			sig, err := s.Final(checkKey(L, 2))
			if err != nil {
				return fail(L, 2, err)
			}
			L.Push(lua.LString(sig))
			return 1
		},
		"tostring": func(L *lua.LState) int {
			L.Push(lua.LString(checkSigner(L).String()))
			return 1
		},
		"close": func(L *lua.LState) int {
			_ = checkSigner(L).Close()
			return 0
		},
	}
}

// crypto.verify(name, data, sig, key)
func (m *Module) verifyOneShot(L *lua.LState) int {
	name := L.CheckString(1)
	data := checkBytes(L, 2)
	sig := checkBytes(L, 3)
	key := checkKey(L, 4)
	res, err := signature.Verify(name, data, sig, key)
	return pushVerdict(L, res, err)
}

// crypto.verify.new(name)
func (m *Module) verifyNew(L *lua.LState) int {
	v, err := signature.NewVerifier(L.CheckString(1))
	if err != nil {
		return fail(L, 1, err)
	}
	pushUserData(L, verifyType, v)
	return 1
}

func checkVerifier(L *lua.LState) *signature.Verifier {
	return checkUserData[*signature.Verifier](L, 1, verifyType)
}

func (m *Module) verifyMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"update": func(L *lua.LState) int {
			v := checkVerifier(L)
			if err := v.Update(checkBytes(L, 2)); err != nil {
				return fail(L, 2, err)
			}
			L.SetTop(1)
			return 1
		},
		"final": func(L *lua.LState) int {
			v := checkVerifier(L)
			sig := checkBytes(L, 2)
			res, err := v.Final(sig, checkKey(L, 3))
			return pushVerdict(L, res, err)
		},
		"tostring": func(L *lua.LState) int {
			L.Push(lua.LString(checkVerifier(L).String()))
			return 1
		},
		"close": func(L *lua.LState) int {
			_ = checkVerifier(L).Close()
			return 0
		},
	}
}
