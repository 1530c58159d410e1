package luacrypto

import (
	lua "github.com/yuin/gopher-lua"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	logger "github.com/PolarWolf314/luacrypto/internal/logging"
	"github.com/PolarWolf314/luacrypto/internal/random"
	"github.com/PolarWolf314/luacrypto/internal/registry"
	"github.com/PolarWolf314/luacrypto/internal/symmetric"
)

// ModuleName is the name scripts require.
const ModuleName = "crypto"

const (
	Version     = "0.2.0"
	Copyright   = "Copyright (C) the luacrypto authors"
	Description = "LuaCrypto is a Lua wrapper for Go's crypto libraries"
)

// Userdata type names, also used in tostring output.
const (
	digestType  = "crypto.digest"
	encryptType = "crypto.encrypt"
	decryptType = "crypto.decrypt"
	hmacType    = "crypto.hmac"
	signType    = "crypto.sign"
	verifyType  = "crypto.verify"
	pkeyType    = "crypto.pkey"
)

// Module configures the crypto module. The zero value is ready to use.
type Module struct {
	Logger logger.Logger

	// KeyPolicy applies to encrypt and decrypt. The default, Lenient,
	// zero-pads or truncates mismatched keys and IVs and logs a warning.
	KeyPolicy symmetric.KeyPolicy

	// Pool serves crypto.rand. Nil means random.Default.
	Pool *random.Pool
}

func (m *Module) pool() *random.Pool {
	if m.Pool != nil {
		return m.Pool
	}
	return random.Default
}

// Loader builds the module table. Use it with L.PreloadModule so scripts
// can require "crypto".
func (m *Module) Loader(L *lua.LState) int {
	L.Push(m.table(L))
	return 1
}

// Open preloads the module and sets the global crypto.
func (m *Module) Open(L *lua.LState) {
	L.PreloadModule(ModuleName, m.Loader)
	L.SetGlobal(ModuleName, m.table(L))
}

func (m *Module) table(L *lua.LState) *lua.LTable {
	m.registerTypes(L)

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"list": m.list,
		"hex":  m.hex,
	})
	L.SetField(mod, "digest", callTable(L, m.digestNew, m.digestOneShot))
	L.SetField(mod, "encrypt", callTable(L, m.encryptNew, m.encryptOneShot))
	L.SetField(mod, "decrypt", callTable(L, m.decryptNew, m.decryptOneShot))
	L.SetField(mod, "sign", callTable(L, m.signNew, m.signOneShot))
	L.SetField(mod, "verify", callTable(L, m.verifyNew, m.verifyOneShot))
	L.SetField(mod, "hmac", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"new":    m.hmacNew,
		"digest": m.hmacOneShot,
	}))
	L.SetField(mod, "rand", L.SetFuncs(L.NewTable(), m.randFuncs()))
	L.SetField(mod, "pkey", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"generate": m.pkeyGenerate,
		"read":     m.pkeyRead,
	}))

	L.SetField(mod, "_COPYRIGHT", lua.LString(Copyright))
	L.SetField(mod, "_DESCRIPTION", lua.LString(Description))
	L.SetField(mod, "_VERSION", lua.LString("LuaCrypto "+Version))
	return mod
}

func (m *Module) registerTypes(L *lua.LState) {
	registerType(L, digestType, m.digestMethods())
	registerType(L, encryptType, m.cipherMethods(symmetric.Encrypt))
	registerType(L, decryptType, m.cipherMethods(symmetric.Decrypt))
	registerType(L, hmacType, m.hmacMethods())
	registerType(L, signType, m.signMethods())
	registerType(L, verifyType, m.verifyMethods())
	registerType(L, pkeyType, m.pkeyMethods())
}

// registerType creates a protected metatable for a userdata type. Every
// method set carries a tostring, which doubles as __tostring.
func registerType(L *lua.LState, name string, methods map[string]lua.LGFunction) {
	mt := L.NewTypeMetatable(name)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), methods))
	L.SetField(mt, "__tostring", L.NewFunction(methods["tostring"]))
	L.SetField(mt, "__metatable", lua.LString(name))
}

// callTable returns a table with a new constructor whose __call runs the
// one-shot form, so crypto.x(...) and crypto.x.new(...) both work.
func callTable(L *lua.LState, newFn, oneShot lua.LGFunction) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "new", L.NewFunction(newFn))
	mt := L.NewTable()
	L.SetField(mt, "__call", L.NewFunction(func(L *lua.LState) int {
		L.Remove(1) // the table itself
		return oneShot(L)
	}))
	L.SetMetatable(t, mt)
	return t
}

func (m *Module) list(L *lua.LState) int {
	kinds := []string{registry.KindCiphers, registry.KindDigests}
	kind := kinds[L.CheckOption(1, kinds)]
	names, err := registry.List(kind)
	if err != nil {
		return fail(L, 1, err)
	}
	t := L.CreateTable(len(names), 0)
	for _, name := range names {
		t.Append(lua.LString(name))
	}
	L.Push(t)
	return 1
}

func (m *Module) hex(L *lua.LState) int {
	L.Push(lua.LString(registry.Hex([]byte(L.CheckString(1)))))
	return 1
}

// fail reports err using the module's error convention. Argument errors
// raise against arg, file errors raise, everything else returns nil and a
// message.
func fail(L *lua.LState, arg int, err error) int {
	switch kerrors.Classify(err) {
	case kerrors.CategoryArgument:
		L.ArgError(arg, err.Error())
	case kerrors.CategoryIO:
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

func pushUserData(L *lua.LState, typeName string, v any) {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	L.Push(ud)
}

// checkUserData returns the value of the userdata at n, raising an argument
// error when it is not a T.
func checkUserData[T any](L *lua.LState, n int, typeName string) T {
	ud := L.CheckUserData(n)
	v, ok := ud.Value.(T)
	if !ok {
		L.ArgError(n, typeName+" expected")
	}
	return v
}

func checkBytes(L *lua.LState, n int) []byte {
	return []byte(L.CheckString(n))
}

// optBytes returns nil when argument n is absent or nil.
func optBytes(L *lua.LState, n int) []byte {
	v := L.Get(n)
	if v == lua.LNil {
		return nil
	}
	if !lua.LVCanConvToString(v) {
		L.TypeError(n, lua.LTString)
	}
	return []byte(lua.LVAsString(v))
}

// trailingData handles the final(self, [data], [raw]) shape: data is used
// only when argument n is a string or number.
func trailingData(L *lua.LState, n int) []byte {
	v := L.Get(n)
	if !lua.LVCanConvToString(v) {
		return nil
	}
	return []byte(lua.LVAsString(v))
}

func pushOutput(L *lua.LState, out registry.Output, raw bool) int {
	L.Push(lua.LString(out.Format(raw)))
	return 1
}

func isKeyLength(err error) bool { return kerrors.Is(err, kerrors.ErrKeyLength) }

func isIVLength(err error) bool { return kerrors.Is(err, kerrors.ErrIVLength) }
