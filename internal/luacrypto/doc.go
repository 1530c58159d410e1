// Package luacrypto exposes luacrypto's primitives to gopher-lua scripts as
// the "crypto" module.
//
//	L := lua.NewState()
//	m := &luacrypto.Module{}
//	m.Open(L)
//	L.DoString(`print(crypto.digest("sha256", "abc"))`)
//
// The module follows the LuaCrypto calling conventions:
//
//   - crypto.digest, crypto.encrypt, crypto.decrypt, crypto.sign and
//     crypto.verify are tables with a new constructor that can also be
//     called directly for a one-shot operation.
//   - Digest and HMAC finals return lowercase hex unless their trailing raw
//     argument is true. Cipher finals take the same argument but default to
//     raw bytes; pass false for hex. Signatures are always raw bytes.
//   - Bad arguments and unknown algorithm names raise a Lua error naming
//     the argument. File problems raise a Lua error naming the path.
//     Failures inside an operation return nil and a message.
//   - verify returns true or false, or nil and a message when the check
//     itself could not run.
package luacrypto
