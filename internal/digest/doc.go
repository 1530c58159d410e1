// Package digest provides streaming message digest contexts.
//
// A Context is created with New, fed with Update, and read with Final.
// Final does not consume the context: trailing bytes passed to Final are
// added to the running state, the digest of a copy is returned, and the
// context may keep receiving input. Clone forks the state; Reset rewinds
// it to empty. Close releases the context, after which every method
// returns errors.ErrContextClosed.
//
//	ctx, err := digest.New("sha256")
//	ctx.Update([]byte("hello "))
//	out, err := ctx.Final([]byte("world"))
//	fmt.Println(out.Hex())
package digest
