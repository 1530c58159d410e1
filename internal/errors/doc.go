// Package errors defines the sentinel errors shared by the luacrypto
// packages and the category each belongs to.
//
// Call sites wrap a sentinel with context and callers match it with
// errors.Is:
//
//	return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidAlgorithm, name)
//
// Classify maps an error to one of three categories, which decide how it
// is reported:
//
//   - CategoryArgument: bad names, lengths or key kinds. The Lua binding
//     raises these with L.ArgError and the CLI exits 2.
//   - CategoryLibrary: the primitive failed (bad padding, signing, key
//     generation, the random source). Lua sees nil plus a message.
//   - CategoryIO: a key or seed file could not be read, written or parsed.
//     Lua sees a raised error naming the path.
//
// Errors matching no sentinel count as library errors.
//
// A signature that does not match is reported as a result, never as
// ErrVerification; that sentinel means the check could not be carried out.
package errors
