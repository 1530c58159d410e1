// Package random serves strong and pseudo-random bytes and keeps a
// persistent seed file in the style of OpenSSL's RAND_load_file and
// RAND_write_file.
//
// Strong bytes always come straight from the pool's source, which is
// crypto/rand unless replaced. Pseudo bytes come from a ChaCha20
// keystream keyed from the source; material passed to Add or Seed, or read
// by Load, is mixed into that key with HKDF-SHA256. Each PseudoBytes call
// rekeys the generator from its own output so earlier output cannot be
// recovered from a later state.
//
// Default is the process-wide pool used by the Lua binding and the CLI.
package random
