// Package registry holds the digest and cipher algorithms luacrypto can
// use, keyed by OpenSSL-style names.
//
// The tables are built once per process, on first lookup, behind a
// sync.Once. There is no teardown. Lookups are case-insensitive, so
// "SHA256" and "sha256" name the same digest, and aliases such as
// "aes256" (aes-256-cbc) or "rmd160" (ripemd160) resolve to their
// canonical entry.
//
// # Output encoding
//
// Every final step in luacrypto returns an Output. Output.Format(true)
// yields the raw bytes; Output.Format(false) yields lowercase hex with two
// characters per byte and no separators.
package registry
