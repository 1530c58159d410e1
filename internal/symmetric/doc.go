// Package symmetric provides streaming encryption and decryption contexts
// over the ciphers in the registry.
//
// Block modes (cbc, ecb) buffer partial blocks between Update calls and use
// PKCS#7 padding unless WithPadding(false) is given. A decrypting context
// holds back the last full block until Final so the padding can be checked
// and stripped. Stream modes (ctr, cfb, ofb, rc4, chacha20) emit exactly as
// many bytes as they receive and never pad.
//
// # Key and IV lengths
//
// Under the default Lenient policy a key or IV of the wrong length is
// zero-padded or truncated to the cipher's length and the adjustment is
// reported through KeyAdjusted, IVAdjusted and any WithAdjustNotify hook.
// Under Strict a mismatch fails with ErrKeyLength or ErrIVLength. A nil IV
// always means an all-zero IV.
package symmetric
