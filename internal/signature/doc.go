// Package signature signs and verifies streamed data with a KeyPair.
//
// RSA keys use PKCS#1 v1.5. DSA and ECDSA signatures are DER encoded
// SEQUENCE { r INTEGER, s INTEGER } blobs.
//
// Verification has three outcomes. ResultValid and ResultInvalid mean the
// check ran; ResultError means it could not be carried out, for example
// because the signature blob is malformed, and comes with an error
// wrapping errors.ErrVerification. A wrong signature is never an error.
//
// Signers and Verifiers are single use: after Final they return
// errors.ErrContextFinalized.
package signature
