// Package pkey loads, generates and stores asymmetric key pairs.
//
// Supported kinds are RSA, DSA and ECDSA. Keys are stored as PEM: public
// halves as PKIX "PUBLIC KEY" blocks, private halves as unencrypted PKCS#8
// "PRIVATE KEY" blocks written with mode 0600. There is no passphrase
// protection; callers should warn users before writing a private key.
//
// Read and Parse also accept the traditional "RSA PRIVATE KEY",
// "RSA PUBLIC KEY", "DSA PRIVATE KEY" and "EC PRIVATE KEY" blocks.
// The standard library cannot marshal DSA keys, so the DSA encodings are
// built and parsed here with cryptobyte.
package pkey
