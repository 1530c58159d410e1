package registry

import (
	"crypto"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Digest describes a registered message digest.
type Digest struct {
	Name      string
	Size      int
	BlockSize int

	// Hash identifies the digest to the asymmetric signature schemes.
	Hash crypto.Hash

	// PKCS1 reports whether RSA PKCS#1 v1.5 signing supports it. The
	// truncated SHA-512 variants and SHA-3 have no DigestInfo prefix in
	// crypto/rsa before Go 1.24.
	PKCS1 bool

	newHash func() hash.Hash
}

// New returns a fresh hash state.
func (d *Digest) New() hash.Hash {
	return d.newHash()
}

type digestSpec struct {
	name    string
	aliases []string
	hash    crypto.Hash
	pkcs1   bool
	newHash func() hash.Hash
}

func blake2b512() hash.Hash {
	// A nil key never fails.
	h, _ := blake2b.New512(nil)
	return h
}

func blake2s256() hash.Hash {
	h, _ := blake2s.New256(nil)
	return h
}

var digestSpecs = []digestSpec{
	{name: "md4", hash: crypto.MD4, newHash: md4.New},
	{name: "md5", aliases: []string{"ssl3-md5"}, hash: crypto.MD5, pkcs1: true, newHash: md5.New},
	{name: "sha1", aliases: []string{"ssl3-sha1", "sha-1"}, hash: crypto.SHA1, pkcs1: true, newHash: sha1.New},
	{name: "sha224", aliases: []string{"sha2-224"}, hash: crypto.SHA224, pkcs1: true, newHash: sha256.New224},
	{name: "sha256", aliases: []string{"sha2-256"}, hash: crypto.SHA256, pkcs1: true, newHash: sha256.New},
	{name: "sha384", aliases: []string{"sha2-384"}, hash: crypto.SHA384, pkcs1: true, newHash: sha512.New384},
	{name: "sha512", aliases: []string{"sha2-512"}, hash: crypto.SHA512, pkcs1: true, newHash: sha512.New},
	{name: "sha512-224", aliases: []string{"sha2-512/224"}, hash: crypto.SHA512_224, newHash: sha512.New512_224},
	{name: "sha512-256", aliases: []string{"sha2-512/256"}, hash: crypto.SHA512_256, newHash: sha512.New512_256},
	{name: "sha3-224", hash: crypto.SHA3_224, newHash: sha3.New224},
	{name: "sha3-256", hash: crypto.SHA3_256, newHash: sha3.New256},
	{name: "sha3-384", hash: crypto.SHA3_384, newHash: sha3.New384},
	{name: "sha3-512", hash: crypto.SHA3_512, newHash: sha3.New512},
	{name: "ripemd160", aliases: []string{"rmd160", "ripemd", "ripemd-160"}, hash: crypto.RIPEMD160, pkcs1: true, newHash: ripemd160.New},
	{name: "blake2b512", aliases: []string{"blake2b-512"}, hash: crypto.BLAKE2b_512, newHash: blake2b512},
	{name: "blake2s256", aliases: []string{"blake2s-256"}, hash: crypto.BLAKE2s_256, newHash: blake2s256},
}
