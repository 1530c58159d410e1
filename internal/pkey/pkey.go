package pkey

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // DSA keys are still read, written and generated.
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

// Key kinds as reported by Type.
const (
	KindRSA = "RSA"
	KindDSA = "DSA"
	KindEC  = "EC"
)

// KeyPair holds a public key and, when loaded or generated, its private half.
type KeyPair struct {
	public  crypto.PublicKey
	private crypto.PrivateKey
	closed  bool
}

// Generate creates a new key pair. kind is "rsa", "dsa" or "ec"
// (case-insensitive). For dsa, bits is the size of P and must be 1024,
// 2048 or 3072. For ec, bits selects the curve: 256, 384 or 521.
func Generate(kind string, bits int) (*KeyPair, error) {
	return GenerateFrom(rand.Reader, kind, bits)
}

// GenerateFrom is Generate with an explicit randomness source.
func GenerateFrom(random io.Reader, kind string, bits int) (*KeyPair, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("%w: key size must be positive, got %d", kerrors.ErrInvalidArgument, bits)
	}
	switch strings.ToLower(kind) {
	case "rsa":
		k, err := rsa.GenerateKey(random, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: rsa %d: %v", kerrors.ErrKeyGen, bits, err)
		}
		return &KeyPair{public: &k.PublicKey, private: k}, nil

	case "dsa":
		sizes, ok := dsaSizes[bits]
		if !ok {
			return nil, fmt.Errorf("%w: dsa %d: size must be 1024, 2048 or 3072", kerrors.ErrKeyGen, bits)
		}
		k := new(dsa.PrivateKey)
		if err := dsa.GenerateParameters(&k.Parameters, random, sizes); err != nil {
			return nil, fmt.Errorf("%w: dsa parameters: %v", kerrors.ErrKeyGen, err)
		}
		if err := dsa.GenerateKey(k, random); err != nil {
			return nil, fmt.Errorf("%w: dsa %d: %v", kerrors.ErrKeyGen, bits, err)
		}
		return &KeyPair{public: &k.PublicKey, private: k}, nil

	case "ec", "ecdsa":
		curve, ok := curves[bits]
		if !ok {
			return nil, fmt.Errorf("%w: ec %d: size must be 256, 384 or 521", kerrors.ErrKeyGen, bits)
		}
		k, err := ecdsa.GenerateKey(curve, random)
		if err != nil {
			return nil, fmt.Errorf("%w: ec %d: %v", kerrors.ErrKeyGen, bits, err)
		}
		return &KeyPair{public: &k.PublicKey, private: k}, nil
	}
	return nil, fmt.Errorf("%w: %q", kerrors.ErrUnsupportedKeyType, kind)
}

var dsaSizes = map[int]dsa.ParameterSizes{
	1024: dsa.L1024N160,
	2048: dsa.L2048N224,
	3072: dsa.L3072N256,
}

var curves = map[int]elliptic.Curve{
	256: elliptic.P256(),
	384: elliptic.P384(),
	521: elliptic.P521(),
}

// FromPrivate wraps an existing private key.
func FromPrivate(priv crypto.PrivateKey) (*KeyPair, error) {
	switch k := priv.(type) {
	case *rsa.PrivateKey:
		return &KeyPair{public: &k.PublicKey, private: k}, nil
	case *dsa.PrivateKey:
		return &KeyPair{public: &k.PublicKey, private: k}, nil
	case *ecdsa.PrivateKey:
		return &KeyPair{public: &k.PublicKey, private: k}, nil
	}
	return nil, fmt.Errorf("%w: %T", kerrors.ErrUnsupportedKeyType, priv)
}

// FromPublic wraps an existing public key.
func FromPublic(pub crypto.PublicKey) (*KeyPair, error) {
	switch pub.(type) {
	case *rsa.PublicKey, *dsa.PublicKey, *ecdsa.PublicKey:
		return &KeyPair{public: pub}, nil
	}
	return nil, fmt.Errorf("%w: %T", kerrors.ErrUnsupportedKeyType, pub)
}

// Type returns KindRSA, KindDSA or KindEC, or "" once closed.
func (k *KeyPair) Type() string {
	switch k.public.(type) {
	case *rsa.PublicKey:
		return KindRSA
	case *dsa.PublicKey:
		return KindDSA
	case *ecdsa.PublicKey:
		return KindEC
	}
	return ""
}

// Bits returns the modulus, prime or curve size in bits.
func (k *KeyPair) Bits() int {
	switch p := k.public.(type) {
	case *rsa.PublicKey:
		return p.N.BitLen()
	case *dsa.PublicKey:
		return p.P.BitLen()
	case *ecdsa.PublicKey:
		return p.Curve.Params().BitSize
	}
	return 0
}

// HasPrivate reports whether the private half is present.
func (k *KeyPair) HasPrivate() bool { return k.private != nil }

// Public returns the public key, or nil once closed.
func (k *KeyPair) Public() crypto.PublicKey { return k.public }

// Private returns the private key, or nil when absent or closed.
func (k *KeyPair) Private() crypto.PrivateKey { return k.private }

// Closed reports whether Close has been called.
func (k *KeyPair) Closed() bool { return k.closed }

// Close drops the key material. It is safe to call more than once.
func (k *KeyPair) Close() error {
	if k.closed {
		return nil
	}
	switch p := k.private.(type) {
	case *rsa.PrivateKey:
		p.D.SetInt64(0)
		for _, prime := range p.Primes {
			prime.SetInt64(0)
		}
	case *dsa.PrivateKey:
		p.X.SetInt64(0)
	}
	k.public = nil
	k.private = nil
	k.closed = true
	return nil
}

func (k *KeyPair) String() string {
	if k.closed {
		return fmt.Sprintf("crypto.pkey closed %p", k)
	}
	return fmt.Sprintf("crypto.pkey %s %d %p", k.Type(), k.Bits(), k)
}
