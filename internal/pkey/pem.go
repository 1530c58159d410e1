package pkey

import (
	"bytes"
	"crypto/dsa" //nolint:staticcheck // DSA keys are still read, written and generated.
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

// PEM block types.
const (
	blockPublic     = "PUBLIC KEY"
	blockRSAPublic  = "RSA PUBLIC KEY"
	blockPrivate    = "PRIVATE KEY"
	blockRSAPrivate = "RSA PRIVATE KEY"
	blockDSAPrivate = "DSA PRIVATE KEY"
	blockECPrivate  = "EC PRIVATE KEY"
	blockEncrypted  = "ENCRYPTED PRIVATE KEY"
)

// Read loads a key from a PEM file. With private set it looks for a private
// key block; otherwise for a public key block.
func Read(path string, private bool) (*KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}
	k, err := Parse(data, private)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// Parse is Read on in-memory PEM data.
func Parse(data []byte, private bool) (*KeyPair, error) {
	rest := data
	sawEncrypted := false
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if isEncrypted(block) {
			sawEncrypted = true
			continue
		}
		if private {
			if k, ok, err := parsePrivateBlock(block); ok {
				return k, err
			}
		} else {
			if k, ok, err := parsePublicBlock(block); ok {
				return k, err
			}
		}
	}

	half := "public"
	if private {
		half = "private"
	}
	if sawEncrypted {
		return nil, fmt.Errorf("%w: encrypted %s keys are not supported", kerrors.ErrKeyFormat, half)
	}
	return nil, fmt.Errorf("%w: no %s key PEM block found", kerrors.ErrKeyFormat, half)
}

func isEncrypted(block *pem.Block) bool {
	if block.Type == blockEncrypted {
		return true
	}
	return strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED")
}

// parsePublicBlock reports ok when the block type is a public key type,
// whether or not it parsed.
func parsePublicBlock(block *pem.Block) (*KeyPair, bool, error) {
	switch block.Type {
	case blockPublic:
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			dsaPub, dsaErr := parseDSAPublic(block.Bytes)
			if dsaErr != nil {
				return nil, true, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
			}
			pub = dsaPub
		}
		if d, ok := pub.(*dsa.PublicKey); ok {
			if err := checkDSAPublic(d); err != nil {
				return nil, true, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
			}
		}
		k, err := FromPublic(pub)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
		}
		return k, true, nil

	case blockRSAPublic:
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
		}
		return &KeyPair{public: pub}, true, nil
	}
	return nil, false, nil
}

func parsePrivateBlock(block *pem.Block) (*KeyPair, bool, error) {
	var (
		priv any
		err  error
	)
	switch block.Type {
	case blockPrivate:
		priv, err = x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			if k, dsaErr := parseDSAPKCS8(block.Bytes); dsaErr == nil {
				priv, err = k, nil
			}
		}
	case blockRSAPrivate:
		priv, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case blockDSAPrivate:
		priv, err = parseDSATraditional(block.Bytes)
	case blockECPrivate:
		priv, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", kerrors.ErrKeyFormat, strings.ToLower(block.Type), err)
	}
	k, err := FromPrivate(priv)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
	}
	return k, true, nil
}

// PublicPEM returns the public key as a PKIX "PUBLIC KEY" block.
func (k *KeyPair) PublicPEM() ([]byte, error) {
	if k.closed {
		return nil, kerrors.ErrContextClosed
	}
	var (
		der []byte
		err error
	)
	if p, ok := k.public.(*dsa.PublicKey); ok {
		der, err = marshalDSAPublic(p)
	} else {
		der, err = x509.MarshalPKIXPublicKey(k.public)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: blockPublic, Bytes: der}), nil
}

// PrivatePEM returns the private key as an unencrypted PKCS#8 block.
func (k *KeyPair) PrivatePEM() ([]byte, error) {
	if k.closed {
		return nil, kerrors.ErrContextClosed
	}
	var (
		der []byte
		err error
	)
	switch p := k.private.(type) {
	case nil:
		return nil, kerrors.ErrNoPrivateKey
	case *dsa.PrivateKey:
		der, err = marshalDSAPKCS8(p)
	case *rsa.PrivateKey, *ecdsa.PrivateKey:
		der, err = x509.MarshalPKCS8PrivateKey(p)
	default:
		err = fmt.Errorf("%w: %T", kerrors.ErrUnsupportedKeyType, p)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: blockPrivate, Bytes: der}), nil
}

// Write stores the public half at publicPath and the private half at
// privatePath. An empty path skips that half. The private key is written
// without encryption, readable only by the owner.
func (k *KeyPair) Write(publicPath, privatePath string) error {
	if k.closed {
		return kerrors.ErrContextClosed
	}
	if publicPath != "" {
		data, err := k.PublicPEM()
		if err != nil {
			return err
		}
		if err := writeFile(publicPath, data, 0644); err != nil {
			return err
		}
	}
	if privatePath != "" {
		data, err := k.PrivatePEM()
		if err != nil {
			return err
		}
		defer wipe(data)
		if err := writeFile(privatePath, data, 0600); err != nil {
			return err
		}
	}
	return nil
}

// writeFile replaces path through a temporary sibling that has perm before
// any data is written to it.
func writeFile(path string, data []byte, perm os.FileMode) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
		}
	}()
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Equal reports whether two key pairs hold the same public key.
func (k *KeyPair) Equal(other *KeyPair) bool {
	a, err := k.PublicPEM()
	if err != nil {
		return false
	}
	b, err := other.PublicPEM()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}
