package signature

import (
	"crypto/dsa" //nolint:staticcheck // DSA signatures are still supported.
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"

	"github.com/PolarWolf314/luacrypto/internal/digest"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/pkey"
	"github.com/PolarWolf314/luacrypto/internal/registry"
)

// Result is the outcome of a verification.
type Result int

const (
	ResultInvalid Result = iota
	ResultValid
	ResultError
)

func (r Result) String() string {
	switch r {
	case ResultValid:
		return "valid"
	case ResultError:
		return "error"
	default:
		return "invalid"
	}
}

// session is the digest state shared by Signer and Verifier.
type session struct {
	alg       *registry.Digest
	state     *digest.State
	finalized bool
	closed    bool
}

func newSession(name string) (session, error) {
	alg, err := registry.LookupDigest(name)
	if err != nil {
		return session{}, err
	}
	return session{alg: alg, state: digest.NewState(alg.New)}, nil
}

func (s *session) usable() error {
	if s.closed {
		return kerrors.ErrContextClosed
	}
	if s.finalized {
		return kerrors.ErrContextFinalized
	}
	return nil
}

func (s *session) update(p []byte) error {
	if err := s.usable(); err != nil {
		return err
	}
	_, err := s.state.Write(p)
	return err
}

func (s *session) close() {
	if !s.closed {
		s.state.Wipe()
		s.closed = true
	}
}

// Signer accumulates data and signs its digest.
type Signer struct {
	session
	random io.Reader
}

// NewSigner starts a signature over the named digest.
func NewSigner(digestName string) (*Signer, error) {
	s, err := newSession(digestName)
	if err != nil {
		return nil, err
	}
	return &Signer{session: s, random: rand.Reader}, nil
}

// Name returns the canonical digest name.
func (s *Signer) Name() string { return s.alg.Name }

// Update adds p to the signed data.
func (s *Signer) Update(p []byte) error { return s.update(p) }

// Final signs everything passed to Update with key's private half.
func (s *Signer) Final(key *pkey.KeyPair) ([]byte, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	if key == nil {
		return nil, fmt.Errorf("%w: no key", kerrors.ErrInvalidArgument)
	}
	if key.Closed() {
		return nil, kerrors.ErrContextClosed
	}
	s.finalized = true
	if !key.HasPrivate() {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrSignature, kerrors.ErrNoPrivateKey)
	}

	h := s.state.Sum()
	var (
		sig []byte
		err error
	)
	switch k := key.Private().(type) {
	case *rsa.PrivateKey:
		if !s.alg.PKCS1 {
			return nil, fmt.Errorf("%w: %s cannot be used with RSA PKCS#1 v1.5", kerrors.ErrSignature, s.alg.Name)
		}
		sig, err = rsa.SignPKCS1v15(s.random, k, s.alg.Hash, h)
	case *dsa.PrivateKey:
		r, ss, signErr := dsa.Sign(s.random, k, truncate(h, k.Q.BitLen()))
		if signErr != nil {
			err = signErr
			break
		}
		sig, err = marshalRS(r, ss)
	case *ecdsa.PrivateKey:
		sig, err = ecdsa.SignASN1(s.random, k, h)
	default:
		return nil, fmt.Errorf("%w: %w: %T", kerrors.ErrSignature, kerrors.ErrUnsupportedKeyType, k)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrSignature, key.Type(), err)
	}
	return sig, nil
}

// Close releases the signer. It is safe to call more than once.
func (s *Signer) Close() error {
	s.close()
	return nil
}

// Closed reports whether Close has been called.
func (s *Signer) Closed() bool { return s.closed }

func (s *Signer) String() string {
	return fmt.Sprintf("crypto.sign %p", s)
}

// Verifier accumulates data and checks a signature over its digest.
type Verifier struct {
	session
}

// NewVerifier starts a verification over the named digest.
func NewVerifier(digestName string) (*Verifier, error) {
	s, err := newSession(digestName)
	if err != nil {
		return nil, err
	}
	return &Verifier{session: s}, nil
}

// Name returns the canonical digest name.
func (v *Verifier) Name() string { return v.alg.Name }

// Update adds p to the verified data.
func (v *Verifier) Update(p []byte) error { return v.update(p) }

// Final checks sig against everything passed to Update using key's public
// half. err is non-nil exactly when the result is ResultError.
func (v *Verifier) Final(sig []byte, key *pkey.KeyPair) (Result, error) {
	if err := v.usable(); err != nil {
		return ResultError, fmt.Errorf("%w: %w", kerrors.ErrVerification, err)
	}
	if key == nil || key.Closed() {
		return ResultError, fmt.Errorf("%w: no usable key", kerrors.ErrVerification)
	}
	v.finalized = true

	h := v.state.Sum()
	switch k := key.Public().(type) {
	case *rsa.PublicKey:
		if len(sig) != k.Size() {
			return ResultError, fmt.Errorf("%w: signature is %d bytes, modulus is %d", kerrors.ErrVerification, len(sig), k.Size())
		}
		if !v.alg.PKCS1 {
			return ResultError, fmt.Errorf("%w: %s cannot be used with RSA PKCS#1 v1.5", kerrors.ErrVerification, v.alg.Name)
		}
		return boolResult(rsa.VerifyPKCS1v15(k, v.alg.Hash, h, sig) == nil), nil

	case *dsa.PublicKey:
		r, s, ok := parseRS(sig)
		if !ok {
			return ResultError, fmt.Errorf("%w: malformed DSA signature", kerrors.ErrVerification)
		}
		return boolResult(dsa.Verify(k, truncate(h, k.Q.BitLen()), r, s)), nil

	case *ecdsa.PublicKey:
		if _, _, ok := parseRS(sig); !ok {
			return ResultError, fmt.Errorf("%w: malformed ECDSA signature", kerrors.ErrVerification)
		}
		return boolResult(ecdsa.VerifyASN1(k, h, sig)), nil
	}
	return ResultError, fmt.Errorf("%w: %w", kerrors.ErrVerification, kerrors.ErrUnsupportedKeyType)
}

// Close releases the verifier. It is safe to call more than once.
func (v *Verifier) Close() error {
	v.close()
	return nil
}

// Closed reports whether Close has been called.
func (v *Verifier) Closed() bool { return v.closed }

func (v *Verifier) String() string {
	return fmt.Sprintf("crypto.verify %p", v)
}

func boolResult(ok bool) Result {
	if ok {
		return ResultValid
	}
	return ResultInvalid
}

// truncate keeps the leftmost bits of h that fit a subgroup of order q,
// as FIPS 186 requires before DSA signing.
func truncate(h []byte, qBits int) []byte {
	if n := (qBits + 7) / 8; len(h) > n {
		return h[:n]
	}
	return h
}

// Sign signs data in one step.
func Sign(digestName string, data []byte, key *pkey.KeyPair) ([]byte, error) {
	s, err := NewSigner(digestName)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	if err := s.Update(data); err != nil {
		return nil, err
	}
	return s.Final(key)
}

// Verify checks sig over data in one step. An unknown digest name fails
// with errors.ErrInvalidAlgorithm before any check runs.
func Verify(digestName string, data, sig []byte, key *pkey.KeyPair) (Result, error) {
	v, err := NewVerifier(digestName)
	if err != nil {
		return ResultError, err
	}
	defer v.Close()
	if err := v.Update(data); err != nil {
		return ResultError, err
	}
	return v.Final(sig, key)
}
