package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/pkey"
	"github.com/PolarWolf314/luacrypto/internal/signature"
	"github.com/PolarWolf314/luacrypto/internal/utils"
)

// SignOptions configures the sign workflow.
type SignOptions struct {
	// Algorithm names the digest. Empty means the configured default.
	Algorithm string

	// Input is the signed file, or "-"/empty for stdin.
	Input string

	// KeyPath is a PEM file holding a private key.
	KeyPath string

	// Output receives the raw signature. Empty leaves writing to the caller.
	Output string
}

// SignResult contains the outcome of a sign operation.
type SignResult struct {
	Algorithm string
	KeyType   string
	Signature []byte
	Output    string
}

// Sign produces a detached signature over Input.
//
// Returns ErrFile or ErrKeyFormat when the key cannot be loaded, and
// ErrSignature when the key cannot sign with the digest.
func Sign(ctx context.Context, opts SignOptions) (*SignResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	name := opts.Algorithm
	if name == "" {
		name = config.Defaults.Digest
	}
	signer, err := signature.NewSigner(name)
	if err != nil {
		return nil, err
	}
	defer signer.Close()

	key, err := pkey.Read(utils.ExpandHome(opts.KeyPath), true)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	if _, err := streamFile(ctx, opts.Input, signer.Update); err != nil {
		return nil, err
	}

	sig, err := signer.Final(key)
	if err != nil {
		return nil, err
	}

	result := &SignResult{Algorithm: signer.Name(), KeyType: key.Type(), Signature: sig}
	if opts.Output != "" {
		result.Output = utils.ExpandHome(opts.Output)
		if err := os.WriteFile(result.Output, sig, 0644); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, result.Output, err)
		}
	}

	record(config, "sign", func(e *audit.Entry) {
		e.Algorithm = result.Algorithm
		e.KeyType = result.KeyType
		e.Paths = []string{displayPath(opts.Input), opts.KeyPath}
	})

	return result, nil
}

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	// Algorithm names the digest. Empty means the configured default.
	Algorithm string

	// Input is the signed file, or "-"/empty for stdin.
	Input string

	// KeyPath is a PEM file holding a public key, or a private key whose
	// public half is used.
	KeyPath string

	// SignaturePath holds the raw signature.
	SignaturePath string
}

// VerifyResult contains the outcome of a verify operation.
type VerifyResult struct {
	Algorithm string
	KeyType   string
	Valid     bool
}

// Verify checks a detached signature over Input. A signature that does not
// match is a result with Valid false, not an error.
//
// Returns ErrVerification when the check cannot be performed: a malformed
// signature, a wrong-sized RSA signature or an unusable digest.
func Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if opts.SignaturePath == "" || opts.SignaturePath == "-" {
		return nil, fmt.Errorf("%w: a signature file is required", kerrors.ErrInvalidArgument)
	}

	name := opts.Algorithm
	if name == "" {
		name = config.Defaults.Digest
	}
	verifier, err := signature.NewVerifier(name)
	if err != nil {
		return nil, err
	}
	defer verifier.Close()

	key, err := readVerifyKey(utils.ExpandHome(opts.KeyPath))
	if err != nil {
		return nil, err
	}
	defer key.Close()

	sig, err := utils.ReadInput(opts.SignaturePath)
	if err != nil {
		return nil, err
	}

	if _, err := streamFile(ctx, opts.Input, verifier.Update); err != nil {
		return nil, err
	}

	res, err := verifier.Final(sig, key)

	record(config, "verify", func(e *audit.Entry) {
		e.Algorithm = verifier.Name()
		e.KeyType = key.Type()
		e.Paths = []string{displayPath(opts.Input), opts.KeyPath, opts.SignaturePath}
		e.Result = res.String()
	})
	if err != nil {
		return nil, err
	}

	return &VerifyResult{Algorithm: verifier.Name(), KeyType: key.Type(), Valid: res == signature.ResultValid}, nil
}

func readVerifyKey(path string) (*pkey.KeyPair, error) {
	key, err := pkey.Read(path, false)
	if err != nil && errors.Is(err, kerrors.ErrKeyFormat) {
		return pkey.Read(path, true)
	}
	return key, err
}
