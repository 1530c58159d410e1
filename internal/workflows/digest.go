package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	"github.com/PolarWolf314/luacrypto/internal/digest"
	"github.com/PolarWolf314/luacrypto/internal/mac"
	"github.com/PolarWolf314/luacrypto/internal/registry"
	"github.com/PolarWolf314/luacrypto/internal/utils"
)

// DigestOptions configures the digest workflow.
type DigestOptions struct {
	// Algorithm names the digest. Empty means the configured default.
	Algorithm string

	// Patterns are files, directories or globs. Empty means stdin.
	Patterns []string

	// Base resolves relative patterns. Empty means the working directory.
	Base string

	// HMACKey switches to HMAC when non-nil.
	HMACKey []byte
}

// FileSum is the digest of one input.
type FileSum struct {
	Path string
	Sum  registry.Output
}

// DigestResult contains the outcome of a digest operation.
type DigestResult struct {
	Algorithm string
	HMAC      bool
	Sums      []FileSum
}

// hashContext is what digest and HMAC contexts have in common.
type hashContext interface {
	Update(p []byte) error
	Final(trailing []byte) (registry.Output, error)
	Close() error
}

// Digest hashes each input file, or stdin, with a digest or HMAC.
//
// Returns ErrInvalidAlgorithm for unknown digest names and ErrFile when an
// input cannot be resolved or read.
func Digest(ctx context.Context, opts DigestOptions) (*DigestResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	name := opts.Algorithm
	if name == "" {
		name = config.Defaults.Digest
	}
	alg, err := registry.LookupDigest(name)
	if err != nil {
		return nil, err
	}

	paths := []string{"-"}
	if len(opts.Patterns) > 0 {
		paths, err = utils.ResolveFiles(opts.Patterns, opts.Base)
		if err != nil {
			return nil, fmt.Errorf("resolving inputs: %w", err)
		}
	}

	result := &DigestResult{Algorithm: alg.Name, HMAC: opts.HMACKey != nil}
	for _, path := range paths {
		sum, err := sumFile(ctx, alg.Name, opts.HMACKey, path)
		if err != nil {
			return nil, err
		}
		result.Sums = append(result.Sums, FileSum{Path: path, Sum: sum})
	}

	op := "digest"
	if result.HMAC {
		op = "hmac"
	}
	record(config, op, func(e *audit.Entry) {
		e.Algorithm = alg.Name
		e.Paths = paths
	})

	return result, nil
}

func sumFile(ctx context.Context, name string, key []byte, path string) (registry.Output, error) {
	var (
		h   hashContext
		err error
	)
	if key != nil {
		h, err = mac.NewStream(name, key)
	} else {
		h, err = digest.NewStream(name)
	}
	if err != nil {
		return nil, err
	}
	defer h.Close()

	if _, err := streamFile(ctx, path, h.Update); err != nil {
		return nil, err
	}
	return h.Final(nil)
}
