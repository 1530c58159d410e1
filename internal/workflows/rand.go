package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/random"
	"github.com/PolarWolf314/luacrypto/internal/utils"
)

// RandBytesOptions configures the random bytes workflow.
type RandBytesOptions struct {
	Count int

	// Pseudo draws from the pseudo generator instead of the strong source.
	Pseudo bool

	// Pool is the random pool. Nil means random.Default.
	Pool *random.Pool
}

func poolOrDefault(p *random.Pool) *random.Pool {
	if p != nil {
		return p
	}
	return random.Default
}

// RandBytes returns Count random bytes.
//
// Returns ErrInvalidArgument for a negative count and ErrRng when the
// generator fails.
func RandBytes(ctx context.Context, opts RandBytesOptions) ([]byte, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	pool := poolOrDefault(opts.Pool)
	var out []byte
	if opts.Pseudo {
		out, err = pool.PseudoBytes(opts.Count)
	} else {
		out, err = pool.Bytes(opts.Count)
	}
	if err != nil {
		return nil, err
	}

	record(config, "rand.bytes", func(e *audit.Entry) {
		e.Bytes = len(out)
	})
	return out, nil
}

// RandStatus reports whether the pool is seeded.
func RandStatus(ctx context.Context, pool *random.Pool) bool {
	return poolOrDefault(pool).Status()
}

// RandStateOptions configures the seed file workflow.
type RandStateOptions struct {
	// Path is the seed file. Empty means rand.state_file from the config,
	// then $RANDFILE, then ~/.rnd.
	Path string

	// Load reads the file into the pool; otherwise the pool writes it.
	Load bool

	// Max caps how much Load reads. Zero means random.StateFileBytes.
	Max int

	Pool *random.Pool
}

// RandStateResult contains the outcome of a seed file operation.
type RandStateResult struct {
	Path   string
	Bytes  int
	Loaded bool
	Seeded bool
}

// RandState loads or writes the random seed file.
//
// Returns ErrInvalidArgument when no path can be determined, ErrFile when
// the file cannot be read or written and ErrRng for an empty seed file.
func RandState(ctx context.Context, opts RandStateOptions) (*RandStateResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	path := utils.ExpandHome(opts.Path)
	if path == "" {
		path = config.RandStateFile()
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no seed file path; set RANDFILE or rand.state_file", kerrors.ErrInvalidArgument)
	}

	pool := poolOrDefault(opts.Pool)
	result := &RandStateResult{Path: path, Loaded: opts.Load}
	op := "rand.write"
	if opts.Load {
		op = "rand.load"
		result.Bytes, err = pool.Load(path, opts.Max)
	} else {
		result.Bytes, err = pool.Write(path)
	}
	if err != nil {
		return nil, err
	}
	result.Seeded = pool.Status()

	record(config, op, func(e *audit.Entry) {
		e.Paths = []string{path}
		e.Bytes = result.Bytes
	})
	return result, nil
}
