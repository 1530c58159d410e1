package workflows

import (
	"context"
	"fmt"
	"io"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/registry"
	"github.com/PolarWolf314/luacrypto/internal/symmetric"
)

// CryptOptions configures the encrypt and decrypt workflow.
type CryptOptions struct {
	// Algorithm names the cipher. Empty means the configured default.
	Algorithm string

	Key []byte
	IV  []byte

	// Input is a file path, or "-"/empty for stdin.
	Input string

	// Output is a file path, or "-"/empty for Writer.
	Output string

	// Writer receives output when Output is empty. Nil means stdout.
	Writer io.Writer

	Decrypt bool

	// Strict rejects mismatched key and IV lengths. It is also enabled by
	// keys.strict_length in the config.
	Strict bool

	NoPadding bool

	// OnAdjust is called when a lenient key or IV was resized.
	OnAdjust symmetric.AdjustFunc
}

// CryptResult contains the outcome of an encrypt or decrypt operation.
type CryptResult struct {
	Algorithm   string
	Direction   symmetric.Direction
	BytesIn     int64
	BytesOut    int64
	KeyAdjusted bool
	IVAdjusted  bool
}

// Crypt streams Input through a cipher context into Output. A partially
// written output file is removed when the operation fails.
//
// Returns ErrInvalidAlgorithm for unknown ciphers, ErrKeyLength or
// ErrIVLength in strict mode, ErrPadding or ErrBlockLength when decryption
// fails, and ErrFile for unreadable inputs and unwritable outputs.
func Crypt(ctx context.Context, opts CryptOptions) (result *CryptResult, err error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	name := opts.Algorithm
	if name == "" {
		name = config.Defaults.Cipher
	}
	if _, err := registry.LookupCipher(name); err != nil {
		return nil, err
	}

	cipherOpts := []symmetric.Option{symmetric.WithPadding(!opts.NoPadding)}
	if opts.Strict || config.Keys.StrictLength {
		cipherOpts = append(cipherOpts, symmetric.WithKeyPolicy(symmetric.Strict))
	}
	if opts.OnAdjust != nil {
		cipherOpts = append(cipherOpts, symmetric.WithAdjustNotify(opts.OnAdjust))
	}

	newContext := symmetric.NewEncrypter
	if opts.Decrypt {
		newContext = symmetric.NewDecrypter
	}
	c, err := newContext(name, opts.Key, opts.IV, cipherOpts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	out, finish, err := createOutput(opts.Output, opts.Writer)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := finish(err != nil); ferr != nil && err == nil {
			result, err = nil, ferr
		}
	}()

	result = &CryptResult{
		Algorithm:   c.Name(),
		Direction:   c.Direction(),
		KeyAdjusted: c.KeyAdjusted(),
		IVAdjusted:  c.IVAdjusted(),
	}

	emit := func(p []byte) error {
		if len(p) == 0 {
			return nil
		}
		n, werr := out.Write(p)
		result.BytesOut += int64(n)
		if werr != nil {
			return fmt.Errorf("%w: write: %v", kerrors.ErrFile, werr)
		}
		return nil
	}

	result.BytesIn, err = streamFile(ctx, opts.Input, func(p []byte) error {
		chunk, uerr := c.Update(p)
		if uerr != nil {
			return uerr
		}
		return emit(chunk)
	})
	if err != nil {
		return nil, err
	}

	tail, err := c.Final()
	if err != nil {
		return nil, err
	}
	if err = emit(tail); err != nil {
		return nil, err
	}

	record(config, c.Direction().String(), func(e *audit.Entry) {
		e.Algorithm = c.Name()
		e.Paths = []string{displayPath(opts.Input), displayPath(opts.Output)}
		e.Bytes = int(result.BytesIn)
	})

	return result, nil
}
