package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PolarWolf314/luacrypto/internal/audit"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/pkey"
	"github.com/PolarWolf314/luacrypto/internal/utils"
)

// defaultBits is used when a key kind is given without a size.
var defaultBits = map[string]int{"rsa": 2048, "dsa": 2048, "ec": 256}

// KeygenOptions configures the key generation workflow.
type KeygenOptions struct {
	// Kind is "rsa", "dsa" or "ec". Empty means the configured default.
	Kind string

	// Bits is the key size, or the curve size for ec. Zero picks the
	// configured default for the configured kind, or a per-kind default.
	Bits int

	PublicPath  string
	PrivatePath string
}

// KeygenResult contains the outcome of key generation.
type KeygenResult struct {
	Type        string
	Bits        int
	PublicPath  string
	PrivatePath string
}

// GenerateKey creates a key pair and writes its PEM halves.
//
// Returns ErrInvalidArgument when neither path is set, ErrUnsupportedKeyType
// for unknown kinds, ErrKeyGen when generation fails and ErrFile when a
// half cannot be written.
func GenerateKey(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if opts.PublicPath == "" && opts.PrivatePath == "" {
		return nil, fmt.Errorf("%w: no output path for the key pair", kerrors.ErrInvalidArgument)
	}

	kind, bits := strings.ToLower(opts.Kind), opts.Bits
	if kind == "" {
		kind = config.Defaults.KeyType
		if bits == 0 {
			bits = config.Defaults.KeyBits
		}
	}
	if bits == 0 {
		bits = defaultBits[kind]
	}
	if _, ok := defaultBits[kind]; !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnsupportedKeyType, opts.Kind)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := pkey.Generate(kind, bits)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	publicPath, privatePath := utils.ExpandHome(opts.PublicPath), utils.ExpandHome(opts.PrivatePath)
	if err := key.Write(publicPath, privatePath); err != nil {
		return nil, err
	}

	result := &KeygenResult{
		Type:        key.Type(),
		Bits:        key.Bits(),
		PublicPath:  publicPath,
		PrivatePath: privatePath,
	}

	record(config, "pkey.generate", func(e *audit.Entry) {
		e.KeyType = result.Type
		e.Bits = result.Bits
		for _, p := range []string{publicPath, privatePath} {
			if p != "" {
				e.Paths = append(e.Paths, p)
			}
		}
	})

	return result, nil
}

// InspectOptions configures the key inspection workflow.
type InspectOptions struct {
	Path string

	// Private requires a private key in the file.
	Private bool
}

// KeyInfo describes a key file.
type KeyInfo struct {
	Path       string
	Type       string
	Bits       int
	HasPrivate bool
	PublicPEM  string
}

// InspectKey reads a PEM key file and reports what it holds. A private key
// is preferred; without Private set a public-only file is accepted.
//
// Returns ErrFile when the file cannot be read and ErrKeyFormat when it
// holds no usable key.
func InspectKey(ctx context.Context, opts InspectOptions) (*KeyInfo, error) {
	path := utils.ExpandHome(opts.Path)
	key, err := pkey.Read(path, true)
	if err != nil && !opts.Private && errors.Is(err, kerrors.ErrKeyFormat) {
		key, err = pkey.Read(path, false)
	}
	if err != nil {
		return nil, err
	}
	defer key.Close()

	pub, err := key.PublicPEM()
	if err != nil {
		return nil, err
	}

	return &KeyInfo{
		Path:       path,
		Type:       key.Type(),
		Bits:       key.Bits(),
		HasPrivate: key.HasPrivate(),
		PublicPEM:  string(pub),
	}, nil
}
