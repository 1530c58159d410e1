package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

// List kinds accepted by List.
const (
	KindCiphers = "ciphers"
	KindDigests = "digests"
)

var (
	initOnce sync.Once
	digests  map[string]*Digest
	ciphers  map[string]*Cipher
)

// Init builds the algorithm tables. It is safe to call more than once and
// every lookup calls it, so callers never need to.
func Init() {
	initOnce.Do(func() {
		digests = make(map[string]*Digest, len(digestSpecs)*2)
		for _, spec := range digestSpecs {
			h := spec.newHash()
			d := &Digest{
				Name:      spec.name,
				Size:      h.Size(),
				BlockSize: h.BlockSize(),
				Hash:      spec.hash,
				PKCS1:     spec.pkcs1,
				newHash:   spec.newHash,
			}
			digests[spec.name] = d
			for _, alias := range spec.aliases {
				digests[alias] = d
			}
		}

		ciphers = make(map[string]*Cipher)
		for _, f := range blockFamilies {
			for name, c := range familyCiphers(f) {
				ciphers[name] = c
			}
		}
		for _, c := range streamCiphers {
			ciphers[c.Name] = c
		}
	})
}

// LookupDigest resolves a digest name or alias.
func LookupDigest(name string) (*Digest, error) {
	Init()
	d, ok := digests[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidAlgorithm, name)
	}
	return d, nil
}

// LookupCipher resolves a cipher name or alias.
func LookupCipher(name string) (*Cipher, error) {
	Init()
	c, ok := ciphers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidAlgorithm, name)
	}
	return c, nil
}

// List returns the sorted names, aliases included, of one kind of algorithm.
func List(kind string) ([]string, error) {
	Init()
	var names []string
	switch kind {
	case KindCiphers:
		names = make([]string, 0, len(ciphers))
		for name := range ciphers {
			names = append(names, name)
		}
	case KindDigests:
		names = make([]string, 0, len(digests))
		for name := range digests {
			names = append(names, name)
		}
	default:
		return nil, fmt.Errorf("%w: unknown list kind %q (want %q or %q)",
			kerrors.ErrInvalidArgument, kind, KindCiphers, KindDigests)
	}
	sort.Strings(names)
	return names, nil
}

// Canonical returns the distinct canonical entries of one kind, sorted by name.
func Canonical(kind string) ([]string, error) {
	all, err := List(kind)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(all))
	var out []string
	for _, name := range all {
		var canon string
		if kind == KindDigests {
			canon = digests[name].Name
		} else {
			canon = ciphers[name].Name
		}
		if !seen[canon] {
			seen[canon] = true
			out = append(out, canon)
		}
	}
	sort.Strings(out)
	return out, nil
}
