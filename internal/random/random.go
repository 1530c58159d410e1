package random

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
)

const (
	// StateFileBytes is how much Write stores and Load reads by default.
	StateFileBytes = 1024

	keySize = chacha20.KeySize

	// seededEntropy is the entropy, in bytes, Add must supply before the
	// pool counts as seeded without help from the source.
	seededEntropy = 32
)

var hkdfInfo = []byte("luacrypto random pool")

// Pool is a source of random bytes. It is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	source  io.Reader
	key     [keySize]byte
	keyed   bool
	seeded  bool
	entropy float64
}

// Default is the process-wide pool.
var Default = New(rand.Reader)

// New returns a pool drawing entropy from source.
func New(source io.Reader) *Pool {
	return &Pool{source: source}
}

// Bytes returns n bytes from the strong source.
func (p *Pool) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative byte count %d", kerrors.ErrInvalidArgument, n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	buf := make([]byte, n)
	if _, err := io.ReadFull(p.source, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrRng, err)
	}
	return buf, nil
}

// PseudoBytes returns n bytes from the pseudo generator, mixing in bytes
// from the source until one such read has succeeded.
func (p *Pool) PseudoBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative byte count %d", kerrors.ErrInvalidArgument, n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.seeded {
		// Added material alone is enough to run on when the source fails.
		if err := p.seedFromSource(); err != nil && !p.keyed {
			return nil, err
		}
	}

	var nonce [chacha20.NonceSize]byte
	s, err := chacha20.NewUnauthenticatedCipher(p.key[:], nonce[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrRng, err)
	}
	// The first block rekeys the generator; the rest is output.
	next := make([]byte, keySize)
	s.XORKeyStream(next, next)
	copy(p.key[:], next)
	wipe(next)

	out := make([]byte, n)
	s.XORKeyStream(out, out)
	return out, nil
}

// seedFromSource must be called with p.mu held.
func (p *Pool) seedFromSource() error {
	fresh := make([]byte, keySize)
	defer wipe(fresh)
	if _, err := io.ReadFull(p.source, fresh); err != nil {
		return fmt.Errorf("%w: seeding: %v", kerrors.ErrRng, err)
	}
	if err := p.mix(fresh); err != nil {
		return err
	}
	p.seeded = true
	return nil
}

// mix folds material into the generator key. Must be called with p.mu held.
func (p *Pool) mix(material []byte) error {
	var salt []byte
	if p.keyed {
		salt = p.key[:]
	}
	r := hkdf.New(sha256.New, material, salt, hkdfInfo)
	var next [keySize]byte
	if _, err := io.ReadFull(r, next[:]); err != nil {
		return fmt.Errorf("%w: mixing seed: %v", kerrors.ErrRng, err)
	}
	p.key = next
	p.keyed = true
	return nil
}

// Add mixes buf into the pseudo generator. entropy is the caller's estimate
// of the bytes of entropy in buf; a negative value means len(buf).
func (p *Pool) Add(buf []byte, entropy float64) error {
	if entropy < 0 {
		entropy = float64(len(buf))
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.mix(buf); err != nil {
		return err
	}
	p.entropy += entropy
	return nil
}

// Seed is Add under its OpenSSL name.
func (p *Pool) Seed(buf []byte, entropy float64) error {
	return p.Add(buf, entropy)
}

// Status reports whether the pool is seeded well enough for strong
// output, seeding it from the source if it is not.
func (p *Pool) Status() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seeded || p.entropy >= seededEntropy {
		return true
	}
	return p.seedFromSource() == nil
}

// Load reads up to max bytes from path and adds them to the pool. max <= 0
// means StateFileBytes. It returns the number of bytes added.
func (p *Pool) Load(path string, max int) (int, error) {
	if max <= 0 {
		max = StateFileBytes
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}
	defer f.Close()

	buf := make([]byte, max)
	defer wipe(buf)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %s is empty", kerrors.ErrRng, path)
	}
	if err := p.Add(buf[:n], -1); err != nil {
		return 0, err
	}
	return n, nil
}

// Write stores StateFileBytes strong bytes at path, readable only by the
// owner, and returns the count written.
func (p *Pool) Write(path string) (int, error) {
	buf, err := p.Bytes(StateFileBytes)
	if err != nil {
		return 0, err
	}
	defer wipe(buf)
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", kerrors.ErrFile, path, err)
	}
	return len(buf), nil
}

// Cleanup forgets the generator state. The next PseudoBytes call reseeds.
func (p *Pool) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	wipe(p.key[:])
	p.keyed = false
	p.seeded = false
	p.entropy = 0
}

// DefaultStateFile returns $RANDFILE, or ~/.rnd, or "" when neither is
// known.
func DefaultStateFile() string {
	if f := os.Getenv("RANDFILE"); f != "" {
		return f
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".rnd")
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
