package digest

import (
	"fmt"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/registry"
)

// Context is a running message digest. It is not safe for concurrent use.
type Context struct {
	alg    *registry.Digest
	state  *State
	closed bool
}

// New starts a digest of the named algorithm.
func New(name string) (*Context, error) {
	alg, err := registry.LookupDigest(name)
	if err != nil {
		return nil, err
	}
	return &Context{alg: alg, state: NewState(alg.New)}, nil
}

// NewStream is New without clone support. It keeps no replay journal for
// hashes that cannot snapshot their state.
func NewStream(name string) (*Context, error) {
	alg, err := registry.LookupDigest(name)
	if err != nil {
		return nil, err
	}
	return &Context{alg: alg, state: NewStreamState(alg.New)}, nil
}

// Name returns the canonical algorithm name.
func (c *Context) Name() string { return c.alg.Name }

// Size returns the digest length in bytes.
func (c *Context) Size() int { return c.alg.Size }

// Update adds p to the running digest.
func (c *Context) Update(p []byte) error {
	if c.closed {
		return kerrors.ErrContextClosed
	}
	_, err := c.state.Write(p)
	return err
}

// Final adds trailing to the running digest and returns the digest of all
// input so far. The context stays usable.
func (c *Context) Final(trailing []byte) (registry.Output, error) {
	if c.closed {
		return nil, kerrors.ErrContextClosed
	}
	if len(trailing) > 0 {
		if _, err := c.state.Write(trailing); err != nil {
			return nil, err
		}
	}
	return registry.Output(c.state.Sum()), nil
}

// Clone returns an independent context with the same state.
func (c *Context) Clone() (*Context, error) {
	if c.closed {
		return nil, kerrors.ErrContextClosed
	}
	s, err := c.state.Clone()
	if err != nil {
		return nil, fmt.Errorf("cloning %s state: %w", c.alg.Name, err)
	}
	return &Context{alg: c.alg, state: s}, nil
}

// Reset discards all input, keeping the algorithm.
func (c *Context) Reset() error {
	if c.closed {
		return kerrors.ErrContextClosed
	}
	c.state.Reset()
	return nil
}

// Close releases the context. It is safe to call more than once.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.state.Wipe()
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool { return c.closed }

func (c *Context) String() string {
	return fmt.Sprintf("crypto.digest %p", c)
}

// Sum returns the digest of data in one step.
func Sum(name string, data []byte) (registry.Output, error) {
	c, err := NewStream(name)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Final(data)
}
