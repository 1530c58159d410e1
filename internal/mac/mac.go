// Package mac provides streaming HMAC contexts keyed with arbitrary-length
// keys over any registered digest.
package mac

import (
	"crypto/hmac"
	"fmt"
	"hash"

	"github.com/PolarWolf314/luacrypto/internal/digest"
	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/registry"
)

// Context is a running HMAC. Final is not destructive, mirroring
// digest.Context.
type Context struct {
	alg    *registry.Digest
	key    []byte
	state  *digest.State
	closed bool
}

// New starts an HMAC over the named digest with key.
func New(name string, key []byte) (*Context, error) {
	alg, err := registry.LookupDigest(name)
	if err != nil {
		return nil, err
	}
	c := &Context{alg: alg, key: append([]byte(nil), key...)}
	c.state = digest.NewReplayState(c.newHash)
	return c, nil
}

// NewStream starts an HMAC that keeps no replay journal. Clone on it
// fails; use it for unbounded input such as files.
func NewStream(name string, key []byte) (*Context, error) {
	alg, err := registry.LookupDigest(name)
	if err != nil {
		return nil, err
	}
	c := &Context{alg: alg, key: append([]byte(nil), key...)}
	c.state = digest.NewStreamState(c.newHash)
	return c, nil
}

func (c *Context) newHash() hash.Hash {
	return hmac.New(c.alg.New, c.key)
}

// Name returns the canonical digest name.
func (c *Context) Name() string { return c.alg.Name }

// Update adds p to the running HMAC.
func (c *Context) Update(p []byte) error {
	if c.closed {
		return kerrors.ErrContextClosed
	}
	_, err := c.state.Write(p)
	return err
}

// Final adds trailing and returns the HMAC of all input so far.
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

// Clone returns an independent context with the same key and state.
func (c *Context) Clone() (*Context, error) {
	if c.closed {
		return nil, kerrors.ErrContextClosed
	}
	n := &Context{alg: c.alg, key: append([]byte(nil), c.key...)}
	s, err := c.state.CloneWith(n.newHash)
	if err != nil {
		return nil, fmt.Errorf("cloning hmac-%s state: %w", c.alg.Name, err)
	}
	n.state = s
	return n, nil
}

// Reset discards input but keeps the key and digest.
func (c *Context) Reset() error {
	if c.closed {
		return kerrors.ErrContextClosed
	}
	c.state.Reset()
	return nil
}

// Close zeroes the key. It is safe to call more than once.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	for i := range c.key {
		c.key[i] = 0
	}
	c.state.Wipe()
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool { return c.closed }

func (c *Context) String() string {
	return fmt.Sprintf("crypto.hmac %p", c)
}

// Sum returns the HMAC of data in one step.
func Sum(name string, data, key []byte) (registry.Output, error) {
	c, err := NewStream(name, key)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Final(data)
}
