package symmetric

import (
	"crypto/cipher"
	"fmt"

	kerrors "github.com/PolarWolf314/luacrypto/internal/errors"
	"github.com/PolarWolf314/luacrypto/internal/registry"
)

// Direction is encryption or decryption.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// Context is a running encryption or decryption. It is not safe for
// concurrent use.
type Context struct {
	alg     *registry.Cipher
	dir     Direction
	padding bool

	mode   cipher.BlockMode
	stream cipher.Stream
	buf    []byte

	key []byte
	iv  []byte

	keyAdjusted bool
	ivAdjusted  bool
	finalized   bool
	closed      bool
}

// NewEncrypter starts encrypting with the named cipher.
func NewEncrypter(name string, key, iv []byte, opts ...Option) (*Context, error) {
	return newContext(Encrypt, name, key, iv, opts)
}

// NewDecrypter starts decrypting with the named cipher.
func NewDecrypter(name string, key, iv []byte, opts ...Option) (*Context, error) {
	return newContext(Decrypt, name, key, iv, opts)
}

func newContext(dir Direction, name string, key, iv []byte, opts []Option) (*Context, error) {
	alg, err := registry.LookupCipher(name)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	c := &Context{alg: alg, dir: dir, padding: o.padding}
	c.key, c.keyAdjusted, err = fitKey(key, alg.KeyLen, o)
	if err != nil {
		return nil, err
	}
	c.iv, c.ivAdjusted, err = fitIV(iv, alg.IVLen, o)
	if err != nil {
		return nil, err
	}
	if err := c.init(); err != nil {
		return nil, fmt.Errorf("initialising %s: %w", alg.Name, err)
	}
	return c, nil
}

func fitKey(key []byte, want int, o options) ([]byte, bool, error) {
	if len(key) == want {
		return append([]byte(nil), key...), false, nil
	}
	if o.policy == Strict {
		return nil, false, fmt.Errorf("%w: got %d bytes, want %d", kerrors.ErrKeyLength, len(key), want)
	}
	if o.notify != nil {
		o.notify("key", len(key), want)
	}
	return resize(key, want), true, nil
}

func fitIV(iv []byte, want int, o options) ([]byte, bool, error) {
	if iv == nil || len(iv) == want {
		out := make([]byte, want)
		copy(out, iv)
		return out, false, nil
	}
	if o.policy == Strict {
		return nil, false, fmt.Errorf("%w: got %d bytes, want %d", kerrors.ErrIVLength, len(iv), want)
	}
	if o.notify != nil {
		o.notify("iv", len(iv), want)
	}
	return resize(iv, want), true, nil
}

// resize zero-pads or truncates b to n bytes.
func resize(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (c *Context) init() error {
	if c.alg.Mode == registry.ModeStream {
		s, err := c.alg.NewStream(c.key, c.iv)
		if err != nil {
			return err
		}
		c.stream = s
		return nil
	}

	b, err := c.alg.NewBlock(c.key)
	if err != nil {
		return err
	}
	dec := c.dir == Decrypt
	switch c.alg.Mode {
	case registry.ModeCBC:
		if dec {
			c.mode = cipher.NewCBCDecrypter(b, c.iv)
		} else {
			c.mode = cipher.NewCBCEncrypter(b, c.iv)
		}
	case registry.ModeECB:
		c.mode = newECB(b, dec)
	case registry.ModeCTR:
		c.stream = cipher.NewCTR(b, c.iv)
	case registry.ModeCFB:
		if dec {
			c.stream = cipher.NewCFBDecrypter(b, c.iv)
		} else {
			c.stream = cipher.NewCFBEncrypter(b, c.iv)
		}
	case registry.ModeOFB:
		c.stream = cipher.NewOFB(b, c.iv)
	default:
		return fmt.Errorf("unknown mode %s", c.alg.Mode)
	}
	return nil
}

// Name returns the canonical cipher name.
func (c *Context) Name() string { return c.alg.Name }

// Direction reports whether the context encrypts or decrypts.
func (c *Context) Direction() Direction { return c.dir }

// KeyAdjusted reports whether the key was padded or truncated.
func (c *Context) KeyAdjusted() bool { return c.keyAdjusted }

// IVAdjusted reports whether the IV was padded or truncated.
func (c *Context) IVAdjusted() bool { return c.ivAdjusted }

func (c *Context) usable() error {
	if c.closed {
		return kerrors.ErrContextClosed
	}
	if c.finalized {
		return kerrors.ErrContextFinalized
	}
	return nil
}

// Update processes p and returns whatever output is ready. Block modes may
// return less than len(p) bytes and keep the rest for later.
func (c *Context) Update(p []byte) ([]byte, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	if c.stream != nil {
		out := make([]byte, len(p))
		c.stream.XORKeyStream(out, p)
		return out, nil
	}

	bs := c.mode.BlockSize()
	c.buf = append(c.buf, p...)
	n := len(c.buf) / bs * bs
	if c.dir == Decrypt && c.padding && n == len(c.buf) && n > 0 {
		n -= bs
	}
	out := make([]byte, n)
	c.mode.CryptBlocks(out, c.buf[:n])
	c.buf = append(c.buf[:0], c.buf[n:]...)
	return out, nil
}

// Final flushes the context. Encryption appends padding; decryption checks
// and strips it. The context cannot be updated afterwards.
func (c *Context) Final() ([]byte, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	c.finalized = true
	if c.stream != nil {
		return []byte{}, nil
	}

	bs := c.mode.BlockSize()
	defer c.wipeBuffer()
	if !c.padding {
		if len(c.buf) != 0 {
			return nil, fmt.Errorf("%w: %d bytes left over", kerrors.ErrBlockLength, len(c.buf))
		}
		return []byte{}, nil
	}

	if c.dir == Encrypt {
		pad := bs - len(c.buf)%bs
		block := append(c.buf, make([]byte, pad)...)
		for i := len(block) - pad; i < len(block); i++ {
			block[i] = byte(pad)
		}
		out := make([]byte, len(block))
		c.mode.CryptBlocks(out, block)
		return out, nil
	}

	if len(c.buf) != bs {
		return nil, fmt.Errorf("%w: final block has %d bytes", kerrors.ErrBlockLength, len(c.buf))
	}
	out := make([]byte, bs)
	c.mode.CryptBlocks(out, c.buf)
	return unpad(out, bs)
}

func unpad(block []byte, bs int) ([]byte, error) {
	pad := int(block[len(block)-1])
	if pad == 0 || pad > bs {
		return nil, kerrors.ErrPadding
	}
	for _, b := range block[len(block)-pad:] {
		if int(b) != pad {
			return nil, kerrors.ErrPadding
		}
	}
	return block[:len(block)-pad], nil
}

func (c *Context) wipeBuffer() {
	wipe(c.buf)
	c.buf = c.buf[:0]
}

// Close releases the context and zeroes its key material. It is safe to
// call more than once.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	wipe(c.key)
	wipe(c.iv)
	c.wipeBuffer()
	c.mode = nil
	c.stream = nil
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool { return c.closed }

func (c *Context) String() string {
	return fmt.Sprintf("crypto.%s %p", c.dir, c)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// EncryptBytes encrypts data in one step.
func EncryptBytes(name string, data, key, iv []byte, opts ...Option) ([]byte, error) {
	return oneShot(Encrypt, name, data, key, iv, opts)
}

// DecryptBytes decrypts data in one step.
func DecryptBytes(name string, data, key, iv []byte, opts ...Option) ([]byte, error) {
	return oneShot(Decrypt, name, data, key, iv, opts)
}

func oneShot(dir Direction, name string, data, key, iv []byte, opts []Option) ([]byte, error) {
	c, err := newContext(dir, name, key, iv, opts)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	out, err := c.Update(data)
	if err != nil {
		return nil, err
	}
	tail, err := c.Final()
	if err != nil {
		return nil, err
	}
	return append(out, tail...), nil
}
