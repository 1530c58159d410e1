package registry

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/chacha20"
)

// Mode is the way a cipher turns its primitive into a byte stream.
type Mode int

const (
	ModeCBC Mode = iota
	ModeECB
	ModeCTR
	ModeCFB
	ModeOFB
	// ModeStream is a native stream cipher (rc4, chacha20).
	ModeStream
)

func (m Mode) String() string {
	switch m {
	case ModeCBC:
		return "cbc"
	case ModeECB:
		return "ecb"
	case ModeCTR:
		return "ctr"
	case ModeCFB:
		return "cfb"
	case ModeOFB:
		return "ofb"
	default:
		return "stream"
	}
}

// Padded reports whether the mode works on whole blocks and therefore pads.
func (m Mode) Padded() bool {
	return m == ModeCBC || m == ModeECB
}

// Cipher describes a registered symmetric cipher.
type Cipher struct {
	Name   string
	KeyLen int
	IVLen  int
	// BlockSize is the unit of output; 1 for stream-oriented modes.
	BlockSize int
	Mode      Mode

	newBlock  func(key []byte) (cipher.Block, error)
	newStream func(key, iv []byte) (cipher.Stream, error)
}

// NewBlock returns the underlying block primitive for block-based modes.
func (c *Cipher) NewBlock(key []byte) (cipher.Block, error) {
	if c.newBlock == nil {
		return nil, fmt.Errorf("%s is not a block cipher", c.Name)
	}
	return c.newBlock(key)
}

// NewStream returns the keystream for native stream ciphers.
func (c *Cipher) NewStream(key, iv []byte) (cipher.Stream, error) {
	if c.newStream == nil {
		return nil, fmt.Errorf("%s is not a stream cipher", c.Name)
	}
	return c.newStream(key, iv)
}

func newBlowfish(key []byte) (cipher.Block, error) { return blowfish.NewCipher(key) }

func newCAST5(key []byte) (cipher.Block, error) { return cast5.NewCipher(key) }

func newRC4(key, _ []byte) (cipher.Stream, error) { return rc4.NewCipher(key) }

// newChaCha20 follows the OpenSSL layout: a 16-byte IV holding a 32-bit
// little-endian block counter followed by the 96-bit nonce. When the block
// counter wraps, the carry goes into the first nonce word.
func newChaCha20(key, iv []byte) (cipher.Stream, error) {
	s := &chachaStream{key: append([]byte(nil), key...)}
	copy(s.nonce[:], iv[4:16])
	if err := s.rekey(binary.LittleEndian.Uint32(iv[:4])); err != nil {
		return nil, err
	}
	return s, nil
}

const chachaBlockSize = 64

type chachaStream struct {
	key   []byte
	nonce [chacha20.NonceSize]byte
	c     *chacha20.Cipher
	// left is how many keystream bytes the current cipher can still produce
	// before its block counter wraps.
	left uint64
}

func (s *chachaStream) rekey(counter uint32) error {
	c, err := chacha20.NewUnauthenticatedCipher(s.key, s.nonce[:])
	if err != nil {
		return err
	}
	c.SetCounter(counter)
	s.c = c
	s.left = (1<<32 - uint64(counter)) * chachaBlockSize
	return nil
}

func (s *chachaStream) XORKeyStream(dst, src []byte) {
	for len(src) > 0 {
		if s.left == 0 {
			word := binary.LittleEndian.Uint32(s.nonce[:4]) + 1
			binary.LittleEndian.PutUint32(s.nonce[:4], word)
			if err := s.rekey(0); err != nil {
				panic(err)
			}
		}
		n := len(src)
		if uint64(n) > s.left {
			n = int(s.left)
		}
		s.c.XORKeyStream(dst[:n], src[:n])
		s.left -= uint64(n)
		dst, src = dst[n:], src[n:]
	}
}

type blockFamily struct {
	prefix    string
	keyLen    int
	blockSize int
	newBlock  func(key []byte) (cipher.Block, error)
	modes     []Mode
	aliases   map[string]Mode
}

var (
	aesModes    = []Mode{ModeCBC, ModeECB, ModeCTR, ModeCFB, ModeOFB}
	legacyModes = []Mode{ModeCBC, ModeECB, ModeCFB, ModeOFB}
)

var blockFamilies = []blockFamily{
	{prefix: "aes-128", keyLen: 16, blockSize: aes.BlockSize, newBlock: aes.NewCipher, modes: aesModes, aliases: map[string]Mode{"aes128": ModeCBC}},
	{prefix: "aes-192", keyLen: 24, blockSize: aes.BlockSize, newBlock: aes.NewCipher, modes: aesModes, aliases: map[string]Mode{"aes192": ModeCBC}},
	{prefix: "aes-256", keyLen: 32, blockSize: aes.BlockSize, newBlock: aes.NewCipher, modes: aesModes, aliases: map[string]Mode{"aes256": ModeCBC}},
	{prefix: "des", keyLen: 8, blockSize: des.BlockSize, newBlock: des.NewCipher, modes: legacyModes, aliases: map[string]Mode{"des": ModeCBC}},
	{prefix: "des-ede3", keyLen: 24, blockSize: des.BlockSize, newBlock: des.NewTripleDESCipher, modes: legacyModes, aliases: map[string]Mode{"des3": ModeCBC, "des-ede3": ModeECB}},
	{prefix: "bf", keyLen: 16, blockSize: blowfish.BlockSize, newBlock: newBlowfish, modes: legacyModes, aliases: map[string]Mode{"bf": ModeCBC, "blowfish": ModeCBC}},
	{prefix: "cast5", keyLen: 16, blockSize: cast5.BlockSize, newBlock: newCAST5, modes: legacyModes, aliases: map[string]Mode{"cast": ModeCBC, "cast-cbc": ModeCBC}},
}

var streamCiphers = []*Cipher{
	{Name: "rc4", KeyLen: 16, IVLen: 0, BlockSize: 1, Mode: ModeStream, newStream: newRC4},
	{Name: "chacha20", KeyLen: 32, IVLen: 16, BlockSize: 1, Mode: ModeStream, newStream: newChaCha20},
}

// familyCiphers expands a block family into one entry per mode.
func familyCiphers(f blockFamily) map[string]*Cipher {
	out := make(map[string]*Cipher, len(f.modes)+len(f.aliases))
	for _, mode := range f.modes {
		c := &Cipher{
			Name:      f.prefix + "-" + mode.String(),
			KeyLen:    f.keyLen,
			IVLen:     f.blockSize,
			BlockSize: 1,
			Mode:      mode,
			newBlock:  f.newBlock,
		}
		if mode.Padded() {
			c.BlockSize = f.blockSize
		}
		if mode == ModeECB {
			c.IVLen = 0
		}
		out[c.Name] = c
	}
	for alias, mode := range f.aliases {
		out[alias] = out[f.prefix+"-"+mode.String()]
	}
	return out
}
