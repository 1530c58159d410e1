package symmetric

import "crypto/cipher"

// ecb implements cipher.BlockMode for electronic codebook mode, which the
// standard library leaves out.
type ecb struct {
	b       cipher.Block
	decrypt bool
}

func newECB(b cipher.Block, decrypt bool) cipher.BlockMode {
	return &ecb{b: b, decrypt: decrypt}
}

func (e *ecb) BlockSize() int { return e.b.BlockSize() }

func (e *ecb) CryptBlocks(dst, src []byte) {
	bs := e.b.BlockSize()
	if len(src)%bs != 0 {
		panic("symmetric: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("symmetric: output smaller than input")
	}
	for len(src) > 0 {
		if e.decrypt {
			e.b.Decrypt(dst[:bs], src[:bs])
		} else {
			e.b.Encrypt(dst[:bs], src[:bs])
		}
		src = src[bs:]
		dst = dst[bs:]
	}
}
