package pkey

import (
	"crypto/dsa" //nolint:staticcheck // DSA keys are still read, written and generated.
	"encoding/asn1"
	"errors"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var oidDSA = asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}

var (
	errDSAEncoding   = errors.New("malformed DSA key encoding")
	errDSAParameters = errors.New("DSA parameters out of range")
)

var bigOne = big.NewInt(1)

// checkDSAParameters requires 0 < q < p and 1 < g < p.
func checkDSAParameters(p dsa.Parameters) error {
	if p.P.Sign() <= 0 || p.Q.Sign() <= 0 || p.Q.Cmp(p.P) >= 0 ||
		p.G.Cmp(bigOne) <= 0 || p.G.Cmp(p.P) >= 0 {
		return errDSAParameters
	}
	return nil
}

// checkDSAPublic also requires 1 < y < p.
func checkDSAPublic(k *dsa.PublicKey) error {
	if err := checkDSAParameters(k.Parameters); err != nil {
		return err
	}
	if k.Y.Cmp(bigOne) <= 0 || k.Y.Cmp(k.P) >= 0 {
		return errDSAParameters
	}
	return nil
}

// checkDSAPrivate also requires 0 < x < q.
func checkDSAPrivate(k *dsa.PrivateKey) error {
	if err := checkDSAPublic(&k.PublicKey); err != nil {
		return err
	}
	if k.X.Sign() <= 0 || k.X.Cmp(k.Q) >= 0 {
		return errDSAParameters
	}
	return nil
}

func addDSAAlgorithm(b *cryptobyte.Builder, p dsa.Parameters) {
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oidDSA)
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1BigInt(p.P)
			b.AddASN1BigInt(p.Q)
			b.AddASN1BigInt(p.G)
		})
	})
}

// marshalDSAPublic encodes a SubjectPublicKeyInfo for a DSA key.
func marshalDSAPublic(k *dsa.PublicKey) ([]byte, error) {
	var y cryptobyte.Builder
	y.AddASN1BigInt(k.Y)
	yDER, err := y.Bytes()
	if err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addDSAAlgorithm(b, k.Parameters)
		b.AddASN1BitString(yDER)
	})
	return b.Bytes()
}

// marshalDSAPKCS8 encodes a PKCS#8 PrivateKeyInfo for a DSA key.
func marshalDSAPKCS8(k *dsa.PrivateKey) ([]byte, error) {
	var x cryptobyte.Builder
	x.AddASN1BigInt(k.X)
	xDER, err := x.Bytes()
	if err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		addDSAAlgorithm(b, k.Parameters)
		b.AddASN1OctetString(xDER)
	})
	return b.Bytes()
}

func readDSAAlgorithm(s *cryptobyte.String) (dsa.Parameters, error) {
	var (
		alg, params cryptobyte.String
		oid         asn1.ObjectIdentifier
		p           = dsa.Parameters{P: new(big.Int), Q: new(big.Int), G: new(big.Int)}
	)
	if !s.ReadASN1(&alg, cbasn1.SEQUENCE) ||
		!alg.ReadASN1ObjectIdentifier(&oid) ||
		!oid.Equal(oidDSA) ||
		!alg.ReadASN1(&params, cbasn1.SEQUENCE) ||
		!params.ReadASN1Integer(p.P) ||
		!params.ReadASN1Integer(p.Q) ||
		!params.ReadASN1Integer(p.G) {
		return p, errDSAEncoding
	}
	return p, nil
}

// parseDSAPublic decodes a SubjectPublicKeyInfo holding a DSA key.
func parseDSAPublic(der []byte) (*dsa.PublicKey, error) {
	input := cryptobyte.String(der)
	var spki cryptobyte.String
	if !input.ReadASN1(&spki, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, errDSAEncoding
	}
	params, err := readDSAAlgorithm(&spki)
	if err != nil {
		return nil, err
	}
	var bits asn1.BitString
	if !spki.ReadASN1BitString(&bits) || bits.BitLength%8 != 0 {
		return nil, errDSAEncoding
	}
	y := new(big.Int)
	inner := cryptobyte.String(bits.Bytes)
	if !inner.ReadASN1Integer(y) {
		return nil, errDSAEncoding
	}
	k := &dsa.PublicKey{Parameters: params, Y: y}
	if err := checkDSAPublic(k); err != nil {
		return nil, err
	}
	return k, nil
}

// parseDSAPKCS8 decodes a PKCS#8 PrivateKeyInfo holding a DSA key.
func parseDSAPKCS8(der []byte) (*dsa.PrivateKey, error) {
	input := cryptobyte.String(der)
	var (
		info    cryptobyte.String
		version int64
		octets  cryptobyte.String
	)
	if !input.ReadASN1(&info, cbasn1.SEQUENCE) ||
		!info.ReadASN1Integer(&version) || version != 0 {
		return nil, errDSAEncoding
	}
	params, err := readDSAAlgorithm(&info)
	if err != nil {
		return nil, err
	}
	x := new(big.Int)
	if !info.ReadASN1(&octets, cbasn1.OCTET_STRING) || !octets.ReadASN1Integer(x) {
		return nil, errDSAEncoding
	}
	return dsaFromParts(params, x)
}

// parseDSATraditional decodes the OpenSSL "DSA PRIVATE KEY" layout:
// SEQUENCE { version, p, q, g, y, x }.
func parseDSATraditional(der []byte) (*dsa.PrivateKey, error) {
	input := cryptobyte.String(der)
	var (
		seq     cryptobyte.String
		version int64
		k       = &dsa.PrivateKey{}
	)
	k.P, k.Q, k.G, k.Y, k.X = new(big.Int), new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) ||
		!seq.ReadASN1Integer(&version) || version != 0 ||
		!seq.ReadASN1Integer(k.P) ||
		!seq.ReadASN1Integer(k.Q) ||
		!seq.ReadASN1Integer(k.G) ||
		!seq.ReadASN1Integer(k.Y) ||
		!seq.ReadASN1Integer(k.X) {
		return nil, errDSAEncoding
	}
	if err := checkDSAPrivate(k); err != nil {
		return nil, err
	}
	return k, nil
}

// dsaFromParts rebuilds the public value y = g^x mod p.
func dsaFromParts(p dsa.Parameters, x *big.Int) (*dsa.PrivateKey, error) {
	if err := checkDSAParameters(p); err != nil {
		return nil, err
	}
	if x.Sign() <= 0 || x.Cmp(p.Q) >= 0 {
		return nil, errDSAParameters
	}
	y := new(big.Int).Exp(p.G, x, p.P)
	k := &dsa.PrivateKey{PublicKey: dsa.PublicKey{Parameters: p, Y: y}, X: x}
	if err := checkDSAPublic(&k.PublicKey); err != nil {
		return nil, err
	}
	return k, nil
}
