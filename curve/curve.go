// Package curve is the narrow facade over the BN254 pairing-friendly curve
// that the rest of this module is written against. It exposes only the
// algebraic operations the commitment schemes need: point addition,
// negation, scalar multiplication, equality, the two generators, an
// uncompressed wire encoding, and a batched pairing check. Low level field
// and pairing arithmetic is delegated entirely to gnark-crypto.
package curve

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	ErrShortBuffer   = errors.New("curve: buffer too short for uncompressed point")
	ErrPointNotOnG1  = errors.New("curve: decoded point is not on G1")
	ErrInvalidPairs  = errors.New("curve: pairing check requires at least one pair")
	ErrMismatchPairs = errors.New("curve: mismatched number of G1 and G2 points")
)

// UncompressedPointSize is the wire size of a G1 coordinate pair: two
// 32-byte little-endian field elements for BN254. A G2 point, whose
// coordinates live in Fp2, encodes to twice this size.
const UncompressedPointSize = 64

// G1 wraps a BN254 G1 affine point.
type G1 struct {
	p bn254.G1Affine
}

// G2 wraps a BN254 G2 affine point.
type G2 struct {
	p bn254.G2Affine
}

var (
	g1Gen, g2Gen = func() (bn254.G1Affine, bn254.G2Affine) {
		_, _, g1, g2 := bn254.Generators()
		return g1, g2
	}()
)

// G1Gen returns the canonical BN254 G1 generator.
func G1Gen() G1 { return G1{g1Gen} }

// G2Gen returns the canonical BN254 G2 generator.
func G2Gen() G2 { return G2{g2Gen} }

// ZeroG1 returns the G1 identity element.
func ZeroG1() G1 { var z bn254.G1Affine; return G1{z} }

// ZeroG2 returns the G2 identity element.
func ZeroG2() G2 { var z bn254.G2Affine; return G2{z} }

// Add returns a+b.
func (a G1) Add(b G1) G1 {
	var res bn254.G1Affine
	var aJac, bJac bn254.G1Jac
	aJac.FromAffine(&a.p)
	bJac.FromAffine(&b.p)
	aJac.AddAssign(&bJac)
	res.FromJacobian(&aJac)
	return G1{res}
}

// Sub returns a-b.
func (a G1) Sub(b G1) G1 {
	return a.Add(b.Neg())
}

// Neg returns -a.
func (a G1) Neg() G1 {
	var res bn254.G1Affine
	res.Neg(&a.p)
	return G1{res}
}

// ScalarMul returns s*a.
func (a G1) ScalarMul(s fr.Element) G1 {
	var res bn254.G1Affine
	var bi big.Int
	s.ToBigIntRegular(&bi)
	res.ScalarMultiplication(&a.p, &bi)
	return G1{res}
}

// Equal reports whether a and b represent the same point.
func (a G1) Equal(b G1) bool {
	return a.p.Equal(&b.p)
}

// IsZero reports whether a is the identity element.
func (a G1) IsZero() bool {
	return a.p.IsInfinity()
}

// Marshal encodes a in uncompressed affine form: x then y, each a
// little-endian 32-byte field element.
func (a G1) Marshal() []byte {
	out := make([]byte, UncompressedPointSize)
	writeCoordLE(out[:32], a.p.X)
	writeCoordLE(out[32:], a.p.Y)
	return out
}

// UnmarshalG1 decodes an uncompressed G1 point produced by Marshal.
func UnmarshalG1(b []byte) (G1, error) {
	if len(b) < UncompressedPointSize {
		return G1{}, ErrShortBuffer
	}
	var p bn254.G1Affine
	readCoordLE(&p.X, b[:32])
	readCoordLE(&p.Y, b[32:64])
	if !p.IsInfinity() && !p.IsOnCurve() {
		return G1{}, ErrPointNotOnG1
	}
	return G1{p}, nil
}

// Add returns a+b.
func (a G2) Add(b G2) G2 {
	var res bn254.G2Affine
	var aJac, bJac bn254.G2Jac
	aJac.FromAffine(&a.p)
	bJac.FromAffine(&b.p)
	aJac.AddAssign(&bJac)
	res.FromJacobian(&aJac)
	return G2{res}
}

// Neg returns -a.
func (a G2) Neg() G2 {
	var res bn254.G2Affine
	res.Neg(&a.p)
	return G2{res}
}

// ScalarMul returns s*a.
func (a G2) ScalarMul(s fr.Element) G2 {
	var res bn254.G2Affine
	var bi big.Int
	s.ToBigIntRegular(&bi)
	res.ScalarMultiplication(&a.p, &bi)
	return G2{res}
}

// Equal reports whether a and b represent the same point.
func (a G2) Equal(b G2) bool {
	return a.p.Equal(&b.p)
}

// Marshal encodes a in uncompressed affine form over Fp2: x then y, each
// coordinate itself a pair of little-endian 32-byte limbs (A0, A1).
func (a G2) Marshal() []byte {
	out := make([]byte, UncompressedPointSize*2)
	writeCoordLE(out[0:32], a.p.X.A0)
	writeCoordLE(out[32:64], a.p.X.A1)
	writeCoordLE(out[64:96], a.p.Y.A0)
	writeCoordLE(out[96:128], a.p.Y.A1)
	return out
}

// MultiExp computes sum_i scalars[i]*points[i], delegating to gnark-crypto's
// multi-scalar multiplication so that large commitments stay fast.
func MultiExp(points []G1, scalars []fr.Element) (G1, error) {
	if len(points) != len(scalars) {
		return G1{}, ErrMismatchPairs
	}
	affines := make([]bn254.G1Affine, len(points))
	for i := range points {
		affines[i] = points[i].p
	}
	var res bn254.G1Affine
	if _, err := res.MultiExp(affines, scalars, ecc.MultiExpConfig{}); err != nil {
		return G1{}, err
	}
	return G1{res}, nil
}

// PairingCheck tests whether prod_i e(a[i], b[i]) == 1.
func PairingCheck(a []G1, b []G2) (bool, error) {
	if len(a) == 0 {
		return false, ErrInvalidPairs
	}
	if len(a) != len(b) {
		return false, ErrMismatchPairs
	}
	p1 := make([]bn254.G1Affine, len(a))
	p2 := make([]bn254.G2Affine, len(b))
	for i := range a {
		p1[i] = a[i].p
		p2[i] = b[i].p
	}
	return bn254.PairingCheck(p1, p2)
}

func writeCoordLE(dst []byte, e fp.Element) {
	var bi big.Int
	e.BigInt(&bi)
	be := make([]byte, 32)
	bi.FillBytes(be)
	for i := 0; i < 32; i++ {
		dst[i] = be[31-i]
	}
}

func readCoordLE(e *fp.Element, src []byte) {
	be := make([]byte, 32)
	for i := 0; i < 32; i++ {
		be[i] = src[31-i]
	}
	var bi big.Int
	bi.SetBytes(be)
	e.SetBigInt(&bi)
}
