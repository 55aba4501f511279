// Package lc implements the Horner-style linear combination helpers shared
// by the GWC and BDFG batch opening schemes: folding many scalars,
// polynomials or commitments into one under powers of a single challenge.
package lc

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/curve"
	"github.com/kilic/polynom/polynomial"
)

// LinearCombination folds a sequence of values under ascending powers of a
// fixed challenge e: v0 + e*v1 + e^2*v2 + ...
type LinearCombination struct {
	e fr.Element
}

// New returns a LinearCombination driven by challenge e.
func New(e fr.Element) *LinearCombination {
	return &LinearCombination{e: e}
}

// CombinePoly returns coeffs[0] + e*coeffs[1] + e^2*coeffs[2] + ...
func (lc *LinearCombination) CombinePoly(coeffs ...polynomial.Polynomial) polynomial.Polynomial {
	acc := polynomial.Polynomial{}
	pow := fr.One()
	for _, c := range coeffs {
		acc = acc.Add(c.Scale(pow))
		pow.Mul(&pow, &lc.e)
	}
	return acc
}

// CombineFr returns coeffs[0] + e*coeffs[1] + e^2*coeffs[2] + ...
func (lc *LinearCombination) CombineFr(coeffs ...fr.Element) fr.Element {
	var acc fr.Element
	pow := fr.One()
	for _, c := range coeffs {
		var term fr.Element
		term.Mul(&c, &pow)
		acc.Add(&acc, &term)
		pow.Mul(&pow, &lc.e)
	}
	return acc
}

// CombinePoints returns points[0] + e*points[1] + e^2*points[2] + ...
func (lc *LinearCombination) CombinePoints(points ...curve.G1) curve.G1 {
	acc := curve.ZeroG1()
	pow := fr.One()
	for _, p := range points {
		acc = acc.Add(p.ScalarMul(pow))
		pow.Mul(&pow, &lc.e)
	}
	return acc
}

// PointScalar pairs a commitment with an auxiliary scalar, the (point,
// scalar) tuples the reference implementation threads through
// degree-shifted combinations.
type PointScalar struct {
	Point  curve.G1
	Scalar fr.Element
}

// CombinePointsForDegree returns e^degree * sum_i scalar_i * point_i, used
// to align a batch's contribution with the degree shift of the polynomial
// it backs.
func (lc *LinearCombination) CombinePointsForDegree(degree int, inputs ...PointScalar) curve.G1 {
	var shift big.Int
	shift.SetInt64(int64(degree))
	var e fr.Element
	e.Exp(lc.e, &shift)

	acc := curve.ZeroG1()
	for _, in := range inputs {
		var s fr.Element
		s.Mul(&in.Scalar, &e)
		acc = acc.Add(in.Point.ScalarMul(s))
	}
	return acc
}

// MultiExpWithAux is CombinePointsForDegree under the name the reference
// implementation's batched accumulation call sites use.
func (lc *LinearCombination) MultiExpWithAux(degree int, inputs ...PointScalar) curve.G1 {
	return lc.CombinePointsForDegree(degree, inputs...)
}

// CombineECCWithAux folds inputs into two accumulators: W = sum e^i * P_i
// and R = sum e^i * zeta_i * P_i, building both the pure commitment
// combination and its evaluation-weighted counterpart in one pass.
func (lc *LinearCombination) CombineECCWithAux(inputs ...PointScalar) (curve.G1, curve.G1) {
	accW, accR := curve.ZeroG1(), curve.ZeroG1()
	pow := fr.One()
	for _, in := range inputs {
		accW = accW.Add(in.Point.ScalarMul(pow))

		var weighted fr.Element
		weighted.Mul(&pow, &in.Scalar)
		accR = accR.Add(in.Point.ScalarMul(weighted))

		pow.Mul(&pow, &lc.e)
	}
	return accW, accR
}
