// Package polynomial implements dense, coefficient-form univariate
// polynomials over the BN254 scalar field.
package polynomial

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var ErrDistinctPoints = errors.New("polynomial: interpolation points must be distinct")

// Polynomial is a dense coefficient-form polynomial, lowest degree first.
// Methods never mutate the receiver; they return a fresh polynomial.
type Polynomial []fr.Element

// New returns the zero polynomial of capacity n, coefficients zeroed.
func New(n int) Polynomial {
	return make(Polynomial, n)
}

// Random returns a polynomial of n coefficients sampled uniformly at random.
func Random(n int) Polynomial {
	p := make(Polynomial, n)
	for i := range p {
		if _, err := p[i].SetRandom(); err != nil {
			panic(err)
		}
	}
	return p
}

// Clone returns a deep copy.
func (p Polynomial) Clone() Polynomial {
	c := make(Polynomial, len(p))
	copy(c, p)
	return c
}

// Len returns the number of coefficients (not the algebraic degree).
func (p Polynomial) Len() int { return len(p) }

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	for i := range p {
		if !p[i].IsZero() {
			return false
		}
	}
	return true
}

// Degree returns the index of the highest nonzero coefficient, or -1 for the
// zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// TrimZeros drops trailing zero coefficients.
func (p Polynomial) TrimZeros() Polynomial {
	n := len(p)
	for n > 0 && p[n-1].IsZero() {
		n--
	}
	return p[:n:n]
}

// Equal compares two polynomials up to trailing zero padding.
func (p Polynomial) Equal(other Polynomial) bool {
	a, b := p.TrimZeros(), other.TrimZeros()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// At returns the i-th coefficient, or zero if i is out of range.
func (p Polynomial) At(i int) fr.Element {
	if i < 0 || i >= len(p) {
		return fr.Element{}
	}
	return p[i]
}

// Pad returns a copy zero-extended (or truncated) to exactly n coefficients.
func (p Polynomial) Pad(n int) Polynomial {
	out := make(Polynomial, n)
	copy(out, p)
	return out
}

// Evaluate computes p(z) via Horner's rule.
func (p Polynomial) Evaluate(z fr.Element) fr.Element {
	var acc fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(&acc, &z)
		acc.Add(&acc, &p[i])
	}
	return acc
}

// EvaluateMulti evaluates p at every point in xs.
func (p Polynomial) EvaluateMulti(xs []fr.Element) []fr.Element {
	out := make([]fr.Element, len(xs))
	for i, x := range xs {
		out[i] = p.Evaluate(x)
	}
	return out
}

// Add returns p+other.
func (p Polynomial) Add(other Polynomial) Polynomial {
	n := len(p)
	if len(other) > n {
		n = len(other)
	}
	out := make(Polynomial, n)
	for i := 0; i < n; i++ {
		a, b := p.At(i), other.At(i)
		out[i].Add(&a, &b)
	}
	return out
}

// AddScalar returns p+c (c added to the constant term).
func (p Polynomial) AddScalar(c fr.Element) Polynomial {
	out := p.Pad(len(p))
	if len(out) == 0 {
		out = make(Polynomial, 1)
	}
	out[0].Add(&out[0], &c)
	return out
}

// Sub returns p-other.
func (p Polynomial) Sub(other Polynomial) Polynomial {
	n := len(p)
	if len(other) > n {
		n = len(other)
	}
	out := make(Polynomial, n)
	for i := 0; i < n; i++ {
		a, b := p.At(i), other.At(i)
		out[i].Sub(&a, &b)
	}
	return out
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	out := make(Polynomial, len(p))
	for i := range p {
		out[i].Neg(&p[i])
	}
	return out
}

// Scale returns k*p.
func (p Polynomial) Scale(k fr.Element) Polynomial {
	out := make(Polynomial, len(p))
	for i := range p {
		out[i].Mul(&p[i], &k)
	}
	return out
}

// Distribute returns the polynomial whose i-th coefficient is k^i * p[i], the
// standard trick for evaluating p over a coset.
func (p Polynomial) Distribute(k fr.Element) Polynomial {
	out := make(Polynomial, len(p))
	acc := fr.One()
	for i := range p {
		out[i].Mul(&p[i], &acc)
		acc.Mul(&acc, &k)
	}
	return out
}

// MulNaive computes the schoolbook product p*other in O(n*m).
func (p Polynomial) MulNaive(other Polynomial) Polynomial {
	if len(p) == 0 || len(other) == 0 {
		return Polynomial{}
	}
	out := make(Polynomial, len(p)+len(other)-1)
	for i, u := range p {
		for j, v := range other {
			var t fr.Element
			t.Mul(&u, &v)
			out[i+j].Add(&out[i+j], &t)
		}
	}
	return out
}

// MulSample multiplies two polynomials pointwise (evaluation-form product),
// truncating to the shorter length.
func (p Polynomial) MulSample(other Polynomial) Polynomial {
	n := len(p)
	if len(other) < n {
		n = len(other)
	}
	out := make(Polynomial, n)
	for i := 0; i < n; i++ {
		out[i].Mul(&p[i], &other[i])
	}
	return out
}

// InvSample inverts every coefficient, used on evaluation-form vectors.
func (p Polynomial) InvSample() Polynomial {
	return Polynomial(fr.BatchInvert(p))
}

// String renders a short debug summary (length and degree); use DebugString
// with verbose set to also dump every coefficient in decimal.
func (p Polynomial) String() string {
	return p.DebugString("", false)
}

// DebugString renders a labeled debug summary, optionally verbose.
func (p Polynomial) DebugString(label string, verbose bool) string {
	s := fmt.Sprintf("%s\tlen: %d\tdegree: %d", label, p.Len(), p.Degree())
	if verbose {
		for _, c := range p {
			s += fmt.Sprintf("\n%s", c.String())
		}
	}
	return s
}

// DegreeOne returns the linear polynomial (X - z).
func DegreeOne(z fr.Element) Polynomial {
	var negZ fr.Element
	negZ.Neg(&z)
	return Polynomial{negZ, fr.One()}
}

// Evaluate evaluates every polynomial in inputs at the same point z.
func Evaluate(z fr.Element, inputs ...Polynomial) []fr.Element {
	out := make([]fr.Element, len(inputs))
	for i, p := range inputs {
		out[i] = p.Evaluate(z)
	}
	return out
}

// LagrangeInterpolation reconstructs the unique polynomial of degree < len(xs)
// passing through every (xs[i], ys[i]) pair, via the naive O(n^2) formula.
func LagrangeInterpolation(xs, ys []fr.Element) (Polynomial, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("polynomial: mismatched point/value counts %d/%d", len(xs), len(ys))
	}
	n := len(xs)
	acc := Polynomial{}
	for i := 0; i < n; i++ {
		term := Polynomial{fr.One()}
		denom := fr.One()
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			var diff fr.Element
			diff.Sub(&xs[i], &xs[j])
			if diff.IsZero() {
				return nil, ErrDistinctPoints
			}
			term = term.MulNaive(DegreeOne(xs[j]))
			denom.Mul(&denom, &diff)
		}
		var denomInv, coeff fr.Element
		denomInv.Inverse(&denom)
		coeff.Mul(&ys[i], &denomInv)
		acc = acc.Add(term.Scale(coeff))
	}
	return acc, nil
}

// BarycentricWeight pairs an evaluation point with its barycentric weight
// 1 / prod_{j != i} (x_i - x_j).
type BarycentricWeight struct {
	Point  fr.Element
	Weight fr.Element
}

// BarycentricPreprocess precomputes the barycentric weights for a fixed,
// distinct set of points; reuse the result across many evaluations over the
// same points.
func BarycentricPreprocess(points []fr.Element) ([]BarycentricWeight, error) {
	n := len(points)
	denoms := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		acc := fr.One()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			var diff fr.Element
			diff.Sub(&points[i], &points[j])
			if diff.IsZero() {
				return nil, ErrDistinctPoints
			}
			acc.Mul(&acc, &diff)
		}
		denoms[i] = acc
	}
	denoms = fr.BatchInvert(denoms)
	out := make([]BarycentricWeight, n)
	for i := range out {
		out[i] = BarycentricWeight{Point: points[i], Weight: denoms[i]}
	}
	return out, nil
}

// BarycentricEvaluation evaluates the polynomial interpolating
// (weights[i].Point, evaluations[i]) at z using the second barycentric form.
// z must not coincide with any of the preprocessed points.
func BarycentricEvaluation(weights []BarycentricWeight, evaluations []fr.Element, z fr.Element) (fr.Element, error) {
	if len(weights) != len(evaluations) {
		return fr.Element{}, fmt.Errorf("polynomial: mismatched weight/value counts %d/%d", len(weights), len(evaluations))
	}
	n := len(weights)
	denomTerms := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var diff fr.Element
		diff.Sub(&z, &weights[i].Point)
		if diff.IsZero() {
			return fr.Element{}, fmt.Errorf("polynomial: evaluation point coincides with node %d", i)
		}
		denomTerms[i] = diff
	}
	denomTerms = fr.BatchInvert(denomTerms)

	var numSum, denomSum fr.Element
	for i := 0; i < n; i++ {
		var coeff fr.Element
		coeff.Mul(&weights[i].Weight, &denomTerms[i])

		var numTerm fr.Element
		numTerm.Mul(&coeff, &evaluations[i])

		numSum.Add(&numSum, &numTerm)
		denomSum.Add(&denomSum, &coeff)
	}
	var denomInv, result fr.Element
	denomInv.Inverse(&denomSum)
	result.Mul(&numSum, &denomInv)
	return result, nil
}
