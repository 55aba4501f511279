// Package domain provides BN254 evaluation domains of size 2^exp: forward and
// inverse FFT, coset arithmetic, polynomial multiplication/division by
// sampling, the vanishing polynomial, and barycentric-free Lagrange
// evaluation via the standard closed form.
package domain

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/fft"
	"github.com/kilic/polynom/polynomial"
)

// MaxTwoAdicity is BN254's 2-adicity: the largest exponent for which a
// 2^exp-th root of unity exists in the scalar field.
const MaxTwoAdicity = 28

var (
	// FieldGenerator is a generator of the multiplicative group of the BN254
	// scalar field, used to derive the primitive 2^28-th root of unity.
	FieldGenerator fr.Element
	// RootOfUnity is a primitive 2^28-th root of unity of the BN254 scalar
	// field, i.e. FieldGenerator^((p-1)/2^28).
	RootOfUnity fr.Element
	// DefaultCosetShift is the default multiplicative coset shift used to
	// move an evaluation domain off the subgroup of roots of unity.
	DefaultCosetShift fr.Element
)

func init() {
	if _, err := FieldGenerator.SetString("7"); err != nil {
		panic(err)
	}
	if _, err := RootOfUnity.SetString("1748695177688661943023146337482803886740723238769601073607632802312037301404"); err != nil {
		panic(err)
	}
	if _, err := DefaultCosetShift.SetString("21888242871839275217838484774961031246154997185409878258781734729429964517155"); err != nil {
		panic(err)
	}
}

var (
	ErrPolynomialTooLarge  = errors.New("domain: polynomial longer than domain cardinality")
	ErrMismatchedOperands  = errors.New("domain: multiply/divide requires at least two operands")
	ErrIndexOutOfRange     = errors.New("domain: index out of domain range")
	ErrEvaluationOnDomain  = errors.New("domain: evaluation point coincides with a domain element")
)

// Domain holds the precomputed tables for an evaluation domain of size
// 2^exp over the BN254 scalar field.
type Domain struct {
	Exp            uint64
	Cardinality    uint64
	CardinalityInv fr.Element
	Generator      fr.Element // n-th root of unity, domain[1]
	GeneratorInv   fr.Element
	CosetShift     fr.Element
	CosetShiftInv  fr.Element

	twiddles    []fr.Element // domain[i] = Generator^i
	twiddlesInv []fr.Element // inverseDomain[i] = GeneratorInv^i
}

// NewDomain builds the evaluation domain of size 2^exp using the default
// BN254 coset shift. It panics if exp exceeds MaxTwoAdicity: requesting a
// domain larger than the field supports is a programming error, not a
// recoverable failure.
func NewDomain(exp uint64) *Domain {
	return NewDomainWithShift(exp, DefaultCosetShift)
}

// NewDomainWithShift builds the evaluation domain of size 2^exp using an
// explicit coset shift.
func NewDomainWithShift(exp uint64, shift fr.Element) *Domain {
	if exp > MaxTwoAdicity {
		panic("domain: exponent exceeds BN254 2-adicity")
	}
	n := uint64(1) << exp
	w := RootOfUnity
	for i := exp; i < MaxTwoAdicity; i++ {
		w.Square(&w)
	}
	var wInv fr.Element
	wInv.Inverse(&w)

	var nInv fr.Element
	nInv.SetUint64(n)
	nInv.Inverse(&nInv)

	var shiftInv fr.Element
	shiftInv.Inverse(&shift)

	d := &Domain{
		Exp:            exp,
		Cardinality:    n,
		CardinalityInv: nInv,
		Generator:      w,
		GeneratorInv:   wInv,
		CosetShift:     shift,
		CosetShiftInv:  shiftInv,
	}
	d.twiddles = powers(w, n)
	d.twiddlesInv = powers(wInv, n)
	return d
}

func powers(base fr.Element, n uint64) []fr.Element {
	out := make([]fr.Element, n)
	out[0].SetOne()
	for i := uint64(1); i < n; i++ {
		out[i].Mul(&out[i-1], &base)
	}
	return out
}

// Twiddles returns the forward twiddle table (Generator^i for i in [0,n)).
func (d *Domain) Twiddles() []fr.Element { return d.twiddles }

// TwiddlesInv returns the inverse twiddle table (GeneratorInv^i for i in [0,n)).
func (d *Domain) TwiddlesInv() []fr.Element { return d.twiddlesInv }

// Coset returns the coset {shift * Generator^i} for i in [0, n).
func (d *Domain) Coset(shift fr.Element) []fr.Element {
	out := make([]fr.Element, d.Cardinality)
	for i := range out {
		out[i].Mul(&d.twiddles[i], &shift)
	}
	return out
}

// Extend zero-pads poly's coefficients to the domain's cardinality while
// preserving its evaluation by repeated coset doubling is not needed here:
// this simply zero-extends the coefficient vector to d.Cardinality entries.
func (d *Domain) Extend(p polynomial.Polynomial) polynomial.Polynomial {
	if uint64(p.Len()) > d.Cardinality {
		panic("domain: polynomial too large to extend")
	}
	return p.Pad(int(d.Cardinality))
}

// Interpolate computes the unique polynomial of degree < n agreeing with
// values on the domain's n-th roots of unity (inverse FFT).
func (d *Domain) Interpolate(values []fr.Element) (polynomial.Polynomial, error) {
	if uint64(len(values)) > d.Cardinality {
		return nil, ErrPolynomialTooLarge
	}
	padded := make([]fr.Element, d.Cardinality)
	copy(padded, values)
	coeffs := fft.Transform(padded, d.twiddlesInv)
	for i := range coeffs {
		coeffs[i].Mul(&coeffs[i], &d.CardinalityInv)
	}
	return polynomial.Polynomial(coeffs), nil
}

// Evaluate evaluates poly on every point of the domain (forward FFT).
func (d *Domain) Evaluate(p polynomial.Polynomial) (polynomial.Polynomial, error) {
	if uint64(p.Len()) > d.Cardinality {
		return nil, ErrPolynomialTooLarge
	}
	padded := p.Pad(int(d.Cardinality))
	return polynomial.Polynomial(fft.Transform(padded, d.twiddles)), nil
}

// W returns the domain's primitive root of unity.
func (d *Domain) W() fr.Element { return d.Generator }

// WInv returns the inverse of the domain's primitive root of unity.
func (d *Domain) WInv() fr.Element { return d.GeneratorInv }

// DistributeOmega scales poly's i-th coefficient by Generator^i, the
// standard trick to evaluate a polynomial shifted by the domain generator.
func (d *Domain) DistributeOmega(p polynomial.Polynomial) polynomial.Polynomial {
	return p.Distribute(d.Generator)
}

// DistributeShift scales poly's i-th coefficient by CosetShift^i.
func (d *Domain) DistributeShift(p polynomial.Polynomial) polynomial.Polynomial {
	return p.Distribute(d.CosetShift)
}

// DistributeShiftInv scales poly's i-th coefficient by CosetShiftInv^i.
func (d *Domain) DistributeShiftInv(p polynomial.Polynomial) polynomial.Polynomial {
	return p.Distribute(d.CosetShiftInv)
}

// Vanishing returns the vanishing polynomial X^n - 1 of this domain.
func (d *Domain) Vanishing() polynomial.Polynomial {
	out := make(polynomial.Polynomial, d.Cardinality+1)
	out[0].SetOne()
	out[0].Neg(&out[0])
	out[d.Cardinality].SetOne()
	return out
}

// LagrangePolynomial returns the i-th Lagrange basis polynomial L_i, the
// unique polynomial of degree < n equal to 1 at domain element i and 0 at
// every other domain element.
func (d *Domain) LagrangePolynomial(i uint64) (polynomial.Polynomial, error) {
	if i >= d.Cardinality {
		return nil, ErrIndexOutOfRange
	}
	values := make([]fr.Element, d.Cardinality)
	values[i].SetOne()
	return d.Interpolate(values)
}

// LagrangeEvaluation evaluates the i-th Lagrange basis polynomial at z via
// the closed form L_i(z) = w^i * (z^n - 1) / (n * (z - w^i)), without ever
// building L_i explicitly.
func (d *Domain) LagrangeEvaluation(i uint64, z fr.Element) (fr.Element, error) {
	if i >= d.Cardinality {
		return fr.Element{}, ErrIndexOutOfRange
	}
	w := d.twiddles[i]

	var zN fr.Element
	zN.Exp(z, new(big.Int).SetUint64(d.Cardinality))

	var num fr.Element
	var one fr.Element
	one.SetOne()
	num.Sub(&zN, &one)
	num.Mul(&num, &w)

	var diff fr.Element
	diff.Sub(&z, &w)
	if diff.IsZero() {
		return fr.Element{}, ErrEvaluationOnDomain
	}
	var n fr.Element
	n.SetUint64(d.Cardinality)
	var denom fr.Element
	denom.Mul(&diff, &n)

	var denomInv, result fr.Element
	denomInv.Inverse(&denom)
	result.Mul(&num, &denomInv)
	return result, nil
}

// Mul computes the product of two or more polynomials by forward FFT,
// pointwise multiplication, and inverse FFT, all reduced modulo this
// domain's vanishing polynomial (the convolution is computed exactly only
// if the true product's degree is smaller than the domain's cardinality).
func (d *Domain) Mul(ps ...polynomial.Polynomial) (polynomial.Polynomial, error) {
	if len(ps) < 2 {
		return nil, ErrMismatchedOperands
	}
	for _, p := range ps {
		if uint64(p.Len()) > d.Cardinality {
			return nil, ErrPolynomialTooLarge
		}
		if p.IsZero() {
			return make(polynomial.Polynomial, d.Cardinality), nil
		}
	}
	acc, err := d.Evaluate(ps[0])
	if err != nil {
		return nil, err
	}
	for _, p := range ps[1:] {
		evals, err := d.Evaluate(p)
		if err != nil {
			return nil, err
		}
		acc = acc.MulSample(evals)
	}
	return d.Interpolate(acc)
}

// Div computes a/b pointwise in evaluation form. b must not vanish at any
// point of the domain: a zero sample of b is inverted to zero, so the result
// is wrong there; use CosetDiv in that case.
func (d *Domain) Div(a, b polynomial.Polynomial) (polynomial.Polynomial, error) {
	if a.IsZero() || b.IsZero() {
		return make(polynomial.Polynomial, d.Cardinality), nil
	}
	if uint64(a.Len()) > d.Cardinality || uint64(b.Len()) > d.Cardinality {
		return nil, ErrPolynomialTooLarge
	}
	aEvals, err := d.Evaluate(a)
	if err != nil {
		return nil, err
	}
	bEvals, err := d.Evaluate(b)
	if err != nil {
		return nil, err
	}
	bInv := bEvals.InvSample()
	return d.Interpolate(aEvals.MulSample(bInv))
}

// CosetDiv computes a/b over the domain shifted by CosetShift, avoiding the
// case where b vanishes at some point of the plain domain.
func (d *Domain) CosetDiv(a, b polynomial.Polynomial) (polynomial.Polynomial, error) {
	if a.IsZero() {
		return a.Clone(), nil
	}
	u, err := d.Div(d.DistributeShift(a), d.DistributeShift(b))
	if err != nil {
		return nil, err
	}
	return d.DistributeShiftInv(u), nil
}
