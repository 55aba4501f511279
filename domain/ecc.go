package domain

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/curve"
)

// ECCEvaluate evaluates a list of G1 points, read as the coefficients of a
// "polynomial" over G1, at every point of the domain: the same
// Cooley-Tukey butterfly network used for scalars, with field
// multiplication replaced by scalar multiplication.
func (d *Domain) ECCEvaluate(points []curve.G1) ([]curve.G1, error) {
	if uint64(len(points)) > d.Cardinality {
		return nil, ErrPolynomialTooLarge
	}
	padded := make([]curve.G1, d.Cardinality)
	copy(padded, points)
	return groupTransform(padded, d.twiddles), nil
}

// ECCInterpolate computes the Lagrange basis commitments: the unique
// sequence of G1 points such that ECCEvaluate of the result reproduces
// points on the domain. Used to build an SRS's Lagrange basis from its
// monomial basis.
func (d *Domain) ECCInterpolate(points []curve.G1) ([]curve.G1, error) {
	if uint64(len(points)) > d.Cardinality {
		return nil, ErrPolynomialTooLarge
	}
	padded := make([]curve.G1, d.Cardinality)
	copy(padded, points)
	result := groupTransform(padded, d.twiddlesInv)
	for i := range result {
		result[i] = result[i].ScalarMul(d.CardinalityInv)
	}
	return result, nil
}

func groupBitReverse(a []curve.G1) {
	n := uint(len(a))
	bitsN := 0
	for 1<<uint(bitsN) < n {
		bitsN++
	}
	for i := uint(0); i < n; i++ {
		r := reverseBitsUint(i, bitsN)
		if r > i {
			a[i], a[r] = a[r], a[i]
		}
	}
}

func reverseBitsUint(k uint, bits int) uint {
	var r uint
	for i := 0; i < bits; i++ {
		r = (r << 1) | (k & 1)
		k >>= 1
	}
	return r
}

func groupTransform(a []curve.G1, twiddles []fr.Element) []curve.G1 {
	n := len(a)
	out := make([]curve.G1, n)
	copy(out, a)
	groupBitReverse(out)

	exp := 0
	for 1<<uint(exp) < n {
		exp++
	}

	d := n >> 1
	for s := 1; s <= exp; s++ {
		m := 1 << s
		mm := m >> 1
		for k := 0; k < n; k += m {
			for j := 0; j < mm; j++ {
				w := twiddles[j*d]
				t := out[k+j+mm].ScalarMul(w)
				u := out[k+j]
				out[k+j] = u.Add(t)
				out[k+j+mm] = u.Sub(t)
			}
		}
		d >>= 1
	}
	return out
}
