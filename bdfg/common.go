// Package bdfg implements the Boneh-Drake-Fisch-Gabizon linearized
// multi-point batch opening: each polynomial is opened at a shift-derived
// set of points, a low-degree "linearization" polynomial collapses the
// opening to a single further division, and the proof carries exactly two
// witness commitments regardless of how many points or polynomials are
// involved.
//
// https://eprint.iacr.org/2020/081.pdf
package bdfg

import (
	"math/big"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/polynomial"
)

// VanishingAt returns the polynomial that vanishes at every point given,
// Z(X) = prod_i (X - points[i]).
func VanishingAt(points []fr.Element) polynomial.Polynomial {
	acc := polynomial.Polynomial{fr.One()}
	for _, p := range points {
		acc = acc.MulNaive(polynomial.DegreeOne(p))
	}
	return acc
}

// MultiKey is the opening descriptor shared by a single polynomial's prover
// and verifier side: a root-of-unity shift list whose evaluation points for
// challenge z are {z*w^s : s in Shifts}. Shifts are kept sorted ascending so
// that every cross-boundary enumeration (the union T and each T\Ti in
// BatchKey) is reproduced identically by prover and verifier, resolving the
// reference implementation's unordered-set construction.
type MultiKey struct {
	Shifts []int64
}

// NewMultiKey canonicalizes shifts into ascending order.
func NewMultiKey(shifts []int64) *MultiKey {
	s := append([]int64(nil), shifts...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return &MultiKey{Shifts: s}
}

// OpeningSize returns the number of evaluation points this key opens at.
func (k *MultiKey) OpeningSize() int { return len(k.Shifts) }

// EvalPoints returns {z*w^s : s in k.Shifts}, in k.Shifts order.
func (k *MultiKey) EvalPoints(w, z fr.Element) []fr.Element {
	out := make([]fr.Element, len(k.Shifts))
	for i, s := range k.Shifts {
		var wPow, pt fr.Element
		wPow.Exp(w, big.NewInt(s))
		pt.Mul(&z, &wPow)
		out[i] = pt
	}
	return out
}

// Vanishing returns Z_{T}(X) for this key's evaluation point set T.
func (k *MultiKey) Vanishing(w, z fr.Element) polynomial.Polynomial {
	return VanishingAt(k.EvalPoints(w, z))
}

// shiftRef pairs a shift with the index of the opening it belongs to, the
// canonical sort key for the union across a batch: by shift ascending, then
// by polynomial (opening) index ascending.
type shiftRef struct {
	shift      int64
	openingIdx int
}

func canonicalPointString(e fr.Element) string {
	var bi big.Int
	e.BigInt(&bi)
	return bi.String()
}

// BatchKey is a batch of single-polynomial openings sharing a domain
// generator, implementing the batched BDFG variant's shared point set T and
// per-opening complements T\Ti.
type BatchKey struct {
	Openings []*MultiKey
}

// NewBatchKey wraps a slice of single-opening keys into a batch key.
func NewBatchKey(openings []*MultiKey) *BatchKey {
	return &BatchKey{Openings: openings}
}

// OpeningSize returns the number of polynomials in the batch.
func (k *BatchKey) OpeningSize() int { return len(k.Openings) }

// EvalPoints returns the canonically ordered union T = union_i T_i: every
// (shift, opening index) pair sorted ascending by shift then opening index,
// with point values that repeat (because two openings share a shift, or
// share an evaluation point by coincidence) collapsed to a single entry.
func (k *BatchKey) EvalPoints(w, z fr.Element) []fr.Element {
	var refs []shiftRef
	for oi, o := range k.Openings {
		for _, s := range o.Shifts {
			refs = append(refs, shiftRef{shift: s, openingIdx: oi})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].shift != refs[j].shift {
			return refs[i].shift < refs[j].shift
		}
		return refs[i].openingIdx < refs[j].openingIdx
	})

	seen := map[string]bool{}
	out := make([]fr.Element, 0, len(refs))
	for _, r := range refs {
		var wPow, pt fr.Element
		wPow.Exp(w, big.NewInt(r.shift))
		pt.Mul(&z, &wPow)
		key := canonicalPointString(pt)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, pt)
	}
	return out
}

// Vanishing returns Z_T(X) over the full union of evaluation points.
func (k *BatchKey) Vanishing(w, z fr.Element) polynomial.Polynomial {
	return VanishingAt(k.EvalPoints(w, z))
}

// InverseVanishing returns Z'_i(X) = Z_T(X) / Z_{Ti}(X), built directly as
// the vanishing polynomial of the canonically ordered set difference T\Ti
// (never by polynomial division), so opening index's own points are
// excluded and the rest keep the order they have in T.
func (k *BatchKey) InverseVanishing(index int, w, z fr.Element) polynomial.Polynomial {
	all := k.EvalPoints(w, z)
	own := k.Openings[index].EvalPoints(w, z)

	ownSet := make(map[string]bool, len(own))
	for _, p := range own {
		ownSet[canonicalPointString(p)] = true
	}

	diff := make([]fr.Element, 0, len(all))
	for _, p := range all {
		if !ownSet[canonicalPointString(p)] {
			diff = append(diff, p)
		}
	}
	return VanishingAt(diff)
}
