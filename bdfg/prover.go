package bdfg

import (
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/domain"
	"github.com/kilic/polynom/kzg"
	"github.com/kilic/polynom/lc"
	"github.com/kilic/polynom/polynomial"
	"github.com/kilic/polynom/transcript"
)

// ProverOpening is one polynomial together with the shift set it will be
// opened at.
type ProverOpening struct {
	Key  *MultiKey
	Poly polynomial.Polynomial
}

// NewProverOpening builds a prover-side opening of poly at shifts.
func NewProverOpening(poly polynomial.Polynomial, shifts []int64) *ProverOpening {
	return &ProverOpening{Key: NewMultiKey(shifts), Poly: poly}
}

// Evaluate returns [poly(t) : t in Key.EvalPoints(z)].
func (o *ProverOpening) Evaluate(w, z fr.Element) []fr.Element {
	return o.Poly.EvaluateMulti(o.Key.EvalPoints(w, z))
}

// LowDegreeEquivalent returns r(X), the unique polynomial of degree <
// Key.OpeningSize() agreeing with poly on every evaluation point.
func (o *ProverOpening) LowDegreeEquivalent(w, z fr.Element) (polynomial.Polynomial, error) {
	pts := o.Key.EvalPoints(w, z)
	evals := o.Poly.EvaluateMulti(pts)
	return polynomial.LagrangeInterpolation(pts, evals)
}

// QuotientPolynomial returns h(X) = (poly(X) - r(X)) / Z_T(X).
func (o *ProverOpening) QuotientPolynomial(d *domain.Domain, w, z fr.Element) (polynomial.Polynomial, error) {
	zx := o.Key.Vanishing(w, z)
	rx, err := o.LowDegreeEquivalent(w, z)
	if err != nil {
		return nil, err
	}
	return d.Div(o.Poly.Sub(rx), zx)
}

// LinearisationPolynomial returns L(X) = poly(X) - r(zStar) - h(X)*Z_T(zStar),
// where T is fixed by z (the set-defining challenge) but r and Z_T are
// evaluated at a second, independently drawn challenge zStar. Because
// h(X)*Z_T(X) = poly(X) - r(X) identically (not just on T), substituting
// X = zStar always gives L(zStar) = 0, for any zStar - including one the
// prover could not have predicted when it fixed T and built r, h.
func (o *ProverOpening) LinearisationPolynomial(d *domain.Domain, w, z, zStar fr.Element) (polynomial.Polynomial, error) {
	zx := o.Key.Vanishing(w, z)
	zEval := zx.Evaluate(zStar)

	rx, err := o.LowDegreeEquivalent(w, z)
	if err != nil {
		return nil, err
	}
	rEval := rx.Evaluate(zStar)

	hx, err := o.QuotientPolynomial(d, w, z)
	if err != nil {
		return nil, err
	}

	return o.Poly.Sub(polynomial.Polynomial{rEval}).Sub(hx.Scale(zEval)), nil
}

// LinearizedQuotientPolynomial returns u(X) = L(X) / (X - zStar).
func (o *ProverOpening) LinearizedQuotientPolynomial(d *domain.Domain, w, z, zStar fr.Element) (polynomial.Polynomial, error) {
	lx, err := o.LinearisationPolynomial(d, w, z, zStar)
	if err != nil {
		return nil, err
	}
	return d.Div(lx, polynomial.DegreeOne(zStar))
}

// BatchProverOpening batches several single-polynomial openings, possibly
// over distinct shift sets, into one linearized proof.
type BatchProverOpening struct {
	Key      *BatchKey
	Openings []*ProverOpening
}

// NewBatchProverOpening wraps openings into a batch.
func NewBatchProverOpening(openings []*ProverOpening) *BatchProverOpening {
	keys := make([]*MultiKey, len(openings))
	for i, o := range openings {
		keys[i] = o.Key
	}
	return &BatchProverOpening{Key: NewBatchKey(keys), Openings: openings}
}

// Polynomials returns the underlying polynomials, in opening order.
func (b *BatchProverOpening) Polynomials() []polynomial.Polynomial {
	out := make([]polynomial.Polynomial, len(b.Openings))
	for i, o := range b.Openings {
		out[i] = o.Poly
	}
	return out
}

// Evaluate returns, for every opening, its evaluations at its own points.
func (b *BatchProverOpening) Evaluate(w, z fr.Element) [][]fr.Element {
	out := make([][]fr.Element, len(b.Openings))
	for i, o := range b.Openings {
		out[i] = o.Evaluate(w, z)
	}
	return out
}

// LinearisationContrib returns (f_i(X) - r_i(zStar)) * Z'_i(zStar), opening
// index i's contribution to the batch's combined linearization, evaluated at
// the second, post-witness challenge zStar rather than the set-defining z.
func (b *BatchProverOpening) LinearisationContrib(index int, d *domain.Domain, w, z, zStar fr.Element) (polynomial.Polynomial, error) {
	zInvX := b.Key.InverseVanishing(index, w, z)
	zInvEval := zInvX.Evaluate(zStar)

	o := b.Openings[index]
	rx, err := o.LowDegreeEquivalent(w, z)
	if err != nil {
		return nil, err
	}
	rEval := rx.Evaluate(zStar)

	return o.Poly.Sub(polynomial.Polynomial{rEval}).Scale(zInvEval), nil
}

// QuotientPolynomial returns h(X) = sum_i alpha^i * h_i(X), the per-opening
// quotients folded under the batching challenge.
func (b *BatchProverOpening) QuotientPolynomial(alpha *lc.LinearCombination, d *domain.Domain, w, z fr.Element) (polynomial.Polynomial, error) {
	contribs := make([]polynomial.Polynomial, len(b.Openings))
	for i, o := range b.Openings {
		hx, err := o.QuotientPolynomial(d, w, z)
		if err != nil {
			return nil, err
		}
		contribs[i] = hx
	}
	return alpha.CombinePoly(contribs...), nil
}

// LinearizedQuotientPolynomial returns u(X) = L(X) / (X - zStar), where
// L(X) = sum_i alpha^i * linearisation_contrib_i(X) - h(X)*Z_T(zStar), zStar
// being the challenge drawn after the batch's combined witness h is
// committed.
func (b *BatchProverOpening) LinearizedQuotientPolynomial(alpha *lc.LinearCombination, d *domain.Domain, w, z, zStar fr.Element) (polynomial.Polynomial, error) {
	contribs := make([]polynomial.Polynomial, len(b.Openings))
	for i := range b.Openings {
		c, err := b.LinearisationContrib(i, d, w, z, zStar)
		if err != nil {
			return nil, err
		}
		contribs[i] = c
	}

	qx, err := b.QuotientPolynomial(alpha, d, w, z)
	if err != nil {
		return nil, err
	}

	zx := b.Key.Vanishing(w, z)
	zEval := zx.Evaluate(zStar)

	lx := alpha.CombinePoly(contribs...).Sub(qx.Scale(zEval))
	return d.Div(lx, polynomial.DegreeOne(zStar))
}

// Prover creates BDFG opening proofs against a shared SRS.
type Prover struct {
	SRS     *kzg.SRS
	NewHash func() hash.Hash
	Person  []byte
}

// NewProver returns a Prover bound to srs.
func NewProver(srs *kzg.SRS, newHash func() hash.Hash, person []byte) *Prover {
	return &Prover{SRS: srs, NewHash: newHash, Person: person}
}

// CreateProofSingle proves every evaluation of opening.Poly at its shifted
// points, linearized to two witness commitments.
func (pr *Prover) CreateProofSingle(opening *ProverOpening) ([]byte, error) {
	w := transcript.NewWriter(pr.NewHash, pr.Person)

	commitment, err := kzg.Commit(opening.Poly, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(commitment)

	omega := pr.SRS.Domain.W()
	z := w.Challenge()

	for _, e := range opening.Evaluate(omega, z) {
		w.WriteScalar(e)
	}

	hx, err := opening.QuotientPolynomial(pr.SRS.Domain, omega, z)
	if err != nil {
		return nil, err
	}
	hCommit, err := kzg.Commit(hx, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(hCommit)

	// zStar is the linearization challenge: drawn only now, after h is
	// committed, so the prover could not have biased h or the evaluation set
	// towards a favorable zStar.
	zStar := w.Challenge()

	h2x, err := opening.LinearizedQuotientPolynomial(pr.SRS.Domain, omega, z, zStar)
	if err != nil {
		return nil, err
	}
	h2Commit, err := kzg.Commit(h2x, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(h2Commit)

	return w.Message(), nil
}

// CreateProofBatch proves a batch of openings, folded under a combining
// challenge alpha into two witness commitments.
func (pr *Prover) CreateProofBatch(batch *BatchProverOpening) ([]byte, error) {
	w := transcript.NewWriter(pr.NewHash, pr.Person)

	commitments, err := kzg.CommitMany(pr.SRS, batch.Polynomials()...)
	if err != nil {
		return nil, err
	}
	for _, c := range commitments {
		w.WritePoint(c)
	}

	omega := pr.SRS.Domain.W()
	z := w.Challenge()

	for _, evalsI := range batch.Evaluate(omega, z) {
		for _, e := range evalsI {
			w.WriteScalar(e)
		}
	}

	alpha := lc.New(w.Challenge())

	hx, err := batch.QuotientPolynomial(alpha, pr.SRS.Domain, omega, z)
	if err != nil {
		return nil, err
	}
	hCommit, err := kzg.Commit(hx, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(hCommit)

	zStar := w.Challenge()

	h2x, err := batch.LinearizedQuotientPolynomial(alpha, pr.SRS.Domain, omega, z, zStar)
	if err != nil {
		return nil, err
	}
	h2Commit, err := kzg.Commit(h2x, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(h2Commit)

	return w.Message(), nil
}
