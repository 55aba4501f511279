package kzg

import (
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/curve"
	"github.com/kilic/polynom/lc"
	"github.com/kilic/polynom/polynomial"
	"github.com/kilic/polynom/transcript"
)

// Commit computes sum_i p[i] * srs.G1[i], the monomial-basis KZG
// commitment to p.
func Commit(p polynomial.Polynomial, srs *SRS) (curve.G1, error) {
	if p.Len() > len(srs.G1) {
		return curve.G1{}, ErrInvalidPolynomialSize
	}
	return curve.MultiExp(srs.G1[:p.Len()], []fr.Element(p))
}

// CommitLagrange computes the commitment to p treated as a vector of
// evaluations on the SRS's domain, via the Lagrange basis.
func CommitLagrange(p polynomial.Polynomial, srs *SRS) (curve.G1, error) {
	bases, err := srs.LagrangeBases()
	if err != nil {
		return curve.G1{}, err
	}
	if p.Len() > len(bases) {
		return curve.G1{}, ErrInvalidPolynomialSize
	}
	return curve.MultiExp(bases[:p.Len()], []fr.Element(p))
}

// CommitMany commits to each polynomial in turn.
func CommitMany(srs *SRS, ps ...polynomial.Polynomial) ([]curve.G1, error) {
	out := make([]curve.G1, len(ps))
	for i, p := range ps {
		c, err := Commit(p, srs)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func decodeG1(b []byte) (transcript.Marshaler, error) {
	p, err := curve.UnmarshalG1(b)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Prover creates KZG opening proofs against a shared SRS.
type Prover struct {
	SRS     *SRS
	NewHash func() hash.Hash
	Person  []byte
}

// NewProver returns a Prover bound to srs, using newHash to build the
// transcript's Fiat-Shamir hash (e.g. sha256.New).
func NewProver(srs *SRS, newHash func() hash.Hash, person []byte) *Prover {
	return &Prover{SRS: srs, NewHash: newHash, Person: person}
}

// CreateProof proves knowledge of p's evaluation at a Fiat-Shamir-derived
// point z. The returned proof is self-contained: it embeds the commitment
// to p, so a verifier needs nothing but the proof bytes.
func (pr *Prover) CreateProof(p polynomial.Polynomial) ([]byte, error) {
	w := transcript.NewWriter(pr.NewHash, pr.Person)

	commitment, err := Commit(p, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(commitment)
	z := w.Challenge()

	eval := p.Evaluate(z)
	qx := p.Sub(polynomial.Polynomial{eval})
	wx, err := pr.SRS.Domain.Div(qx, polynomial.DegreeOne(z))
	if err != nil {
		return nil, err
	}
	w.WriteScalar(eval)

	witness, err := Commit(wx, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(witness)

	return w.Message(), nil
}

// CreateProofBatch proves the evaluation of several polynomials at a single
// Fiat-Shamir-derived point, folded under a second challenge.
func (pr *Prover) CreateProofBatch(ps []polynomial.Polynomial) ([]byte, error) {
	if len(ps) < 2 {
		return nil, ErrInvalidNbDigests
	}
	w := transcript.NewWriter(pr.NewHash, pr.Person)

	commitments, err := CommitMany(pr.SRS, ps...)
	if err != nil {
		return nil, err
	}
	for _, c := range commitments {
		w.WritePoint(c)
	}

	z := w.Challenge()
	alpha := lc.New(w.Challenge())

	evals := polynomial.Polynomial(make([]fr.Element, len(ps)))
	for i, p := range ps {
		evals[i] = p.Evaluate(z)
		w.WriteScalar(evals[i])
	}

	shifted := make([]polynomial.Polynomial, len(ps))
	for i, p := range ps {
		shifted[i] = p.Sub(polynomial.Polynomial{evals[i]})
	}
	ux := alpha.CombinePoly(shifted...)
	wx, err := pr.SRS.Domain.Div(ux, polynomial.DegreeOne(z))
	if err != nil {
		return nil, err
	}

	witness, err := Commit(wx, pr.SRS)
	if err != nil {
		return nil, err
	}
	w.WritePoint(witness)

	return w.Message(), nil
}

// Verifier checks KZG opening proofs against a shared SRS.
type Verifier struct {
	SRS     *SRS
	NewHash func() hash.Hash
	Person  []byte
}

// NewVerifier returns a Verifier bound to srs.
func NewVerifier(srs *SRS, newHash func() hash.Hash, person []byte) *Verifier {
	return &Verifier{SRS: srs, NewHash: newHash, Person: person}
}

// Verify checks a proof produced by Prover.CreateProof.
func (v *Verifier) Verify(proof []byte) (bool, error) {
	r := transcript.NewReader(v.NewHash, v.Person, proof)

	commitment, err := r.ReadPoint(curve.UncompressedPointSize, decodeG1)
	if err != nil {
		return false, err
	}
	F := commitment.(curve.G1)
	z := r.Challenge()

	eval, err := r.ReadScalar()
	if err != nil {
		return false, err
	}

	witness, err := r.ReadPoint(curve.UncompressedPointSize, decodeG1)
	if err != nil {
		return false, err
	}
	W := witness.(curve.G1)

	var negEval fr.Element
	negEval.Neg(&eval)
	E := curve.G1Gen().ScalarMul(negEval)
	zW := W.ScalarMul(z)
	combo := zW.Add(F).Add(E)

	negG2 := curve.G2Gen().Neg()
	ok, err := curve.PairingCheck([]curve.G1{W, combo}, []curve.G2{v.SRS.G2Tau, negG2})
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrVerifyOpeningProof
	}
	return true, nil
}

// VerifyBatch checks a proof produced by Prover.CreateProofBatch for
// nbPolynomials polynomials.
func (v *Verifier) VerifyBatch(nbPolynomials int, proof []byte) (bool, error) {
	r := transcript.NewReader(v.NewHash, v.Person, proof)

	commitments := make([]curve.G1, nbPolynomials)
	for i := range commitments {
		p, err := r.ReadPoint(curve.UncompressedPointSize, decodeG1)
		if err != nil {
			return false, err
		}
		commitments[i] = p.(curve.G1)
	}

	z := r.Challenge()
	alpha := lc.New(r.Challenge())

	F := alpha.CombinePoints(commitments...)

	evals := make([]fr.Element, nbPolynomials)
	for i := range evals {
		e, err := r.ReadScalar()
		if err != nil {
			return false, err
		}
		evals[i] = e
	}
	eCombined := alpha.CombineFr(evals...)
	var negE fr.Element
	negE.Neg(&eCombined)
	E := curve.G1Gen().ScalarMul(negE)

	witness, err := r.ReadPoint(curve.UncompressedPointSize, decodeG1)
	if err != nil {
		return false, err
	}
	W := witness.(curve.G1)
	zW := W.ScalarMul(z)

	combo := zW.Add(F).Add(E)
	negG2 := curve.G2Gen().Neg()
	ok, err := curve.PairingCheck([]curve.G1{W, combo}, []curve.G2{v.SRS.G2Tau, negG2})
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrVerifyOpeningProof
	}
	return true, nil
}
