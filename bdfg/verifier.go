package bdfg

import (
	"errors"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/curve"
	"github.com/kilic/polynom/kzg"
	"github.com/kilic/polynom/lc"
	"github.com/kilic/polynom/polynomial"
	"github.com/kilic/polynom/transcript"
)

var ErrVerifyOpeningProof = errors.New("bdfg: opening proof failed to verify")

// LowDegreeEquivalent reconstructs r(X) from the verifier's side: the
// revealed evaluations paired with key's evaluation points for challenge z,
// the same low-degree polynomial the prover built from its owned
// polynomial.
func LowDegreeEquivalent(key *MultiKey, w, z fr.Element, evals []fr.Element) (polynomial.Polynomial, error) {
	pts := key.EvalPoints(w, z)
	return polynomial.LagrangeInterpolation(pts, evals)
}

func readG1(r *transcript.Reader) (curve.G1, error) {
	p, err := r.ReadPoint(curve.UncompressedPointSize, func(b []byte) (transcript.Marshaler, error) {
		g, err := curve.UnmarshalG1(b)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	if err != nil {
		return curve.G1{}, err
	}
	return p.(curve.G1), nil
}

// Verifier checks BDFG opening proofs against a shared SRS.
type Verifier struct {
	SRS     *kzg.SRS
	NewHash func() hash.Hash
	Person  []byte
}

// NewVerifier returns a Verifier bound to srs.
func NewVerifier(srs *kzg.SRS, newHash func() hash.Hash, person []byte) *Verifier {
	return &Verifier{SRS: srs, NewHash: newHash, Person: person}
}

// VerifySingle checks a proof produced by Prover.CreateProofSingle against
// key.
func (v *Verifier) VerifySingle(key *MultiKey, proof []byte) (bool, error) {
	r := transcript.NewReader(v.NewHash, v.Person, proof)

	F, err := readG1(r)
	if err != nil {
		return false, err
	}

	omega := v.SRS.Domain.W()
	z := r.Challenge()

	evals := make([]fr.Element, key.OpeningSize())
	for i := range evals {
		e, err := r.ReadScalar()
		if err != nil {
			return false, err
		}
		evals[i] = e
	}

	W, err := readG1(r)
	if err != nil {
		return false, err
	}

	// Linearization challenge zStar: derived here, after the first witness,
	// at the same transcript position where the prover drew it to build the
	// second witness W2.
	x := r.Challenge()

	W2, err := readG1(r)
	if err != nil {
		return false, err
	}

	rx, err := LowDegreeEquivalent(key, omega, z, evals)
	if err != nil {
		return false, err
	}
	R := curve.G1Gen().ScalarMul(rx.Evaluate(x))

	zx := key.Vanishing(omega, z)
	L := F.Sub(R).Sub(W.ScalarMul(zx.Evaluate(x)))

	combo := W2.ScalarMul(x).Add(L)

	ok, err := curve.PairingCheck([]curve.G1{W2, combo}, []curve.G2{v.SRS.G2Tau, curve.G2Gen().Neg()})
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrVerifyOpeningProof
	}
	return true, nil
}

// VerifyBatch checks a proof produced by Prover.CreateProofBatch against
// key.
func (v *Verifier) VerifyBatch(key *BatchKey, proof []byte) (bool, error) {
	r := transcript.NewReader(v.NewHash, v.Person, proof)

	commitments := make([]curve.G1, key.OpeningSize())
	for i := range commitments {
		c, err := readG1(r)
		if err != nil {
			return false, err
		}
		commitments[i] = c
	}

	omega := v.SRS.Domain.W()
	z := r.Challenge()

	evals := make([][]fr.Element, key.OpeningSize())
	for i, o := range key.Openings {
		evalsI := make([]fr.Element, o.OpeningSize())
		for j := range evalsI {
			e, err := r.ReadScalar()
			if err != nil {
				return false, err
			}
			evalsI[j] = e
		}
		evals[i] = evalsI
	}

	alpha := lc.New(r.Challenge())

	W, err := readG1(r)
	if err != nil {
		return false, err
	}

	x := r.Challenge()

	W2, err := readG1(r)
	if err != nil {
		return false, err
	}

	linContribs := make([]curve.G1, key.OpeningSize())
	for i, o := range key.Openings {
		rix, err := LowDegreeEquivalent(o, omega, z, evals[i])
		if err != nil {
			return false, err
		}
		zix := key.InverseVanishing(i, omega, z)
		term := commitments[i].Sub(curve.G1Gen().ScalarMul(rix.Evaluate(x)))
		linContribs[i] = term.ScalarMul(zix.Evaluate(x))
	}
	L := alpha.CombinePoints(linContribs...)

	zx := key.Vanishing(omega, z)
	L = L.Sub(W.ScalarMul(zx.Evaluate(x)))

	combo := W2.ScalarMul(x).Add(L)

	ok, err := curve.PairingCheck([]curve.G1{W2, combo}, []curve.G2{v.SRS.G2Tau, curve.G2Gen().Neg()})
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrVerifyOpeningProof
	}
	return true, nil
}
