package bdfg

import (
	"crypto/sha256"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/kilic/polynom/domain"
	"github.com/kilic/polynom/kzg"
	"github.com/kilic/polynom/polynomial"
)

// Scenario 4 from the library's testable properties: n = 64, one random
// polynomial, shift list [1,2,3,10,11]; proof verifies, and the quotient and
// linearized quotient carry the expected degrees.
func TestBDFGSingleVerifiesAndQuotientDegrees(t *testing.T) {
	d := domain.NewDomain(6)
	srs, err := kzg.NewSRS(d)
	require.NoError(t, err)

	f := polynomial.Random(64)
	opening := NewProverOpening(f, []int64{1, 2, 3, 10, 11})

	prover := NewProver(srs, sha256.New, []byte("bdfg/single"))
	proof, err := prover.CreateProofSingle(opening)
	require.NoError(t, err)

	verifier := NewVerifier(srs, sha256.New, []byte("bdfg/single"))
	ok, err := verifier.VerifySingle(opening.Key, proof)
	require.NoError(t, err)
	require.True(t, ok)

	var w, z, zStar fr.Element
	w = d.W()
	z.SetUint64(999)
	zStar.SetUint64(123456)

	hx, err := opening.QuotientPolynomial(d, w, z)
	require.NoError(t, err)
	require.Equal(t, f.Degree()-opening.Key.OpeningSize(), hx.Degree())

	ux, err := opening.LinearizedQuotientPolynomial(d, w, z, zStar)
	require.NoError(t, err)
	require.Equal(t, f.Degree()-1, ux.Degree())
}

func TestBDFGSingleRejectsFlippedByte(t *testing.T) {
	d := domain.NewDomain(6)
	srs, err := kzg.NewSRS(d)
	require.NoError(t, err)

	f := polynomial.Random(64)
	opening := NewProverOpening(f, []int64{1, 2, 3})

	prover := NewProver(srs, sha256.New, []byte("bdfg/flip"))
	proof, err := prover.CreateProofSingle(opening)
	require.NoError(t, err)
	proof[0] ^= 0x01

	verifier := NewVerifier(srs, sha256.New, []byte("bdfg/flip"))
	ok, _ := verifier.VerifySingle(opening.Key, proof)
	require.False(t, ok)
}

// Scenario 5: n = 64, two random polynomials with shift lists [1,2,3] and
// [1,2]; batched proof verifies.
func TestBDFGBatchVerifies(t *testing.T) {
	d := domain.NewDomain(6)
	srs, err := kzg.NewSRS(d)
	require.NoError(t, err)

	f0 := polynomial.Random(64)
	f1 := polynomial.Random(64)
	opening0 := NewProverOpening(f0, []int64{1, 2, 3})
	opening1 := NewProverOpening(f1, []int64{1, 2})
	batch := NewBatchProverOpening([]*ProverOpening{opening0, opening1})

	prover := NewProver(srs, sha256.New, []byte("bdfg/batch"))
	proof, err := prover.CreateProofBatch(batch)
	require.NoError(t, err)

	verifier := NewVerifier(srs, sha256.New, []byte("bdfg/batch"))
	ok, err := verifier.VerifyBatch(batch.Key, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBDFGBatchRejectsAlteredEvaluation(t *testing.T) {
	d := domain.NewDomain(6)
	srs, err := kzg.NewSRS(d)
	require.NoError(t, err)

	f0 := polynomial.Random(64)
	f1 := polynomial.Random(64)
	opening0 := NewProverOpening(f0, []int64{1, 2})
	opening1 := NewProverOpening(f1, []int64{1})
	batch := NewBatchProverOpening([]*ProverOpening{opening0, opening1})

	prover := NewProver(srs, sha256.New, []byte("bdfg/batch-flip"))
	proof, err := prover.CreateProofBatch(batch)
	require.NoError(t, err)
	// First revealed evaluation: it follows the 64-byte commitments.
	proof[len(batch.Openings)*64] ^= 0xaa

	verifier := NewVerifier(srs, sha256.New, []byte("bdfg/batch-flip"))
	ok, _ := verifier.VerifyBatch(batch.Key, proof)
	require.False(t, ok)
}

func TestBatchKeyEvalPointsIsCanonicallyOrdered(t *testing.T) {
	d := domain.NewDomain(6)
	w := d.W()
	var z fr.Element
	z.SetUint64(7)

	k0 := NewMultiKey([]int64{3, 1})
	k1 := NewMultiKey([]int64{2, 1})
	batch := NewBatchKey([]*MultiKey{k0, k1})

	pts := batch.EvalPoints(w, z)
	// Union of {1,2,3} (deduped, sorted by shift then opening index): shift 1
	// appears in both openings but collapses to one point.
	require.Len(t, pts, 3)
	require.Equal(t, NewMultiKey([]int64{1, 2, 3}).EvalPoints(w, z), pts)
}
