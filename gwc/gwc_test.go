package gwc

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilic/polynom/domain"
	"github.com/kilic/polynom/kzg"
	"github.com/kilic/polynom/polynomial"
)

func TestNewKeyCanonicalizesOrder(t *testing.T) {
	k := NewKey(map[int64][]int{
		19: {3, 2, 1, 0},
		0:  {1, 0},
		2:  {3},
		1:  {0, 1, 3, 2},
	})
	require.Equal(t, []int64{0, 1, 2, 19}, []int64{
		k.Groups[0].Shift, k.Groups[1].Shift, k.Groups[2].Shift, k.Groups[3].Shift,
	})
	require.Equal(t, []int{0, 1}, k.Groups[0].Indices)
	require.Equal(t, []int{0, 1, 2, 3}, k.Groups[1].Indices)
	require.Equal(t, []int{3}, k.Groups[2].Indices)
	require.Equal(t, []int{0, 1, 2, 3}, k.Groups[3].Indices)
}

// Scenario 3 from the library's testable properties: n = 8, shift map
// {0:[1,0], 1:[0,1,3,2], 2:[3], 19:[3,2,1,0]}, four random polynomials of
// length 8.
func TestGWCProofVerifies(t *testing.T) {
	d := domain.NewDomain(3)
	srs, err := kzg.NewSRS(d)
	require.NoError(t, err)

	polys := []polynomial.Polynomial{
		polynomial.Random(8),
		polynomial.Random(8),
		polynomial.Random(8),
		polynomial.Random(8),
	}
	key := NewKey(map[int64][]int{
		0:  {1, 0},
		1:  {0, 1, 3, 2},
		2:  {3},
		19: {3, 2, 1, 0},
	})

	prover := NewProver(srs, sha256.New, []byte("gwc/test"))
	proof, err := prover.CreateProof(polys, key)
	require.NoError(t, err)

	verifier := NewVerifier(srs, sha256.New, []byte("gwc/test"))
	ok, err := verifier.Verify(key, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGWCProofRejectsFlippedByte(t *testing.T) {
	d := domain.NewDomain(3)
	srs, err := kzg.NewSRS(d)
	require.NoError(t, err)

	polys := []polynomial.Polynomial{
		polynomial.Random(8),
		polynomial.Random(8),
	}
	key := NewKey(map[int64][]int{0: {0, 1}})

	prover := NewProver(srs, sha256.New, []byte("gwc/flip"))
	proof, err := prover.CreateProof(polys, key)
	require.NoError(t, err)
	proof[len(proof)/2] ^= 0x40

	verifier := NewVerifier(srs, sha256.New, []byte("gwc/flip"))
	ok, _ := verifier.Verify(key, proof)
	require.False(t, ok)
}

func TestCommitmentSizeRejectsNonContiguousIndices(t *testing.T) {
	key := NewKey(map[int64][]int{0: {0, 2}})
	_, err := key.CommitmentSize()
	require.ErrorIs(t, err, ErrInconsistentPolyKey)
}

func TestCommitmentSizeRejectsEmptyKey(t *testing.T) {
	key := &Key{}
	_, err := key.CommitmentSize()
	require.ErrorIs(t, err, ErrEmptyGroups)
}
