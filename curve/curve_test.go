package curve

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestG1AddNegIdentity(t *testing.T) {
	g := G1Gen()
	require.True(t, g.Add(g.Neg()).Equal(ZeroG1()))
	require.False(t, g.IsZero())
	require.True(t, ZeroG1().IsZero())
}

func TestG1ScalarMulDistributesOverAdd(t *testing.T) {
	var a, b fr.Element
	a.SetUint64(6)
	b.SetUint64(9)
	var sum fr.Element
	sum.Add(&a, &b)

	g := G1Gen()
	lhs := g.ScalarMul(sum)
	rhs := g.ScalarMul(a).Add(g.ScalarMul(b))
	require.True(t, lhs.Equal(rhs))
}

func TestG1MarshalRoundTrip(t *testing.T) {
	var s fr.Element
	s.SetUint64(424242)
	p := G1Gen().ScalarMul(s)

	encoded := p.Marshal()
	require.Len(t, encoded, UncompressedPointSize)

	decoded, err := UnmarshalG1(encoded)
	require.NoError(t, err)
	require.True(t, decoded.Equal(p))
}

func TestUnmarshalG1RejectsShortBuffer(t *testing.T) {
	_, err := UnmarshalG1(make([]byte, 10))
	require.ErrorIs(t, err, ErrShortBuffer)
}

func TestMultiExpMatchesSequentialCombination(t *testing.T) {
	var s0, s1, s2 fr.Element
	s0.SetUint64(3)
	s1.SetUint64(5)
	s2.SetUint64(7)

	points := []G1{G1Gen(), G1Gen().ScalarMul(s1), G1Gen().ScalarMul(s2)}
	scalars := []fr.Element{s0, s1, s2}

	got, err := MultiExp(points, scalars)
	require.NoError(t, err)

	want := points[0].ScalarMul(s0).Add(points[1].ScalarMul(s1)).Add(points[2].ScalarMul(s2))
	require.True(t, got.Equal(want))
}

func TestPairingCheckSelfConsistent(t *testing.T) {
	var s fr.Element
	s.SetUint64(17)
	a := G1Gen().ScalarMul(s)
	b := G2Gen()
	c := G1Gen()
	d := G2Gen().ScalarMul(s)

	ok, err := PairingCheck([]G1{a, c.Neg()}, []G2{b, d})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPairingCheckRejectsMismatchedPairs(t *testing.T) {
	_, err := PairingCheck([]G1{G1Gen()}, []G2{G2Gen(), G2Gen()})
	require.ErrorIs(t, err, ErrMismatchPairs)
}
