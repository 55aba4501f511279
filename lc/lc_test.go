package lc

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/kilic/polynom/curve"
	"github.com/kilic/polynom/polynomial"
)

func TestCombineFrMatchesHorner(t *testing.T) {
	var e fr.Element
	e.SetUint64(5)
	lc := New(e)

	vals := make([]fr.Element, 4)
	for i := range vals {
		vals[i].SetUint64(uint64(i + 1))
	}
	got := lc.CombineFr(vals...)

	var want fr.Element
	for i := len(vals) - 1; i >= 0; i-- {
		want.Mul(&want, &e)
		want.Add(&want, &vals[i])
	}
	require.True(t, got.Equal(&want))
}

func TestCombinePolyMatchesScaleAndAdd(t *testing.T) {
	var e fr.Element
	e.SetUint64(3)
	lc := New(e)

	a := polynomial.Random(4)
	b := polynomial.Random(3)

	got := lc.CombinePoly(a, b)
	want := a.Add(b.Scale(e))
	require.True(t, got.Equal(want))
}

func TestCombinePointsMatchesScalarMulAndAdd(t *testing.T) {
	var e fr.Element
	e.SetUint64(9)
	lc := New(e)

	p0 := curve.G1Gen()
	p1 := curve.G1Gen().ScalarMul(e)

	got := lc.CombinePoints(p0, p1)
	want := p0.Add(p1.ScalarMul(e))
	require.True(t, got.Equal(want))
}

func TestCombineECCWithAux(t *testing.T) {
	var e fr.Element
	e.SetUint64(4)
	lc := New(e)

	var z0, z1 fr.Element
	z0.SetUint64(10)
	z1.SetUint64(20)

	p0 := curve.G1Gen().ScalarMul(z0)
	p1 := curve.G1Gen().ScalarMul(z1)

	gotW, gotR := lc.CombineECCWithAux(
		PointScalar{Point: p0, Scalar: z0},
		PointScalar{Point: p1, Scalar: z1},
	)

	wantW := p0.Add(p1.ScalarMul(e))

	var ez1 fr.Element
	ez1.Mul(&e, &z1)
	wantR := p0.ScalarMul(z0).Add(p1.ScalarMul(ez1))

	require.True(t, gotW.Equal(wantW))
	require.True(t, gotR.Equal(wantR))
}
