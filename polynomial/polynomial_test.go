package polynomial

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestDegreeOneAndEvaluate(t *testing.T) {
	var z fr.Element
	z.SetUint64(7)
	p := DegreeOne(z)
	require.True(t, p.Evaluate(z).IsZero())
}

func TestAddSubRoundtrip(t *testing.T) {
	a := Random(5)
	b := Random(5)
	sum := a.Add(b)
	require.True(t, sum.Sub(b).Equal(a))
}

func TestMulNaiveDegree(t *testing.T) {
	a := Random(4)
	b := Random(3)
	c := a.MulNaive(b)
	require.Equal(t, a.Degree()+b.Degree(), c.Degree())
}

func TestLagrangeInterpolation(t *testing.T) {
	xs := make([]fr.Element, 5)
	ys := make([]fr.Element, 5)
	for i := range xs {
		xs[i].SetUint64(uint64(i + 1))
		ys[i].SetRandom()
	}
	p, err := LagrangeInterpolation(xs, ys)
	require.NoError(t, err)
	for i := range xs {
		require.True(t, p.Evaluate(xs[i]).Equal(&ys[i]))
	}
}

func TestLagrangeInterpolationRejectsDuplicatePoints(t *testing.T) {
	var x fr.Element
	x.SetUint64(3)
	xs := []fr.Element{x, x}
	ys := []fr.Element{x, x}
	_, err := LagrangeInterpolation(xs, ys)
	require.ErrorIs(t, err, ErrDistinctPoints)
}

func TestBarycentricMatchesLagrange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("barycentric evaluation matches Horner evaluation of the interpolant", prop.ForAll(
		func(seed int64) bool {
			n := 6
			xs := make([]fr.Element, n)
			ys := make([]fr.Element, n)
			for i := range xs {
				xs[i].SetUint64(uint64(seed) + uint64(i)*7 + 1)
				ys[i].SetRandom()
			}
			weights, err := BarycentricPreprocess(xs)
			if err != nil {
				return false
			}
			var z fr.Element
			z.SetUint64(uint64(seed) + 999983)

			got, err := BarycentricEvaluation(weights, ys, z)
			if err != nil {
				return false
			}
			p, err := LagrangeInterpolation(xs, ys)
			if err != nil {
				return false
			}
			want := p.Evaluate(z)
			return got.Equal(&want)
		},
		gen.Int64Range(1, 1<<20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
