package fft

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func rootOfUnity(n uint64) fr.Element {
	// BN254 has 2-adicity 28; reduce the primitive 2^28-th root down to n.
	var w fr.Element
	w.SetString("1748695177688661943023146337482803886740723238769601073607632802312037301404")
	exp := 28
	for 1<<uint(exp) > int(n) {
		w.Square(&w)
		exp--
	}
	return w
}

func twiddles(w fr.Element, n uint64) []fr.Element {
	out := make([]fr.Element, n)
	out[0].SetOne()
	for i := uint64(1); i < n; i++ {
		out[i].Mul(&out[i-1], &w)
	}
	return out
}

func TestBitReversePanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	BitReverse(make([]fr.Element, 3))
}

func TestTransformRoundTrip(t *testing.T) {
	n := uint64(16)
	w := rootOfUnity(n)
	var wInv fr.Element
	wInv.Inverse(&w)

	tw := twiddles(w, n)
	twInv := twiddles(wInv, n)

	a := make([]fr.Element, n)
	for i := range a {
		a[i].SetUint64(uint64(i*i + 1))
	}

	evals := Transform(a, tw)
	back := Transform(evals, twInv)

	var nInv fr.Element
	nInv.SetUint64(n)
	nInv.Inverse(&nInv)
	for i := range back {
		back[i].Mul(&back[i], &nInv)
	}

	for i := range a {
		require.True(t, a[i].Equal(&back[i]), "index %d", i)
	}
}

func TestTransformIsStandardDFT(t *testing.T) {
	n := uint64(8)
	w := rootOfUnity(n)
	tw := twiddles(w, n)

	a := make([]fr.Element, n)
	for i := range a {
		a[i].SetUint64(uint64(i + 1))
	}
	got := Transform(a, tw)

	for k := 0; k < int(n); k++ {
		var want, wk fr.Element
		wk.SetOne()
		for j := 0; j < int(n); j++ {
			var term fr.Element
			term.Mul(&a[j], &wk)
			want.Add(&want, &term)
			wk.Mul(&wk, &tw[k])
		}
		require.True(t, got[k].Equal(&want), "index %d", k)
	}
}
