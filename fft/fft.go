// Package fft implements the radix-2 Cooley-Tukey butterfly network shared by
// the domain package's forward and inverse transforms.
package fft

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// BitReverse permutes a into bit-reversed order in place. len(a) must be a
// power of two.
func BitReverse(a []fr.Element) {
	n := uint(len(a))
	if n == 0 || n&(n-1) != 0 {
		panic("fft: BitReverse requires a power-of-two length")
	}
	bits := 0
	for 1<<uint(bits) < n {
		bits++
	}
	for i := uint(0); i < n; i++ {
		r := reverseBits(i, bits)
		if r > i {
			a[i], a[r] = a[r], a[i]
		}
	}
}

func reverseBits(k uint, bits int) uint {
	var r uint
	for i := 0; i < bits; i++ {
		r = (r << 1) | (k & 1)
		k >>= 1
	}
	return r
}

// Transform evaluates a (or interpolates, depending on which twiddle table is
// passed) over the n-th roots of unity listed in twiddles, where
// twiddles[i] = omega^i for the domain's generator omega. len(a) must equal
// len(twiddles) and both must be powers of two. The input is copied; a is
// left untouched.
func Transform(a []fr.Element, twiddles []fr.Element) []fr.Element {
	n := len(a)
	if n != len(twiddles) {
		panic("fft: Transform requires matching input and twiddle table lengths")
	}
	out := make([]fr.Element, n)
	copy(out, a)
	BitReverse(out)

	exp := 0
	for 1<<uint(exp) < n {
		exp++
	}

	d := n >> 1
	for s := 1; s <= exp; s++ {
		m := 1 << s
		mm := m >> 1
		for k := 0; k < n; k += m {
			for j := 0; j < mm; j++ {
				w := twiddles[j*d]
				var t, u fr.Element
				t.Mul(&w, &out[k+j+mm])
				u = out[k+j]
				out[k+j].Add(&u, &t)
				out[k+j+mm].Sub(&u, &t)
			}
		}
		d >>= 1
	}
	return out
}
