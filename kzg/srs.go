// Package kzg implements the trusted-setup structured reference string and
// the single-polynomial, single-point KZG commitment scheme shared as the
// common base of GWC and BDFG batch openings.
package kzg

import (
	"errors"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kilic/polynom/curve"
	"github.com/kilic/polynom/domain"
)

var (
	ErrInvalidPolynomialSize = errors.New("kzg: polynomial larger than SRS")
	ErrInvalidNbDigests      = errors.New("kzg: number of digests does not match number of polynomials")
	ErrVerifyOpeningProof    = errors.New("kzg: opening proof failed to verify")
)

// insecureTrapdoor is the spec's fixed, publicly known toxic waste. There is
// no MPC ceremony in this repository: callers that need real soundness must
// supply their own SRS derived from an actual trusted setup, via
// NewSRSFromTau with a securely-sampled tau.
var insecureTrapdoor fr.Element

func init() {
	if _, err := insecureTrapdoor.SetString("1443473767099151411963195764052474756349404108963148607823836485406351569209"); err != nil {
		panic(err)
	}
}

// SRS is the structured reference string shared by KZG, GWC and BDFG: a
// monomial basis [G, tau*G, tau^2*G, ...] in G1, its Lagrange-basis
// equivalent (lazily computed), and the single G2 element tau*G2 needed by
// the pairing check.
type SRS struct {
	Domain *domain.Domain
	G1     []curve.G1
	G2Tau  curve.G2

	lagrangeOnce sync.Once
	lagrangeG1   []curve.G1
}

// NewSRS builds an SRS over d using the spec's fixed insecure trapdoor.
func NewSRS(d *domain.Domain) (*SRS, error) {
	return NewSRSFromTau(d, insecureTrapdoor)
}

// NewSRSFromTau builds an SRS over d using an explicit trapdoor, useful for
// tests that want a distinct or smaller-than-production toxic waste value.
func NewSRSFromTau(d *domain.Domain, tau fr.Element) (*SRS, error) {
	n := int(d.Cardinality)
	bases := make([]curve.G1, n)
	bases[0] = curve.G1Gen()
	for i := 1; i < n; i++ {
		bases[i] = bases[i-1].ScalarMul(tau)
	}
	return &SRS{
		Domain: d,
		G1:     bases,
		G2Tau:  curve.G2Gen().ScalarMul(tau),
	}, nil
}

// LagrangeBases lazily computes and memoizes the Lagrange-basis commitments
// L_0(tau)*G, ..., L_{n-1}(tau)*G, via ECCInterpolate over the monomial
// basis.
func (s *SRS) LagrangeBases() ([]curve.G1, error) {
	var err error
	s.lagrangeOnce.Do(func() {
		s.lagrangeG1, err = s.Domain.ECCInterpolate(s.G1)
	})
	if err != nil {
		return nil, err
	}
	return s.lagrangeG1, nil
}
