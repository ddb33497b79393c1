// Package ratfunc implements RatFunc, the rational function field built
// from pairs of intpoly.Poly: construction, canonicalization, arithmetic,
// derivative, evaluation, and string I/O (spec.md §3.4, §4.4).
//
// Grounded on FLINT's fmpz_poly_q module (original_source/src/fmpz_poly_q)
// for the canonicalization contract and Henrici arithmetic; the teacher
// has no quotient-of-polynomials type (lattigo's ring.Poly is never
// divided), so this package's shape otherwise follows intpoly's own
// function-per-op, output-aliasing-safe style.
package ratfunc

import (
	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/intpoly"
	"github.com/fractio/bigkernel/kernelerr"
)

// RatFunc is a rational function num/den with intpoly.Poly numerator and
// denominator. The canonical form invariant (spec.md §3.4) holds at every
// function boundary: den.Len() > 0, gcd(num,den) == 1, den's leading
// coefficient is strictly positive, and num == 0 implies den == 1.
type RatFunc struct {
	num *intpoly.Poly
	den *intpoly.Poly
}

// New returns the zero rational function, 0/1.
func New() *RatFunc {
	return &RatFunc{num: intpoly.New(), den: unitPoly()}
}

func unitPoly() *intpoly.Poly {
	return intpoly.NewFromCoeffs([]*bigint.Int{bigint.NewInt(1)})
}

// NewFromPolys builds a canonical RatFunc from a (num, den) pair, copying
// both inputs. Returns kernelerr.ErrDivByZero if den is the zero
// polynomial.
func NewFromPolys(num, den *intpoly.Poly) (*RatFunc, error) {
	if den.IsZero() {
		return nil, kernelerr.ErrDivByZero
	}
	r := &RatFunc{num: intpoly.Copy(num), den: intpoly.Copy(den)}
	r.canonicalize()
	return r, nil
}

// Num returns a copy of r's numerator.
func (r *RatFunc) Num() *intpoly.Poly { return intpoly.Copy(r.num) }

// Den returns a copy of r's denominator.
func (r *RatFunc) Den() *intpoly.Poly { return intpoly.Copy(r.den) }

// IsZero reports whether r == 0.
func (r *RatFunc) IsZero() bool { return r.num.IsZero() }

// IsOne reports whether r == 1.
func (r *RatFunc) IsOne() bool { return r.num.IsOne() && r.den.IsOne() }

// Set sets r to a copy of a's value.
func (r *RatFunc) Set(a *RatFunc) *RatFunc {
	if r == a {
		return r
	}
	r.num = intpoly.Copy(a.num)
	r.den = intpoly.Copy(a.den)
	return r
}

// Copy returns a fresh RatFunc equal to a.
func Copy(a *RatFunc) *RatFunc { return New().Set(a) }

// Equal reports whether a and b, both assumed canonical, represent the
// same rational function.
func Equal(a, b *RatFunc) bool {
	return intpoly.Equal(a.num, b.num) && intpoly.Equal(a.den, b.den)
}

// canonicalize restores the invariant documented on RatFunc: divide out
// gcd(num, den), then force den's leading coefficient positive, then pin
// num == 0 to the canonical 0/1 representative (spec.md §4.4.1).
func (r *RatFunc) canonicalize() {
	var g intpoly.Poly
	intpoly.GCD(&g, r.num, r.den)
	if !g.IsOne() && !g.IsZero() {
		var numR, denR intpoly.Poly
		intpoly.DivExact(&numR, r.num, &g)
		intpoly.DivExact(&denR, r.den, &g)
		r.num, r.den = intpoly.Copy(&numR), intpoly.Copy(&denR)
	}
	if r.den.LeadingCoeff().Sign() < 0 {
		var negNum, negDen intpoly.Poly
		intpoly.Neg(&negNum, r.num)
		intpoly.Neg(&negDen, r.den)
		r.num, r.den = intpoly.Copy(&negNum), intpoly.Copy(&negDen)
	}
	if r.num.IsZero() {
		r.den = unitPoly()
	}
}
