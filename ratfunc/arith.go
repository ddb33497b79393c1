package ratfunc

import (
	"github.com/fractio/bigkernel/intpoly"
	"github.com/fractio/bigkernel/kernelerr"
)

// Add sets dst = a + b via Henrici's algorithm (spec.md §4.4.2): let
// d = gcd(den_a, den_b), r = den_a/d, s = den_b/d; num = num_a*s + num_b*r,
// den = den_a*s; then cancel a second gcd(num, d) before canonicalizing.
func Add(dst, a, b *RatFunc) { addSub(dst, a, b, true) }

// Sub sets dst = a - b, via the same Henrici combination as Add with
// subtraction in place of addition.
func Sub(dst, a, b *RatFunc) { addSub(dst, a, b, false) }

func addSub(dst, a, b *RatFunc, add bool) {
	var d, r, s intpoly.Poly
	intpoly.GCD(&d, a.den, b.den)
	intpoly.DivExact(&r, a.den, &d)
	intpoly.DivExact(&s, b.den, &d)

	var n1s, n2r, num intpoly.Poly
	intpoly.Mul(&n1s, a.num, &s)
	intpoly.Mul(&n2r, b.num, &r)
	if add {
		intpoly.Add(&num, &n1s, &n2r)
	} else {
		intpoly.Sub(&num, &n1s, &n2r)
	}

	var den intpoly.Poly
	intpoly.Mul(&den, a.den, &s)

	var d2 intpoly.Poly
	intpoly.GCD(&d2, &num, &d)
	if !d2.IsOne() && !d2.IsZero() {
		var numR, denR intpoly.Poly
		intpoly.DivExact(&numR, &num, &d2)
		intpoly.DivExact(&denR, &den, &d2)
		num, den = numR, denR
	}

	dst.num = intpoly.Copy(&num)
	dst.den = intpoly.Copy(&den)
	dst.canonicalize()
}

// Mul sets dst = a * b, cross-cancelling gcd(num_a, den_b) and
// gcd(num_b, den_a) before multiplying (Henrici, spec.md §4.4.2).
func Mul(dst, a, b *RatFunc) {
	var g1, g2 intpoly.Poly
	intpoly.GCD(&g1, a.num, b.den)
	intpoly.GCD(&g2, b.num, a.den)

	var n1, n2, d1, d2 intpoly.Poly
	intpoly.DivExact(&n1, a.num, &g1)
	intpoly.DivExact(&n2, b.num, &g2)
	intpoly.DivExact(&d1, a.den, &g2)
	intpoly.DivExact(&d2, b.den, &g1)

	var num, den intpoly.Poly
	intpoly.Mul(&num, &n1, &n2)
	intpoly.Mul(&den, &d1, &d2)

	dst.num = intpoly.Copy(&num)
	dst.den = intpoly.Copy(&den)
	dst.canonicalize()
}

// Inv sets dst = 1/a by swapping num and den, flipping the sign of both if
// the new denominator (a's former numerator) has a negative leading
// coefficient. Returns kernelerr.ErrDivByZero if a == 0.
func Inv(dst, a *RatFunc) error {
	if a.num.IsZero() {
		return kernelerr.ErrDivByZero
	}
	num, den := intpoly.Copy(a.den), intpoly.Copy(a.num)
	if den.LeadingCoeff().Sign() < 0 {
		intpoly.Neg(num, num)
		intpoly.Neg(den, den)
	}
	dst.num, dst.den = num, den
	return nil
}

// Div sets dst = a / b, computed as a * (1/b) with the same
// cross-cancellation Mul uses (spec.md §4.4.2). Returns
// kernelerr.ErrDivByZero if b == 0.
func Div(dst, a, b *RatFunc) error {
	var binv RatFunc
	if err := Inv(&binv, b); err != nil {
		return err
	}
	Mul(dst, a, &binv)
	return nil
}

// Pow sets dst = a^e for e >= 0 as num^e / den^e; e < 0 computes 1/a first
// (returning kernelerr.ErrDivByZero if a == 0) and raises that to |e|.
// e == 0 yields 1/1 regardless of a (including a == 0, matching
// spec.md §4.4.2).
func Pow(dst, a *RatFunc, e int64) error {
	if e == 0 {
		dst.num, dst.den = unitPoly(), unitPoly()
		return nil
	}
	base := a
	ue := uint64(e)
	if e < 0 {
		var inv RatFunc
		if err := Inv(&inv, a); err != nil {
			return err
		}
		base = &inv
		ue = uint64(-e)
	}
	var num, den intpoly.Poly
	intpoly.PowUi(&num, base.num, ue)
	intpoly.PowUi(&den, base.den, ue)
	dst.num = intpoly.Copy(&num)
	dst.den = intpoly.Copy(&den)
	dst.canonicalize()
	return nil
}

// Derivative sets dst = a' via the quotient rule, cancelling
// gcd(den, den') before squaring the denominator (spec.md §4.4.2):
// num' = numD*(den/g) - num*(denD/g), den' = den*(den/g), for
// g = gcd(den, den').
func Derivative(dst, a *RatFunc) {
	var numD, denD intpoly.Poly
	intpoly.Derivative(&numD, a.num)
	intpoly.Derivative(&denD, a.den)

	var g, den1, dend1 intpoly.Poly
	intpoly.GCD(&g, a.den, &denD)
	intpoly.DivExact(&den1, a.den, &g)
	intpoly.DivExact(&dend1, &denD, &g)

	var t1, t2, num intpoly.Poly
	intpoly.Mul(&t1, &numD, &den1)
	intpoly.Mul(&t2, a.num, &dend1)
	intpoly.Sub(&num, &t1, &t2)

	var den intpoly.Poly
	intpoly.Mul(&den, a.den, &den1)

	dst.num = intpoly.Copy(&num)
	dst.den = intpoly.Copy(&den)
	dst.canonicalize()
}
