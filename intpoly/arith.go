package intpoly

import (
	"github.com/fractio/bigkernel/bigint"
)

// Add sets dst = a + b. dst may alias a or b.
func Add(dst, a, b *Poly) {
	n := len(a.c)
	if len(b.c) > n {
		n = len(b.c)
	}
	tmp := make([]bigint.Int, n)
	for i := 0; i < n; i++ {
		bigint.Add(&tmp[i], a.Coeff(i), b.Coeff(i))
	}
	dst.c = tmp
	dst.normalize()
}

// Sub sets dst = a - b. dst may alias a or b.
func Sub(dst, a, b *Poly) {
	n := len(a.c)
	if len(b.c) > n {
		n = len(b.c)
	}
	tmp := make([]bigint.Int, n)
	for i := 0; i < n; i++ {
		bigint.Sub(&tmp[i], a.Coeff(i), b.Coeff(i))
	}
	dst.c = tmp
	dst.normalize()
}

// Neg sets dst = -a.
func Neg(dst, a *Poly) {
	tmp := make([]bigint.Int, len(a.c))
	for i := range a.c {
		bigint.Neg(&tmp[i], &a.c[i])
	}
	dst.c = tmp
	dst.normalize()
}

// ScalarMul sets dst = a * c, for an Int scalar c.
func ScalarMul(dst, a *Poly, c *bigint.Int) {
	if c.IsZero() {
		dst.SetLength(0)
		return
	}
	tmp := make([]bigint.Int, len(a.c))
	for i := range a.c {
		bigint.Mul(&tmp[i], &a.c[i], c)
	}
	dst.c = tmp
	dst.normalize()
}

// ScalarDivExact sets dst = a / c, assuming c divides every coefficient of
// a exactly. Returns kernelerr.ErrInexact (dst unchanged) otherwise.
func ScalarDivExact(dst, a *Poly, c *bigint.Int) error {
	tmp := make([]bigint.Int, len(a.c))
	for i := range a.c {
		if err := bigint.DivExact(&tmp[i], &a.c[i], c); err != nil {
			return err
		}
	}
	dst.c = tmp
	dst.normalize()
	return nil
}

// ShiftLeft sets dst = a * x^k (prepend k zero coefficients).
func ShiftLeft(dst, a *Poly, k int) {
	if a.IsZero() {
		dst.SetLength(0)
		return
	}
	tmp := make([]bigint.Int, len(a.c)+k)
	for i := range a.c {
		tmp[i+k].Set(&a.c[i])
	}
	dst.c = tmp
	dst.normalize()
}

// ShiftRight sets dst = floor(a / x^k) (drop the low k coefficients).
func ShiftRight(dst, a *Poly, k int) {
	if k >= len(a.c) {
		dst.SetLength(0)
		return
	}
	tmp := make([]bigint.Int, len(a.c)-k)
	for i := range tmp {
		tmp[i].Set(&a.c[i+k])
	}
	dst.c = tmp
	dst.normalize()
}

// Truncate sets dst = a mod x^n (keep only the first n coefficients).
func Truncate(dst, a *Poly, n int) {
	if n >= len(a.c) {
		dst.Set(a)
		return
	}
	tmp := make([]bigint.Int, n)
	for i := 0; i < n; i++ {
		tmp[i].Set(&a.c[i])
	}
	dst.c = tmp
	dst.normalize()
}

// Derivative sets dst = p', the formal derivative sum_i i*c_i*x^(i-1).
func Derivative(dst, p *Poly) {
	if p.Degree() <= 0 {
		dst.SetLength(0)
		return
	}
	tmp := make([]bigint.Int, p.Degree())
	for i := 1; i <= p.Degree(); i++ {
		bigint.MulSi(&tmp[i-1], p.Coeff(i), int64(i))
	}
	dst.c = tmp
	dst.normalize()
}

// Content returns the GCD of all of p's coefficients (0 for the zero
// polynomial).
func Content(p *Poly) *bigint.Int {
	g := bigint.NewInt(0)
	for i := range p.c {
		bigint.GCD(g, g, &p.c[i])
	}
	return g
}

// PrimitivePart sets dst = p / content(p), and returns the content. If p is
// zero, dst is set to zero and the returned content is zero.
func PrimitivePart(dst, p *Poly) *bigint.Int {
	cont := Content(p)
	if cont.IsZero() {
		dst.SetLength(0)
		return cont
	}
	ScalarDivExact(dst, p, cont)
	return cont
}

// Reverse sets dst to the coefficients of a in reverse order, i.e. dst[i]
// = a[n-1-i] for n = max(len(a), lenHint) (spec.md's supplemented
// feature: reversal with an explicit length lets callers reverse a
// polynomial padded to a known degree, as revert_series_lagrange_fast's
// block assembly needs).
func Reverse(dst, a *Poly, lenHint int) {
	n := lenHint
	if n < len(a.c) {
		n = len(a.c)
	}
	tmp := make([]bigint.Int, n)
	for i := 0; i < n; i++ {
		tmp[i].Set(a.Coeff(n - 1 - i))
	}
	dst.c = tmp
	dst.normalize()
}
