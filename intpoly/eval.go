package intpoly

import "github.com/fractio/bigkernel/bigint"

// Evaluate computes p(x) via plain Horner's method: n-1 multiplications on
// the critical path, used as the reference implementation EvaluateDivConquer
// is checked against (spec.md §8.2).
func Evaluate(p *Poly, x *bigint.Int) *bigint.Int {
	out := bigint.NewInt(0)
	for i := p.Degree(); i >= 0; i-- {
		bigint.Mul(out, out, x)
		bigint.Add(out, out, p.Coeff(i))
	}
	return out
}

// EvaluateDivConquer computes p(x) organized as a binary split on the
// coefficient array rather than a linear Horner chain: each half is
// evaluated independently and recombined with a single power of x, so the
// critical path is O(log n) multiplications deep instead of O(n)
// (spec.md §4.3.9).
func EvaluateDivConquer(p *Poly, x *bigint.Int) *bigint.Int {
	if p.IsZero() {
		return bigint.NewInt(0)
	}
	return evalDivConquer(p.c, x)
}

func evalDivConquer(c []bigint.Int, x *bigint.Int) *bigint.Int {
	n := len(c)
	if n == 1 {
		return bigint.Copy(&c[0])
	}
	mid := n / 2
	lo := evalDivConquer(c[:mid], x)
	hi := evalDivConquer(c[mid:], x)
	var xm bigint.Int
	bigint.PowUi(&xm, x, uint64(mid))
	var hiShifted bigint.Int
	bigint.Mul(&hiShifted, hi, &xm)
	bigint.Add(lo, lo, &hiShifted)
	return lo
}
