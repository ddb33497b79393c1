package ratfunc

import (
	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/intpoly"
)

// Evaluate evaluates a at x = xNum/xDen (xDen == 1 for an integer point),
// returning the result as a reduced fraction resNum/resDen with resDen
// strictly positive. pole reports whether a's denominator vanished at x,
// in which case resNum/resDen are unspecified (spec.md §4.4.2).
func Evaluate(a *RatFunc, xNum, xDen *bigint.Int) (resNum, resDen *bigint.Int, pole bool) {
	nNum, nDen := evalPolyRational(a.num, xNum, xDen)
	dNum, dDen := evalPolyRational(a.den, xNum, xDen)
	if dNum.IsZero() {
		return nil, nil, true
	}

	resNum = bigint.NewInt(0)
	resDen = bigint.NewInt(0)
	bigint.Mul(resNum, nNum, dDen)
	bigint.Mul(resDen, nDen, dNum)

	var g bigint.Int
	bigint.GCD(&g, resNum, resDen)
	if !g.IsZero() && g.Cmp(bigint.NewInt(1)) != 0 {
		bigint.DivExact(resNum, resNum, &g)
		bigint.DivExact(resDen, resDen, &g)
	}
	if resDen.Sign() < 0 {
		bigint.Neg(resNum, resNum)
		bigint.Neg(resDen, resDen)
	}
	return resNum, resDen, false
}

// EvaluateInt is the Evaluate convenience for an integer evaluation point.
func EvaluateInt(a *RatFunc, x *bigint.Int) (resNum, resDen *bigint.Int, pole bool) {
	return Evaluate(a, x, bigint.NewInt(1))
}

// evalPolyRational evaluates the integer polynomial p at xNum/xDen via
// Horner's method carried out in fractions, returning an unreduced
// (numerator, denominator) pair: p's own evaluation is the "polynomial
// over the integers" case of spec.md §4.3.9/§4.4.2; this generalizes it to
// a rational evaluation point for the "polynomial over a rational field"
// case the same section calls for.
func evalPolyRational(p *intpoly.Poly, xNum, xDen *bigint.Int) (num, den *bigint.Int) {
	num = bigint.NewInt(0)
	den = bigint.NewInt(1)
	for i := p.Degree(); i >= 0; i-- {
		// acc = acc*x + c_i
		//     = (accNum*xNum + c_i*accDen*xDen) / (accDen*xDen)
		var t1, cDen, t2, newNum, newDen bigint.Int
		bigint.Mul(&t1, num, xNum)
		bigint.Mul(&cDen, p.Coeff(i), den)
		bigint.Mul(&t2, &cDen, xDen)
		bigint.Add(&newNum, &t1, &t2)
		bigint.Mul(&newDen, den, xDen)
		num, den = &newNum, &newDen
	}
	var g bigint.Int
	bigint.GCD(&g, num, den)
	if !g.IsZero() && g.Cmp(bigint.NewInt(1)) != 0 {
		bigint.DivExact(num, num, &g)
		bigint.DivExact(den, den, &g)
	}
	return num, den
}
