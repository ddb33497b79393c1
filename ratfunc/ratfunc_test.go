package ratfunc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/intpoly"
)

func ints(vs ...int64) []*bigint.Int {
	out := make([]*bigint.Int, len(vs))
	for i, v := range vs {
		out[i] = bigint.NewInt(v)
	}
	return out
}

func poly(vs ...int64) *intpoly.Poly {
	return intpoly.NewFromCoeffs(ints(vs...))
}

func mustRF(t *testing.T, num, den *intpoly.Poly) *RatFunc {
	t.Helper()
	r, err := NewFromPolys(num, den)
	require.NoError(t, err)
	return r
}

func TestNewFromPolysCanonicalizesSign(t *testing.T) {
	// 1/-1 must canonicalize to -1/1.
	r := mustRF(t, poly(1), poly(-1))
	require.True(t, Equal(r, mustRF(t, poly(-1), poly(1))))
}

func TestNewFromPolysCancelsCommonFactor(t *testing.T) {
	// (x^2-1)/(x-1) == x+1.
	r := mustRF(t, poly(-1, 0, 1), poly(-1, 1))
	require.True(t, Equal(r, mustRF(t, poly(1, 1), poly(1))))
}

func TestNewFromPolysZeroNumeratorForcesUnitDenominator(t *testing.T) {
	r := mustRF(t, poly(), poly(5, 1))
	require.True(t, r.IsZero())
	require.True(t, r.Den().IsOne())
}

func TestNewFromPolysDivByZero(t *testing.T) {
	_, err := NewFromPolys(poly(1), poly())
	require.Error(t, err)
}

func TestAddInverseIsZero(t *testing.T) {
	a := mustRF(t, poly(1, 1), poly(1, -1)) // (x+1)/(x-1)
	zero := New()
	var minusA, sum RatFunc
	Sub(&minusA, zero, a)
	Add(&sum, a, &minusA)
	require.True(t, sum.IsZero())
}

func TestMulByInverseIsOne(t *testing.T) {
	a := mustRF(t, poly(1, 1), poly(1, -1)) // (x+1)/(x-1)
	var inv, prod RatFunc
	require.NoError(t, Inv(&inv, a))
	Mul(&prod, a, &inv)
	require.True(t, prod.IsOne())
}

func TestScenario4RationalArithmetic(t *testing.T) {
	// spec.md §8.4 scenario 4: a=(x+1)/(x-1), b=(x-1)/(x+1) -> a*b == 1.
	a := mustRF(t, poly(1, 1), poly(-1, 1))
	b := mustRF(t, poly(-1, 1), poly(1, 1))
	var prod RatFunc
	Mul(&prod, a, &b)
	require.True(t, prod.IsOne())

	var sum RatFunc
	Add(&sum, a, &b)
	// a+b = [(x+1)^2+(x-1)^2] / (x^2-1) = (2x^2+2)/(x^2-1), already reduced.
	wantNum := poly(2, 0, 2)
	wantDen := poly(-1, 0, 1)
	require.True(t, Equal(&sum, mustRF(t, wantNum, wantDen)))
}

func TestDerivativeOfConstantIsZero(t *testing.T) {
	c := mustRF(t, poly(5), poly(1))
	var d RatFunc
	Derivative(&d, c)
	require.True(t, d.IsZero())
}

func TestDerivativeQuotientRule(t *testing.T) {
	// d/dx (1/x) = -1/x^2.
	a := mustRF(t, poly(1), poly(0, 1))
	var d RatFunc
	Derivative(&d, a)
	want := mustRF(t, poly(-1), poly(0, 0, 1))
	require.True(t, Equal(&d, want), "got %s want %s", d.String(), want.String())
}

func TestEvaluateAtIntegerPoint(t *testing.T) {
	// (x^2+1)/(x+1) at x=2 -> 5/3.
	a := mustRF(t, poly(1, 0, 1), poly(1, 1))
	num, den, pole := EvaluateInt(a, bigint.NewInt(2))
	require.False(t, pole)
	require.Equal(t, int64(5), num.Int64())
	require.Equal(t, int64(3), den.Int64())
}

func TestEvaluateDetectsPole(t *testing.T) {
	a := mustRF(t, poly(1), poly(-1, 1)) // 1/(x-1)
	_, _, pole := EvaluateInt(a, bigint.NewInt(1))
	require.True(t, pole)
}

func TestEvaluateAtRationalPoint(t *testing.T) {
	// x at x=1/2 -> 1/2.
	a := mustRF(t, poly(0, 1), poly(1))
	num, den, pole := Evaluate(a, bigint.NewInt(1), bigint.NewInt(2))
	require.False(t, pole)
	require.Equal(t, int64(1), num.Int64())
	require.Equal(t, int64(2), den.Int64())
}

func TestStringRoundTrip(t *testing.T) {
	a := mustRF(t, poly(1, 1), poly(-1, 1))
	s := a.String()
	var b RatFunc
	require.True(t, b.SetString(s))
	require.True(t, Equal(a, &b))
}

func TestPrettyString(t *testing.T) {
	a := mustRF(t, poly(1, 1), poly(-1, 1))
	require.Equal(t, "(x+1)/(x-1)", a.PrettyString("x"))

	b := mustRF(t, poly(2), poly(1, 1))
	require.Equal(t, "2/(x+1)", b.PrettyString("x"))

	c := mustRF(t, poly(1, 2), poly(1))
	require.Equal(t, "2*x+1", c.PrettyString("x"))
}

func TestPowNegativeExponent(t *testing.T) {
	a := mustRF(t, poly(1, 1), poly(1)) // x+1
	var p RatFunc
	require.NoError(t, Pow(&p, a, -2))
	want := mustRF(t, poly(1), poly(1, 2, 1)) // 1/(x+1)^2
	require.True(t, Equal(&p, want), "got %s want %s", p.String(), want.String())
}

func TestPowZeroExponentIsOneEvenForZero(t *testing.T) {
	z := New()
	var p RatFunc
	require.NoError(t, Pow(&p, z, 0))
	require.True(t, p.IsOne())
}

func TestDivByZeroRatFunc(t *testing.T) {
	a := mustRF(t, poly(1), poly(1))
	z := New()
	var dst RatFunc
	require.Error(t, Div(&dst, a, z))
}

func TestAssociativityAndDistributivity(t *testing.T) {
	a := mustRF(t, poly(1, 1), poly(1))
	b := mustRF(t, poly(0, 1), poly(1, 1))
	c := mustRF(t, poly(2), poly(1, 0, 1))

	var ab, abC, bc, aBc RatFunc
	Mul(&ab, a, b)
	Mul(&abC, &ab, c)
	Mul(&bc, b, c)
	Mul(&aBc, a, &bc)
	require.True(t, Equal(&abC, &aBc))

	var aPlusB, lhs, ac, bcTerm, rhs RatFunc
	Add(&aPlusB, a, b)
	Mul(&lhs, &aPlusB, c)
	Mul(&ac, a, c)
	Mul(&bcTerm, b, c)
	Add(&rhs, &ac, &bcTerm)
	require.True(t, Equal(&lhs, &rhs))
}
