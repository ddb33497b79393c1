package intpoly

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/kernelerr"
)

// intCmp lets cmp.Diff compare bigint.Int by mathematical value (Cmp)
// rather than by struct field (which would spuriously differ between two
// equal-valued Ints allocated in different pool slots); wired per
// SPEC_FULL.md's domain-stack note on go.cmp's role in these tests.
var intCmp = cmp.Comparer(func(a, b bigint.Int) bool { return a.Cmp(&b) == 0 })

func ints(vs ...int64) []*bigint.Int {
	out := make([]*bigint.Int, len(vs))
	for i, v := range vs {
		out[i] = bigint.NewInt(v)
	}
	return out
}

func poly(vs ...int64) *Poly {
	return NewFromCoeffs(ints(vs...))
}

func TestNormalizationInvariant(t *testing.T) {
	p := poly(1, 2, 0, 0)
	require.Equal(t, 2, p.Len())
	require.False(t, p.Coeff(p.Len()-1).IsZero())
}

func TestStringRoundTrip(t *testing.T) {
	p := poly(1, -2, 3)
	s := p.String()
	var q Poly
	require.True(t, q.SetString(s))
	require.True(t, Equal(p, &q), cmp.Diff(p.c, q.c, intCmp))
}

func TestPrettyString(t *testing.T) {
	require.Equal(t, "t^2+2*t+1", poly(1, 2, 1).PrettyString("t"))
	require.Equal(t, "0", poly().PrettyString("t"))
	require.Equal(t, "-2", poly(-2).PrettyString("t"))
}

func TestMulAgreementAcrossStrategies(t *testing.T) {
	// spec.md §8.4 scenario 2: (x^2-1)(x+1) == x^3+x^2-x-1.
	f := poly(-1, 0, 1)
	g := poly(1, 1)
	want := poly(-1, -1, 1, 1)

	var classical, karatsuba, ks, general Poly
	mulClassical(&classical, f, g)
	mulKaratsuba(&karatsuba, f, g)
	mulKS(&ks, f, g)
	Mul(&general, f, g)

	for name, got := range map[string]*Poly{
		"classical": &classical, "karatsuba": &karatsuba, "ks": &ks, "general": &general,
	} {
		require.Truef(t, Equal(want, got), "%s: got %s want %s", name, got, want)
	}
}

func TestMulAssociativityAndDistributivity(t *testing.T) {
	f := poly(1, 2, 3)
	g := poly(-4, 5)
	h := poly(2, 0, -1, 7)

	var fg, fgH, gh, fGh Poly
	Mul(&fg, f, g)
	Mul(&fgH, &fg, h)
	Mul(&gh, g, h)
	Mul(&fGh, f, &gh)
	require.True(t, Equal(&fgH, &fGh))

	var fPlusG, lhs, fh, ghTerm, rhs Poly
	Add(&fPlusG, f, g)
	Mul(&lhs, &fPlusG, h)
	Mul(&fh, f, h)
	Mul(&ghTerm, g, h)
	Add(&rhs, &fh, &ghTerm)
	require.True(t, Equal(&lhs, &rhs))
}

func TestMulLowMatchesFullProduct(t *testing.T) {
	f := poly(1, 2, 3, 4)
	g := poly(5, -1, 2)
	var full, truncatedFromFull, low Poly
	Mul(&full, f, g)
	n := 3
	Truncate(&truncatedFromFull, &full, n)
	MulLow(&low, f, g, n)
	require.True(t, Equal(&truncatedFromFull, &low))
}

func TestDivRemIdentity(t *testing.T) {
	a := poly(1, 2, 3, 4, 5)
	b := poly(1, 1, 1)
	var q, r Poly
	require.NoError(t, DivRemBasecase(&q, &r, a, b))

	var bq, check Poly
	Mul(&bq, b, &q)
	Add(&check, &bq, &r)
	require.True(t, Equal(a, &check))
	require.Less(t, r.Degree(), b.Degree())
}

func TestDivRemDivConquerAgreesWithBasecase(t *testing.T) {
	a := poly(3, 1, 4, 1, 5, 9, 2, 6)
	b := poly(1, 0, 1)
	var q1, r1, q2, r2 Poly
	require.NoError(t, DivRemBasecase(&q1, &r1, a, b))
	require.NoError(t, DivRemDivConquer(&q2, &r2, a, b))
	require.True(t, Equal(&q1, &q2))
	require.True(t, Equal(&r1, &r2))
}

func TestDivByZeroErrors(t *testing.T) {
	a := poly(1, 2, 3)
	zero := New()
	var q, r Poly
	require.Error(t, DivRemBasecase(&q, &r, a, zero))
}

func TestDivRemBasecaseFloorsOnInexactInput(t *testing.T) {
	a := poly(1, 2, 3) // 3x^2 + 2x + 1
	b := poly(1, 2)    // 2x + 1, does not divide a exactly
	var q, r Poly
	require.NoError(t, DivRemBasecase(&q, &r, a, b))

	var bq, check Poly
	Mul(&bq, b, &q)
	Add(&check, &bq, &r)
	require.True(t, Equal(a, &check))
	require.Less(t, r.Degree(), b.Degree())

	require.ErrorIs(t, DivRemBasecaseExact(&q, &r, a, b), kernelerr.ErrInexact)
}

func TestPowUiMatchesIteratedMultiplication(t *testing.T) {
	f := poly(1, 1)
	var want Poly
	want.SetLength(1)
	want.Coeff(0).SetInt64(1)
	for i := 0; i < 5; i++ {
		var tmp Poly
		Mul(&tmp, &want, f)
		want = tmp
	}
	var got Poly
	PowUi(&got, f, 5)
	require.True(t, Equal(&want, &got))
}

func TestPowMultinomialMatchesPowUi(t *testing.T) {
	f := poly(1, 1, 1) // 1 + x + x^2, f0 = 1.
	var want, got Poly
	PowUi(&want, f, 4)
	require.NoError(t, PowMultinomial(&got, f, 4))
	require.True(t, Equal(&want, &got), "want %s got %s", want.String(), got.String())
}

func TestGCDProperties(t *testing.T) {
	f := poly(-1, 0, 1)  // x^2 - 1
	g := poly(-1, 1)     // x - 1
	var g1 Poly
	GCD(&g1, f, g)
	require.True(t, g1.LeadingCoeff().Sign() > 0)

	var q1, q2 Poly
	require.NoError(t, DivExact(&q1, f, &g1))
	require.NoError(t, DivExact(&q2, g, &g1))
}

func TestGCDHeuristicFallback(t *testing.T) {
	// Even when the heuristic path succeeds or fails, the modular path must
	// agree on the true GCD (spec.md §8.4 scenario 6).
	f := poly(-1, 0, 1)
	g := poly(-1, 1)
	var h, m Poly
	hOk := GCDHeuristic(&h, f, g)
	mOk := GCDModular(&m, f, g)
	require.True(t, mOk)
	if hOk {
		require.True(t, Equal(&h, &m))
	}
}

func TestInterpolateMultiMod(t *testing.T) {
	// spec.md §8.4 scenario 3.
	xs := ints(0, 1, 2, 3)
	ys := ints(1, 2, 5, 10)
	p, err := InterpolateMultiMod(xs, ys)
	require.NoError(t, err)
	require.Equal(t, poly(1, 0, 1).String(), p.String())
	for i := range xs {
		require.Equal(t, ys[i].Int64(), Evaluate(p, xs[i]).Int64())
	}
}

func TestInterpolateRejectsDuplicateXs(t *testing.T) {
	xs := ints(1, 1)
	ys := ints(2, 3)
	_, err := InterpolateMultiMod(xs, ys)
	require.Error(t, err)
}

func TestEvaluateDivConquerMatchesHorner(t *testing.T) {
	p := poly(3, 1, 4, 1, 5, 9, 2, 6)
	x := bigint.NewInt(7)
	require.Equal(t, Evaluate(p, x).String(), EvaluateDivConquer(p, x).String())
}

func TestComposeSeriesPrecondition(t *testing.T) {
	f := poly(1, 1)
	g := poly(1, 1) // g(0) = 1 != 0.
	var dst Poly
	require.Error(t, ComposeSeriesHorner(&dst, f, g, 4))
}

func TestComposeSeriesHornerMatchesBrentKung(t *testing.T) {
	f := poly(1, 2, 3, 4, 5, 6)
	g := poly(0, 1, 1) // g(0) = 0.
	n := 5
	var horner, bk Poly
	require.NoError(t, ComposeSeriesHorner(&horner, f, g, n))
	require.NoError(t, ComposeSeriesBrentKung(&bk, f, g, n))
	require.True(t, Equal(&horner, &bk), "horner=%s bk=%s", horner.String(), bk.String())
}

func TestRevertSeriesIsCompositionalInverse(t *testing.T) {
	f := poly(0, 1, 1, 1) // x + x^2 + x^3
	n := 6
	var g Poly
	require.NoError(t, RevertSeriesLagrangeFast(&g, f, n))

	var composed Poly
	require.NoError(t, ComposeSeriesHorner(&composed, f, &g, n))
	var x Poly
	x.SetLength(2)
	x.Coeff(1).SetInt64(1)
	Truncate(&x, &x, n)
	require.True(t, Equal(&composed, &x), "f(revert(f))=%s want %s", composed.String(), x.String())
}
