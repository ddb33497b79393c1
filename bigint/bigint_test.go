package bigint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripString(t *testing.T) {
	cases := []string{"0", "1", "-1", "123456789", "-123456789",
		"123456789012345678901234567890", "-123456789012345678901234567890"}
	for _, s := range cases {
		var i Int
		require.True(t, i.SetString(s), s)
		require.Equal(t, s, i.String())
	}
}

func TestSign(t *testing.T) {
	require.Equal(t, 1, NewInt(5).Sign())
	require.Equal(t, -1, NewInt(-5).Sign())
	require.Equal(t, 0, NewInt(0).Sign())
}

func TestSqrtRemSmallForm(t *testing.T) {
	a := NewInt(50)
	require.False(t, a.IsLarge())
	var s, r Int
	SqrtRem(&s, &r, a)
	require.Equal(t, int64(7), s.Int64())
	require.Equal(t, int64(1), r.Int64()) // 50 - 7^2 = 1
}

func TestSqrtRemLargeForm(t *testing.T) {
	// s = CoeffMax+1 is outside the small-form range, so a = s^2+r is
	// necessarily in large (pool-allocated) form.
	var s, a, r, got Int
	s.SetInt64(CoeffMax)
	Add(&s, &s, NewInt(1))
	Mul(&a, &s, &s)
	Add(&a, &a, NewInt(17))
	require.True(t, a.IsLarge())

	var gotS Int
	SqrtRem(&gotS, &got, &a)
	require.Equal(t, 0, gotS.Cmp(&s))
	require.Equal(t, int64(17), got.Int64())
}

func TestDemoteIsCanonical(t *testing.T) {
	// A value that starts large (forced via SetBigInt) and shrinks back into
	// small range via subtraction must end up in small form: two
	// mathematically equal Ints must be bit-identical (spec.md §8.1).
	big1 := new(big.Int).Lsh(big.NewInt(1), 100)
	var a Int
	a.SetBigInt(big1)
	require.True(t, a.IsLarge())

	var shrink, diff Int
	shrink.SetBigInt(new(big.Int).Sub(big1, big.NewInt(1)))
	Sub(&diff, &a, &shrink)
	require.False(t, diff.IsLarge())
	require.Equal(t, int64(1), diff.Int64())

	var b Int
	b.SetInt64(1)
	require.Equal(t, b, diff)
}

func TestCRTUiRoundTrip(t *testing.T) {
	// 23 mod 3 == 2, 23 mod 5 == 3; CRT_ui combines the two single-prime
	// residues into the unique representative of 23 mod (3*5) == 15, which
	// is 8 (spec.md §4.1.4).
	var r1 Int
	r1.SetInt64(2)
	var m1 Int
	m1.SetInt64(3)
	var out Int
	CRTUi(&out, &r1, &m1, 3, 5, false)
	require.Equal(t, int64(8), out.Int64())
}

func TestSModRange(t *testing.T) {
	for _, tc := range []struct{ a, m int64 }{
		{7, 5}, {-7, 5}, {10, 4}, {0, 5}, {12345, 97},
	} {
		var a, m, r Int
		a.SetInt64(tc.a)
		m.SetInt64(tc.m)
		SMod(&r, &a, &m)

		half := tc.m
		if half < 0 {
			half = -half
		}
		v := r.Int64()
		require.True(t, v > -half/2-1 && v <= half/2+1, "smod(%d,%d)=%d out of range", tc.a, tc.m, v)

		var diff Int
		Sub(&diff, &a, &r)
		var q Int
		require.NoError(t, DivExactAllowZero(&q, &diff, &m))
	}
}

// DivExactAllowZero wraps DivExact but treats a zero dividend as trivially
// exact, since smod's difference can legitimately be zero.
func DivExactAllowZero(q, a, m *Int) error {
	if a.IsZero() {
		q.SetInt64(0)
		return nil
	}
	return DivExact(q, a, m)
}

func TestFactorialFibonacciBinomial(t *testing.T) {
	var f Int
	Factorial(&f, 10)
	require.Equal(t, "3628800", f.String())

	var fib Int
	Fibonacci(&fib, 10)
	require.Equal(t, int64(55), fib.Int64())

	var b Int
	Binomial(&b, 5, 2)
	require.Equal(t, int64(10), b.Int64())
}

func TestInvModAndJacobi(t *testing.T) {
	var a, m, inv Int
	a.SetInt64(3)
	m.SetInt64(11)
	ok := InvMod(&inv, &a, &m)
	require.True(t, ok)
	var check Int
	Mul(&check, &a, &inv)
	Mod(&check, &check, &m)
	require.Equal(t, int64(1), check.Int64())

	var a2, m2 Int
	a2.SetInt64(2)
	m2.SetInt64(4)
	require.False(t, InvMod(&inv, &a2, &m2))
}

func TestBitOps(t *testing.T) {
	var a Int
	a.SetInt64(0)
	SetBit(&a, &a, 3)
	require.True(t, TstBit(&a, 3))
	require.Equal(t, int64(8), a.Int64())
	ClrBit(&a, &a, 3)
	require.False(t, TstBit(&a, 3))
}

func TestPopCount(t *testing.T) {
	var a Int
	a.SetInt64(0b10110)
	require.Equal(t, 3, PopCount(&a))
}
