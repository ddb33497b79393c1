package bigint

import (
	"math/big"

	"github.com/fractio/bigkernel/kernelerr"
)

// Every op below follows the same shape: read a and b into big.Int views
// (never mutating them), compute into a fresh local big.Int, then funnel
// the result through dst.setFromBig. Because the intermediate is always a
// stack-local value distinct from a/b's storage, dst may freely alias a,
// b, or both without any operation observing a partially-overwritten
// operand (spec.md §4.1.2).

// Add sets dst = a + b.
func Add(dst, a, b *Int) *Int {
	var ab, bb, r big.Int
	r.Add(a.bigView(&ab), b.bigView(&bb))
	dst.setFromBig(&r)
	return dst
}

// Sub sets dst = a - b.
func Sub(dst, a, b *Int) *Int {
	var ab, bb, r big.Int
	r.Sub(a.bigView(&ab), b.bigView(&bb))
	dst.setFromBig(&r)
	return dst
}

// Neg sets dst = -a.
func Neg(dst, a *Int) *Int {
	var ab, r big.Int
	r.Neg(a.bigView(&ab))
	dst.setFromBig(&r)
	return dst
}

// Abs sets dst = |a|.
func Abs(dst, a *Int) *Int {
	var ab, r big.Int
	r.Abs(a.bigView(&ab))
	dst.setFromBig(&r)
	return dst
}

// Mul sets dst = a * b.
func Mul(dst, a, b *Int) *Int {
	var ab, bb, r big.Int
	r.Mul(a.bigView(&ab), b.bigView(&bb))
	dst.setFromBig(&r)
	return dst
}

// MulUi sets dst = a * b for a uint64 scalar b.
func MulUi(dst, a *Int, b uint64) *Int {
	var ab, bb, r big.Int
	bb.SetUint64(b)
	r.Mul(a.bigView(&ab), &bb)
	dst.setFromBig(&r)
	return dst
}

// MulSi sets dst = a * b for an int64 scalar b.
func MulSi(dst, a *Int, b int64) *Int {
	var ab, bb, r big.Int
	bb.SetInt64(b)
	r.Mul(a.bigView(&ab), &bb)
	dst.setFromBig(&r)
	return dst
}

// Mul2Exp sets dst = a << e.
func Mul2Exp(dst, a *Int, e uint) *Int {
	var ab, r big.Int
	r.Lsh(a.bigView(&ab), e)
	dst.setFromBig(&r)
	return dst
}

// AddMul sets dst = dst + a*b.
func AddMul(dst, a, b *Int) *Int {
	var ab, bb, db, p, r big.Int
	p.Mul(a.bigView(&ab), b.bigView(&bb))
	r.Add(dst.bigView(&db), &p)
	dst.setFromBig(&r)
	return dst
}

// SubMul sets dst = dst - a*b.
func SubMul(dst, a, b *Int) *Int {
	var ab, bb, db, p, r big.Int
	p.Mul(a.bigView(&ab), b.bigView(&bb))
	r.Sub(dst.bigView(&db), &p)
	dst.setFromBig(&r)
	return dst
}

// Fmma sets dst = a*b + c*d in one call (fused multiply-multiply-add,
// ported from FLINT's fmpz_fma, original_source/fmpz/fmma.c), avoiding the
// intermediate Int allocation that two AddMul calls would need.
func Fmma(dst, a, b, c, d *Int) *Int {
	var ab, bb, cb, db, p1, p2, r big.Int
	p1.Mul(a.bigView(&ab), b.bigView(&bb))
	p2.Mul(c.bigView(&cb), d.bigView(&db))
	r.Add(&p1, &p2)
	dst.setFromBig(&r)
	return dst
}

// PowUi sets dst = a^e for e >= 0.
func PowUi(dst, a *Int, e uint64) *Int {
	var ab, eb, r big.Int
	eb.SetUint64(e)
	r.Exp(a.bigView(&ab), &eb, nil)
	dst.setFromBig(&r)
	return dst
}

// PowFmpz sets dst = a^e for an Int exponent e, which may be negative only
// if a is +1 or -1 (otherwise the result would not be an integer). Returns
// kernelerr.ErrDomain if e < 0 and a is not a unit.
func PowFmpz(dst, a, e *Int) error {
	if e.Sign() < 0 {
		if !(a.Cmp(NewInt(1)) == 0 || a.Cmp(NewInt(-1)) == 0) {
			return kernelerr.ErrDomain
		}
		// a is +-1: a^e for negative e is a^|e|.
		var neg Int
		Neg(&neg, e)
		PowUi(dst, a, neg.Uint64())
		return nil
	}
	PowUi(dst, a, e.Uint64())
	return nil
}

// Sqrt sets dst = floor(sqrt(a)) for a >= 0. Panics (Domain) if a < 0,
// matching the spec's contract that void ops treat Domain as fatal.
func Sqrt(dst, a *Int) *Int {
	if a.Sign() < 0 {
		panic(kernelerr.ErrDomain)
	}
	var ab, r big.Int
	r.Sqrt(a.bigView(&ab))
	dst.setFromBig(&r)
	return dst
}

// SqrtRem sets s = floor(sqrt(a)), r = a - s^2, for a >= 0.
func SqrtRem(s, r, a *Int) {
	if a.Sign() < 0 {
		panic(kernelerr.ErrDomain)
	}
	var ab, sb, rb big.Int
	av := a.bigView(&ab)
	sb.Sqrt(av)
	rb.Sub(av, new(big.Int).Mul(&sb, &sb))
	s.setFromBig(&sb)
	r.setFromBig(&rb)
}

// Root sets dst to the integer n-th root of a (floor for a >= 0, and for
// odd n the real root extended to negative a). Returns ok == false and
// leaves dst unchanged if a has no exact n-th root of the requested
// parity when exact is true.
func Root(dst, a *Int, n int) *Int {
	if n <= 0 {
		panic(kernelerr.ErrDomain)
	}
	if a.Sign() < 0 && n%2 == 0 {
		panic(kernelerr.ErrDomain)
	}
	neg := a.Sign() < 0
	var ab, mag big.Int
	mag.Abs(a.bigView(&ab))

	r := nthRoot(&mag, n)
	if neg {
		r.Neg(r)
	}
	dst.setFromBig(r)
	return dst
}

// nthRoot computes floor(x^(1/n)) for x >= 0 via Newton's method on
// integers, the classical approach FLINT's fmpz_root also uses.
func nthRoot(x *big.Int, n int) *big.Int {
	if x.Sign() == 0 {
		return new(big.Int)
	}
	if n == 1 {
		return new(big.Int).Set(x)
	}
	// Initial guess: 2^(ceil(bitlen(x)/n)).
	bits := x.BitLen()
	guessBits := (bits + n - 1) / n
	if guessBits < 1 {
		guessBits = 1
	}
	y := new(big.Int).Lsh(big.NewInt(1), uint(guessBits))

	nBig := big.NewInt(int64(n))
	nMinus1 := big.NewInt(int64(n - 1))
	for {
		// y_next = ((n-1)*y + x/y^(n-1)) / n
		yPow := new(big.Int).Exp(y, nMinus1, nil)
		q := new(big.Int).Quo(x, yPow)
		num := new(big.Int).Mul(nMinus1, y)
		num.Add(num, q)
		yNext := new(big.Int).Quo(num, nBig)
		if yNext.Cmp(y) >= 0 {
			break
		}
		y = yNext
	}
	return y
}

// GCD sets dst = gcd(|a|, |b|) (non-negative).
func GCD(dst, a, b *Int) *Int {
	var ab, bb, r big.Int
	r.GCD(nil, nil, absBig(a, &ab), absBig(b, &bb))
	dst.setFromBig(&r)
	return dst
}

// LCM sets dst = lcm(|a|, |b|); 0 if either input is 0.
func LCM(dst, a, b *Int) *Int {
	if a.IsZero() || b.IsZero() {
		dst.SetInt64(0)
		return dst
	}
	var g Int
	GCD(&g, a, b)
	var ab, bb, gb, prod, r big.Int
	prod.Mul(absBig(a, &ab), absBig(b, &bb))
	r.Quo(&prod, g.bigView(&gb))
	dst.setFromBig(&r)
	return dst
}

// XGCD sets g = gcd(a,b) and s, t such that s*a + t*b == g (extended
// Euclid, via math/big's GCD with Bezout coefficients).
func XGCD(g, s, t, a, b *Int) {
	var ab, bb, gb, sb, tb big.Int
	gb.GCD(&sb, &tb, a.bigView(&ab), b.bigView(&bb))
	g.setFromBig(&gb)
	s.setFromBig(&sb)
	t.setFromBig(&tb)
}

// InvMod sets dst = a^-1 mod m. Returns false if a and m are not coprime,
// leaving dst unchanged (spec.md §7: explicit error-returning ops leave the
// destination unchanged on failure).
func InvMod(dst, a, m *Int) bool {
	var ab, mb, r big.Int
	if r.ModInverse(a.bigView(&ab), m.bigView(&mb)) == nil {
		return false
	}
	dst.setFromBig(&r)
	return true
}

// Jacobi returns the Jacobi symbol (a/n) for odd n > 0.
func Jacobi(a, n *Int) int {
	var ab, nb big.Int
	return big.Jacobi(a.bigView(&ab), n.bigView(&nb))
}

func absBig(i *Int, scratch *big.Int) *big.Int {
	v := i.bigView(scratch)
	if v.Sign() >= 0 {
		return v
	}
	var r big.Int
	r.Abs(v)
	*scratch = r
	return scratch
}
