package bigint

import (
	"math/big"

	"github.com/fractio/bigkernel/kernelerr"
)

// Mod sets r = a mod m, the non-negative remainder in [0, |m|). Panics with
// kernelerr.ErrDivByZero if m == 0 (Domain/DivByZero are fatal for void
// ops per spec.md §7).
func Mod(r, a, m *Int) *Int {
	if m.IsZero() {
		panic(kernelerr.ErrDivByZero)
	}
	var ab, mb, mabs, rb big.Int
	mabs.Abs(m.bigView(&mb))
	rb.Mod(a.bigView(&ab), &mabs)
	r.setFromBig(&rb)
	return r
}

// SMod sets r to the symmetric-mod representative of a mod m: the unique
// value in (-|m|/2, |m|/2] congruent to a mod m. Ported from FLINT's
// fmpz_smod (original_source/src/fmpz/smod.c), sign mode 1.
func SMod(r, a, m *Int) *Int {
	if m.IsZero() {
		panic(kernelerr.ErrDivByZero)
	}
	Mod(r, a, m)

	var mb, mabs, half, two big.Int
	mabs.Abs(m.bigView(&mb))
	two.SetInt64(2)
	half.Quo(&mabs, &two)

	var rb big.Int
	r.bigView(&rb)
	// 2*r compared against |m|: if 2r > |m|, r -= |m|.
	var twoR big.Int
	twoR.Lsh(r.bigView(&rb), 1)
	if twoR.CmpAbs(&mabs) > 0 {
		var sub big.Int
		sub.Sub(r.bigView(&rb), &mabs)
		r.setFromBig(&sub)
	}
	return r
}

// quoRem is the shared implementation for the three rounding conventions;
// q and rem may be nil when the caller only wants one of the two.
func quoRem(q, rem, a, b *Int, round func(q, r, a, b *big.Int)) {
	if b.IsZero() {
		panic(kernelerr.ErrDivByZero)
	}
	var ab, bb, qb, rb big.Int
	round(&qb, &rb, a.bigView(&ab), b.bigView(&bb))
	if q != nil {
		q.setFromBig(&qb)
	}
	if rem != nil {
		rem.setFromBig(&rb)
	}
}

// FDivQR sets q = floor(a/b), r = a - b*q (floor division).
func FDivQR(q, r, a, b *Int) {
	quoRem(q, r, a, b, func(qb, rb, a, b *big.Int) {
		qb.DivMod(a, b, rb)
		// big.Int's DivMod implements Euclidean division (r always >= 0);
		// convert to floor-division semantics to match fmpz_fdiv_qr.
		if b.Sign() < 0 && rb.Sign() != 0 {
			qb.Add(qb, big.NewInt(1))
			rb.Add(rb, b)
		}
	})
}

// FDivQ sets q = floor(a/b).
func FDivQ(q, a, b *Int) { FDivQR(q, nil, a, b) }

// CDivQR sets q = ceil(a/b), r = a - b*q (ceiling division).
func CDivQR(q, r, a, b *Int) {
	quoRem(q, r, a, b, func(qb, rb, a, b *big.Int) {
		qb.QuoRem(a, b, rb)
		if rb.Sign() != 0 && (rb.Sign() > 0) == (b.Sign() > 0) {
			qb.Add(qb, big.NewInt(1))
			rb.Sub(rb, b)
		}
	})
}

// CDivQ sets q = ceil(a/b).
func CDivQ(q, a, b *Int) { CDivQR(q, nil, a, b) }

// TDivQR sets q = trunc(a/b), r = a - b*q (truncated-toward-zero division,
// matching math/big's native QuoRem).
func TDivQR(q, r, a, b *Int) {
	quoRem(q, r, a, b, func(qb, rb, a, b *big.Int) {
		qb.QuoRem(a, b, rb)
	})
}

// TDivQ sets q = trunc(a/b).
func TDivQ(q, a, b *Int) { TDivQR(q, nil, a, b) }

// DivExact sets q = a/b, assuming b divides a exactly. Returns
// kernelerr.ErrInexact (without modifying q) if the division is not exact.
func DivExact(q, a, b *Int) error {
	if b.IsZero() {
		return kernelerr.ErrDivByZero
	}
	var ab, bb, qb, rb big.Int
	qb.QuoRem(a.bigView(&ab), b.bigView(&bb), &rb)
	if rb.Sign() != 0 {
		return kernelerr.ErrInexact
	}
	q.setFromBig(&qb)
	return nil
}

// CRTUi computes out such that out == r1 (mod m1) and out == r2 (mod m2),
// for a prime single-limb m2, following FLINT's fmpz_CRT_ui. If sign is
// true the result is the symmetric representative around zero, otherwise
// it lies in [0, m1*m2).
func CRTUi(out, r1, m1 *Int, r2, m2 uint64, sign bool) *Int {
	var m1b, m1abs big.Int
	m1abs.Abs(m1.bigView(&m1b))

	m2Big := new(big.Int).SetUint64(m2)
	prod := new(big.Int).Mul(&m1abs, m2Big)

	// u = m1^-1 mod m2
	u := new(big.Int).ModInverse(&m1abs, m2Big)
	if u == nil {
		panic(kernelerr.ErrNoSolution)
	}

	var r1b big.Int
	r1v := r1.bigView(&r1b)
	r1mod := new(big.Int).Mod(r1v, &m1abs)

	r2Big := new(big.Int).SetUint64(r2 % m2)

	// result = r1mod + m1 * (((r2 - r1mod) * u) mod m2)
	diff := new(big.Int).Sub(r2Big, r1mod)
	diff.Mod(diff, m2Big)
	diff.Mul(diff, u)
	diff.Mod(diff, m2Big)
	diff.Mul(diff, &m1abs)
	result := new(big.Int).Add(r1mod, diff)
	result.Mod(result, prod)

	if sign {
		half := new(big.Int).Rsh(prod, 1)
		if result.Cmp(half) > 0 {
			result.Sub(result, prod)
		}
	}

	out.setFromBig(result)
	return out
}

// CRTUiPrecomp is the precomputed-constants variant of CRTUi: the caller
// supplies m1m2 = m1*m2, m1Inv = m1^-1 mod m2, and an (unused by this
// reference implementation but accepted for interface parity with the
// spec) precomputed inverse of m2, so that repeated calls against the same
// (m1, m2) pair amortize the modular inverse computation.
func CRTUiPrecomp(out, r1 *Int, m1m2 *Int, m1Inv uint64, r2, m2 uint64, sign bool) *Int {
	var m1m2b big.Int
	prod := new(big.Int).Set(m1m2.bigView(&m1m2b))

	var r1b big.Int
	r1v := r1.bigView(&r1b)

	u := new(big.Int).SetUint64(m1Inv)
	m2Big := new(big.Int).SetUint64(m2)
	r2Big := new(big.Int).SetUint64(r2 % m2)

	diff := new(big.Int).Sub(r2Big, new(big.Int).Mod(r1v, m2Big))
	diff.Mod(diff, m2Big)
	diff.Mul(diff, u)
	diff.Mod(diff, m2Big)

	var m1 big.Int
	// m1 = m1m2 / m2 (exact, since m1m2 was built as m1*m2).
	m1.Quo(prod, m2Big)
	diff.Mul(diff, &m1)

	result := new(big.Int).Add(r1v, diff)
	result.Mod(result, prod)

	if sign {
		half := new(big.Int).Rsh(prod, 1)
		if result.Cmp(half) > 0 {
			result.Sub(result, prod)
		}
	}
	out.setFromBig(result)
	return out
}
