package bigint

import (
	"math"
	"math/big"
)

// TstBit reports whether bit n of |i| is set (two's-complement bit access
// on the magnitude, matching fmpz_tstbit).
func TstBit(i *Int, n uint) bool {
	var ib big.Int
	return i.bigView(&ib).Bit(int(n)) == 1
}

// SetBit sets bit n of i.
func SetBit(dst, a *Int, n uint) *Int {
	var ab, r big.Int
	r.SetBit(a.bigView(&ab), int(n), 1)
	dst.setFromBig(&r)
	return dst
}

// ClrBit clears bit n of i.
func ClrBit(dst, a *Int, n uint) *Int {
	var ab, r big.Int
	r.SetBit(a.bigView(&ab), int(n), 0)
	dst.setFromBig(&r)
	return dst
}

// CombBit complements (flips) bit n of i.
func CombBit(dst, a *Int, n uint) *Int {
	if TstBit(a, n) {
		return ClrBit(dst, a, n)
	}
	return SetBit(dst, a, n)
}

// Complement sets dst = ^a (bitwise complement, -(a+1)).
func Complement(dst, a *Int) *Int {
	var ab, r big.Int
	r.Not(a.bigView(&ab))
	dst.setFromBig(&r)
	return dst
}

// And sets dst = a & b.
func And(dst, a, b *Int) *Int {
	var ab, bb, r big.Int
	r.And(a.bigView(&ab), b.bigView(&bb))
	dst.setFromBig(&r)
	return dst
}

// Or sets dst = a | b.
func Or(dst, a, b *Int) *Int {
	var ab, bb, r big.Int
	r.Or(a.bigView(&ab), b.bigView(&bb))
	dst.setFromBig(&r)
	return dst
}

// Xor sets dst = a ^ b.
func Xor(dst, a, b *Int) *Int {
	var ab, bb, r big.Int
	r.Xor(a.bigView(&ab), b.bigView(&bb))
	dst.setFromBig(&r)
	return dst
}

// PopCount returns the number of set bits in |i|.
func PopCount(i *Int) int {
	var ib big.Int
	v := i.bigView(&ib)
	n := 0
	for _, w := range v.Bits() {
		for w != 0 {
			n++
			w &= w - 1
		}
	}
	return n
}

// Log returns the natural logarithm of i as a float64. Panics (Domain) if
// i <= 0.
func Log(i *Int) float64 {
	if i.Sign() <= 0 {
		panic(domainErr("Log: argument must be positive"))
	}
	var ib big.Int
	v := i.bigView(&ib)
	// Scale to avoid float64 overflow for very large magnitudes: write
	// v = m * 2^e with m in [0.5, 1), then ln(v) = ln(m) + e*ln(2).
	bitLen := v.BitLen()
	shift := bitLen - 53
	var mantissa big.Int
	if shift > 0 {
		mantissa.Rsh(v, uint(shift))
	} else {
		mantissa.Lsh(v, uint(-shift))
	}
	mf := new(big.Float).SetInt(&mantissa)
	mFloat, _ := mf.Float64()
	const ln2 = 0.6931471805599453
	return math.Log(mFloat) + float64(shift)*ln2
}
