// Package ivec implements IntVec, a contiguous sequence of bigint.Int with
// vector-level arithmetic, grounded on the teacher's vector-op style in
// ring/ring_operations.go (element-wise loops over a flat []Int-like
// buffer) and on FLINT's fmpz_vec module (original_source/fmpz_vec,
// src/fmpz_vec), whose dot_general/max_bits/content tests define the exact
// contracts implemented here.
package ivec

import (
	"golang.org/x/exp/constraints"

	"github.com/fractio/bigkernel/bigint"
)

// maxOf returns the larger of a, b. Generic over any ordered integer type so
// MaxBits and the bit-packing helpers can share it regardless of whether
// they're tracking an int bit count or a uint bit position.
func maxOf[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// IntVec is a contiguous sequence of bigint.Int. The zero value is an
// empty vector. There is no implicit sharing between vectors: Copy always
// allocates fresh Int slots (matching IntVec's no-aliasing-between-vectors
// invariant, spec.md §3.2).
type IntVec struct {
	s []bigint.Int
}

// New returns an IntVec of length n, all zero.
func New(n int) *IntVec {
	return &IntVec{s: make([]bigint.Int, n)}
}

// Len returns the number of slots.
func (v *IntVec) Len() int { return len(v.s) }

// At returns a pointer to slot i. Out-of-range access panics, matching the
// invariant that every slot is fully initialized and reads never go out of
// range (spec.md §3.2).
func (v *IntVec) At(i int) *bigint.Int { return &v.s[i] }

// Copy returns a deep copy of v.
func (v *IntVec) Copy() *IntVec {
	out := New(len(v.s))
	for i := range v.s {
		out.s[i].Set(&v.s[i])
	}
	return out
}

// Add sets dst[i] = a[i] + b[i] for i < len; a, b, dst may alias.
func Add(dst, a, b *IntVec) {
	n := a.Len()
	forceLen(dst, n)
	for i := 0; i < n; i++ {
		bigint.Add(&dst.s[i], &a.s[i], &b.s[i])
	}
}

// Sub sets dst[i] = a[i] - b[i].
func Sub(dst, a, b *IntVec) {
	n := a.Len()
	forceLen(dst, n)
	for i := 0; i < n; i++ {
		bigint.Sub(&dst.s[i], &a.s[i], &b.s[i])
	}
}

// Neg sets dst[i] = -a[i].
func Neg(dst, a *IntVec) {
	n := a.Len()
	forceLen(dst, n)
	for i := 0; i < n; i++ {
		bigint.Neg(&dst.s[i], &a.s[i])
	}
}

// ScalarMul sets dst[i] = a[i] * c.
func ScalarMul(dst, a *IntVec, c *bigint.Int) {
	n := a.Len()
	forceLen(dst, n)
	for i := 0; i < n; i++ {
		bigint.Mul(&dst.s[i], &a.s[i], c)
	}
}

// ScalarFDivQ sets dst[i] = floor(a[i]/c).
func ScalarFDivQ(dst, a *IntVec, c *bigint.Int) {
	n := a.Len()
	forceLen(dst, n)
	for i := 0; i < n; i++ {
		bigint.FDivQ(&dst.s[i], &a.s[i], c)
	}
}

// ScalarMod sets dst[i] = a[i] mod c.
func ScalarMod(dst, a *IntVec, c *bigint.Int) {
	n := a.Len()
	forceLen(dst, n)
	for i := 0; i < n; i++ {
		bigint.Mod(&dst.s[i], &a.s[i], c)
	}
}

func forceLen(v *IntVec, n int) {
	if len(v.s) != n {
		v.s = make([]bigint.Int, n)
	}
}

// MaxBits returns a signed value whose absolute value is max_i bits(v[i]),
// negative iff any element of v is negative (spec.md §4.2).
func MaxBits(v *IntVec) int {
	max := 0
	neg := false
	for i := 0; i < v.Len(); i++ {
		if v.s[i].Sign() < 0 {
			neg = true
		}
		max = maxOf(max, v.s[i].BitLen())
	}
	if neg {
		return -max
	}
	return max
}

// Content returns the GCD of all elements of v; 0 if v is empty or every
// element is zero.
func Content(v *IntVec) *bigint.Int {
	g := bigint.NewInt(0)
	for i := 0; i < v.Len(); i++ {
		bigint.GCD(g, g, &v.s[i])
	}
	return g
}

// DotGeneral computes dst = (+-)initial + sum_{i<length} a[i]*b[+-i], per
// spec.md §4.2: if initial is non-nil the accumulator starts there
// (negated first if negate is set); if reverse is set, b is indexed from
// its end. dst may alias initial.
func DotGeneral(dst *bigint.Int, initial *bigint.Int, negate bool, a, b *IntVec, reverse bool, length int) {
	acc := bigint.NewInt(0)
	if initial != nil {
		if negate {
			bigint.Neg(acc, initial)
		} else {
			acc.Set(initial)
		}
	}
	for i := 0; i < length; i++ {
		bi := i
		if reverse {
			bi = b.Len() - 1 - i
		}
		bigint.AddMul(acc, &a.s[i], &b.s[bi])
	}
	dst.Set(acc)
}

// BitPack writes the first n coefficients of poly into a contiguous
// bit-field stream of width bits per coefficient, low-order-first. If
// signFlag is set, negative coefficients are encoded sign-magnitude via a
// borrow propagated into the next slot (matching fmpz_vec's bit_pack:
// writing v+2^bits for negative v, then subtracting the borrow out of the
// following coefficient's encoding).
func BitPack(poly *IntVec, n int, bits uint) []uint64 {
	return bitPack(poly, n, bits, true)
}

// BitPackUnsigned is BitPack without sign handling, for vectors known to be
// non-negative.
func BitPackUnsigned(poly *IntVec, n int, bits uint) []uint64 {
	return bitPack(poly, n, bits, false)
}

func bitPack(poly *IntVec, n int, bits uint, signFlag bool) []uint64 {
	totalBits := uint(n) * bits
	words := (totalBits + 63) / 64
	out := make([]uint64, words)

	bitPos := uint(0)
	borrow := bigint.NewInt(0)
	mask := new(bigint.Int)
	bigint.Mul2Exp(mask, bigint.NewInt(1), bits)

	for i := 0; i < n; i++ {
		v := bigint.Copy(poly.At(i))
		if signFlag {
			bigint.Sub(v, v, borrow)
			borrow.SetInt64(0)
			if v.Sign() < 0 {
				bigint.Add(v, v, mask)
				borrow.SetInt64(1)
			}
		}
		writeBits(out, bitPos, bits, v)
		bitPos += bits
	}
	return out
}

func writeBits(out []uint64, bitPos uint, bits uint, v *bigint.Int) {
	for b := uint(0); b < bits; b++ {
		if bigint.TstBit(v, b) {
			pos := bitPos + b
			out[pos/64] |= 1 << (pos % 64)
		}
	}
}

// BitUnpack is the inverse of BitPack: it reconstructs n coefficients of
// width bits from a packed stream, undoing the sign-magnitude-via-borrow
// encoding when signFlag is set.
func BitUnpack(data []uint64, n int, bits uint, signFlag bool) *IntVec {
	out := New(n)
	bitPos := uint(0)
	borrow := bigint.NewInt(0)
	mask := new(bigint.Int)
	bigint.Mul2Exp(mask, bigint.NewInt(1), bits)
	half := new(bigint.Int)
	bigint.FDivQ(half, mask, bigint.NewInt(2))

	for i := 0; i < n; i++ {
		v := readBits(data, bitPos, bits)
		bitPos += bits
		if signFlag {
			if v.Cmp(half) >= 0 {
				bigint.Sub(v, v, mask)
				bigint.Add(v, v, borrow)
				borrow.SetInt64(1)
			} else {
				bigint.Add(v, v, borrow)
				borrow.SetInt64(0)
			}
		}
		out.s[i].Set(v)
	}
	return out
}

func readBits(data []uint64, bitPos uint, bits uint) *bigint.Int {
	v := bigint.NewInt(0)
	for b := uint(0); b < bits; b++ {
		pos := bitPos + b
		if pos/64 < uint(len(data)) && (data[pos/64]>>(pos%64))&1 == 1 {
			bigint.SetBit(v, v, b)
		}
	}
	return v
}
