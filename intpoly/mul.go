package intpoly

import (
	"math/big"

	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/nttfft"
)

// DispatchParams holds the multiplication dispatch ladder's cutoffs, per
// spec.md §4.3.2/§9 ("a port should structure this as a single dispatcher
// per op, parameterized by (length_short, length_long, bits_short,
// bits_long), so cutoff constants are in one place"). Exported as struct
// fields rather than env vars so an embedding application can retune them
// for its own workload without a fork (spec.md §6.4's "no environment
// surface"; the teacher's own ring.NewRing takes its tuning knobs as
// explicit constructor parameters the same way). Values are illustrative,
// not performance-tuned: this kernel optimizes for matching the dispatch
// tower's shape and selection logic, not for beating any particular
// reference's constants.
type DispatchParams struct {
	SmallBitcount   int // SMALL_BITCOUNT: classical/tiny loops stay competitive below this
	ClassicalCutoff int // lb below this: always classical, no small-prime FFT available
	FFTMinLen       int // lb below this: small-prime FFT never considered
	KaratsubaMinLen int // below this length, Karatsuba's overhead isn't worth it
	KSSparseMinLen  int // long sparse/low-limb inputs prefer Kronecker substitution
}

// DefaultDispatchParams returns the cutoffs Mul and Sqr use unless
// overridden via Dispatch.
func DefaultDispatchParams() DispatchParams {
	return DispatchParams{
		SmallBitcount:   80,
		ClassicalCutoff: 7,
		FFTMinLen:       80,
		KaratsubaMinLen: 16,
		KSSparseMinLen:  200,
	}
}

// Dispatch holds the cutoffs Mul and Sqr consult; callers may overwrite it
// (whole or by field) before first use to retune the ladder for their own
// coefficient-size/degree distribution.
var Dispatch = DefaultDispatchParams()

// Mul sets dst = a * b, selecting a multiplication strategy per the
// dispatch ladder in spec.md §4.3.2: scalar multiply, squaring dispatch,
// small-prime FFT (if available and the input shape favors it), a
// specialized tiny classical loop for small bit counts, Karatsuba,
// Schönhage-Strassen (folded into the multi-modular FFT path here, see
// DESIGN.md), or Kronecker substitution as the general fallback.
func Mul(dst, a, b *Poly) {
	if a.IsZero() || b.IsZero() {
		dst.SetLength(0)
		return
	}
	la, lb := len(a.c), len(b.c)
	if lb == 1 {
		ScalarMul(dst, a, &b.c[0])
		return
	}
	if la == 1 {
		ScalarMul(dst, b, &a.c[0])
		return
	}
	if a == b || Equal(a, b) {
		Sqr(dst, a)
		return
	}
	// Normalize so b is the shorter operand; the length-based cutoffs below
	// are all expressed in terms of the shorter side.
	if lb > la {
		a, b = b, a
		la, lb = lb, la
	}

	ba, bb := absBits(a.MaxBits()), absBits(b.MaxBits())

	if lb >= Dispatch.FFTMinLen && (ba+bb <= 40 || ba+bb >= 128 || lb >= 100) {
		if out, err := mulSmallPrimeFFT(a, b); err == nil {
			dst.c = out
			dst.normalize()
			return
		}
	}

	if max(ba, bb) <= Dispatch.SmallBitcount && lb < Dispatch.ClassicalCutoff+40 {
		mulClassical(dst, a, b)
		return
	}

	if lb < Dispatch.KaratsubaMinLen {
		mulClassical(dst, a, b)
		return
	}
	if lb < Dispatch.KSSparseMinLen && max(ba, bb) <= Dispatch.SmallBitcount*4 {
		mulKaratsuba(dst, a, b)
		return
	}
	mulKS(dst, a, b)
}

// Sqr sets dst = a * a, using the same ladder as Mul with slightly lower
// cutoffs since squaring can share its one input (spec.md §4.3.2, "the
// squaring dispatch is parallel but with slightly lower cutoffs").
func Sqr(dst, a *Poly) {
	if a.IsZero() {
		dst.SetLength(0)
		return
	}
	la := len(a.c)
	if la == 1 {
		var r bigint.Int
		bigint.Mul(&r, &a.c[0], &a.c[0])
		dst.SetLength(1)
		dst.c[0].Set(&r)
		dst.normalize()
		return
	}
	ba := absBits(a.MaxBits())

	if la >= Dispatch.FFTMinLen-10 && (2*ba <= 40 || 2*ba >= 128) {
		if out, err := mulSmallPrimeFFT(a, a); err == nil {
			dst.c = out
			dst.normalize()
			return
		}
	}
	if la < Dispatch.KaratsubaMinLen-4 {
		mulClassical(dst, a, a)
		return
	}
	if la < Dispatch.KSSparseMinLen && ba <= Dispatch.SmallBitcount*4 {
		mulKaratsuba(dst, a, a)
		return
	}
	mulKS(dst, a, a)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absBits(b int) int {
	if b < 0 {
		return -b
	}
	return b
}

// mulClassical is the schoolbook triangular-window dot-product product:
// out[k] = sum_{i+j==k} a[i]*b[j].
func mulClassical(dst, a, b *Poly) {
	la, lb := len(a.c), len(b.c)
	out := make([]bigint.Int, la+lb-1)
	for i := 0; i < la; i++ {
		if a.c[i].IsZero() {
			continue
		}
		for j := 0; j < lb; j++ {
			bigint.AddMul(&out[i+j], &a.c[i], &b.c[j])
		}
	}
	dst.c = out
	dst.normalize()
}

// mulKaratsuba is the single-level Karatsuba decomposition, applied
// recursively (spec.md §4.3.4): split a, b at the midpoint of the longer
// operand, compute the three sub-products a0*b0, a1*b1, (a0+a1)*(b0+b1),
// and recombine.
func mulKaratsuba(dst, a, b *Poly) {
	la, lb := len(a.c), len(b.c)
	if la < Dispatch.KaratsubaMinLen || lb < Dispatch.KaratsubaMinLen {
		mulClassical(dst, a, b)
		return
	}
	m := la / 2
	if lb < m {
		m = lb
	}

	a0, a1 := splitAt(a, m)
	b0, b1 := splitAt(b, m)

	var z0, z2, sa, sb, z1 Poly
	Mul(&z0, a0, b0)
	Mul(&z2, a1, b1)
	Add(&sa, a0, a1)
	Add(&sb, b0, b1)
	Mul(&z1, &sa, &sb)
	Sub(&z1, &z1, &z0)
	Sub(&z1, &z1, &z2)

	var shifted1, shifted2 Poly
	ShiftLeft(&shifted1, &z1, m)
	ShiftLeft(&shifted2, &z2, 2*m)

	var sum Poly
	Add(&sum, &z0, &shifted1)
	Add(&sum, &sum, &shifted2)
	dst.Set(&sum)
}

func splitAt(p *Poly, m int) (lo, hi *Poly) {
	lo, hi = New(), New()
	Truncate(lo, p, m)
	ShiftRight(hi, p, m)
	return
}

// mulKS multiplies via Kronecker substitution: evaluate both operands at
// x := 2^packBits using exact big.Int (signed) arithmetic, multiply the
// two resulting integers with math/big, then recover the product's
// coefficients as balanced base-2^packBits digits (spec.md §4.3.4, §9).
// packBits is sized so no true product coefficient can reach half the
// base, which is exactly what makes balanced-digit extraction recover
// the original signed coefficients unambiguously.
func mulKS(dst, a, b *Poly) {
	la, lb := len(a.c), len(b.c)
	ba, bb := absBits(a.MaxBits()), absBits(b.MaxBits())
	packBits := uint(ba + bb + bitLenInt(lb) + 2)

	pa := packSigned(a, packBits)
	pb := packSigned(b, packBits)

	var prod big.Int
	prod.Mul(pa, pb)

	out := unpackSigned(&prod, packBits, la+lb-1)
	dst.c = out
	dst.normalize()
}

// packSigned evaluates p at x = 2^bits via Horner's method using exact
// signed big.Int arithmetic (big.Int.Lsh/Add both handle negative
// operands as ordinary signed values, so no bias is needed here).
func packSigned(p *Poly, bits uint) *big.Int {
	out := new(big.Int)
	for i := len(p.c) - 1; i >= 0; i-- {
		out.Lsh(out, bits)
		var cb big.Int
		out.Add(out, p.Coeff(i).BigInt(&cb))
	}
	return out
}

// unpackSigned recovers n balanced base-2^bits digits of product, each in
// (-2^(bits-1), 2^(bits-1)]: repeatedly take the low bits as an unsigned
// residue, re-center it to the balanced range, subtract it out exactly,
// and shift down. This is the standard Kronecker-substitution digit
// extraction, the inverse of packSigned's evaluation-at-2^bits encoding.
func unpackSigned(product *big.Int, bits uint, n int) []bigint.Int {
	out := make([]bigint.Int, n)
	remaining := new(big.Int).Set(product)
	base := new(big.Int).Lsh(big.NewInt(1), bits)
	half := new(big.Int).Lsh(big.NewInt(1), bits-1)

	for k := 0; k < n; k++ {
		v := new(big.Int).Mod(remaining, base)
		if v.Cmp(half) >= 0 {
			v.Sub(v, base)
		}
		out[k].SetBigInt(v)
		remaining.Sub(remaining, v)
		remaining.Rsh(remaining, bits)
	}
	return out
}

// mulSmallPrimeFFT projects both operands through nttfft's small-prime
// multi-modular FFT backend (spec.md §4.3.4's optional capability). It
// returns an error (never panics) when the backend is unavailable, so Mul
// and Sqr can fall through to another strategy.
func mulSmallPrimeFFT(a, b *Poly) ([]bigint.Int, error) {
	av := make([]*bigint.Int, len(a.c))
	for i := range a.c {
		av[i] = &a.c[i]
	}
	bv := make([]*bigint.Int, len(b.c))
	for i := range b.c {
		bv[i] = &b.c[i]
	}
	raw, err := nttfft.Multiply(av, bv)
	if err != nil {
		return nil, err
	}
	out := make([]bigint.Int, len(raw))
	for i, v := range raw {
		out[i].Set(v)
	}
	return out, nil
}

// MulLow sets dst = (a*b) mod x^n, truncating the product to its first n
// coefficients (spec.md §4.3.7 "mullow"). Dispatches to a truncated
// classical loop for small n and falls back to a full multiply followed
// by truncation otherwise, since math/big based KS/FFT paths gain
// little from truncation at the sizes where they're already selected.
func MulLow(dst, a, b *Poly, n int) {
	if n <= 0 || a.IsZero() || b.IsZero() {
		dst.SetLength(0)
		return
	}
	la, lb := len(a.c), len(b.c)
	if la <= n && lb <= n && la*lb <= 4096 {
		out := make([]bigint.Int, min3(n, la+lb-1))
		for i := 0; i < la && i < n; i++ {
			if a.c[i].IsZero() {
				continue
			}
			maxJ := lb
			if n-i < maxJ {
				maxJ = n - i
			}
			for j := 0; j < maxJ; j++ {
				bigint.AddMul(&out[i+j], &a.c[i], &b.c[j])
			}
		}
		dst.c = out
		dst.normalize()
		return
	}
	var full Poly
	Mul(&full, a, b)
	Truncate(dst, &full, n)
}

// SqrLow sets dst = (a*a) mod x^n.
func SqrLow(dst, a *Poly, n int) { MulLow(dst, a, a, n) }

func min3(a, b int) int {
	if a < b {
		return a
	}
	return b
}
