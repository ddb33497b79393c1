// Package nttfft is the optional small-prime multi-modular FFT backend:
// multiplication via projection to residues modulo a basis of NTT-friendly
// primes, transforming each residue polynomial with a number-theoretic
// transform, multiplying pointwise, inverse-transforming, and recombining
// through the crt package. It is modeled as a capability trait (Available)
// that degrades to kernelerr.ErrUnavailable so the outer intpoly dispatcher
// can fall through to another strategy, per spec.md §4.3.4/§9 ("small-prime
// FFT as an optional backend ... model it as a capability trait").
//
// The double-word modular-multiply helper and the butterfly structure are
// adapted from tuneinsight/lattigo's ring/modular_reduction.go and
// ring/ntt.go (MRed/BRed-style Montgomery/Barrett reduction over
// math/bits.Mul64, and the iterative decimation-in-time butterfly
// network), generalized from lattigo's fixed per-scheme prime chain to an
// on-demand search over primes sized for the caller's polynomial.
package nttfft

import "math/bits"

// mulMod computes a*b mod p for a, b < p < 2^62, using the exact 128-bit
// product (bits.Mul64) and a single 128-by-64 division (bits.Div64). This
// is the "double-word helper" the spec's Limb-primitives layer describes;
// it is exact (no Montgomery/Barrett approximation) which keeps the NTT
// code simple at the cost of one division per multiply-add.
func mulMod(a, b, p uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, p)
	return rem
}

// addMod computes a+b mod p for a, b < p.
func addMod(a, b, p uint64) uint64 {
	s := a + b
	if s >= p || s < a {
		s -= p
	}
	return s
}

// subMod computes a-b mod p for a, b < p.
func subMod(a, b, p uint64) uint64 {
	if a >= b {
		return a - b
	}
	return p - (b - a)
}

// powMod computes base^exp mod p.
func powMod(base, exp, p uint64) uint64 {
	result := uint64(1) % p
	base %= p
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, p)
		}
		base = mulMod(base, base, p)
		exp >>= 1
	}
	return result
}
