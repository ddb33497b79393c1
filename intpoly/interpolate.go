package intpoly

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/kernelerr"
)

// wordPrimeBits approximates the bit-length of the probable primes
// nextWordPrime hands out (it starts searching from 1<<30 and climbs),
// used only to size the first interpolation prime batch.
const wordPrimeBits = 31.0

// InterpolateMultiMod returns the unique polynomial of degree < len(xs)
// with p(xs[i]) == ys[i] for every i, via simultaneous modular
// interpolation and CRT recombination over a growing sequence of
// word-sized primes (spec.md §4.3.9). Returns kernelerr.ErrNoSolution if
// the xs are not pairwise distinct, or if the prime budget is exhausted
// before the candidate verifies.
func InterpolateMultiMod(xs, ys []*bigint.Int) (*Poly, error) {
	n := len(xs)
	if len(ys) != n {
		return nil, kernelerr.ErrDomain
	}
	if n == 0 {
		return New(), nil
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if xs[i].Cmp(xs[j]) == 0 {
				return nil, kernelerr.ErrNoSolution
			}
		}
	}

	bound := interpolationHeightBound(xs, ys)
	totalPrimes := estimatedPrimeCount(bound)

	accum := New()
	var modulus bigint.Int
	modulus.SetInt64(1)

	prime := uint64(1) << 30
	primesUsed := 0
	const maxPrimes = 4096
	for tries := 0; tries < maxPrimes; tries++ {
		prime = nextWordPrime(prime + 1)
		pBig := new(big.Int).SetUint64(prime)

		xsp := make([]*big.Int, n)
		ysp := make([]*big.Int, n)
		for i := 0; i < n; i++ {
			var xb, yb big.Int
			xsp[i] = new(big.Int).Mod(xs[i].BigInt(&xb), pBig)
			ysp[i] = new(big.Int).Mod(ys[i].BigInt(&yb), pBig)
		}

		residue := lagrangeInterpolateModP(xsp, ysp, pBig)
		if residue == nil {
			continue // duplicate xs (or singular denominator) mod p: discard
		}

		accum = crtCombinePoly(accum, &modulus, residue, prime, pBig)
		bigint.MulUi(&modulus, &modulus, prime)
		primesUsed++

		if primesUsed >= totalPrimes/2 && verifyInterpolation(accum, xs, ys) {
			return accum, nil
		}

		var mb big.Int
		if modulus.BigInt(&mb).Cmp(bound) > 0 {
			if verifyInterpolation(accum, xs, ys) {
				return accum, nil
			}
			return nil, kernelerr.ErrNoSolution
		}
	}
	return nil, kernelerr.ErrNoSolution
}

// interpolationHeightBound computes the conservative coefficient bound
// (|xs|_inf + 1)^(n-1) * ceil(log2 n) * |ys|_inf from spec.md §4.3.9 /
// §9's open question (the bound is deliberately left un-tightened per the
// spec's instruction not to change it without re-verifying termination).
func interpolationHeightBound(xs, ys []*bigint.Int) *big.Int {
	n := len(xs)
	maxX := big.NewInt(0)
	for _, x := range xs {
		var xb big.Int
		v := new(big.Int).Abs(x.BigInt(&xb))
		if v.Cmp(maxX) > 0 {
			maxX.Set(v)
		}
	}
	maxY := big.NewInt(1)
	for _, y := range ys {
		var yb big.Int
		v := new(big.Int).Abs(y.BigInt(&yb))
		if v.Cmp(maxY) > 0 {
			maxY.Set(v)
		}
	}
	base := new(big.Int).Add(maxX, big.NewInt(1))
	bound := new(big.Int).Exp(base, big.NewInt(int64(n-1)), nil)
	logn := int64(math.Ceil(math.Log2(float64(n))))
	if logn < 1 {
		logn = 1
	}
	bound.Mul(bound, big.NewInt(logn))
	bound.Mul(bound, maxY)
	if bound.Sign() == 0 {
		bound.SetInt64(1)
	}
	return bound
}

// estimatedPrimeCount sizes the "total_primes" spec.md §4.3.9 refers to
// (verify after total_primes/2 primes): log2(bound) via bigfloat.Log on a
// big.Float view of bound, divided by the approximate bit-width of each
// interpolation prime. Wired per SPEC_FULL.md's domain-stack section:
// bigfloat avoids truncating bound to a machine float (which would
// overflow for the polynomial sizes this bound is meant to cover) just to
// take its log.
func estimatedPrimeCount(bound *big.Int) int {
	if bound.Sign() <= 0 {
		return 2
	}
	bf := new(big.Float).SetPrec(256).SetInt(bound)
	ln := bigfloat.Log(bf)
	ln2 := new(big.Float).SetPrec(256).SetFloat64(math.Ln2)
	bits := new(big.Float).Quo(ln, ln2)
	bitsF, _ := bits.Float64()
	count := int(math.Ceil(bitsF / wordPrimeBits))
	if count < 2 {
		count = 2
	}
	return count
}

// verifyInterpolation re-evaluates the candidate at every xs[i] via plain
// Horner and checks it reproduces ys[i] exactly (spec.md §4.3.9's
// termination check).
func verifyInterpolation(p *Poly, xs, ys []*bigint.Int) bool {
	for i := range xs {
		if Evaluate(p, xs[i]).Cmp(ys[i]) != 0 {
			return false
		}
	}
	return true
}

// lagrangeInterpolateModP computes the unique low-order-first coefficient
// vector of degree < len(xs) over Z/pZ with poly(xs[i]) == ys[i], via the
// classical Lagrange basis-polynomial construction. Returns nil if any two
// xs coincide mod p (duplicate node) or a cross-difference is singular,
// signaling the caller to discard this prime.
func lagrangeInterpolateModP(xs, ys []*big.Int, p *big.Int) []*big.Int {
	n := len(xs)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if xs[i].Cmp(xs[j]) == 0 {
				return nil
			}
		}
	}

	result := make([]*big.Int, n)
	for i := range result {
		result[i] = big.NewInt(0)
	}

	for i := 0; i < n; i++ {
		basis := []*big.Int{big.NewInt(1)}
		denom := big.NewInt(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			basis = mulLinearModP(basis, xs[j], p)
			d := new(big.Int).Sub(xs[i], xs[j])
			d.Mod(d, p)
			denom.Mul(denom, d)
			denom.Mod(denom, p)
		}
		denomInv := new(big.Int).ModInverse(denom, p)
		if denomInv == nil {
			return nil
		}
		coeff := new(big.Int).Mul(ys[i], denomInv)
		coeff.Mod(coeff, p)
		for k := range basis {
			t := new(big.Int).Mul(basis[k], coeff)
			result[k].Add(result[k], t)
			result[k].Mod(result[k], p)
		}
	}
	return trimModP(result, p)
}

// mulLinearModP multiplies the low-order-first coefficient vector basis by
// (x - xj) mod p.
func mulLinearModP(basis []*big.Int, xj, p *big.Int) []*big.Int {
	out := make([]*big.Int, len(basis)+1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for i, c := range basis {
		out[i+1].Add(out[i+1], c)
		t := new(big.Int).Mul(c, xj)
		out[i].Sub(out[i], t)
	}
	for i := range out {
		out[i].Mod(out[i], p)
	}
	return out
}
