package nttfft

import (
	"math/big"

	"github.com/klauspost/cpuid/v2"

	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/crt"
	"github.com/fractio/bigkernel/kernelerr"
)

// maxPrimeBits bounds how large a search prime FindNTTPrime is allowed to
// return. mulMod's exact bits.Mul64/bits.Div64 reduction requires the
// 128-bit product's high word to stay below the modulus; for two operands
// below a prime of this size the high word is comfortably smaller, so this
// is a correctness bound, not just a performance one.
const maxPrimeBits = 61

// Available reports whether the small-prime NTT backend can service a
// multiplication of an la-coefficient polynomial by an lb-coefficient one.
// Modeled as a capability trait rather than a build tag: on hardware
// without fast 128-bit multiply support (BMI2+ADX, which make bits.Mul64
// compile to MULX/ADCX/ADOX instead of a software carry chain) the
// dispatcher in intpoly is expected to prefer Kronecker substitution
// instead, so Available degrades to false rather than running correctly
// but slowly.
func Available(la, lb int) bool {
	if la <= 0 || lb <= 0 {
		return false
	}
	return cpuid.CPU.Supports(cpuid.BMI2, cpuid.ADX)
}

// Multiply computes the coefficient vector of the product of a and b (dense,
// constant-term-first, length len(a)+len(b)-1) via the small-prime
// multi-modular FFT: project both operands to a basis of NTT-friendly
// primes sized to avoid coefficient overflow, transform, multiply
// pointwise, invert, and recombine through the crt package's Comb. Returns
// kernelerr.ErrUnavailable when the backend cannot service the request (no
// fast-multiply hardware, or no NTT-friendly prime found within budget),
// matching the "capability trait that degrades cleanly" shape in
// SPEC_FULL.md's domain stack section.
func Multiply(a, b []*bigint.Int) ([]*bigint.Int, error) {
	if !Available(len(a), len(b)) {
		return nil, kernelerr.ErrUnavailable
	}

	la, lb := len(a), len(b)
	resultLen := la + lb - 1
	n := nextPow2(resultLen)

	maxBits := 1
	for _, c := range a {
		if bl := c.BitLen(); bl > maxBits {
			maxBits = bl
		}
	}
	for _, c := range b {
		if bl := c.BitLen(); bl > maxBits {
			maxBits = bl
		}
	}
	minLen := la
	if lb < minLen {
		minLen = lb
	}
	// Each product coefficient is a sum of at most minLen terms, each the
	// product of a maxBits-bit and a maxBits-bit value: bound its bit length
	// by 2*maxBits + bitLenInt(minLen), plus a couple of guard bits for the
	// centered-representative doubling below.
	boundBits := 2*maxBits + bitLenInt(minLen) + 2

	need := new(big.Int).Lsh(big.NewInt(1), uint(boundBits+1))
	product := big.NewInt(1)

	var primes []uint64
	var roots []uint64
	searchBits := 40
	for product.Cmp(need) < 0 {
		if searchBits > maxPrimeBits {
			return nil, kernelerr.ErrUnavailable
		}
		p, root, ok := FindNTTPrime(searchBits, uint64(n))
		if !ok {
			searchBits++
			continue
		}
		primes = append(primes, p)
		roots = append(roots, root)
		product.Mul(product, new(big.Int).SetUint64(p))
		searchBits += 2
	}

	perPrimeResult := make([][]uint64, len(primes))
	for pi, p := range primes {
		rt := NewRootTable(n, p, roots[pi])

		ca := make([]uint64, n)
		cb := make([]uint64, n)
		for j, c := range a {
			ca[j] = centeredResidue(c, p)
		}
		for j, c := range b {
			cb[j] = centeredResidue(c, p)
		}

		fa := rt.Forward(ca)
		fb := rt.Forward(cb)
		for j := range fa {
			fa[j] = mulMod(fa[j], fb[j], p)
		}
		perPrimeResult[pi] = rt.Inverse(fa)
	}

	comb := crt.NewComb(primes)
	prod := comb.Product()
	half := new(big.Int).Rsh(prod, 1)

	out := make([]*bigint.Int, resultLen)
	residues := make([]uint64, len(primes))
	for k := 0; k < resultLen; k++ {
		for pi := range primes {
			residues[pi] = perPrimeResult[pi][k]
		}
		var val bigint.Int
		comb.Recombine(&val, residues)

		var vb big.Int
		v := val.BigInt(&vb)
		if v.Cmp(half) > 0 {
			v = new(big.Int).Sub(v, prod)
		}
		out[k] = bigint.NewFromBigInt(v)
	}

	return out, nil
}

// centeredResidue returns c mod p as a value in [0, p), for c possibly
// negative and possibly large-form.
func centeredResidue(c *bigint.Int, p uint64) uint64 {
	var cb big.Int
	m := new(big.Int).Mod(c.BigInt(&cb), new(big.Int).SetUint64(p))
	return m.Uint64()
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func bitLenInt(n int) int {
	b := 0
	for n > 0 {
		b++
		n >>= 1
	}
	return b
}
