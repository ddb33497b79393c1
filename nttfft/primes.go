package nttfft

import "math/big"

// FindNTTPrime searches for a prime p near 2^bits with p == 1 (mod length),
// together with a primitive length-th root of unity mod p, so that a
// length-point NTT exists over Z/pZ (length must be a power of two; zero
// padding a linear convolution's inputs to at least la+lb-1 and running a
// length-point cyclic NTT computes the same result, so this type of
// transform is what the multiplication backend below needs, rather than
// lattigo's negacyclic 2N-point variant used for ring arithmetic mod
// X^N+1). This mirrors how lattigo's parameter generation picks
// NTT-friendly moduli, generalized here to search at arbitrary bit sizes
// rather than a fixed per-scheme chain.
func FindNTTPrime(bits int, length uint64) (p uint64, root uint64, ok bool) {
	if bits < 2 {
		return 0, 0, false
	}
	base := uint64(1) << uint(bits-1)
	// k*length + 1 candidates, starting just above base.
	k := (base / length) + 1
	for tries := 0; tries < 1<<20; tries++ {
		cand := k*length + 1
		if cand>>uint(bits) != 0 {
			// Overflowed the requested bit budget; give up rather than
			// silently returning an oversized prime.
			return 0, 0, false
		}
		if big.NewInt(0).SetUint64(cand).ProbablyPrime(30) {
			if r, found := primitiveRoot(cand, length); found {
				return cand, r, true
			}
		}
		k++
	}
	return 0, 0, false
}

// primitiveRoot finds g such that g has exact multiplicative order length
// mod p, by trying small generators and the standard order-verification
// trick: g is a primitive length-th root iff g^(length/2) != 1 and g^length == 1
// mod p, for length a power of two dividing p-1.
func primitiveRoot(p, length uint64) (uint64, bool) {
	if (p-1)%length != 0 {
		return 0, false
	}
	exp := (p - 1) / length
	for g := uint64(2); g < p && g < 1<<20; g++ {
		cand := powMod(g, exp, p)
		if cand == 0 || cand == 1 {
			continue
		}
		if powMod(cand, length/2, p) != 1 {
			return cand, true
		}
	}
	return 0, false
}
