package nttfft

import "github.com/fractio/bigkernel/internal/tmp"

// RootTable holds the modulus and primitive root for a length-N NTT,
// precomputed once (the root search in primes.go is the expensive part)
// and reused across many transforms — the same caching role lattigo's
// ring.Ring plays for its nttPsi/nttPsiInv tables, just without
// materializing a full twiddle table, since Transform below recomputes
// twiddles recursively (see doc comment on Transform for why).
type RootTable struct {
	N    int
	P    uint64
	root uint64
}

// NewRootTable builds a RootTable for an N-point NTT mod p using the given
// primitive N-th root of unity (N must be a power of two).
func NewRootTable(N int, p, root uint64) *RootTable {
	return &RootTable{N: N, P: p, root: root}
}

// Forward returns the N-point NTT of coeffs (length N, already reduced mod
// p), in natural (not bit-reversed) order.
func (t *RootTable) Forward(coeffs []uint64) []uint64 {
	frame := rootFrames.Start()
	defer rootFrames.End(frame)
	return transform(frame, coeffs, t.P, t.root)
}

// Inverse returns the inverse N-point NTT of coeffs, including the final
// scale by N^-1 mod p.
func (t *RootTable) Inverse(coeffs []uint64) []uint64 {
	frame := rootFrames.Start()
	defer rootFrames.End(frame)
	rootInv := powMod(t.root, t.P-2, t.P)
	out := transform(frame, coeffs, t.P, rootInv)
	nInv := powMod(uint64(t.N)%t.P, t.P-2, t.P)
	for i := range out {
		out[i] = mulMod(out[i], nInv, t.P)
	}
	return out
}

// rootFrames recycles the even/odd split buffers transform churns through on
// every recursive call, across the whole package rather than per RootTable,
// since a Forward/Inverse call is the natural bracketed region for FLINT's
// TMP_START/TMP_END pattern (see internal/tmp).
var rootFrames tmp.Pool

// transform is the textbook recursive radix-2 decimation-in-time
// Cooley-Tukey transform over Z/pZ: split into even/odd indexed halves,
// recurse with the root squared (a primitive (n/2)-th root), then combine
// with powers of root. Chosen over an iterative in-place butterfly network
// (the style ring/ntt.go uses) because its correctness follows directly
// from the standard FFT recurrence with no bit-reversal index bookkeeping
// to get right by hand — see DESIGN.md. evenIn/oddIn are pure scratch
// (fully consumed before this call returns) and are pulled from frame
// instead of allocated fresh at every recursion level; evenOut/oddOut/out
// escape to the caller and are always heap-allocated.
func transform(frame *tmp.Frame, a []uint64, p uint64, root uint64) []uint64 {
	n := len(a)
	if n == 1 {
		out := make([]uint64, 1)
		out[0] = a[0] % p
		return out
	}

	half := n / 2
	evenIn := frame.Uint64s(half)
	oddIn := frame.Uint64s(half)
	for i := 0; i < half; i++ {
		evenIn[i] = a[2*i]
		oddIn[i] = a[2*i+1]
	}

	rootSq := mulMod(root, root, p)
	evenOut := transform(frame, evenIn, p, rootSq)
	oddOut := transform(frame, oddIn, p, rootSq)
	frame.Release(evenIn)
	frame.Release(oddIn)

	out := make([]uint64, n)
	w := uint64(1) % p
	for i := 0; i < half; i++ {
		term := mulMod(w, oddOut[i], p)
		out[i] = addMod(evenOut[i], term, p)
		out[i+half] = subMod(evenOut[i], term, p)
		w = mulMod(w, root, p)
	}
	return out
}
