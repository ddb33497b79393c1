package crt

import (
	"math/big"

	"github.com/fractio/bigkernel/bigint"
)

// crtNode is one node of MultiCRT's combination tree. A leaf names a
// position in the caller-supplied residue vector; an internal node
// combines its two children via two-modulus CRT.
type crtNode struct {
	modulus *big.Int
	leafIdx int // >= 0 for a leaf, -1 for an internal node
	left    *crtNode
	right   *crtNode
}

// MultiCRT is a compiled recursive Chinese Remainder tree for a
// user-supplied vector of arbitrary Int moduli: built once per modulus
// vector (NewMultiCRT), reused across many Evaluate calls (spec.md §3.5).
//
// The spec's reference description frames this as a flat array of
// three-address instructions over indexed slots, which is how the C
// implementation avoids recursion and per-call allocation. This port
// compiles the same tree shape but walks it recursively at Evaluate time;
// the "compile once, interpret per call" cost profile is identical, and Go
// has no difficulty with recursion depth bounded by log2(len(moduli)).
type MultiCRT struct {
	moduli       []*bigint.Int
	root         *crtNode
	valid        bool
	finalModulus *big.Int
	localSize    int
}

// NewMultiCRT builds a MultiCRT program for the given moduli vector. The
// program is valid (Valid() == true) iff every modulus is non-zero and the
// moduli are pairwise coprime; an invalid program's Evaluate always
// returns false without attempting a combination, matching the spec's
// NoSolution contract for extended-GCD / interpolation callers that build
// a MultiCRT from possibly-unlucky moduli.
func NewMultiCRT(moduli []*bigint.Int) *MultiCRT {
	m := &MultiCRT{moduli: moduli}

	m.valid = true
	for _, mi := range moduli {
		if mi.IsZero() {
			m.valid = false
		}
	}
	for i := 0; i < len(moduli) && m.valid; i++ {
		for j := i + 1; j < len(moduli); j++ {
			var g bigint.Int
			bigint.GCD(&g, moduli[i], moduli[j])
			if g.Cmp(bigint.NewInt(1)) != 0 {
				m.valid = false
				break
			}
		}
	}

	if len(moduli) == 0 {
		m.finalModulus = big.NewInt(1)
		return m
	}

	m.root = buildCRTTree(moduli, 0, len(moduli))
	m.finalModulus = new(big.Int).Set(m.root.modulus)
	m.localSize = treeNodeCount(m.root)
	return m
}

func buildCRTTree(moduli []*bigint.Int, lo, hi int) *crtNode {
	if hi-lo == 1 {
		var mb big.Int
		return &crtNode{modulus: new(big.Int).Abs(moduli[lo].BigInt(&mb)), leafIdx: lo}
	}
	mid := lo + (hi-lo)/2
	left := buildCRTTree(moduli, lo, mid)
	right := buildCRTTree(moduli, mid, hi)
	return &crtNode{modulus: new(big.Int).Mul(left.modulus, right.modulus), leafIdx: -1, left: left, right: right}
}

func treeNodeCount(n *crtNode) int {
	if n == nil {
		return 0
	}
	if n.leafIdx >= 0 {
		return 1
	}
	return 1 + treeNodeCount(n.left) + treeNodeCount(n.right)
}

// Valid reports whether the supplied moduli were pairwise coprime and
// usable.
func (m *MultiCRT) Valid() bool { return m.valid }

// ModuliProduct returns the product of all moduli in the program.
func (m *MultiCRT) ModuliProduct() *big.Int { return new(big.Int).Set(m.finalModulus) }

// LocalSize returns the number of intermediate slots the compiled program
// uses (exposed for parity with the spec's description of MultiCRT's
// fields; this port's recursive evaluator doesn't preallocate them, but
// the count is meaningful as a complexity/diagnostic metric).
func (m *MultiCRT) LocalSize() int { return m.localSize }

// Evaluate computes, into dst, the unique value congruent to residues[i]
// modulo moduli[i] for every i, residing in [0, ModuliProduct()). It
// reports false (dst left unchanged) if the program is invalid.
func (m *MultiCRT) Evaluate(dst *bigint.Int, residues []*bigint.Int) bool {
	if !m.valid || m.root == nil {
		return false
	}
	r, ok := evalCRTNode(m.root, residues)
	if !ok {
		return false
	}
	dst.SetBigInt(r)
	return true
}

func evalCRTNode(n *crtNode, residues []*bigint.Int) (*big.Int, bool) {
	if n.leafIdx >= 0 {
		var rb big.Int
		v := new(big.Int).Mod(residues[n.leafIdx].BigInt(&rb), n.modulus)
		return v, true
	}
	lr, ok := evalCRTNode(n.left, residues)
	if !ok {
		return nil, false
	}
	rr, ok := evalCRTNode(n.right, residues)
	if !ok {
		return nil, false
	}
	return combineTwo(lr, n.left.modulus, rr, n.right.modulus)
}

// combineTwo returns the unique r in [0, m1*m2) with r == r1 (mod m1) and
// r == r2 (mod m2), for coprime m1, m2.
func combineTwo(r1, m1, r2, m2 *big.Int) (*big.Int, bool) {
	u := new(big.Int).ModInverse(m1, m2)
	if u == nil {
		return nil, false
	}
	diff := new(big.Int).Sub(r2, r1)
	diff.Mul(diff, u)
	diff.Mod(diff, m2)
	diff.Mul(diff, m1)
	result := new(big.Int).Add(r1, diff)
	prod := new(big.Int).Mul(m1, m2)
	result.Mod(result, prod)
	return result, true
}
