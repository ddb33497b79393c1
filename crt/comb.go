// Package crt implements the spec's CRT subsystem: Comb, a precomputed
// prime comb for fast Int <-> residues-vector conversion, and MultiCRT, a
// compiled recursive Chinese Remainder tree for an arbitrary vector of Int
// moduli. Grounded on two teacher artifacts: the RNS basis-extension
// machinery of tuneinsight/lattigo's ring/basis_extension.go (product
// trees, per-modulus precomputed inverses) and FLINT's
// fmpz_multi_CRT_precompute (original_source/src/fmpz/multi_CRT_precompute.c),
// which defines the exact three-address-instruction program shape used by
// MultiCRT.
package crt

import (
	"math/big"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/fractio/bigkernel/bigint"
)

// maxOf returns the larger of a, b, generic over the tree-builder's various
// integer index/height types.
func maxOf[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// combNode is one node of Comb's binary product tree. Leaves hold a single
// prime (primeIdx >= 0); internal nodes hold the product of their
// children's ranges and the contiguous leaf range [lo, hi) they cover.
type combNode struct {
	product  *big.Int
	lo, hi   int // leaf range covered, in sorted-prime order
	primeIdx int // >= 0 for a leaf, -1 for an internal node
	left     *combNode
	right    *combNode
}

// Comb is a precomputed product tree over a sorted list of single-limb
// primes, enabling simultaneous modular reduction (an Int down to a
// residues vector) via a remainder tree and CRT recombination (a residues
// vector back to an Int) via the MultiCRT program built from the same
// prime list.
type Comb struct {
	primes []uint64
	root   *combNode
	height int
	multi  *MultiCRT
}

// NewComb builds a Comb over the given (not necessarily sorted) list of
// distinct single-limb primes.
func NewComb(primes []uint64) *Comb {
	sorted := append([]uint64(nil), primes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	c := &Comb{primes: sorted}
	if len(sorted) > 0 {
		c.root = buildCombTree(sorted, 0, len(sorted))
		c.height = treeHeight(c.root)
	}

	moduli := make([]*bigint.Int, len(sorted))
	for i, p := range sorted {
		moduli[i] = bigint.NewInt(0).SetUint64(p)
	}
	c.multi = NewMultiCRT(moduli)

	return c
}

func buildCombTree(primes []uint64, lo, hi int) *combNode {
	if hi-lo == 1 {
		return &combNode{product: new(big.Int).SetUint64(primes[lo]), lo: lo, hi: hi, primeIdx: lo}
	}
	mid := lo + (hi-lo)/2
	left := buildCombTree(primes, lo, mid)
	right := buildCombTree(primes, mid, hi)
	return &combNode{
		product:  new(big.Int).Mul(left.product, right.product),
		lo:       lo, hi: hi, primeIdx: -1,
		left: left, right: right,
	}
}

func treeHeight(n *combNode) int {
	if n == nil || n.primeIdx >= 0 {
		return 0
	}
	lh, rh := treeHeight(n.left), treeHeight(n.right)
	return maxOf(lh, rh) + 1
}

// Primes returns the comb's sorted prime list.
func (c *Comb) Primes() []uint64 { return c.primes }

// Len returns the number of primes in the comb.
func (c *Comb) Len() int { return len(c.primes) }

// Height returns ceil(log2 k) for k primes, the depth of the product tree.
func (c *Comb) Height() int { return c.height }

// Product returns the full product of all primes in the comb.
func (c *Comb) Product() *big.Int {
	if c.root == nil {
		return big.NewInt(1)
	}
	return new(big.Int).Set(c.root.product)
}

// Reduce computes x mod p_i for every prime in the comb, via the
// remainder-tree algorithm: at each internal node, reduce the running
// value modulo that node's product before recursing into its children, so
// deeper levels only ever work with partial products instead of the full
// modulus.
func (c *Comb) Reduce(x *bigint.Int) []uint64 {
	out := make([]uint64, len(c.primes))
	if c.root == nil {
		return out
	}
	var xb big.Int
	xv := new(big.Int).Mod(x.BigInt(&xb), c.root.product)
	reduceNode(c.root, xv, out)
	return out
}

func reduceNode(n *combNode, r *big.Int, out []uint64) {
	if n.primeIdx >= 0 {
		out[n.primeIdx] = r.Uint64()
		return
	}
	l := new(big.Int).Mod(r, n.left.product)
	reduceNode(n.left, l, out)
	rr := new(big.Int).Mod(r, n.right.product)
	reduceNode(n.right, rr, out)
}

// Recombine reconstructs the unique Int in [0, Product()) whose residue
// modulo each comb prime matches residues, using the comb's compiled
// MultiCRT program.
func (c *Comb) Recombine(dst *bigint.Int, residues []uint64) {
	srcs := make([]*bigint.Int, len(residues))
	for i, r := range residues {
		srcs[i] = bigint.NewInt(0).SetUint64(r)
	}
	c.multi.Evaluate(dst, srcs)
}
