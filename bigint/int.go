// Package bigint implements Int, a signed arbitrary-precision integer that
// inlines small magnitudes into a single machine word and transparently
// promotes to a pool-allocated math/big.Int when a value no longer fits.
//
// The large form is backed by math/big rather than a hand-rolled limb
// array: the teacher (tuneinsight/lattigo's ring.Int, ring/int.go) takes
// the same approach, and the spec's own design notes say a systems-language
// port should prefer an explicit tagged-variant type over bit-stealing
// unless bit-identical layout is required for interop, which it is not
// here. The limb-array and classical-bignum layers the spec describes as
// "supplied by a lower layer" are exactly what math/big already provides.
package bigint

import (
	"fmt"
	"math/big"
)

// wordBits is the width W referenced throughout the spec for the small-form
// range. Using 64 gives COEFF_MAX = 2^62-1.
const wordBits = 64

// CoeffMax is the largest value representable in the small form.
// CoeffMin is its negation, the smallest representable small-form value.
var (
	CoeffMax = int64(1)<<(wordBits-2) - 1
	CoeffMin = -CoeffMax
)

// Int is a signed integer of unbounded magnitude. The zero value is 0 and
// ready to use.
//
// Representation: idx == 0 means the small form, and w holds the value
// directly (w is always in [CoeffMin, CoeffMax] when idx == 0). idx != 0
// is a 1-based index into the process-wide pool of heap-allocated
// big.Int-backed entries; the pool entry always holds a magnitude strictly
// greater than CoeffMax (demote-on-shrink is enforced by every mutator).
//
// Int is not safe for concurrent mutation of a single value (spec.md §5);
// concurrent allocation/free across distinct Ints is safe (guarded by the
// pool's own mutex).
type Int struct {
	w   int64
	idx int32
}

// NewInt returns a new Int with the given int64 value.
func NewInt(v int64) *Int {
	i := new(Int)
	i.SetInt64(v)
	return i
}

// NewFromBigInt returns a new Int with the given math/big value.
func NewFromBigInt(v *big.Int) *Int {
	i := new(Int)
	i.setFromBig(v)
	return i
}

// IsLarge reports whether i is currently in the large (pool-allocated)
// form. Exposed mainly for tests asserting the demote-on-shrink invariant.
func (i *Int) IsLarge() bool { return i.idx != 0 }

// BigInt exposes i's value as a *big.Int, the read-only escape hatch other
// kernel packages (crt, intpoly) use to drive math/big directly for
// algorithms (Kronecker substitution, remainder trees) that are naturally
// expressed over big.Int. It has the same aliasing contract as the
// internal bigView: scratch is used only when i is small.
func (i *Int) BigInt(scratch *big.Int) *big.Int { return i.bigView(scratch) }

// bigView returns a *big.Int equal to i's value. If i is small, the value
// is written into scratch and scratch is returned; if i is large, the
// pool entry's big.Int is returned directly (read-only use expected: the
// caller must not mutate the returned pointer in place, since it may be
// shared with the Int that owns the entry).
func (i *Int) bigView(scratch *big.Int) *big.Int {
	if i.idx == 0 {
		scratch.SetInt64(i.w)
		return scratch
	}
	return &globalPool.get(i.idx).val
}

// promote ensures i is in the large form, preserving its current value
// ("promote-value-preserving" in spec terms). No-op if already large.
func (i *Int) promote() {
	if i.idx != 0 {
		return
	}
	idx := globalPool.alloc()
	globalPool.get(idx).val.SetInt64(i.w)
	i.idx = idx
	i.w = 0
}

// promoteFresh ensures i is in the large form with its big.Int ready to be
// overwritten, discarding whatever value i held. Used when a mutator is
// about to Set the pool entry directly rather than Add/Sub/etc. into it.
func (i *Int) promoteFresh() *big.Int {
	if i.idx == 0 {
		idx := globalPool.alloc()
		i.idx = idx
		i.w = 0
	}
	return &globalPool.get(i.idx).val
}

// demoteIfPossible frees i's pool entry and rewrites it to the small form
// if its magnitude now fits in [CoeffMin, CoeffMax]. This must be called
// (and is called, internally, by setFromBig) after any operation that can
// shrink a large value, so that equal values are always bit-identical
// (spec.md §3.1, §8.1).
func (i *Int) demoteIfPossible() {
	if i.idx == 0 {
		return
	}
	e := globalPool.get(i.idx)
	if e.val.IsInt64() {
		v := e.val.Int64()
		if v >= CoeffMin && v <= CoeffMax {
			idx := i.idx
			i.idx = 0
			i.w = v
			globalPool.release(idx)
		}
	}
}

// setFromBig sets i to v, choosing the small or large form as appropriate
// and demoting/freeing any prior large entry i held. This is the single
// choke point every mutating operation funnels its math/big result
// through, which is what makes demote-on-shrink unconditional.
func (i *Int) setFromBig(v *big.Int) {
	if v.IsInt64() {
		n := v.Int64()
		if n >= CoeffMin && n <= CoeffMax {
			i.Clear()
			i.w = n
			return
		}
	}
	dst := i.promoteFresh()
	if dst != v {
		dst.Set(v)
	}
	// v might already equal dst (self-assignment through bigView), in which
	// case there is nothing to copy.
}

// Clear resets i to zero, freeing its pool entry if it is in the large
// form.
func (i *Int) Clear() {
	if i.idx != 0 {
		globalPool.release(i.idx)
		i.idx = 0
	}
	i.w = 0
}

// SetInt64 sets i to v.
func (i *Int) SetInt64(v int64) *Int {
	i.Clear()
	if v >= CoeffMin && v <= CoeffMax {
		i.w = v
		return i
	}
	i.promoteFresh().SetInt64(v)
	return i
}

// SetUint64 sets i to v.
func (i *Int) SetUint64(v uint64) *Int {
	if v <= uint64(CoeffMax) {
		i.Clear()
		i.w = int64(v)
		return i
	}
	i.Clear()
	i.promoteFresh().SetUint64(v)
	return i
}

// Set sets i to a copy of a's value. Large-form copies allocate a fresh
// pool entry (spec.md §3.1: "a pool entry is exclusively owned by the Int
// that references it").
func (i *Int) Set(a *Int) *Int {
	if i == a {
		return i
	}
	if a.idx == 0 {
		i.Clear()
		i.w = a.w
		return i
	}
	i.promoteFresh().Set(&globalPool.get(a.idx).val)
	return i
}

// Copy returns a new Int with the same value as a.
func Copy(a *Int) *Int {
	return new(Int).Set(a)
}

// Int64 returns i truncated to int64 (as math/big.Int.Int64 does: if i does
// not fit, the result is undefined beyond matching the low bits' sign
// behavior of big.Int).
func (i *Int) Int64() int64 {
	if i.idx == 0 {
		return i.w
	}
	return globalPool.get(i.idx).val.Int64()
}

// Uint64 returns the low 64 bits of |i|'s representation, matching
// math/big.Int.Uint64 semantics.
func (i *Int) Uint64() uint64 {
	if i.idx == 0 {
		return uint64(i.w)
	}
	return globalPool.get(i.idx).val.Uint64()
}

// Sign returns -1, 0 or +1 depending on the sign of i.
func (i *Int) Sign() int {
	if i.idx == 0 {
		switch {
		case i.w < 0:
			return -1
		case i.w > 0:
			return 1
		default:
			return 0
		}
	}
	return globalPool.get(i.idx).val.Sign()
}

// Cmp compares i and j, returning -1, 0 or +1 as i <, ==, > j.
func (i *Int) Cmp(j *Int) int {
	if i.idx == 0 && j.idx == 0 {
		switch {
		case i.w < j.w:
			return -1
		case i.w > j.w:
			return 1
		default:
			return 0
		}
	}
	var ib, jb big.Int
	return i.bigView(&ib).Cmp(j.bigView(&jb))
}

// CmpAbs compares |i| and |j|.
func (i *Int) CmpAbs(j *Int) int {
	var ib, jb big.Int
	iv := i.bigView(&ib)
	jv := j.bigView(&jb)
	var ia, ja big.Int
	ia.Abs(iv)
	ja.Abs(jv)
	return ia.Cmp(&ja)
}

// IsZero reports whether i == 0.
func (i *Int) IsZero() bool {
	if i.idx == 0 {
		return i.w == 0
	}
	return globalPool.get(i.idx).val.Sign() == 0
}

// Equal reports whether i and j have the same value.
func (i *Int) Equal(j *Int) bool { return i.Cmp(j) == 0 }

// String returns the base-10 representation of i.
func (i *Int) String() string {
	if i.idx == 0 {
		return fmt.Sprintf("%d", i.w)
	}
	return globalPool.get(i.idx).val.String()
}

// SetString sets i from s (base 10 signed decimal, matching the external
// wire format used by intpoly/ratfunc string I/O; spec.md §6.1). Reports
// whether parsing succeeded.
func (i *Int) SetString(s string) bool {
	var v big.Int
	_, ok := v.SetString(s, 10)
	if !ok {
		return false
	}
	i.setFromBig(&v)
	return true
}

// SetBigInt sets i to v, choosing the small or large form as appropriate.
// This is the exported counterpart of setFromBig, the escape hatch other
// kernel packages use after driving math/big directly.
func (i *Int) SetBigInt(v *big.Int) *Int {
	i.setFromBig(v)
	return i
}

// BitLen returns the number of bits required to represent |i| (0 for i==0).
func (i *Int) BitLen() int {
	var b big.Int
	return i.bigView(&b).BitLen()
}
