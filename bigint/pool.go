package bigint

import (
	"container/heap"
	"math/big"
	"sync"
)

// A pool entry is owned by exactly one Int at a time; the zero Int never
// references one. Entries are recycled through a free list keyed by index
// rather than appended/truncated, so that indices handed out earlier stay
// stable across Clear/Alloc cycles (the pool is an arena, not a stack).
type poolEntry struct {
	val big.Int
}

// minIndexHeap is a min-heap of free slot indices; allocation always
// returns the lowest free index, per the Pool semantics of the spec.
type minIndexHeap []int32

func (h minIndexHeap) Len() int            { return len(h) }
func (h minIndexHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minIndexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minIndexHeap) Push(x interface{}) { *h = append(*h, x.(int32)) }
func (h *minIndexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// intPool is the process-wide arena of heap-allocated limb-array integers
// backing the large form of Int. Indices are 1-based; index 0 is reserved
// to mean "small form" on the Int side.
type intPool struct {
	mu      sync.Mutex
	entries []*poolEntry
	free    minIndexHeap
}

var globalPool = &intPool{}

// alloc returns the lowest free 1-based index, allocating a new entry if
// the free list is empty.
func (p *intPool) alloc() int32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) > 0 {
		idx := heap.Pop(&p.free).(int32)
		return idx
	}
	p.entries = append(p.entries, &poolEntry{})
	return int32(len(p.entries))
}

func (p *intPool) get(idx int32) *poolEntry {
	p.mu.Lock()
	e := p.entries[idx-1]
	p.mu.Unlock()
	return e
}

// release returns idx to the free list. The entry's big.Int is reset to
// zero so that a leaked reference from a use-after-free bug reads 0 rather
// than another Int's value.
func (p *intPool) release(idx int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[idx-1].val.SetInt64(0)
	heap.Push(&p.free, idx)
}

// cleanup releases every pool entry, matching the spec's process-wide
// cleanup entry point (spec.md §6.5). Any Int still referencing a pool
// index after cleanup is left dangling, exactly as clearing a pool out
// from under live handles would be in the C original; callers are expected
// to call this only when no Int in large form is still reachable.
func cleanup() {
	globalPool.mu.Lock()
	defer globalPool.mu.Unlock()
	globalPool.entries = globalPool.entries[:0]
	globalPool.free = globalPool.free[:0]
}

// Cleanup releases all pooled large-form entries process-wide. Reinitializing
// (allocating new Ints) after Cleanup is safe; it simply starts a fresh
// arena.
func Cleanup() {
	cleanup()
}
