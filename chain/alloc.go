package chain

import "sync/atomic"

// allocator is the per-base delta accounting. The records themselves come
// from the Go heap (the general allocator); what the base tracks is the
// number of deltas allocated against it that have not been destroyed, so
// chain destruction can be audited and leaks surface in tests.
type allocator struct {
	live      atomic.Int64
	allocated atomic.Int64
}

// newDelta allocates a delta record owned by base b.
func (b *Node[K, V]) newDelta(kind Kind) *Node[K, V] {
	assertBase("newDelta", b.kind)
	b.alloc.allocated.Add(1)
	b.alloc.live.Add(1)
	return &Node[K, V]{kind: kind, base: b}
}

// DestroyDelta returns a delta to the owning base's allocator. The record
// must have been allocated against b and must not be reachable from the
// mapping table. Pointers are severed so a detached chain does not pin
// the nodes below it.
func (b *Node[K, V]) DestroyDelta(d *Node[K, V]) {
	assertOwner("DestroyDelta", b, d)
	d.next = nil
	d.siblingHead = nil
	d.low = nil
	d.high = nil
	d.base = nil
	b.alloc.live.Add(-1)
}

// LiveDeltas returns the number of deltas allocated against b that have
// not been destroyed.
func (b *Node[K, V]) LiveDeltas() int64 {
	return b.alloc.live.Load()
}

// AllocatedDeltas returns the total number of deltas ever allocated
// against b.
func (b *Node[K, V]) AllocatedDeltas() int64 {
	return b.alloc.allocated.Load()
}

// destroyBase drops a base's entry storage. Runs once per base at the end
// of a Free pass; afterwards the chain rooted here is gone.
func (b *Node[K, V]) destroyBase() {
	b.keys = nil
	b.vals = nil
	b.children = nil
	b.low = nil
	b.high = nil
	b.base = nil
}
