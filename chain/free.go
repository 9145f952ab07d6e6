package chain

import (
	"cmp"

	"github.com/dacapoday/bwtree/mapping"
)

// freer destroys a detached chain: every delta goes back to its owning
// base's allocator, remove records release their id, merge records recurse
// into both branches, and each base is destroyed last.
type freer[K cmp.Ordered, V any] struct {
	Cursor[K, V]
	table *mapping.Table[Node[K, V]]
}

// Free destroys the chain at head. It never fails; invoking it on a chain
// some other goroutine can still reach is undefined, so callers interpose
// epoch-based reclamation and call Free only after quiescence.
func Free[K cmp.Ordered, V any](table *mapping.Table[Node[K, V]], head *Node[K, V]) {
	f := &freer[K, V]{table: table}
	Traverse(head, f)
}

func (f *freer[K, V]) OnInsert(d *Node[K, V]) { f.destroy(d) }

func (f *freer[K, V]) OnDelete(d *Node[K, V]) { f.destroy(d) }

func (f *freer[K, V]) OnSplit(d *Node[K, V]) { f.destroy(d) }

// OnRemove releases the removed node's id before the record dies.
func (f *freer[K, V]) OnRemove(d *Node[K, V]) {
	f.table.Release(d.RemovedID())
	f.destroy(d)
}

// OnMerge owns both branches: the merge install transferred the sibling
// chain into this composite, so the sibling is destroyed here too.
func (f *freer[K, V]) OnMerge(d *Node[K, V]) {
	next, sibling, base := d.next, d.siblingHead, d.base
	Traverse(next, f)
	f.Reset()
	Traverse(sibling, f)
	base.DestroyDelta(d)
	f.Finish()
}

func (f *freer[K, V]) OnBase(b *Node[K, V]) {
	b.destroyBase()
	f.Finish()
}

func (f *freer[K, V]) destroy(d *Node[K, V]) {
	next, base := d.next, d.base
	base.DestroyDelta(d)
	f.Advance(next)
}
