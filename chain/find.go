package chain

import "cmp"

// finder resolves a point read over a leaf chain without folding it: the
// first record mentioning the key decides, and a merge is descended only
// on the side whose range holds the key.
type finder[K cmp.Ordered, V any] struct {
	Cursor[K, V]
	key   K
	value V
	found bool
}

// Find reads the value for key from the virtual leaf node at head.
// The key must lie in the node's range.
func Find[K cmp.Ordered, V any](head *Node[K, V], key K) (V, bool) {
	f := &finder[K, V]{key: key}
	Traverse(head, f)
	return f.value, f.found
}

func (f *finder[K, V]) OnInsert(d *Node[K, V]) {
	if d.key == f.key {
		f.value, f.found = d.value, true
		f.Finish()
		return
	}
	f.Advance(d.next)
}

func (f *finder[K, V]) OnDelete(d *Node[K, V]) {
	if d.key == f.key {
		f.Finish()
		return
	}
	f.Advance(d.next)
}

// OnSplit keeps walking: the caller routed the key here, so it is below
// the split key.
func (f *finder[K, V]) OnSplit(d *Node[K, V]) {
	f.Advance(d.next)
}

// OnMerge follows the branch whose range holds the key.
func (f *finder[K, V]) OnMerge(d *Node[K, V]) {
	if f.key < d.key {
		f.Advance(d.next)
		return
	}
	f.Advance(d.siblingHead)
}

func (f *finder[K, V]) OnRemove(d *Node[K, V]) {
	f.Advance(d.next)
}

func (f *finder[K, V]) OnBase(b *Node[K, V]) {
	if i := b.PointSearch(f.key); i >= 0 {
		f.value, f.found = b.vals[i], true
	}
	f.Finish()
}
