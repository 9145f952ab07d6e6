// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package chain

import (
	"cmp"
	"sort"

	"github.com/dacapoday/bwtree/bound"
	"github.com/dacapoday/bwtree/mapping"
)

// NewLeafBase builds a consolidated leaf spanning [low, high) with the
// given strictly ascending keys and their values. The base takes ownership
// of the slices.
func NewLeafBase[K cmp.Ordered, V any](low, high bound.Key[K], keys []K, vals []V) *Node[K, V] {
	n := &Node[K, V]{
		kind:    LeafBase,
		size:    len(keys),
		lowKey:  low,
		highKey: high,
		keys:    keys,
		vals:    vals,
	}
	n.low = &n.lowKey
	n.high = &n.highKey
	n.base = n
	assertAscending("NewLeafBase", keys, 0)
	return n
}

// NewInnerBase builds a consolidated inner node spanning [low, high).
// Entry i routes keys in [keys[i], keys[i+1]) to children[i]; keys[0] is
// ignored and stands for the subtree covering (low, keys[1]). The base
// takes ownership of the slices.
func NewInnerBase[K cmp.Ordered, V any](low, high bound.Key[K], keys []K, children []mapping.ID) *Node[K, V] {
	n := &Node[K, V]{
		kind:     InnerBase,
		size:     len(keys),
		lowKey:   low,
		highKey:  high,
		keys:     keys,
		children: children,
	}
	n.low = &n.lowKey
	n.high = &n.highKey
	n.base = n
	assertAscending("NewInnerBase", keys, 1)
	return n
}

// KeyAt returns the key of entry i. For inner bases entry 0's key is
// meaningless.
func (n *Node[K, V]) KeyAt(i int) K { return n.keys[i] }

// ValueAt returns the value of leaf entry i.
func (n *Node[K, V]) ValueAt(i int) V { return n.vals[i] }

// ChildAt returns the child id of inner entry i.
func (n *Node[K, V]) ChildAt(i int) mapping.ID { return n.children[i] }

// Search returns the greatest index i with keys[i] <= k, treating entry 0
// as always less-or-equal. Precondition (checked with -tags debug): the
// base is non-empty and k lies in the node's range.
func (n *Node[K, V]) Search(k K) int {
	assertBase("Search", n.kind)
	assertKeyInRange("Search", n, k)
	// upper_bound over keys[1:size], minus one; entry 0 is excluded from
	// the binary search because it is conceptually always <= k.
	return sort.Search(n.size-1, func(j int) bool {
		return n.keys[1+j] > k
	})
}

// PointSearch returns Search(k) when the entry's key equals k, else -1.
// Inner entry 0 never matches: its key is not meaningful.
func (n *Node[K, V]) PointSearch(k K) int {
	assertBase("PointSearch", n.kind)
	if n.size == 0 {
		return -1
	}
	i := n.Search(k)
	if i == 0 && n.kind == InnerBase {
		return -1
	}
	if n.keys[i] == k {
		return i
	}
	return -1
}

// Split carves off the upper half of the base into a fresh, unpublished
// base node. The pivot is size/2; the right half spans
// [keys[pivot], high) and copies the entries from the pivot up. The
// receiver is left unchanged: the caller truncates it logically by
// installing a split delta that redirects the effective high bound to the
// split key.
//
// Precondition (checked with -tags debug): size > 1.
func (n *Node[K, V]) Split() *Node[K, V] {
	assertBase("Split", n.kind)
	assertSplitSize("Split", n.size)
	pivot := n.size / 2

	keys := make([]K, n.size-pivot)
	copy(keys, n.keys[pivot:])

	if n.kind == LeafBase {
		vals := make([]V, n.size-pivot)
		copy(vals, n.vals[pivot:])
		return NewLeafBase[K, V](bound.Finite(n.keys[pivot]), n.highKey, keys, vals)
	}

	children := make([]mapping.ID, n.size-pivot)
	copy(children, n.children[pivot:])
	return NewInnerBase[K, V](bound.Finite(n.keys[pivot]), n.highKey, keys, children)
}
