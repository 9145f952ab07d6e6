// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package chain implements the delta-chain node model of a Bw-tree.
//
// A logical node is a chain: zero or more delta records stacked above a
// consolidated base node. Readers fold the chain through a Traverse pass;
// writers prepend a delta with Appender and publish it by swinging the
// node's head in the mapping table. When a chain grows past the configured
// height, Consolidate folds it into a fresh base and Free destroys the
// detached chain once the reclamation collaborator confirms quiescence.
//
// Records are stored as a tagged union: one Node struct carries the common
// header, the per-kind delta payload, and, for bases, the sorted entry
// arrays. Dispatch is a single tag switch per record. Go offers no stable
// pointer arithmetic to recover a base from a delta's bound-key pointer, so
// every record instead carries an explicit owning-base pointer.
package chain

import (
	"cmp"

	"github.com/dacapoday/bwtree/bound"
	"github.com/dacapoday/bwtree/mapping"
)

// Node is one record of a delta chain: a base node or a delta, told apart
// by its kind tag. Fields beyond the header are valid only for the kinds
// noted; reading them for another kind is a programmer error.
//
// A Node must not be mutated after it has been published through the
// mapping table. The successful CAS is the release point; everything
// written before it is visible to any reader that loads the new head.
type Node[K cmp.Ordered, V any] struct {
	kind   Kind
	height uint16 // 0 for a base, next.height+1 for a delta
	size   int    // element count of the virtual node folded up to here
	low    *bound.Key[K]
	high   *bound.Key[K]
	next   *Node[K, V] // node below; nil for bases
	base   *Node[K, V] // owning base; the base itself for bases

	// insert/delete payload: (key, value) for leaves,
	// (key, child, nextSep) for inner separators.
	key       K
	value     V
	child     mapping.ID
	nextSep   bound.Key[K]
	prevKey   K          // inner delete: separator left of the removed one
	prevChild mapping.ID // inner delete: its child

	// split payload: the embedded new high bound plus the sibling id.
	splitKey bound.Key[K]
	// split/merge: right sibling id; remove: the removed node's id.
	sibling     mapping.ID
	siblingHead *Node[K, V] // merge: sibling chain head at install time

	// base payload: owned bounds, sorted entries, delta accounting.
	lowKey   bound.Key[K]
	highKey  bound.Key[K]
	keys     []K
	vals     []V          // leaf entries
	children []mapping.ID // inner entries; children[0] pairs with the ignored keys[0]
	alloc    allocator
}

// Kind returns the record's tag.
func (n *Node[K, V]) Kind() Kind { return n.kind }

// Height is 0 for a base and next.Height()+1 for a delta.
func (n *Node[K, V]) Height() uint16 { return n.height }

// Size is the element count the virtual node has after folding the chain
// from this record down.
func (n *Node[K, V]) Size() int { return n.size }

// Low is the node's effective low bound. Deltas alias the owning base's.
func (n *Node[K, V]) Low() *bound.Key[K] { return n.low }

// High is the node's effective high bound. A split delta points at its own
// embedded split key, a merge delta aliases its sibling head's high, and
// every other delta aliases the node below.
func (n *Node[K, V]) High() *bound.Key[K] { return n.high }

// Next is the node this record is layered above, nil for bases.
func (n *Node[K, V]) Next() *Node[K, V] { return n.next }

// Base is the owning base node at the tail of this record's chain.
func (n *Node[K, V]) Base() *Node[K, V] { return n.base }

// Key returns the insert/delete key, or the merge's middle key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns a leaf insert/delete record's value.
func (n *Node[K, V]) Value() V { return n.value }

// Child returns an inner insert/delete record's child id.
func (n *Node[K, V]) Child() mapping.ID { return n.child }

// NextSep returns the bound of the separator following an inserted or
// deleted inner separator.
func (n *Node[K, V]) NextSep() bound.Key[K] { return n.nextSep }

// PrevKey returns the separator left of an inner-deleted one.
func (n *Node[K, V]) PrevKey() K { return n.prevKey }

// PrevChild returns the child of the separator left of an inner-deleted one.
func (n *Node[K, V]) PrevChild() mapping.ID { return n.prevChild }

// SplitKey returns a split record's embedded high bound.
func (n *Node[K, V]) SplitKey() bound.Key[K] { return n.splitKey }

// Sibling returns the right sibling id of a split or merge record.
func (n *Node[K, V]) Sibling() mapping.ID { return n.sibling }

// SiblingHead returns the merged sibling's chain head. Installing the merge
// transferred ownership of that chain into this composite node.
func (n *Node[K, V]) SiblingHead() *Node[K, V] { return n.siblingHead }

// RemovedID returns the id a remove record releases when freed.
func (n *Node[K, V]) RemovedID() mapping.ID { return n.sibling }

// KeyBelow reports k < low: the key belongs to a left sibling.
func (n *Node[K, V]) KeyBelow(k K) bool {
	return n.low.GreaterKey(k)
}

// KeyAtOrAboveHigh reports k >= high: the key belongs to a right sibling.
func (n *Node[K, V]) KeyAtOrAboveHigh(k K) bool {
	return !n.high.GreaterKey(k)
}

// Contains reports low <= k < high.
func (n *Node[K, V]) Contains(k K) bool {
	return !n.KeyBelow(k) && !n.KeyAtOrAboveHigh(k)
}
