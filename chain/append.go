// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package chain

import (
	"cmp"

	"github.com/dacapoday/bwtree/bound"
	"github.com/dacapoday/bwtree/mapping"
)

// Appender builds delta records above an observed head and installs them
// with a single CAS on the node's mapping-table slot.
//
// Every append method returns nil on success, after which the appender's
// observed head is the new delta. On a lost race it returns the
// unpublished delta; the caller either hands it back to the base's
// DestroyDelta or calls Refresh and rebuilds on the new head. The core
// never retries: the retry policy belongs to the driver.
type Appender[K cmp.Ordered, V any] struct {
	table *mapping.Table[Node[K, V]]
	id    mapping.ID
	head  *Node[K, V]
}

// NewAppender observes the current head of id.
func NewAppender[K cmp.Ordered, V any](table *mapping.Table[Node[K, V]], id mapping.ID) *Appender[K, V] {
	return &Appender[K, V]{table: table, id: id, head: table.Load(id)}
}

// NewAppenderAt uses an already-observed head snapshot.
func NewAppenderAt[K cmp.Ordered, V any](table *mapping.Table[Node[K, V]], id mapping.ID, head *Node[K, V]) *Appender[K, V] {
	return &Appender[K, V]{table: table, id: id, head: head}
}

// ID returns the logical node the appender works on.
func (a *Appender[K, V]) ID() mapping.ID { return a.id }

// Head returns the currently observed head.
func (a *Appender[K, V]) Head() *Node[K, V] { return a.head }

// Refresh re-reads the head after a lost race.
func (a *Appender[K, V]) Refresh() {
	a.head = a.table.Load(a.id)
}

// HeightExceeds reports whether the observed chain has outgrown the
// consolidation threshold.
func (a *Appender[K, V]) HeightExceeds(threshold uint) bool {
	return uint(a.head.height) > threshold
}

// newDelta stacks a blank delta of the given kind above the observed
// head: bounds aliased from the head, height one above it.
func (a *Appender[K, V]) newDelta(kind Kind) *Node[K, V] {
	d := a.head.base.newDelta(kind)
	d.next = a.head
	d.height = a.head.height + 1
	d.size = a.head.size
	d.low = a.head.low
	d.high = a.head.high
	return d
}

// install publishes d as the new head. Returns nil on success, d on a
// lost race.
func (a *Appender[K, V]) install(d *Node[K, V]) *Node[K, V] {
	if a.table.CAS(a.id, a.head, d) {
		a.head = d
		return nil
	}
	return d
}

// LeafInsert appends an insert of (k, v). Precondition (-tags debug):
// the chain is a leaf chain and k lies in the node's range.
func (a *Appender[K, V]) LeafInsert(k K, v V) *Node[K, V] {
	assertFamily("LeafInsert", a.head.kind, true)
	assertKeyInRange("LeafInsert", a.head, k)
	d := a.newDelta(LeafInsert)
	d.key = k
	d.value = v
	d.size = a.head.size + 1
	return a.install(d)
}

// LeafDelete appends a delete of (k, v). Precondition (-tags debug):
// the chain is a leaf chain and k lies in the node's range.
func (a *Appender[K, V]) LeafDelete(k K, v V) *Node[K, V] {
	assertFamily("LeafDelete", a.head.kind, true)
	assertKeyInRange("LeafDelete", a.head, k)
	d := a.newDelta(LeafDelete)
	d.key = k
	d.value = v
	d.size = a.head.size - 1
	return a.install(d)
}

// LeafSplit appends a split that gives the range [sibling.low, high) away
// to the already-allocated right sibling. The split key is copied into the
// delta and becomes the node's effective high bound; the delta's size is
// the retained element count.
func (a *Appender[K, V]) LeafSplit(sibling mapping.ID, siblingHead *Node[K, V]) *Node[K, V] {
	assertFamily("LeafSplit", a.head.kind, true)
	return a.split(LeafSplit, sibling, siblingHead)
}

// LeafMerge appends a merge that fuses the right sibling's chain into this
// node. The sibling's range must start exactly at this node's high bound;
// the composite's high bound is taken from the sibling's head. Installing
// the merge transfers ownership of the sibling chain into the composite.
func (a *Appender[K, V]) LeafMerge(sibling mapping.ID, siblingHead *Node[K, V]) *Node[K, V] {
	assertFamily("LeafMerge", a.head.kind, true)
	return a.merge(LeafMerge, sibling, siblingHead)
}

// LeafRemove appends a remove marking this node logically detached.
// The id is released to the mapping table when the record is freed.
func (a *Appender[K, V]) LeafRemove(removed mapping.ID) *Node[K, V] {
	assertFamily("LeafRemove", a.head.kind, true)
	d := a.newDelta(LeafRemove)
	d.sibling = removed
	return a.install(d)
}

// InnerInsert appends a separator insert routing [sep, nextSep) to child.
// Precondition (-tags debug): sep lies in the node's range.
func (a *Appender[K, V]) InnerInsert(sep K, child mapping.ID, nextSep bound.Key[K]) *Node[K, V] {
	assertFamily("InnerInsert", a.head.kind, false)
	assertKeyInRange("InnerInsert", a.head, sep)
	d := a.newDelta(InnerInsert)
	d.key = sep
	d.child = child
	d.nextSep = nextSep
	d.size = a.head.size + 1
	return a.install(d)
}

// InnerDelete appends a separator delete. The previous separator and its
// child ride along so the driver can stitch routing around the gap.
// Precondition (-tags debug): sep lies in the node's range.
func (a *Appender[K, V]) InnerDelete(sep K, child mapping.ID, nextSep bound.Key[K], prevSep K, prevChild mapping.ID) *Node[K, V] {
	assertFamily("InnerDelete", a.head.kind, false)
	assertKeyInRange("InnerDelete", a.head, sep)
	d := a.newDelta(InnerDelete)
	d.key = sep
	d.child = child
	d.nextSep = nextSep
	d.prevKey = prevSep
	d.prevChild = prevChild
	d.size = a.head.size - 1
	return a.install(d)
}

// InnerSplit is the inner-node flavor of LeafSplit.
func (a *Appender[K, V]) InnerSplit(sibling mapping.ID, siblingHead *Node[K, V]) *Node[K, V] {
	assertFamily("InnerSplit", a.head.kind, false)
	return a.split(InnerSplit, sibling, siblingHead)
}

// InnerMerge is the inner-node flavor of LeafMerge.
func (a *Appender[K, V]) InnerMerge(sibling mapping.ID, siblingHead *Node[K, V]) *Node[K, V] {
	assertFamily("InnerMerge", a.head.kind, false)
	return a.merge(InnerMerge, sibling, siblingHead)
}

// InnerRemove is the inner-node flavor of LeafRemove.
func (a *Appender[K, V]) InnerRemove(removed mapping.ID) *Node[K, V] {
	assertFamily("InnerRemove", a.head.kind, false)
	d := a.newDelta(InnerRemove)
	d.sibling = removed
	return a.install(d)
}

func (a *Appender[K, V]) split(kind Kind, sibling mapping.ID, siblingHead *Node[K, V]) *Node[K, V] {
	d := a.newDelta(kind)
	d.sibling = sibling
	d.splitKey = *siblingHead.low
	// Readers must see the truncated range: the high bound is redirected
	// to the embedded split key before the CAS publishes the delta.
	d.high = &d.splitKey
	d.size = a.head.size - siblingHead.size
	return a.install(d)
}

func (a *Appender[K, V]) merge(kind Kind, sibling mapping.ID, siblingHead *Node[K, V]) *Node[K, V] {
	assertAdjacent("merge", a.head, siblingHead)
	d := a.newDelta(kind)
	d.key = siblingHead.low.Key()
	d.sibling = sibling
	d.siblingHead = siblingHead
	d.high = siblingHead.high
	d.size = a.head.size + siblingHead.size
	return a.install(d)
}
