// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package mapping implements the lock-free logical-id registry of a Bw-tree.
//
// Every logical node is addressed by an ID; the table maps each id to the
// current head of the node's delta chain. Updating a node means swinging its
// head with a single compare-and-swap, so the table is the only shared
// mutable state in the core.
//
// The table is fixed-capacity and ids are never recycled: allocation draws
// from a monotonic counter, and Release merely clears a slot so a removed
// sibling's id can no longer resolve.
package mapping

import (
	"math"
	"sync/atomic"
)

// ID identifies a logical node.
type ID uint64

// InvalidID denotes the absence of a node.
const InvalidID ID = math.MaxUint64

// Table maps logical ids to chain heads of type *T.
//
// All methods except Reset are safe for concurrent use. A successful CAS publishes the
// new head's contents: a reader that observes it through Load also observes
// every write made before the swap.
type Table[T any] struct {
	slots []atomic.Pointer[T]
	next  atomic.Uint64
}

// New returns a table with the given fixed slot capacity.
func New[T any](capacity uint64) *Table[T] {
	return &Table[T]{slots: make([]atomic.Pointer[T], capacity)}
}

// Capacity returns the fixed slot count.
func (t *Table[T]) Capacity() uint64 {
	return uint64(len(t.slots))
}

// Allocated returns the number of ids handed out so far.
func (t *Table[T]) Allocated() uint64 {
	n := t.next.Load()
	if n > uint64(len(t.slots)) {
		return uint64(len(t.slots))
	}
	return n
}

// Allocate claims the next unused id and publishes head into its slot.
// Overflowing the capacity is a programmer error, checked with -tags debug;
// the release build does not guard the slot access.
func (t *Table[T]) Allocate(head *T) ID {
	slot := t.next.Add(1) - 1
	assertSlot("Allocate", slot, uint64(len(t.slots)))
	t.slots[slot].Store(head)
	return ID(slot)
}

// Load returns the current head for id.
func (t *Table[T]) Load(id ID) *T {
	assertSlot("Load", uint64(id), uint64(len(t.slots)))
	return t.slots[id].Load()
}

// CAS atomically replaces id's head with new if it still equals expect.
// It reports whether the swap happened.
func (t *Table[T]) CAS(id ID, expect, new *T) bool {
	assertSlot("CAS", uint64(id), uint64(len(t.slots)))
	return t.slots[id].CompareAndSwap(expect, new)
}

// Release clears id's slot. The id is not recycled; it is spent forever.
// Used for ids of logically removed sibling nodes.
func (t *Table[T]) Release(id ID) {
	assertSlot("Release", uint64(id), uint64(len(t.slots)))
	t.slots[id].Store(nil)
}

// Reset zeroes every slot and the allocation counter.
// Test helper; not safe against concurrent use of the table.
func (t *Table[T]) Reset() {
	for i := range t.slots {
		t.slots[i].Store(nil)
	}
	t.next.Store(0)
}
