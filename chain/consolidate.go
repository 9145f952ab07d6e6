// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package chain

import (
	"cmp"
	"sort"

	"github.com/dacapoday/bwtree/bound"
	"github.com/dacapoday/bwtree/mapping"
)

// consolidator folds a chain into a fresh base. One pass per chain:
// deltas on the path record pending upserts and shadowed keys, splits and
// merges bound the live range per branch, and every base encountered is
// merged into the output in ascending key order.
type consolidator[K cmp.Ordered, V any] struct {
	Cursor[K, V]
	leaf bool

	// inserted holds insert records whose key has no older mention on the
	// current path; at each base it is sorted descending and consumed as a
	// stack in ascending order. deleted holds the shadowed keys. Both are
	// sized by the consolidation height threshold.
	inserted []*Node[K, V]
	deleted  []K

	// high is the effective high key on the current branch: unset until a
	// split (or a merge's middle key, for the left branch) bounds it.
	high *K

	started  bool
	newLow   bound.Key[K]
	newHigh  bound.Key[K]
	keys     []K
	vals     []V
	children []mapping.ID
}

// Consolidate folds the chain at head into a new, unpublished base node
// spanning [original low, effective high after all splits and merges].
// The caller installs it with a CAS and hands the old head to the
// reclamation collaborator. threshold sizes the traversal scratch; it is
// the same knob that triggered the consolidation.
func Consolidate[K cmp.Ordered, V any](head *Node[K, V], threshold uint) *Node[K, V] {
	c := &consolidator[K, V]{
		leaf:     head.kind.IsLeaf(),
		inserted: make([]*Node[K, V], 0, threshold+1),
		deleted:  make([]K, 0, threshold+1),
	}
	Traverse(head, c)
	if c.leaf {
		return NewLeafBase(c.newLow, c.newHigh, c.keys, c.vals)
	}
	return NewInnerBase[K, V](c.newLow, c.newHigh, c.keys, c.children)
}

// OnInsert records a pending upsert unless an earlier (younger) record
// already mentioned the key.
func (c *consolidator[K, V]) OnInsert(d *Node[K, V]) {
	if !c.seen(d.key) {
		c.inserted = append(c.inserted, d)
	}
	c.Advance(d.next)
}

// OnDelete shadows the key unless a younger record already mentioned it.
func (c *consolidator[K, V]) OnDelete(d *Node[K, V]) {
	if !c.seen(d.key) {
		c.deleted = append(c.deleted, d.key)
	}
	c.Advance(d.next)
}

// OnSplit tightens the branch's effective high: entries at or beyond the
// split key were given away to the right sibling.
func (c *consolidator[K, V]) OnSplit(d *Node[K, V]) {
	sk := d.splitKey.Key()
	if c.high == nil || sk < *c.high {
		c.high = &sk
	}
	c.Advance(d.next)
}

// OnRemove changes nothing about the folded content.
func (c *consolidator[K, V]) OnRemove(d *Node[K, V]) {
	c.Advance(d.next)
}

// OnMerge folds both branches of the composite node. The middle key bounds
// the left branch; the branch-local high and shadowed keys are restored
// before the sibling branch so the two ranges stay isolated.
func (c *consolidator[K, V]) OnMerge(d *Node[K, V]) {
	mid := d.key
	savedHigh, savedDeleted := c.high, len(c.deleted)
	if c.high == nil || mid < *c.high {
		c.high = &mid
	}

	Traverse(d.next, c)

	c.high = savedHigh
	c.deleted = c.deleted[:savedDeleted]
	c.Reset()

	Traverse(d.siblingHead, c)
	c.Finish()
}

// OnBase merges the base's entries with the pending upserts: ascending,
// skipping shadowed keys, bounded by the branch's effective high. A base
// reached through a merge's sibling branch contributes its low bound as a
// real separator.
func (c *consolidator[K, V]) OnBase(b *Node[K, V]) {
	first := !c.started
	if first {
		c.started = true
		c.newLow = b.lowKey
	}
	if c.high != nil {
		c.newHigh = bound.Finite(*c.high)
	} else {
		c.newHigh = b.highKey
	}

	sort.Slice(c.inserted, func(i, j int) bool {
		return c.inserted[i].key > c.inserted[j].key
	})

	start := 0
	if !c.leaf {
		start = 1
		if first {
			c.keys = append(c.keys, b.keys[0])
			c.children = append(c.children, b.children[0])
		} else if sep := b.low.Key(); !c.isDeleted(sep) {
			c.keys = append(c.keys, sep)
			c.children = append(c.children, b.children[0])
		}
	}

	for i := start; i < b.size; i++ {
		k := b.keys[i]
		if c.high != nil && k >= *c.high {
			break
		}
		shadowed := false
		for len(c.inserted) > 0 {
			top := c.inserted[len(c.inserted)-1]
			if top.key > k {
				break
			}
			c.inserted = c.inserted[:len(c.inserted)-1]
			c.emitDelta(top)
			if top.key == k {
				shadowed = true
				break
			}
		}
		if shadowed || c.isDeleted(k) {
			continue
		}
		c.keys = append(c.keys, k)
		if c.leaf {
			c.vals = append(c.vals, b.vals[i])
		} else {
			c.children = append(c.children, b.children[i])
		}
	}

	// Upserts above the base's last key; anything at or past the branch
	// high stays pending for the next branch.
	for len(c.inserted) > 0 {
		top := c.inserted[len(c.inserted)-1]
		if c.high != nil && top.key >= *c.high {
			break
		}
		c.inserted = c.inserted[:len(c.inserted)-1]
		c.emitDelta(top)
	}

	c.Finish()
}

func (c *consolidator[K, V]) emitDelta(d *Node[K, V]) {
	c.keys = append(c.keys, d.key)
	if c.leaf {
		c.vals = append(c.vals, d.value)
	} else {
		c.children = append(c.children, d.child)
	}
}

func (c *consolidator[K, V]) seen(k K) bool {
	for _, d := range c.inserted {
		if d.key == k {
			return true
		}
	}
	return c.isDeleted(k)
}

func (c *consolidator[K, V]) isDeleted(k K) bool {
	for _, dk := range c.deleted {
		if dk == k {
			return true
		}
	}
	return false
}
