// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package core bundles the Bw-tree node mechanics behind one handle.
//
// A Core owns the mapping table, the configuration, the metric set and the
// reclamation collaborator. The tree driver built on top performs its own
// search/split/merge orchestration; the per-node work (observing heads,
// appending deltas, consolidating chains, destroying detached ones) goes
// through here.
package core

import (
	"cmp"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/dacapoday/bwtree"
	"github.com/dacapoday/bwtree/chain"
	"github.com/dacapoday/bwtree/mapping"
)

// Reclaimer receives chain heads detached by a successful head swap. The
// core never frees a chain it just replaced: a detached head may still be
// read by concurrent traversals, so destruction waits for quiescence.
// Implementations eventually pass each retired head to Core.FreeChain
// exactly once.
type Reclaimer[K cmp.Ordered, V any] interface {
	Retire(head *chain.Node[K, V])
}

// Core is the driver-facing handle over one mapping table.
type Core[K cmp.Ordered, V any] struct {
	table     *mapping.Table[chain.Node[K, V]]
	reclaimer Reclaimer[K, V]
	metrics   *bwtree.Metrics
	log       zerolog.Logger

	threshold uint
	verify    bool
}

// New validates cfg and builds a Core. metrics may be nil.
func New[K cmp.Ordered, V any](cfg bwtree.Config, r Reclaimer[K, V], metrics *bwtree.Metrics) (*Core[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Core[K, V]{
		table:     mapping.New[chain.Node[K, V]](cfg.MappingTableCapacity),
		reclaimer: r,
		metrics:   metrics,
		log:       cfg.Log,
		threshold: cfg.ConsolidationHeightThreshold,
		verify:    cfg.DebugAssertions,
	}
	c.log.Debug().
		Uint64("capacity", cfg.MappingTableCapacity).
		Uint("height_threshold", cfg.ConsolidationHeightThreshold).
		Msg("bwtree core ready")
	return c, nil
}

// Table exposes the mapping table for drivers that traverse directly.
func (c *Core[K, V]) Table() *mapping.Table[chain.Node[K, V]] {
	return c.table
}

// Allocate registers head under a fresh id.
func (c *Core[K, V]) Allocate(head *chain.Node[K, V]) mapping.ID {
	id := c.table.Allocate(head)
	c.metrics.AddNodeAllocation()
	return id
}

// Load snapshots the current head of id, verifying the chain when debug
// assertions are enabled.
func (c *Core[K, V]) Load(id mapping.ID) *chain.Node[K, V] {
	head := c.table.Load(id)
	if c.verify && head != nil {
		if err := chain.Verify(head); err != nil {
			c.log.Error().Err(err).Uint64("id", uint64(id)).Msg("chain invariant violated")
			panic(err)
		}
	}
	return head
}

// NewAppender observes id's head and returns an appender for it.
func (c *Core[K, V]) NewAppender(id mapping.ID) *chain.Appender[K, V] {
	return chain.NewAppenderAt(c.table, id, c.Load(id))
}

// NeedsConsolidation reports whether head's chain outgrew the configured
// height threshold.
func (c *Core[K, V]) NeedsConsolidation(head *chain.Node[K, V]) bool {
	return uint(head.Height()) > c.threshold
}

// Install swings id's head from expect to new. On success the detached
// expect is handed to the reclaimer and Install returns true; on a lost
// race nothing happens and the caller still owns new.
func (c *Core[K, V]) Install(id mapping.ID, expect, new *chain.Node[K, V]) bool {
	if !c.table.CAS(id, expect, new) {
		c.metrics.AddInstallFailure()
		return false
	}
	if expect != nil && c.reclaimer != nil {
		c.reclaimer.Retire(expect)
	}
	return true
}

// Consolidate folds the observed chain of id into a fresh base and tries
// to install it. It returns the new base and whether the swap happened;
// on a lost race the caller discards the unpublished base and retries at
// its own pace, per the driver's policy.
func (c *Core[K, V]) Consolidate(id mapping.ID, head *chain.Node[K, V]) (*chain.Node[K, V], bool) {
	base := chain.Consolidate(head, c.threshold)
	c.metrics.AddConsolidation(head.Height())
	c.log.Debug().
		Uint64("id", uint64(id)).
		Uint16("height", head.Height()).
		Int("size", base.Size()).
		Msg("consolidated chain")
	if !c.Install(id, head, base) {
		return base, false
	}
	return base, true
}

// FreeChain destroys a retired chain. Call only after the reclamation
// collaborator confirms no traversal can still hold the head.
func (c *Core[K, V]) FreeChain(head *chain.Node[K, V]) {
	chain.Free(c.table, head)
	c.metrics.AddChainFreed()
}

// Stats is a point-in-time accounting snapshot.
type Stats struct {
	Capacity  uint64
	Allocated uint64
}

// Stats reports the table occupancy.
func (c *Core[K, V]) Stats() Stats {
	return Stats{
		Capacity:  c.table.Capacity(),
		Allocated: c.table.Allocated(),
	}
}

// String formats the stats for humans.
func (s Stats) String() string {
	return "allocated " + humanize.Comma(int64(s.Allocated)) +
		" of " + humanize.Comma(int64(s.Capacity)) + " node ids"
}
