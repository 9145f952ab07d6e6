package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/bwtree/bound"
	"github.com/dacapoday/bwtree/mapping"
)

func TestFreeSimpleChain(t *testing.T) {
	table, id, base := newLeafTable(t, 8)
	a := NewAppender(table, id)
	require.Nil(t, a.LeafInsert(1, "a"))
	require.Nil(t, a.LeafInsert(2, "b"))
	require.Nil(t, a.LeafDelete(1, "a"))
	require.EqualValues(t, 3, base.LiveDeltas())

	head := table.Load(id)
	// Detach the chain before destroying it, as a consolidation would.
	replacement := Consolidate(head, 8)
	require.True(t, table.CAS(id, head, replacement))

	Free(table, head)
	require.EqualValues(t, 0, base.LiveDeltas())
	require.EqualValues(t, 3, base.AllocatedDeltas())
}

func TestFreeReleasesRemovedIDs(t *testing.T) {
	table, id, base := newLeafTable(t, 8)
	victim := table.Allocate(NewLeafBase[int, string](bound.Finite(0), bound.PosInf[int](), nil, nil))
	require.NotNil(t, table.Load(victim))

	a := NewAppender(table, id)
	require.Nil(t, a.LeafRemove(victim))

	head := table.Load(id)
	table.Release(id)
	Free(table, head)

	require.Nil(t, table.Load(victim))
	require.EqualValues(t, 0, base.LiveDeltas())
}

func TestFreeMergedChain(t *testing.T) {
	table := mapping.New[Node[int, string]](8)
	left := NewLeafBase(bound.NegInf[int](), bound.Finite(100),
		[]int{10}, []string{"a"})
	right := NewLeafBase(bound.Finite(100), bound.PosInf[int](),
		[]int{100}, []string{"b"})
	leftID := table.Allocate(left)
	rightID := table.Allocate(right)

	// Each branch carries its own deltas; the merge transfers ownership
	// of the sibling chain into the composite.
	ra := NewAppender(table, rightID)
	require.Nil(t, ra.LeafInsert(150, "c"))
	rightHead := table.Load(rightID)

	la := NewAppender(table, leftID)
	require.Nil(t, la.LeafInsert(20, "d"))
	require.Nil(t, la.LeafMerge(rightID, rightHead))
	require.EqualValues(t, 2, left.LiveDeltas())
	require.EqualValues(t, 1, right.LiveDeltas())

	head := table.Load(leftID)
	table.Release(leftID)
	Free(table, head)

	// Every delta went back to its owning base's allocator, on both
	// branches of the merge.
	require.EqualValues(t, 0, left.LiveDeltas())
	require.EqualValues(t, 0, right.LiveDeltas())
}
