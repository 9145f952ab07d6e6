package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/bwtree/bound"
	"github.com/dacapoday/bwtree/mapping"
)

func newLeafTable(t *testing.T, capacity uint64) (*mapping.Table[Node[int, string]], mapping.ID, *Node[int, string]) {
	t.Helper()
	table := mapping.New[Node[int, string]](capacity)
	base := NewLeafBase[int, string](bound.NegInf[int](), bound.PosInf[int](), nil, nil)
	id := table.Allocate(base)
	return table, id, base
}

func TestAppendLeafInsert(t *testing.T) {
	table, id, base := newLeafTable(t, 8)

	a := NewAppender(table, id)
	require.Nil(t, a.LeafInsert(100, "A"))

	head := table.Load(id)
	require.Same(t, a.Head(), head)
	require.Equal(t, LeafInsert, head.Kind())
	require.EqualValues(t, 1, head.Height())
	require.Equal(t, 1, head.Size())
	require.Equal(t, 100, head.Key())
	require.Equal(t, "A", head.Value())
	require.Same(t, base, head.Next())
	require.Same(t, base, head.Base())

	// Delta bounds alias the base's.
	require.Same(t, base.Low(), head.Low())
	require.Same(t, base.High(), head.High())

	require.Nil(t, a.LeafDelete(100, "A"))
	head = table.Load(id)
	require.Equal(t, LeafDelete, head.Kind())
	require.EqualValues(t, 2, head.Height())
	require.Equal(t, 0, head.Size())
}

func TestAppendHeightsDecreaseToBase(t *testing.T) {
	table, id, _ := newLeafTable(t, 8)
	a := NewAppender(table, id)
	require.Nil(t, a.LeafInsert(1, "x"))
	require.Nil(t, a.LeafInsert(2, "y"))
	require.Nil(t, a.LeafInsert(3, "z"))

	want := uint16(3)
	for n := table.Load(id); n != nil; n = n.Next() {
		require.Equal(t, want, n.Height())
		want--
	}
	require.NoError(t, Verify(table.Load(id)))
}

func TestAppendLosesRace(t *testing.T) {
	table, id, base := newLeafTable(t, 8)

	winner := NewAppender(table, id)
	loser := NewAppender(table, id)

	require.Nil(t, winner.LeafInsert(1, "w"))
	winnerHead := table.Load(id)

	// The losing delta is returned unpublished; the head is untouched and
	// the record is visible only to its builder.
	lost := loser.LeafInsert(2, "l")
	require.NotNil(t, lost)
	require.Same(t, winnerHead, table.Load(id))
	require.EqualValues(t, 2, base.LiveDeltas())

	// The loser may discard the record and rebuild on the fresh head.
	base.DestroyDelta(lost)
	require.EqualValues(t, 1, base.LiveDeltas())

	loser.Refresh()
	require.Nil(t, loser.LeafInsert(2, "l"))
	require.Equal(t, 2, table.Load(id).Size())
}

func TestAppendSplitRedirectsHigh(t *testing.T) {
	table := mapping.New[Node[int, string]](8)
	base := NewLeafBase(bound.NegInf[int](), bound.PosInf[int](),
		[]int{10, 20, 30, 40}, []string{"a", "b", "c", "d"})
	id := table.Allocate(base)

	right := base.Split()
	rightID := table.Allocate(right)

	a := NewAppender(table, id)
	require.Nil(t, a.LeafSplit(rightID, right))

	head := table.Load(id)
	require.Equal(t, LeafSplit, head.Kind())
	require.Equal(t, 2, head.Size())
	require.Equal(t, rightID, head.Sibling())
	require.True(t, head.SplitKey().Equal(bound.Finite(30)))

	// Readers of the new head see the truncated range.
	require.True(t, head.High().Equal(bound.Finite(30)))
	require.Same(t, base.Low(), head.Low())
	require.NotSame(t, base.High(), head.High())
	require.True(t, base.High().IsPosInf())

	require.False(t, head.Contains(30))
	require.True(t, head.Contains(29))
}

func TestAppendMerge(t *testing.T) {
	table := mapping.New[Node[int, string]](8)
	left := NewLeafBase(bound.NegInf[int](), bound.Finite(100),
		[]int{10, 20}, []string{"a", "b"})
	right := NewLeafBase(bound.Finite(100), bound.PosInf[int](),
		[]int{100, 200}, []string{"c", "d"})
	leftID := table.Allocate(left)
	rightID := table.Allocate(right)

	a := NewAppender(table, leftID)
	require.Nil(t, a.LeafMerge(rightID, right))

	head := table.Load(leftID)
	require.Equal(t, LeafMerge, head.Kind())
	require.Equal(t, 100, head.Key())
	require.Equal(t, rightID, head.Sibling())
	require.Same(t, right, head.SiblingHead())
	require.Equal(t, 4, head.Size())

	// The composite spans both ranges.
	require.Same(t, left.Low(), head.Low())
	require.Same(t, right.High(), head.High())
	require.True(t, head.Contains(150))
}

func TestAppendRemove(t *testing.T) {
	table, id, _ := newLeafTable(t, 8)
	victim := table.Allocate(NewLeafBase[int, string](bound.Finite(0), bound.PosInf[int](), nil, nil))

	a := NewAppender(table, id)
	require.Nil(t, a.LeafRemove(victim))

	head := table.Load(id)
	require.Equal(t, LeafRemove, head.Kind())
	require.Equal(t, victim, head.RemovedID())
	require.Equal(t, 0, head.Size())
}

func TestHeightExceeds(t *testing.T) {
	table, id, _ := newLeafTable(t, 8)
	a := NewAppender(table, id)
	for i := 0; i < 4; i++ {
		require.Nil(t, a.LeafInsert(i, "v"))
	}
	require.False(t, a.HeightExceeds(4))
	require.Nil(t, a.LeafInsert(9, "v"))
	require.True(t, a.HeightExceeds(4))
}

func TestInnerAppend(t *testing.T) {
	table := mapping.New[Node[int, string]](8)
	inner := NewInnerBase[int, string](bound.NegInf[int](), bound.PosInf[int](),
		[]int{0, 5}, []mapping.ID{11, 12})
	id := table.Allocate(inner)

	a := NewAppender(table, id)
	require.Nil(t, a.InnerInsert(20, 200, bound.PosInf[int]()))
	head := table.Load(id)
	require.Equal(t, InnerInsert, head.Kind())
	require.Equal(t, 20, head.Key())
	require.EqualValues(t, 200, head.Child())
	require.True(t, head.NextSep().IsPosInf())
	require.Equal(t, 3, head.Size())

	require.Nil(t, a.InnerDelete(20, 200, bound.PosInf[int](), 5, 12))
	head = table.Load(id)
	require.Equal(t, InnerDelete, head.Kind())
	require.Equal(t, 2, head.Size())
	require.Equal(t, 5, head.PrevKey())
	require.EqualValues(t, 12, head.PrevChild())
}
