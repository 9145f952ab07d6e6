package chain

import "cmp"

// Cursor is the traversal control a handler embeds. A callback either
// finishes the pass or advances to the node it chose, typically the
// record's Next. Handlers must finish on reaching a base: bases have no
// next.
type Cursor[K cmp.Ordered, V any] struct {
	finished bool
	next     *Node[K, V]
}

// cursor hands the traverser the embedded control: a handler satisfies
// the Handler interface by embedding a Cursor.
func (c *Cursor[K, V]) cursor() *Cursor[K, V] { return c }

// Finish stops the traversal.
func (c *Cursor[K, V]) Finish() { c.finished = true }

// Advance continues the traversal at n.
func (c *Cursor[K, V]) Advance(n *Node[K, V]) { c.next = n }

// Reset clears the control between two passes, as when a handler descends
// into a merge record's second branch.
func (c *Cursor[K, V]) Reset() {
	c.finished = false
	c.next = nil
}

// Finished reports whether the last pass ran to completion.
func (c *Cursor[K, V]) Finished() bool { return c.finished }

// Handler folds a chain record by record. Traverse dispatches each record
// to the callback for its kind; the callback inspects the typed payload
// and either finishes or advances the cursor.
//
// A handler that wants the full virtual node descends into a merge
// record's two branches itself: Traverse(m.Next(), h), Reset, then
// Traverse(m.SiblingHead(), h), then Finish. A point-read handler instead
// follows only the branch whose range holds its key.
type Handler[K cmp.Ordered, V any] interface {
	cursor() *Cursor[K, V]

	OnInsert(*Node[K, V])
	OnDelete(*Node[K, V])
	OnSplit(*Node[K, V])
	OnMerge(*Node[K, V])
	OnRemove(*Node[K, V])
	OnBase(*Node[K, V])
}

// Traverse walks the chain from head, dispatching on each record's kind
// until the handler finishes or stops advancing. The head must be a
// snapshot obtained from the mapping table (or a branch pointer inside a
// record); the chain below a published head is immutable.
func Traverse[K cmp.Ordered, V any](head *Node[K, V], h Handler[K, V]) {
	c := h.cursor()
	for n := head; n != nil && !c.finished; {
		c.next = nil
		switch n.kind {
		case LeafInsert, InnerInsert:
			h.OnInsert(n)
		case LeafDelete, InnerDelete:
			h.OnDelete(n)
		case LeafSplit, InnerSplit:
			h.OnSplit(n)
		case LeafMerge, InnerMerge:
			h.OnMerge(n)
		case LeafRemove, InnerRemove:
			h.OnRemove(n)
		default:
			h.OnBase(n)
		}
		n = c.next
	}
}
