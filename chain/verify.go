package chain

import (
	"cmp"

	"github.com/pkg/errors"
)

// Verify walks a chain checking the structural invariants: heights
// strictly decrease by one from head to base, every record's effective
// bounds satisfy low < high, and every finite key a delta mentions lies
// inside the record's range. Merge records are verified through both
// branches.
//
// Verify is the observable effect of the debug-assertions knob: the core
// facade runs it on freshly observed heads when enabled. It is read-only
// and safe on any published chain.
func Verify[K cmp.Ordered, V any](head *Node[K, V]) error {
	for n := head; n != nil; n = n.next {
		if !n.low.Less(*n.high) {
			return errors.Errorf("chain: %s with empty range [%s, %s)", n.kind, n.low, n.high)
		}
		if n.kind.IsBase() {
			if n.height != 0 {
				return errors.Errorf("chain: base with height %d", n.height)
			}
			if n.next != nil {
				return errors.Errorf("chain: base with a next record")
			}
			return verifyBase(n)
		}
		if n.next == nil {
			return errors.Errorf("chain: %s delta with no next", n.kind)
		}
		if n.height != n.next.height+1 {
			return errors.Errorf("chain: %s height %d above height %d",
				n.kind, n.height, n.next.height)
		}
		if err := verifyDelta(n); err != nil {
			return err
		}
		if n.kind == LeafMerge || n.kind == InnerMerge {
			if err := Verify(n.next); err != nil {
				return err
			}
			return Verify(n.siblingHead)
		}
	}
	return nil
}

func verifyDelta[K cmp.Ordered, V any](d *Node[K, V]) error {
	switch d.kind {
	case LeafInsert, LeafDelete, InnerInsert, InnerDelete:
		if !d.Contains(d.key) {
			return errors.Errorf("chain: %s key %v outside [%s, %s)",
				d.kind, d.key, d.low, d.high)
		}
	case LeafSplit, InnerSplit:
		if !d.splitKey.IsFinite() {
			return errors.Errorf("chain: %s with non-finite split key", d.kind)
		}
		if d.high != &d.splitKey {
			return errors.Errorf("chain: %s high bound not redirected to its split key", d.kind)
		}
	case LeafMerge, InnerMerge:
		if d.siblingHead == nil {
			return errors.Errorf("chain: %s with no sibling head", d.kind)
		}
	}
	return nil
}

func verifyBase[K cmp.Ordered, V any](b *Node[K, V]) error {
	if b.size != len(b.keys) {
		return errors.Errorf("chain: base size %d with %d keys", b.size, len(b.keys))
	}
	start := 1
	if b.kind == LeafBase {
		start = 0
	}
	for i := start + 1; i < b.size; i++ {
		if b.keys[i-1] >= b.keys[i] {
			return errors.Errorf("chain: base keys not strictly ascending at %d", i)
		}
	}
	for i := start; i < b.size; i++ {
		if !b.Contains(b.keys[i]) {
			return errors.Errorf("chain: base key %v outside [%s, %s)",
				b.keys[i], b.low, b.high)
		}
	}
	return nil
}
