//go:build debug

package chain

import (
	"cmp"
	"fmt"
)

// The checks in this file cover the programmer-error class: violated
// preconditions panic under -tags debug and are assumed absent in release
// builds.

func assertBase(method string, k Kind) {
	if !k.IsBase() {
		panic(fmt.Sprintf("chain.%s: %s is not a base", method, k))
	}
}

func assertFamily(method string, k Kind, wantLeaf bool) {
	if k.IsLeaf() != wantLeaf {
		panic(fmt.Sprintf("chain.%s: wrong node family for %s", method, k))
	}
}

func assertSplitSize(method string, size int) {
	if size <= 1 {
		panic(fmt.Sprintf("chain.%s: size %d <= 1", method, size))
	}
}

func assertAscending[K cmp.Ordered](method string, keys []K, from int) {
	for i := from + 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			panic(fmt.Sprintf("chain.%s: keys not strictly ascending at %d", method, i))
		}
	}
}

func assertKeyInRange[K cmp.Ordered, V any](method string, n *Node[K, V], k K) {
	if !n.Contains(k) {
		panic(fmt.Sprintf("chain.%s: key %v outside [%s, %s)", method, k, n.low, n.high))
	}
}

func assertAdjacent[K cmp.Ordered, V any](method string, left, right *Node[K, V]) {
	if !left.high.Equal(*right.low) {
		panic(fmt.Sprintf("chain.%s: sibling range [%s, %s) not adjacent to high %s",
			method, right.low, right.high, left.high))
	}
}

func assertOwner[K cmp.Ordered, V any](method string, b, d *Node[K, V]) {
	if d.base != b {
		panic(fmt.Sprintf("chain.%s: delta not owned by this base", method))
	}
	if !d.kind.IsDelta() {
		panic(fmt.Sprintf("chain.%s: %s is not a delta", method, d.kind))
	}
}
