//go:build !debug

package chain

import "cmp"

// No-op counterparts of the -tags debug checks. Release builds assume the
// programmer-error class is absent.

func assertBase(string, Kind) {}

func assertFamily(string, Kind, bool) {}

func assertSplitSize(string, int) {}

func assertAscending[K cmp.Ordered](string, []K, int) {}

func assertKeyInRange[K cmp.Ordered, V any](string, *Node[K, V], K) {}

func assertAdjacent[K cmp.Ordered, V any](string, *Node[K, V], *Node[K, V]) {}

func assertOwner[K cmp.Ordered, V any](string, *Node[K, V], *Node[K, V]) {}
