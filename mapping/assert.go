//go:build debug

package mapping

import "fmt"

// assertSlot panics if slot is outside the table.
// Only enabled with -tags debug.
func assertSlot(method string, slot, capacity uint64) {
	if slot >= capacity {
		panic(fmt.Sprintf("mapping.%s: slot %d >= capacity %d", method, slot, capacity))
	}
}
