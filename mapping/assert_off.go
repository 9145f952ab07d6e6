//go:build !debug

package mapping

// assertSlot is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertSlot(string, uint64, uint64) {}
