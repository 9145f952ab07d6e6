//go:build !debug

package bound

// assertFinite is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertFinite(string, sentinel) {}

// assertSameClass is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertSameClass(string, sentinel, sentinel) {}
