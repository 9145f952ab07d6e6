//go:build debug

package bound

import "fmt"

// assertFinite panics if s is a sentinel.
// Only enabled with -tags debug.
func assertFinite(method string, s sentinel) {
	if s != fin {
		panic(fmt.Sprintf("bound.%s: comparison with a sentinel", method))
	}
}

// assertSameClass panics when a sentinel meets a finite key in an
// equality comparison. Only enabled with -tags debug.
func assertSameClass(method string, a, b sentinel) {
	if (a == fin) != (b == fin) {
		panic(fmt.Sprintf("bound.%s: sentinel compared with finite key", method))
	}
}
