package bwtree

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config carries the knobs recognized by the node core.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// MappingTableCapacity is the fixed slot count of the mapping table.
	// Ids are never recycled, so the capacity bounds the total number of
	// node allocations over the table's lifetime.
	MappingTableCapacity uint64

	// ConsolidationHeightThreshold is the delta-chain height at which
	// writers trigger consolidation on their critical path. Must be >= 1.
	// It also bounds the consolidator's per-pass scratch buffers.
	ConsolidationHeightThreshold uint

	// AllowNonUniqueKeys is refused by the core. Callers wanting
	// duplicate-key semantics layer them outside the node core.
	AllowNonUniqueKeys bool

	// DebugAssertions makes the core facade verify the full chain of every
	// head it loads. Per-base delta accounting runs whether or not it is
	// set. The cheap per-operation preconditions are compiled in with
	// -tags debug regardless of this flag.
	DebugAssertions bool

	// Log receives construction and consolidation events at debug level,
	// and chain invariant violations found under DebugAssertions at error
	// level. CAS losses are never logged.
	Log zerolog.Logger
}

// DefaultConfig returns a Config sized for tests and small indexes.
func DefaultConfig() Config {
	return Config{
		MappingTableCapacity:         1 << 20,
		ConsolidationHeightThreshold: 8,
		Log:                          zerolog.Nop(),
	}
}

// Validate reports whether the configuration is acceptable to the core.
func (c Config) Validate() error {
	if c.MappingTableCapacity == 0 {
		return errors.Wrap(ErrInvalidConfig, "mapping table capacity must be positive")
	}
	if c.ConsolidationHeightThreshold < 1 {
		return errors.Wrap(ErrInvalidConfig, "consolidation height threshold must be >= 1")
	}
	if c.AllowNonUniqueKeys {
		return errors.Wrap(ErrUnsupported, "non-unique keys are not supported by the core")
	}
	return nil
}
