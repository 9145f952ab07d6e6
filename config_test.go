package bwtree

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsNonUniqueKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowNonUniqueKeys = true
	require.ErrorIs(t, cfg.Validate(), ErrUnsupported)
}

func TestValidateRejectsZeroCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MappingTableCapacity = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateRejectsZeroThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsolidationHeightThreshold = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.AddNodeAllocation()
	m.AddInstallFailure()
	m.AddConsolidation(3)
	m.AddChainFreed()
	m.SetLiveDeltas(1)

	partial := &Metrics{}
	partial.AddNodeAllocation()
	partial.AddConsolidation(3)
}

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	require.NotNil(t, m.NodeAllocations)

	// Double registration of the same set must fail loudly.
	require.Panics(t, func() { NewMetrics(reg) })
}
