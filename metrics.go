package bwtree

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the core events worth watching in production: id
// allocations, install races, and consolidation work. All fields are
// optional; a nil Metrics or a nil field is simply not counted.
type Metrics struct {
	NodeAllocations  prometheus.Counter
	InstallFailures  prometheus.Counter
	Consolidations   prometheus.Counter
	ChainsFreed      prometheus.Counter
	LiveDeltas       prometheus.Gauge
	ChainHeightAtCut prometheus.Histogram
}

// NewMetrics builds the full metric set and registers it with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodeAllocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bwtree", Name: "node_allocations_total",
			Help: "Logical node ids handed out by the mapping table.",
		}),
		InstallFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bwtree", Name: "install_failures_total",
			Help: "Head CAS attempts lost to a concurrent writer.",
		}),
		Consolidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bwtree", Name: "consolidations_total",
			Help: "Delta chains folded into a fresh base node.",
		}),
		ChainsFreed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bwtree", Name: "chains_freed_total",
			Help: "Detached chains destroyed after quiescence.",
		}),
		LiveDeltas: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bwtree", Name: "live_deltas",
			Help: "Delta records currently reachable from the mapping table.",
		}),
		ChainHeightAtCut: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bwtree", Name: "chain_height_at_consolidation",
			Help:    "Chain height observed when consolidation started.",
			Buckets: prometheus.LinearBuckets(1, 2, 16),
		}),
	}
	reg.MustRegister(
		m.NodeAllocations, m.InstallFailures, m.Consolidations,
		m.ChainsFreed, m.LiveDeltas, m.ChainHeightAtCut,
	)
	return m
}

// AddNodeAllocation is a nil-safe increment.
func (m *Metrics) AddNodeAllocation() {
	if m != nil && m.NodeAllocations != nil {
		m.NodeAllocations.Inc()
	}
}

// AddInstallFailure is a nil-safe increment.
func (m *Metrics) AddInstallFailure() {
	if m != nil && m.InstallFailures != nil {
		m.InstallFailures.Inc()
	}
}

// AddConsolidation is a nil-safe increment recording the observed height.
func (m *Metrics) AddConsolidation(height uint16) {
	if m == nil {
		return
	}
	if m.Consolidations != nil {
		m.Consolidations.Inc()
	}
	if m.ChainHeightAtCut != nil {
		m.ChainHeightAtCut.Observe(float64(height))
	}
}

// AddChainFreed is a nil-safe increment.
func (m *Metrics) AddChainFreed() {
	if m != nil && m.ChainsFreed != nil {
		m.ChainsFreed.Inc()
	}
}

// SetLiveDeltas is a nil-safe gauge update.
func (m *Metrics) SetLiveDeltas(n int64) {
	if m != nil && m.LiveDeltas != nil {
		m.LiveDeltas.Set(float64(n))
	}
}
