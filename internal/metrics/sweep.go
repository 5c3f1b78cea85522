package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperrors "github.com/agbru/fibperiod/internal/errors"
)

// Group label values for fibperiod_moduli_analyzed_total.
const (
	GroupCovers = "covers"
	GroupMisses = "misses"
)

// SweepMetrics is the metric set of one process, kept on a private registry
// so repeated construction in tests never collides with the default one.
type SweepMetrics struct {
	registry *prometheus.Registry

	moduliAnalyzed *prometheus.CounterVec
	analysisSteps  prometheus.Counter
	sweepDuration  prometheus.Histogram
	cacheHits      prometheus.Counter
}

// NewSweepMetrics registers the sweep metrics and the Go runtime collector on
// a fresh registry.
func NewSweepMetrics() *SweepMetrics {
	m := &SweepMetrics{
		registry: prometheus.NewRegistry(),
		moduliAnalyzed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fibperiod_moduli_analyzed_total",
				Help: "Number of moduli analyzed, by residue coverage group.",
			},
			[]string{"group"},
		),
		analysisSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibperiod_analysis_steps_total",
			Help: "Sequence steps walked across all analyses.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fibperiod_sweep_duration_seconds",
			Help:    "Wall-clock duration of sweeps.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibperiod_cache_hits_total",
			Help: "Sweeps served from the on-disk cache.",
		}),
	}
	m.registry.MustRegister(
		m.moduliAnalyzed,
		m.analysisSteps,
		m.sweepDuration,
		m.cacheHits,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveSweep records the outcome of one sweep.
func (m *SweepMetrics) ObserveSweep(covers, misses int, steps uint64, duration time.Duration, fromCache bool) {
	m.moduliAnalyzed.WithLabelValues(GroupCovers).Add(float64(covers))
	m.moduliAnalyzed.WithLabelValues(GroupMisses).Add(float64(misses))
	m.analysisSteps.Add(float64(steps))
	m.sweepDuration.Observe(duration.Seconds())
	if fromCache {
		m.cacheHits.Inc()
	}
}

// Registry exposes the underlying registry.
func (m *SweepMetrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every registered metric to path in the text exposition
// format understood by the node exporter textfile collector.
func (m *SweepMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return apperrors.NewIOError("write metrics file", path, err)
	}
	return nil
}
