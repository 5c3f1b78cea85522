package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSweepMetrics_ObserveSweep(t *testing.T) {
	t.Parallel()

	m := NewSweepMetrics()
	m.ObserveSweep(7, 1, 120, 50*time.Millisecond, false)
	m.ObserveSweep(7, 1, 0, time.Millisecond, true)

	if got := testutil.ToFloat64(m.moduliAnalyzed.WithLabelValues(GroupCovers)); got != 14 {
		t.Errorf("covers = %v, want 14", got)
	}
	if got := testutil.ToFloat64(m.moduliAnalyzed.WithLabelValues(GroupMisses)); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.analysisSteps); got != 120 {
		t.Errorf("steps = %v, want 120", got)
	}
	if got := testutil.ToFloat64(m.cacheHits); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
}

func TestSweepMetrics_Independent(t *testing.T) {
	t.Parallel()

	a := NewSweepMetrics()
	b := NewSweepMetrics()
	a.ObserveSweep(1, 0, 3, time.Millisecond, true)

	if got := testutil.ToFloat64(b.cacheHits); got != 0 {
		t.Errorf("second registry saw %v cache hits, want 0", got)
	}
}

func TestSweepMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	m := NewSweepMetrics()
	m.ObserveSweep(7, 1, 120, 50*time.Millisecond, false)

	path := filepath.Join(t.TempDir(), "fibperiod.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics file: %v", err)
	}
	body := string(data)
	for _, want := range []string{
		`fibperiod_moduli_analyzed_total{group="covers"} 7`,
		"fibperiod_analysis_steps_total 120",
		"fibperiod_sweep_duration_seconds_count 1",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics file missing %q", want)
		}
	}
}

func TestSweepMetrics_WriteTextfileBadPath(t *testing.T) {
	t.Parallel()

	m := NewSweepMetrics()
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
