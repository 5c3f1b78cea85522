package orchestration

import (
	"time"

	"github.com/agbru/fibperiod/internal/format"
	"github.com/agbru/fibperiod/internal/progress"
)

// ProgressAggregator turns raw completed/total counts into a smoothed
// fraction and ETA. It wraps format.ProgressWithETA so that every display
// shares the same estimation logic.
type ProgressAggregator struct {
	state *format.ProgressWithETA
	total uint64
}

// NewProgressAggregator creates a new aggregator for a sweep of total
// moduli. Returns nil if total is zero.
func NewProgressAggregator(total uint64) *ProgressAggregator {
	if total == 0 {
		return nil
	}
	return &ProgressAggregator{
		state: format.NewProgressWithETA(),
		total: total,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Completed is the number of analyses finished.
	Completed uint64
	// Total is the size of the sweep.
	Total uint64
	// Progress is the completed fraction (0.0 to 1.0).
	Progress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	value, eta := a.state.UpdateWithETA(update.Value())
	return AggregatedProgress{
		Completed: update.Completed,
		Total:     a.total,
		Progress:  value,
		ETA:       eta,
	}
}

// Progress returns the current fraction without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) Progress() float64 {
	return a.state.Progress()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Total returns the number of moduli being tracked.
func (a *ProgressAggregator) Total() uint64 {
	return a.total
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
