package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/fibperiod/internal/pisano"
	"github.com/agbru/fibperiod/internal/progress"
)

// Analyzer computes the Pisano result of a single modulus. Implementations
// must be safe for concurrent use.
type Analyzer interface {
	Analyze(modulus uint64) (pisano.Result, error)
}

// AnalyzerFunc is a function adapter that implements Analyzer.
type AnalyzerFunc func(modulus uint64) (pisano.Result, error)

// Analyze calls the underlying function.
func (f AnalyzerFunc) Analyze(modulus uint64) (pisano.Result, error) {
	return f(modulus)
}

// ResultStore persists the result arrays of a sweep, keyed by its range.
type ResultStore interface {
	// Exists reports whether a complete artifact for exactly this range is stored.
	Exists(rng Range) (bool, error)
	// Load reads a previously saved artifact.
	Load(rng Range) (ResultArrays, error)
	// Save writes all four arrays; a failed save leaves no usable artifact.
	Save(rng Range, arrays ResultArrays) error
}

// ProgressReporter defines the interface for displaying sweep progress.
// This interface decouples the orchestration layer from the presentation
// layer, so the coordinator never depends on terminal concerns.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from the coordinator.
	//   - total: The number of moduli in the sweep.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, total uint64, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, total uint64, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, total uint64, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ uint64, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting sweep results.
type ResultPresenter interface {
	// PresentSummary displays the headline coverage line.
	PresentSummary(outcome SweepOutcome, out io.Writer)
	// PresentDetails displays per-group statistics.
	PresentDetails(outcome SweepOutcome, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles sweep errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
