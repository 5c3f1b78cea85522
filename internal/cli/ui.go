//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibperiod/internal/format"
	"github.com/agbru/fibperiod/internal/orchestration"
	"github.com/agbru/fibperiod/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayProgress from a specific spinner implementation so the
// display loop can be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner followed by a progress bar, the ETA and
// the completed/total modulus count until progressChan is closed. It calls
// wg.Done when it returns.
//
// Parameters:
//   - wg: The WaitGroup to signal on completion.
//   - progressChan: The channel of progress updates from the coordinator.
//   - total: The number of moduli in the sweep.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, total uint64, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(total)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	var completed uint64
	s.UpdateSuffix(progressSuffix(0, 0, completed, total))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s\n", finalSuffix(agg.Progress(), completed, total))
				return
			}
			p := agg.Update(update)
			completed = p.Completed
			s.UpdateSuffix(progressSuffix(p.Progress, p.ETA, completed, total))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg.Progress(), agg.GetETA(), completed, total))
		}
	}
}

// finalSuffix is the line left on screen once the channel closes. A sweep
// that stopped early keeps its last observed count.
func finalSuffix(fraction float64, completed, total uint64) string {
	if completed >= total {
		return progressSuffix(1, 0, total, total)
	}
	return fmt.Sprintf(" [%s] %6.2f%% stopped  %s/%s moduli",
		format.ProgressBar(fraction, ProgressBarWidth), fraction*100,
		format.FormatCount(completed), format.FormatCount(total))
}

func progressSuffix(fraction float64, eta time.Duration, completed, total uint64) string {
	return fmt.Sprintf(" %s  %s/%s moduli",
		format.FormatProgressBarWithETA(fraction, eta, ProgressBarWidth),
		format.FormatCount(completed), format.FormatCount(total))
}
