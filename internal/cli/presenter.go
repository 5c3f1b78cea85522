package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/format"
	"github.com/agbru/fibperiod/internal/metrics"
	"github.com/agbru/fibperiod/internal/orchestration"
	"github.com/agbru/fibperiod/internal/progress"
	"github.com/agbru/fibperiod/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while the sweep runs.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, total uint64, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// FormatSummary returns the headline line, e.g.
// "7/9 = 77.78% of the moduli contain every remainder." The counts carry the
// Laplace +1 of Summary.Fraction.
func FormatSummary(s orchestration.Summary) string {
	return fmt.Sprintf("%s/%s = %s of the moduli contain every remainder.",
		humanize.Comma(int64(s.Covers+1)),
		humanize.Comma(int64(s.Total+1)),
		format.FormatPercent(s.Fraction, 2))
}

// PresentSummary prints the headline line, styled when colors are enabled.
func (CLIResultPresenter) PresentSummary(outcome orchestration.SweepOutcome, out io.Writer) {
	styles := ui.CurrentSummaryStyles()
	fmt.Fprintln(out, styles.Headline.Render(FormatSummary(outcome.Summary)))
}

// PresentDetails prints per-group period statistics and where the result came from.
func (CLIResultPresenter) PresentDetails(outcome orchestration.SweepOutcome, out io.Writer) {
	styles := ui.CurrentSummaryStyles()
	s := outcome.Summary

	source := "computed"
	if outcome.FromCache {
		source = "loaded from cache"
	}
	fmt.Fprintf(out, "\n--- Sweep Details ---\n")
	fmt.Fprintf(out, "%s %s (%s moduli, %s in %s)\n",
		styles.Label.Render("Range:"), outcome.Range,
		format.FormatCount(uint64(s.Total)), source, format.FormatExecutionDuration(outcome.Duration))
	if outcome.Steps > 0 {
		fmt.Fprintf(out, "%s %s\n", styles.Label.Render("Steps walked:"), format.FormatCount(outcome.Steps))
	}
	printGroup(out, styles.Covers.Render("Contains every remainder:"), s.CoversStats)
	printGroup(out, styles.Misses.Render("Misses some remainder:   "), s.MissesStats)
}

func printGroup(out io.Writer, label string, g orchestration.GroupStats) {
	if g.Count == 0 {
		fmt.Fprintf(out, "%s %s moduli\n", label, format.FormatCount(0))
		return
	}
	fmt.Fprintf(out, "%s %s moduli, period mean %.2f (sd %.2f), min %s, max %s\n",
		label, format.FormatCount(uint64(g.Count)), g.MeanPeriod, g.StdDevPeriod,
		format.FormatCount(g.MinPeriod), format.FormatCount(g.MaxPeriod))
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleSweepError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider implements apperrors.ColorProvider using the ui theme.
type CLIColorProvider struct{}

// Red returns the error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset escape code.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// DisplayChartPath tells the user where the chart was written.
func DisplayChartPath(path string, out io.Writer) {
	fmt.Fprintf(out, "Chart written to %s\n", ui.CurrentSummaryStyles().Path.Render(path))
}

// DisplayMemoryStats shows memory statistics gathered around the sweep.
func DisplayMemoryStats(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(d.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", d.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(d.PauseNs)/1e6)
}
