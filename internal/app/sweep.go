package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/fibperiod/internal/cache"
	"github.com/agbru/fibperiod/internal/chart"
	"github.com/agbru/fibperiod/internal/cli"
	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/export"
	"github.com/agbru/fibperiod/internal/logging"
	"github.com/agbru/fibperiod/internal/metrics"
	"github.com/agbru/fibperiod/internal/orchestration"
	"github.com/agbru/fibperiod/internal/sysmon"
)

// runSweep orchestrates one run: sweep (or cache load), summary, chart,
// optional export and metrics file.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	presenter := cli.CLIResultPresenter{}

	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !cfg.Quiet {
		cli.PrintSweepConfig(cfg, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	rng := orchestration.Range{Start: cfg.RangeStart, End: cfg.RangeEnd}
	store := cache.NewStore(cfg.DataDir, cache.WithLogger(a.Logger))
	sweepCfg := orchestration.SweepConfig{
		Range:   rng,
		Workers: cfg.Workers,
		Verify:  cfg.Verify,
		NoCache: cfg.NoCache,
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	sysmon.LogSample(a.Logger, "sweep.start")
	start := time.Now()

	outcome, err := orchestration.Sweep(ctx, sweepCfg, store, a.Analyzer, progressReporter, progressOut)
	sysmon.LogSample(a.Logger, "sweep.end")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "sweep", Limit: cfg.Timeout}
		}
		a.Logger.Debug("sweep failed", logging.Err(err), logging.String("range", rng.String()))
		return presenter.HandleError(err, time.Since(start), a.ErrWriter)
	}

	a.Logger.Debug("sweep finished",
		logging.String("range", rng.String()),
		logging.Bool("from_cache", outcome.FromCache),
		logging.Int("covers", outcome.Summary.Covers),
		logging.Int("misses", outcome.Summary.Misses),
		logging.Uint64("steps", outcome.Steps),
		logging.Duration("duration", outcome.Duration),
	)
	a.Metrics.ObserveSweep(outcome.Summary.Covers, outcome.Summary.Misses, outcome.Steps, outcome.Duration, outcome.FromCache)

	if !cfg.Quiet {
		fmt.Fprintln(out)
	}
	presenter.PresentSummary(outcome, out)
	if cfg.Verbose {
		presenter.PresentDetails(outcome, out)
		cli.DisplayMemoryStats(mem.Snapshot().Since(before), out)
	}

	if err := a.publish(ctx, outcome, out); err != nil {
		a.Logger.Debug("publishing results failed", logging.Err(err))
		return presenter.HandleError(err, time.Since(start), a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// publish renders the chart and writes the optional export and metrics file.
func (a *Application) publish(ctx context.Context, outcome orchestration.SweepOutcome, out io.Writer) error {
	cfg := a.Config

	if !cfg.NoChart {
		renderer, err := chart.New(cfg.PlotType, cfg.FiguresDir)
		if err != nil {
			return err
		}
		path, err := renderer.Render(outcome.Arrays, chart.Meta{Range: outcome.Range})
		if err != nil {
			return err
		}
		a.Logger.Debug("chart written", logging.String("path", path), logging.String("plot", cfg.PlotType))
		if !cfg.Quiet {
			cli.DisplayChartPath(path, out)
		}
	}

	if cfg.ResultsDB != "" {
		rows, err := export.NewSQLiteExporter(cfg.ResultsDB).Export(ctx, outcome)
		if err != nil {
			return err
		}
		a.Logger.Debug("results exported", logging.String("path", cfg.ResultsDB), logging.Int("rows", rows))
	}

	if cfg.MetricsFile != "" {
		if err := a.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}
	return nil
}
