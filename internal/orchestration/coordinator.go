package orchestration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibperiod/internal/pisano"
	"github.com/agbru/fibperiod/internal/progress"
)

const tracerName = "fibperiod/orchestration"

// ResultBufferMultiplier sizes the results channel relative to the worker
// count, so workers rarely block on a slow aggregator.
const ResultBufferMultiplier = 4

// ProgressBufferSize is the capacity of the progress channel.
const ProgressBufferSize = 64

// SweepConfig describes one sweep.
type SweepConfig struct {
	// Range is the half-open modulus range to analyze.
	Range Range
	// Workers bounds the number of concurrent analyses. Zero means one per CPU.
	Workers int
	// Verify cross-checks every period with fast doubling.
	Verify bool
	// NoCache forces recomputation even when a cached artifact exists.
	NoCache bool
}

// SweepOutcome is the result of a sweep, computed or loaded from cache.
type SweepOutcome struct {
	Range     Range
	Arrays    ResultArrays
	Summary   Summary
	FromCache bool
	// Steps is the total number of sequence steps walked; zero for cached outcomes.
	Steps    uint64
	Duration time.Duration
}

// RunSweep analyzes every modulus of cfg.Range on a bounded worker pool.
//
// Results are consumed by a single goroutine in completion order, so the
// aggregation needs no locking; each group is sorted by modulus before
// returning. Cancelling ctx stops dispatching new moduli and makes RunSweep
// return the context error with no partial outcome.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - cfg: The sweep configuration.
//   - analyzer: The per-modulus analyzer.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - SweepOutcome: The sorted result arrays and their summary.
//   - error: A ConfigError for an invalid range, the first analysis error,
//     or the context error.
func RunSweep(ctx context.Context, cfg SweepConfig, analyzer Analyzer, progressReporter ProgressReporter, out io.Writer) (SweepOutcome, error) {
	if err := cfg.Range.Validate(); err != nil {
		return SweepOutcome{}, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	total := cfg.Range.LoopCount()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "sweep",
		trace.WithAttributes(
			attribute.Int64("sweep.range_start", int64(cfg.Range.Start)),
			attribute.Int64("sweep.range_end", int64(cfg.Range.End)),
			attribute.Int("sweep.workers", workers),
			attribute.Bool("sweep.verify", cfg.Verify),
		))
	defer span.End()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make(chan pisano.Result, workers*ResultBufferMultiplier)
	progressChan := make(chan progress.ProgressUpdate, ProgressBufferSize)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, total, out)

	var dispatchErr error
	go func() {
		defer close(results)
		for m := cfg.Range.Start; m < cfg.Range.End; m++ {
			if gctx.Err() != nil {
				break
			}
			modulus := m
			g.Go(func() error {
				r, err := analyzer.Analyze(modulus)
				if err != nil {
					return fmt.Errorf("analyze modulus %d: %w", modulus, err)
				}
				if cfg.Verify {
					if err := pisano.VerifyPeriod(r); err != nil {
						return err
					}
				}
				select {
				case results <- r:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		dispatchErr = g.Wait()
	}()

	var (
		arrays    ResultArrays
		completed uint64
		steps     uint64
	)
	for r := range results {
		arrays.Add(r)
		completed++
		steps += r.Period
		progressChan <- progress.ProgressUpdate{Completed: completed, Total: total}
	}
	close(progressChan)
	displayWg.Wait()

	err := ctx.Err()
	if err == nil {
		err = dispatchErr
	}
	if err == nil && completed != total {
		err = fmt.Errorf("sweep %s finished with %d of %d moduli analyzed", cfg.Range, completed, total)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sweep failed")
		return SweepOutcome{}, err
	}

	arrays.SortByModulus()
	summary := Summarize(arrays)
	span.SetAttributes(
		attribute.Int("sweep.covers", summary.Covers),
		attribute.Int("sweep.misses", summary.Misses),
		attribute.Int64("sweep.steps", int64(steps)),
	)

	return SweepOutcome{
		Range:    cfg.Range,
		Arrays:   arrays,
		Summary:  summary,
		Steps:    steps,
		Duration: time.Since(start),
	}, nil
}

// Sweep is the cache-aware entry point. When store holds a complete artifact
// for exactly cfg.Range (and cfg.NoCache is false) it is loaded and returned
// with FromCache set; otherwise RunSweep runs and its arrays are saved.
// A cancelled or failed sweep saves nothing.
func Sweep(ctx context.Context, cfg SweepConfig, store ResultStore, analyzer Analyzer, progressReporter ProgressReporter, out io.Writer) (SweepOutcome, error) {
	if err := cfg.Range.Validate(); err != nil {
		return SweepOutcome{}, err
	}

	if !cfg.NoCache {
		outcome, hit, err := loadCached(ctx, cfg.Range, store)
		if err != nil {
			return SweepOutcome{}, err
		}
		if hit {
			return outcome, nil
		}
	}

	outcome, err := RunSweep(ctx, cfg, analyzer, progressReporter, out)
	if err != nil {
		return SweepOutcome{}, err
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "cache.save",
		trace.WithAttributes(attribute.Int64("cache.loop_count", int64(cfg.Range.LoopCount()))))
	defer span.End()
	if err := store.Save(cfg.Range, outcome.Arrays); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache save failed")
		return SweepOutcome{}, err
	}
	return outcome, nil
}

// loadCached returns the stored outcome for rng if one exists. An artifact
// whose size does not match the range is treated as a miss and recomputed.
func loadCached(ctx context.Context, rng Range, store ResultStore) (SweepOutcome, bool, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "cache.load",
		trace.WithAttributes(attribute.Int64("cache.loop_count", int64(rng.LoopCount()))))
	defer span.End()

	start := time.Now()
	exists, err := store.Exists(rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache lookup failed")
		return SweepOutcome{}, false, err
	}
	span.SetAttributes(attribute.Bool("cache.hit", exists))
	if !exists {
		return SweepOutcome{}, false, nil
	}

	arrays, err := store.Load(rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache load failed")
		return SweepOutcome{}, false, err
	}
	if uint64(arrays.Total()) != rng.LoopCount() {
		span.SetAttributes(attribute.Bool("cache.stale", true))
		return SweepOutcome{}, false, nil
	}

	return SweepOutcome{
		Range:     rng,
		Arrays:    arrays,
		Summary:   Summarize(arrays),
		FromCache: true,
		Duration:  time.Since(start),
	}, true, nil
}
