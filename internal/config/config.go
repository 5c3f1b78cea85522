// Package config parses and validates the fibperiod command line. Values come
// from flags, then FIBPERIOD_* environment variables, then defaults, in that
// order of priority. The resulting AppConfig is treated as immutable.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/pisano"
)

// EnvPrefix is prepended to every environment variable consulted by ParseConfig.
const EnvPrefix = "FIBPERIOD_"

// ─────────────────────────────────────────────────────────────────────────────
// Defaults
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultRangeStart is the first modulus analyzed.
	DefaultRangeStart uint64 = 2
	// DefaultRangeEnd is the exclusive upper bound of the sweep.
	DefaultRangeEnd uint64 = 10
	// DefaultDataDir holds cached result arrays.
	DefaultDataDir = "data"
	// DefaultFiguresDir receives rendered charts.
	DefaultFiguresDir = "figures"
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 24 * time.Hour

	// PlotTypePlotly renders an interactive HTML scatter chart.
	PlotTypePlotly = "plotly"
	// PlotTypeMatplotlib renders a static PNG scatter chart.
	PlotTypeMatplotlib = "matplotlib"
)

// PlotTypes lists the accepted --plot values.
var PlotTypes = []string{PlotTypePlotly, PlotTypeMatplotlib}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// RangeStart is the first modulus of the half-open sweep range.
	RangeStart uint64
	// RangeEnd is the exclusive end of the sweep range.
	RangeEnd uint64
	// DataDir is the root of the result cache.
	DataDir string
	// FiguresDir is where charts are written.
	FiguresDir string
	// PlotType selects the chart backend ("plotly" or "matplotlib").
	PlotType string
	// Workers is the size of the analysis pool. Zero means one per CPU.
	Workers int
	// EarlyExit stops each walk once every residue has been seen.
	EarlyExit bool
	// Verify cross-checks each period with fast doubling.
	Verify bool
	// NoCache ignores an existing cache artifact and recomputes.
	NoCache bool
	// NoChart skips chart rendering.
	NoChart bool
	// ResultsDB is an optional SQLite file receiving per-modulus rows.
	ResultsDB string
	// MetricsFile is an optional Prometheus textfile written after the run.
	MetricsFile string
	// Timeout is the maximum duration of the whole run.
	Timeout time.Duration
	// Quiet reduces output to the summary line.
	Quiet bool
	// Verbose adds debug logs, group statistics and memory stats.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// LoopCount returns the number of moduli in the sweep range.
func (c AppConfig) LoopCount() uint64 {
	if c.RangeEnd <= c.RangeStart {
		return 0
	}
	return c.RangeEnd - c.RangeStart
}

// ToAnalyzerOptions converts the configuration into per-modulus analyzer options.
func (c AppConfig) ToAnalyzerOptions() pisano.Options {
	return pisano.Options{EarlyExit: c.EarlyExit}
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: A ConfigError for range, plot and flag combination problems,
//     a ValidationError naming the offending field otherwise, or nil.
func (c AppConfig) Validate() error {
	if c.RangeStart < 2 {
		return apperrors.NewConfigError("range start must be >= 2 (got %d)", c.RangeStart)
	}
	if c.RangeEnd <= c.RangeStart {
		return apperrors.NewConfigError("range end (%d) must be greater than range start (%d)", c.RangeEnd, c.RangeStart)
	}
	if !isValidPlotType(c.PlotType) {
		return apperrors.NewConfigError("unrecognized plot type: %q (expected one of: %s)", c.PlotType, strings.Join(PlotTypes, ", "))
	}
	if c.Verify && c.EarlyExit {
		return apperrors.NewConfigError("--verify needs full periods and cannot be combined with --early-exit")
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be >= 0 (got %d)", c.Workers)}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be strictly positive"}
	}
	if c.DataDir == "" {
		return apperrors.ValidationError{Field: "data-dir", Message: "must not be empty"}
	}
	if c.FiguresDir == "" && !c.NoChart {
		return apperrors.ValidationError{Field: "figures-dir", Message: "must not be empty"}
	}
	return nil
}

func isValidPlotType(plotType string) bool {
	for _, p := range PlotTypes {
		if plotType == p {
			return true
		}
	}
	return false
}

// ParseConfig parses the command-line arguments, applies environment
// overrides and validates the result.
//
// Parameters:
//   - programName: The name of the program, used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Where usage and parse errors are written.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp when help was requested, or the Validate error.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Computes Fibonacci periods modulo m for every m in [start, end) and reports\n")
		fmt.Fprintf(errorWriter, "which moduli produce every remainder.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEnvironment variables (%s*) are used when the matching flag is not set.\n", EnvPrefix)
	}

	config := AppConfig{}
	fs.Uint64Var(&config.RangeStart, "start", DefaultRangeStart, "First modulus of the range (inclusive, >= 2).")
	fs.Uint64Var(&config.RangeEnd, "end", DefaultRangeEnd, "End of the modulus range (exclusive).")
	fs.StringVar(&config.DataDir, "data-dir", DefaultDataDir, "Directory for cached result arrays.")
	fs.StringVar(&config.FiguresDir, "figures-dir", DefaultFiguresDir, "Directory for rendered charts.")
	fs.StringVar(&config.PlotType, "plot", PlotTypePlotly, "Chart backend: 'plotly' (HTML) or 'matplotlib' (PNG).")
	fs.IntVar(&config.Workers, "workers", 0, "Number of concurrent analyses (0 = one per CPU).")
	fs.BoolVar(&config.EarlyExit, "early-exit", false, "Stop each walk once every residue has appeared.")
	fs.BoolVar(&config.Verify, "verify", false, "Cross-check every period with fast doubling.")
	fs.BoolVar(&config.NoCache, "no-cache", false, "Ignore cached results and recompute.")
	fs.BoolVar(&config.NoChart, "no-chart", false, "Skip chart rendering.")
	fs.StringVar(&config.ResultsDB, "results-db", "", "Optional SQLite file receiving per-modulus results.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Optional Prometheus textfile written after the run.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the summary line.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show debug logs and detailed statistics.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	config.PlotType = strings.ToLower(strings.TrimSpace(config.PlotType))

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
