// Package app wires configuration, the sweep coordinator, the cache store,
// chart rendering, export and presentation into the fibperiod command.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/agbru/fibperiod/internal/config"
	"github.com/agbru/fibperiod/internal/logging"
	"github.com/agbru/fibperiod/internal/metrics"
	"github.com/agbru/fibperiod/internal/orchestration"
	"github.com/agbru/fibperiod/internal/pisano"
	"github.com/agbru/fibperiod/internal/ui"
)

// Application represents the fibperiod application instance.
type Application struct {
	Config    config.AppConfig
	Analyzer  orchestration.Analyzer
	Logger    logging.Logger
	Metrics   *metrics.SweepMetrics
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithAnalyzer replaces the per-modulus analyzer.
func WithAnalyzer(an orchestration.Analyzer) AppOption {
	return func(a *Application) { a.Analyzer = an }
}

// WithLogger replaces the diagnostic logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "fibperiod"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	cfg = config.ApplyAdaptiveWorkers(cfg)

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Analyzer == nil {
		app.Analyzer = &pisano.Walker{Options: cfg.ToAnalyzerOptions()}
	}
	if app.Logger == nil {
		app.Logger = logging.NewCLILogger(errWriter, cfg.Verbose, cfg.Quiet)
	}
	if app.Metrics == nil {
		app.Metrics = metrics.NewSweepMetrics()
	}
	return app, nil
}

// Run executes the sweep and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	return a.runSweep(ctx, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
