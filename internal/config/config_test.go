package config

import (
	"bytes"
	"errors"
	"flag"
	"runtime"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibperiod/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("fibperiod", nil, &errBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RangeStart != 2 || cfg.RangeEnd != 10 {
		t.Errorf("range = [%d, %d), want [2, 10)", cfg.RangeStart, cfg.RangeEnd)
	}
	if cfg.DataDir != "data" || cfg.FiguresDir != "figures" {
		t.Errorf("dirs = %q, %q", cfg.DataDir, cfg.FiguresDir)
	}
	if cfg.PlotType != PlotTypePlotly {
		t.Errorf("PlotType = %q, want plotly", cfg.PlotType)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.LoopCount() != 8 {
		t.Errorf("LoopCount() = %d, want 8", cfg.LoopCount())
	}
}

func TestParseConfig_Flags(t *testing.T) {
	t.Parallel()
	args := []string{
		"--start", "5", "--end", "105", "--plot", "Matplotlib",
		"--workers", "3", "--early-exit", "--no-cache",
		"-q", "--timeout", "30s", "--data-dir", "/tmp/d", "--results-db", "r.db",
	}
	cfg, err := ParseConfig("fibperiod", args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := AppConfig{
		RangeStart: 5, RangeEnd: 105, DataDir: "/tmp/d", FiguresDir: "figures",
		PlotType: PlotTypeMatplotlib, Workers: 3, EarlyExit: true,
		NoCache: true, ResultsDB: "r.db", Timeout: 30 * time.Second, Quiet: true,
	}
	if cfg != want {
		t.Errorf("ParseConfig() =\n%+v\nwant\n%+v", cfg, want)
	}
	if !cfg.ToAnalyzerOptions().EarlyExit {
		t.Error("ToAnalyzerOptions should carry EarlyExit")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"start below two", []string{"--start", "1"}, "range start"},
		{"empty range", []string{"--start", "10", "--end", "10"}, "range end"},
		{"inverted range", []string{"--start", "10", "--end", "3"}, "range end"},
		{"unknown plot", []string{"--plot", "bokeh"}, "plot type"},
		{"positional", []string{"extra"}, "unexpected arguments"},
		{"verify with early exit", []string{"--verify", "--early-exit"}, "cannot be combined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("fibperiod", tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected an error")
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestParseConfig_FieldErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"negative workers", []string{"--workers", "-2"}, "workers"},
		{"zero timeout", []string{"--timeout", "0s"}, "timeout"},
		{"empty data dir", []string{"--data-dir", ""}, "data-dir"},
		{"empty figures dir", []string{"--figures-dir", ""}, "figures-dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("fibperiod", tt.args, &bytes.Buffer{})
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if valErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.field)
			}
			if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
			}
		})
	}

	// An empty figures dir is fine when no chart is drawn.
	if _, err := ParseConfig("fibperiod", []string{"--figures-dir", "", "--no-chart"}, &bytes.Buffer{}); err != nil {
		t.Errorf("--no-chart with empty figures dir: %v", err)
	}
}

func TestParseConfig_Help(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := ParseConfig("fibperiod", []string{"--help"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(errBuf.String(), "Usage: fibperiod") {
		t.Errorf("usage output missing, got %q", errBuf.String())
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"RANGE_START", "20")
	t.Setenv(EnvPrefix+"RANGE_END", "40")
	t.Setenv(EnvPrefix+"PLOT", "matplotlib")
	t.Setenv(EnvPrefix+"EARLY_EXIT", "yes")
	t.Setenv(EnvPrefix+"TIMEOUT", "1m")
	t.Setenv(EnvPrefix+"WORKERS", "not-a-number")

	cfg, err := ParseConfig("fibperiod", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RangeStart != 20 || cfg.RangeEnd != 40 {
		t.Errorf("range = [%d, %d), want [20, 40)", cfg.RangeStart, cfg.RangeEnd)
	}
	if cfg.PlotType != PlotTypeMatplotlib || !cfg.EarlyExit || cfg.Timeout != time.Minute {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Workers != 0 {
		t.Errorf("invalid WORKERS should be ignored, got %d", cfg.Workers)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"RANGE_END", "40")
	t.Setenv(EnvPrefix+"QUIET", "true")

	cfg, err := ParseConfig("fibperiod", []string{"--end", "12", "--quiet=false"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RangeEnd != 12 {
		t.Errorf("RangeEnd = %d, want 12 from the flag", cfg.RangeEnd)
	}
	if cfg.Quiet {
		t.Error("explicit --quiet=false should win over FIBPERIOD_QUIET")
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestApplyAdaptiveWorkers(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveWorkers(AppConfig{RangeStart: 2, RangeEnd: 1_000_000})
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}

	kept := ApplyAdaptiveWorkers(AppConfig{RangeStart: 2, RangeEnd: 100, Workers: 7})
	if kept.Workers != 7 {
		t.Errorf("explicit Workers overwritten: %d", kept.Workers)
	}

	small := ApplyAdaptiveWorkers(AppConfig{RangeStart: 2, RangeEnd: 3})
	if small.Workers != 1 {
		t.Errorf("single-modulus sweep should use one worker, got %d", small.Workers)
	}
}
