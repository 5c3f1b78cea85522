// Package chart renders the period-length scatter of a sweep to a static file.
//
// Two backends exist. The "plotly" plot type produces an interactive HTML page
// through go-echarts, and the "matplotlib" plot type produces a PNG through
// gonum/plot. Both draw the same two series: the moduli whose period contains
// every remainder and the moduli whose period does not.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agbru/fibperiod/internal/config"
	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/orchestration"
)

// Chart labels shared by both backends.
const (
	Title       = "Fibonacci modulus sequence periods"
	XAxisLabel  = "Modulus"
	YAxisLabel  = "Period length"
	CoversLabel = "Contains every remainder"
	MissesLabel = "Doesn't contain every remainder"
	filePrefix  = "fibonacci_periods_"
	dirPerm     = 0o750
)

// Meta describes the sweep a chart belongs to.
type Meta struct {
	Range orchestration.Range
}

// LoopCount returns the number of moduli in the charted range.
func (m Meta) LoopCount() uint64 { return m.Range.LoopCount() }

// Renderer writes a chart of the result arrays and returns the file path.
type Renderer interface {
	Render(arrays orchestration.ResultArrays, meta Meta) (string, error)
}

// New returns the renderer for plotType, writing under figuresDir.
func New(plotType, figuresDir string) (Renderer, error) {
	switch strings.ToLower(plotType) {
	case config.PlotTypePlotly:
		return NewEChartsRenderer(figuresDir), nil
	case config.PlotTypeMatplotlib:
		return NewPlotRenderer(figuresDir), nil
	default:
		return nil, apperrors.NewConfigError("unknown plot type %q (want one of %s)",
			plotType, strings.Join(config.PlotTypes, ", "))
	}
}

// FileName returns the chart file name for a sweep of loopCount moduli.
func FileName(loopCount uint64, ext string) string {
	return fmt.Sprintf("%s%d.%s", filePrefix, loopCount, ext)
}

// prepare creates dir and returns the full output path.
func prepare(dir string, loopCount uint64, ext string) (string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", apperrors.NewIOError("create figures directory", dir, err)
	}
	return filepath.Join(dir, FileName(loopCount, ext)), nil
}
