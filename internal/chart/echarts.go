package chart

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/orchestration"
)

const (
	htmlExtension = "html"
	coversColor   = "#1f77b4"
	missesColor   = "#ff7f0e"
	markerSize    = 8
)

// EChartsRenderer writes the scatter chart as a standalone HTML page.
type EChartsRenderer struct {
	dir string
}

var _ Renderer = (*EChartsRenderer)(nil)

// NewEChartsRenderer returns a renderer writing into dir.
func NewEChartsRenderer(dir string) *EChartsRenderer {
	return &EChartsRenderer{dir: dir}
}

// Render writes {dir}/fibonacci_periods_{n}.html.
func (r *EChartsRenderer) Render(arrays orchestration.ResultArrays, meta Meta) (string, error) {
	path, err := prepare(r.dir, meta.LoopCount(), htmlExtension)
	if err != nil {
		return "", err
	}

	scatter := buildScatter(arrays, meta)

	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewIOError("create chart", path, err)
	}
	if err := scatter.Render(f); err != nil {
		f.Close()
		return "", apperrors.NewIOError("render chart", path, err)
	}
	if err := f.Close(); err != nil {
		return "", apperrors.NewIOError("close chart", path, err)
	}
	return path, nil
}

func buildScatter(arrays orchestration.ResultArrays, meta Meta) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: Title, Width: "1100px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    Title,
			Subtitle: fmt.Sprintf("moduli %s, %d covering, %d not covering", meta.Range, arrays.Covers(), arrays.Misses()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: XAxisLabel, Type: "value", NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: YAxisLabel, Type: "value", NameLocation: "middle", NameGap: 45}),
	)

	scatter.AddSeries(CoversLabel, scatterPoints(arrays.CoversX, arrays.CoversY),
		charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "circle", SymbolSize: markerSize}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: coversColor}),
	)
	scatter.AddSeries(MissesLabel, scatterPoints(arrays.MissesX, arrays.MissesY),
		charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "diamond", SymbolSize: markerSize}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: missesColor}),
	)
	return scatter
}

func scatterPoints(xs, ys []uint64) []opts.ScatterData {
	points := make([]opts.ScatterData, len(xs))
	for i := range xs {
		points[i] = opts.ScatterData{Value: []uint64{xs[i], ys[i]}}
	}
	return points
}
