package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/orchestration"
)

const pngExtension = "png"

var (
	coversRGBA = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	missesRGBA = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}
)

// PlotRenderer writes the scatter chart as a PNG image.
type PlotRenderer struct {
	dir           string
	width, height vg.Length
}

var _ Renderer = (*PlotRenderer)(nil)

// NewPlotRenderer returns a renderer writing 10x6 inch images into dir.
func NewPlotRenderer(dir string) *PlotRenderer {
	return &PlotRenderer{dir: dir, width: 10 * vg.Inch, height: 6 * vg.Inch}
}

// Render writes {dir}/fibonacci_periods_{n}.png.
func (r *PlotRenderer) Render(arrays orchestration.ResultArrays, meta Meta) (string, error) {
	path, err := prepare(r.dir, meta.LoopCount(), pngExtension)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XAxisLabel
	p.Y.Label.Text = YAxisLabel
	p.Add(plotter.NewGrid())

	if err := addGroup(p, CoversLabel, arrays.CoversX, arrays.CoversY, draw.CrossGlyph{}, coversRGBA); err != nil {
		return "", err
	}
	if err := addGroup(p, MissesLabel, arrays.MissesX, arrays.MissesY, draw.RingGlyph{}, missesRGBA); err != nil {
		return "", err
	}

	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(r.width, r.height, path); err != nil {
		return "", apperrors.NewIOError("save chart", path, err)
	}
	return path, nil
}

// addGroup adds one scatter series; empty groups are left out of the plot.
func addGroup(p *plot.Plot, label string, xs, ys []uint64, shape draw.GlyphDrawer, c color.Color) error {
	if len(xs) == 0 {
		return nil
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = float64(xs[i])
		pts[i].Y = float64(ys[i])
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return apperrors.WrapError(err, "build %q series", label)
	}
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(3)

	p.Add(s)
	p.Legend.Add(label, s)
	return nil
}
