// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/queuebench/queuestat/report"
)

// DefaultYMax is the default top of the throughput axis. Keeping it
// fixed makes charts of different scans comparable.
const DefaultYMax = 0.2 * 1e8

// Options control how a throughput chart is drawn.
type Options struct {
	// LogX uses a logarithmic parameter axis.
	LogX bool

	// LogTime uses a logarithmic Y axis labeled as time.
	LogTime bool

	// YMax fixes the top of a linear Y axis. If zero, the axis
	// fits the data.
	YMax float64

	// Titles names the series in the legend, in order. With two
	// or more titles the chart is also titled as a comparison of
	// the first two.
	Titles []string
}

var (
	orange = color.RGBA{R: 0xff, G: 0x7f, A: 0xff}
	blue   = color.RGBA{B: 0xcc, A: 0xff}
)

// style returns the line color and glyph of a series. Series measured
// from the Rust implementations are orange circles; all others are
// blue downward triangles.
func style(s *Series) (color.Color, draw.GlyphDrawer) {
	if strings.Contains(s.Name, "rust") {
		return orange, draw.CircleGlyph{}
	}
	return blue, TriDown{}
}

// Throughput draws series on one chart, with error bars.
func Throughput(series []*Series, opts Options) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no benchmark data to plot")
	}
	param := series[0].Param
	for _, s := range series[1:] {
		if s.Param != param {
			return nil, fmt.Errorf("files must all have the same parameter name, but found %q vs. %q", param, s.Param)
		}
	}

	p := plot.New()
	p.X.Label.Text = param
	p.Add(plotter.NewGrid())

	minY := math.Inf(1)
	for i, s := range series {
		pts := make(plotter.XYs, len(s.X))
		errs := make(plotter.YErrors, len(s.X))
		for j := range s.X {
			if opts.LogX && s.X[j] <= 0 {
				return nil, fmt.Errorf("%s: %s %v cannot be shown on a log axis", s.Name, param, s.X[j])
			}
			pts[j].X, pts[j].Y = s.X[j], s.Y[j]
			errs[j].Low, errs[j].High = s.Err[j], s.Err[j]
			if s.Y[j] > 0 {
				minY = math.Min(minY, s.Y[j])
			}
		}

		clr, glyph := style(s)
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		line.Color = clr
		points.Color = clr
		points.Shape = glyph
		points.Radius = vg.Points(2.5)

		bars, err := plotter.NewYErrorBars(errorPoints{pts, errs})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		bars.Color = clr
		bars.Width = vg.Points(1)
		bars.CapWidth = vg.Points(4)

		p.Add(line, points, bars)
		if i < len(opts.Titles) {
			p.Legend.Add(opts.Titles[i], line, points)
		}
	}

	if opts.LogTime {
		p.Y.Label.Text = "Time [s]"
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
		// Error bars may reach below zero.
		if p.Y.Min <= 0 && !math.IsInf(minY, 1) {
			p.Y.Min = minY / 2
		}
	} else {
		p.Y.Label.Text = "Throughput [Operations/s]"
		if opts.YMax != 0 {
			p.Y.Min, p.Y.Max = 0, opts.YMax
		}
	}
	if opts.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
	}
	if len(opts.Titles) >= 2 {
		p.Title.Text = fmt.Sprintf("Comparison between %s and %s", opts.Titles[0], opts.Titles[1])
	}
	return p, nil
}

// errorPoints are points with vertical error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Ranking draws r as a bar chart, best implementation first.
func Ranking(r *report.Ranking) (*plot.Plot, error) {
	if len(r.Rows) == 0 {
		return nil, fmt.Errorf("ratio %s, %s: empty ranking", r.Ratio, r.Metric)
	}
	vals := make(plotter.Values, len(r.Rows))
	names := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		v, err := strconv.ParseFloat(row.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("ratio %s, %s, %s: %w", r.Ratio, r.Metric, row.Implementation, err)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			v = 0
		}
		vals[i] = v
		names[i] = string(row.Implementation)
	}

	p := plot.New()
	h := r.Header()
	p.Title.Text = fmt.Sprintf("%s at ratio %s", h[1], h[0])
	p.Y.Label.Text = "relative to best"
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = blue
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	p.Y.Min = 0
	return p, nil
}

// Chart size.
const (
	Width  = 16 * vg.Centimeter
	Height = 10 * vg.Centimeter
)

// Format returns the image format for file name, from its extension.
// It defaults to png.
func Format(name string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")); ext {
	case "svg", "pdf", "eps", "png", "jpg", "jpeg", "tif", "tiff":
		return ext
	}
	return "png"
}

// Write draws p to w in format.
func Write(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// TriDown is a glyph shaped like a downward-pointing triangle.
type TriDown struct{}

// DrawGlyph implements draw.GlyphDrawer.
func (TriDown) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)})
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Close()
	c.Stroke(p)
}
