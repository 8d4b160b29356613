// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultseries

import (
	"errors"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/rtsearch/rteval/resultfmt"
	"github.com/rtsearch/rteval/resultmath"
	"github.com/rtsearch/rteval/resultproc"
)

// A Style is how one algorithm is drawn.
type Style struct {
	Color  color.Color
	Marker string // matplotlib-style marker code, see Glyph
}

// ChartOptions control chart layout. The zero value draws a linear
// 13x10 inch chart at 100 dpi with algorithms in order of appearance.
type ChartOptions struct {
	Title, XLabel, YLabel string

	LogScale bool

	// Order lists the algorithms to draw, in legend order. If nil,
	// all algorithms are drawn in order of first appearance.
	Order []string

	// Params lists the x categories of point charts. If nil, the
	// parameter values of the data are used.
	Params []resultfmt.Param

	// Styles maps algorithm names to styles. Unstyled algorithms
	// get a color from a fixed palette and a circle.
	Styles map[string]Style

	Width, Height vg.Length
	DPI           int
}

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("no data to chart")

const (
	pointRad = 4
	dodge    = 0.1
)

// PointChart plots, for each algorithm and each parameter value, the
// mean of the valid values of dt with a 95% confidence interval.
// Parameter values are categories, so algorithms are dodged around
// each category. With LogScale, non-positive means are omitted.
func PointChart(dt *resultmath.DerivedTable, opts ChartOptions) (*plot.Plot, error) {
	params := opts.Params
	if params == nil {
		var recs []resultfmt.Record
		for _, r := range dt.Valid() {
			recs = append(recs, r.Record)
		}
		params = resultfmt.NewTable(recs).Params()
	}
	algs := opts.Order
	if algs == nil {
		algs = algorithms(dt)
	}

	type key struct {
		alg   string
		param resultfmt.Param
	}
	vals := make(map[key][]float64)
	for _, r := range dt.Valid() {
		k := key{r.Algorithm, r.Param}
		vals[k] = append(vals[k], r.Value)
	}

	pl := newPlot(opts)
	drawn := 0
	for ai, alg := range algs {
		var pts errPoints
		off := (float64(ai) - float64(len(algs)-1)/2) * dodge
		for pi, p := range params {
			xs := vals[key{alg, p}]
			if len(xs) == 0 {
				continue
			}
			mean := stats.Mean(xs)
			if opts.LogScale && !(mean > 0) {
				continue
			}
			ci := 0.0
			if len(xs) > 1 {
				ci = 1.96 * stats.StdDev(xs) / math.Sqrt(float64(len(xs)))
			}
			low := ci
			if opts.LogScale && mean-low <= 0 {
				low = 0
			}
			pts.XYs = append(pts.XYs, plotter.XY{X: float64(pi) + off, Y: mean})
			pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{low, ci})
		}
		if len(pts.XYs) == 0 {
			continue
		}
		sty := styleOf(opts, alg, ai)

		sc, err := plotter.NewScatter(pts.XYs)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: sty.Color, Radius: vg.Points(pointRad), Shape: Glyph(sty.Marker)}
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Color = sty.Color
		bars.LineStyle.Width = vg.Points(1.5)

		pl.Add(bars, sc)
		pl.Legend.Add(alg, sc)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoData
	}

	labels := make([]string, len(params))
	for i, p := range params {
		labels[i] = p.String()
	}
	pl.NominalX(labels...)
	return pl, nil
}

// CoverageChart plots the number of solved instances of each algorithm
// against the numeric parameter value, one line per algorithm. If
// opts.Order is nil, algorithms are ordered by decreasing geometric
// mean of their counts. The y axis is always linear.
func CoverageChart(cov *resultproc.Coverage, opts ChartOptions) (*plot.Plot, error) {
	opts.LogScale = false
	params := cov.Params()
	if len(params) == 0 {
		return nil, ErrNoData
	}
	algs := opts.Order
	if algs == nil {
		algs = resultmath.HueOrder(resultmath.CoverageTable(cov))
	}

	pl := newPlot(opts)
	for ai, alg := range algs {
		xys := make(plotter.XYs, len(params))
		for i, n := range cov.Series(alg) {
			xys[i] = plotter.XY{X: params[i].Float(), Y: float64(n)}
		}
		line, sc, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		sty := styleOf(opts, alg, ai)
		line.LineStyle.Color = sty.Color
		line.LineStyle.Width = vg.Points(2)
		sc.GlyphStyle = draw.GlyphStyle{Color: sty.Color, Radius: vg.Points(pointRad), Shape: Glyph(sty.Marker)}
		pl.Add(line, sc)
		pl.Legend.Add(alg, line, sc)
	}
	pl.Y.Min = 0
	return pl, nil
}

// WritePNG renders pl as a PNG image to w.
func WritePNG(w io.Writer, pl *plot.Plot, opts ChartOptions) error {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 13 * vg.Inch
	}
	if height == 0 {
		height = 10 * vg.Inch
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = 100
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

func newPlot(opts ChartOptions) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = opts.Title
	pl.Title.TextStyle.Font.Size = 18
	pl.X.Label.Text = opts.XLabel
	pl.Y.Label.Text = opts.YLabel
	pl.X.Label.TextStyle.Font.Size = 16
	pl.Y.Label.TextStyle.Font.Size = 16
	pl.X.Tick.Label.Font.Size = 12
	pl.Y.Tick.Label.Font.Size = 12
	if opts.LogScale {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{}
	}
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)
	return pl
}

// errPoints is a set of points with vertical error bars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

func algorithms(dt *resultmath.DerivedTable) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range dt.Rows {
		if !seen[r.Algorithm] {
			seen[r.Algorithm] = true
			out = append(out, r.Algorithm)
		}
	}
	return out
}

// palette is used for algorithms without a configured color.
var palette = []color.Color{
	color.NRGBA{0x66, 0xc2, 0xa5, 0xff},
	color.NRGBA{0xfc, 0x8d, 0x62, 0xff},
	color.NRGBA{0x8d, 0xa0, 0xcb, 0xff},
	color.NRGBA{0xe7, 0x8a, 0xc3, 0xff},
	color.NRGBA{0xa6, 0xd8, 0x54, 0xff},
	color.NRGBA{0xff, 0xd9, 0x2f, 0xff},
	color.NRGBA{0xe5, 0xc4, 0x94, 0xff},
	color.NRGBA{0xb3, 0xb3, 0xb3, 0xff},
}

func styleOf(opts ChartOptions, alg string, i int) Style {
	sty := opts.Styles[alg]
	if sty.Color == nil {
		sty.Color = palette[i%len(palette)]
	}
	return sty
}

// Glyph returns the glyph for a matplotlib-style marker code.
// Unknown codes draw a circle.
func Glyph(marker string) draw.GlyphDrawer {
	switch marker {
	case "v", "^", "<", ">":
		return draw.TriangleGlyph{}
	case "s", "D":
		return draw.BoxGlyph{}
	case "p", "h":
		return draw.RingGlyph{}
	case "X", "x":
		return draw.CrossGlyph{}
	case "+":
		return draw.PlusGlyph{}
	case "P":
		return draw.PyramidGlyph{}
	}
	return draw.CircleGlyph{}
}
