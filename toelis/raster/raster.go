// Package raster draws spike rasters from toe_lis units.
//
// A raster places every event of a unit at (event time, trial index), as
// produced by toelis.Rasterize. Static images are drawn with gonum/plot and
// interactive pages with go-echarts.
package raster

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/robert-malhotra/go-toelis/toelis"
)

// Option configures a raster.
type Option func(*config)

type config struct {
	title  string
	xLabel string
	width  vg.Length
	height vg.Length
	marker vg.Length
	color  color.Color
}

func defaultConfig() *config {
	return &config{
		title:  "Raster",
		xLabel: "Time (ms)",
		width:  8 * vg.Inch,
		height: 4 * vg.Inch,
		marker: vg.Points(1.5),
		color:  color.Black,
	}
}

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithXLabel sets the time axis label.
func WithXLabel(label string) Option {
	return func(c *config) {
		c.xLabel = label
	}
}

// WithSize sets the output size of saved images. Non-positive values are ignored.
func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithMarker sets the radius of each event marker.
func WithMarker(radius vg.Length) Option {
	return func(c *config) {
		if radius > 0 {
			c.marker = radius
		}
	}
}

// WithColor sets the marker color.
func WithColor(col color.Color) Option {
	return func(c *config) {
		if col != nil {
			c.color = col
		}
	}
}

func newConfig(options []Option) *config {
	c := defaultConfig()
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Points returns one point per event of x with X the event time and Y the
// trial index.
func Points(x toelis.Unit[float64]) plotter.XYs {
	pts := make(plotter.XYs, 0, toelis.Count(x))
	for trial, v := range toelis.Rasterize(x) {
		pts = append(pts, plotter.XY{X: v, Y: float64(trial)})
	}
	return pts
}

// Plot builds a raster plot of x.
func Plot(x toelis.Unit[float64], options ...Option) (*plot.Plot, error) {
	c := newConfig(options)

	p := plot.New()
	p.Title.Text = c.title
	p.X.Label.Text = c.xLabel
	p.Y.Label.Text = "Trial"
	p.Y.Min = -0.5
	p.Y.Max = float64(max(x.Len(), 1)) - 0.5

	pts := Points(x)
	if len(pts) == 0 {
		return p, nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("creating scatter: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = c.marker
	s.GlyphStyle.Color = c.color
	p.Add(s)
	return p, nil
}

// Save writes a raster of x to path. The format follows the extension:
// ".html" produces an interactive page, anything gonum/plot understands
// (".png", ".svg", ".pdf", ...) produces a static image.
func Save(path string, x toelis.Unit[float64], options ...Option) error {
	if strings.EqualFold(filepath.Ext(path), ".html") {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		if err := RenderHTML(f, x, options...); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	c := newConfig(options)
	p, err := Plot(x, options...)
	if err != nil {
		return err
	}
	if err := p.Save(c.width, c.height, path); err != nil {
		return fmt.Errorf("saving raster: %w", err)
	}
	return nil
}

// RenderHTML writes an interactive raster of x as an HTML page.
func RenderHTML(w io.Writer, x toelis.Unit[float64], options ...Option) error {
	c := newConfig(options)

	data := make([]opts.ScatterData, 0, toelis.Count(x))
	for trial, v := range toelis.Rasterize(x) {
		data = append(data, opts.ScatterData{Value: []interface{}{v, trial}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: c.title, Subtitle: fmt.Sprintf("trials=%d events=%d", x.Len(), len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: c.xLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Trial", NameLocation: "middle", NameGap: 30, Min: -1, Max: x.Len()}),
	)
	scatter.AddSeries("events", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("rendering raster page: %w", err)
	}
	return nil
}
