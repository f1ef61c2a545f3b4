package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/robert-malhotra/go-toelis/toelis"
	"github.com/robert-malhotra/go-toelis/toelis/raster"
	"github.com/robert-malhotra/go-toelis/toelis/timescale"
)

// InfoCmd prints one line per unit of every file.
type InfoCmd struct {
	Files []string `arg:"" help:"toe_lis files to summarize"`
}

func (c *InfoCmd) Run(g *Globals, out io.Writer, logger *slog.Logger) error {
	scale, err := g.scale()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tUNIT\tTRIALS\tEVENTS\tRANGE")
	for _, path := range c.Files {
		units, err := toelis.ReadFile(path, toelis.WithLogger(logger))
		if err != nil {
			return err
		}
		if len(units) == 0 {
			fmt.Fprintf(tw, "%s\t-\t0\t0\tempty\n", path)
			continue
		}
		for i, u := range units {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", path, i, u.Len(), toelis.Count(u), formatRange(u, scale))
		}
	}
	return tw.Flush()
}

func formatRange(u toelis.Unit[float64], scale timescale.Scale) string {
	lo, hi, ok := toelis.Range(u)
	if !ok {
		return "empty"
	}
	lo = timescale.ConvertValue(lo, timescale.Native, scale)
	hi = timescale.ConvertValue(hi, timescale.Native, scale)
	return formatFloat(lo) + " " + formatFloat(hi)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CatCmd copies a file, re-encoding every value.
type CatCmd struct {
	File string `arg:"" help:"Input file"`
	Out  string `short:"o" required:"" help:"Output file (.gz and .xz are compressed)" type:"path"`
	From string `help:"Time scale of the input values" default:"ms"`
	To   string `help:"Time scale of the output values" default:"ms"`
}

func (c *CatCmd) Run(logger *slog.Logger) error {
	from, err := timescale.Parse(c.From)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := timescale.Parse(c.To)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	units, err := toelis.ReadFile(c.File, toelis.WithLogger(logger))
	if err != nil {
		return err
	}
	if from != to {
		for i, u := range units {
			units[i] = timescale.Convert(u, from, to)
		}
	}
	logger.Info("copying units", "in", c.File, "out", c.Out, "units", len(units), "from", from, "to", to)
	return toelis.WriteFile(c.Out, units, toelis.WithLogger(logger))
}

// MergeCmd merges unit i of every input into unit i of the output.
type MergeCmd struct {
	Files []string `arg:"" help:"Input files"`
	Out   string   `short:"o" required:"" help:"Output file" type:"path"`
}

func (c *MergeCmd) Run(logger *slog.Logger) error {
	docs := make([][]toelis.Unit[float64], 0, len(c.Files))
	nUnits, nTrials := 0, 0
	for _, path := range c.Files {
		units, err := toelis.ReadFile(path, toelis.WithLogger(logger))
		if err != nil {
			return err
		}
		docs = append(docs, units)
		nUnits = max(nUnits, len(units))
		for _, u := range units {
			nTrials = max(nTrials, u.Len())
		}
	}

	// Every unit of a toe_lis file has the same number of trials, so each
	// merged unit is padded to the longest input.
	padding := make(toelis.Unit[float64], nTrials)
	merged := make([]toelis.Unit[float64], nUnits)
	for i := range merged {
		inputs := []toelis.Unit[float64]{padding}
		for _, units := range docs {
			if i < len(units) {
				inputs = append(inputs, units[i])
			}
		}
		merged[i] = toelis.Collect(toelis.Merge(inputs...))
	}

	logger.Info("merged files", "inputs", len(c.Files), "units", nUnits, "trials", nTrials)
	return toelis.WriteFile(c.Out, merged, toelis.WithLogger(logger))
}

// ShiftCmd moves the time origin of every trial.
type ShiftCmd struct {
	File string  `arg:"" help:"Input file"`
	By   float64 `required:"" help:"Value subtracted from every event time"`
	Out  string  `short:"o" required:"" help:"Output file" type:"path"`
}

func (c *ShiftCmd) Run(g *Globals, logger *slog.Logger) error {
	scale, err := g.scale()
	if err != nil {
		return err
	}
	by := timescale.ConvertValue(c.By, scale, timescale.Native)

	return transform(c.File, c.Out, logger, func(u toelis.Unit[float64]) toelis.Unit[float64] {
		return toelis.Collect(toelis.Offset(u, by))
	})
}

// WindowCmd keeps the events in [onset, offset].
type WindowCmd struct {
	File   string  `arg:"" help:"Input file"`
	Onset  float64 `required:"" help:"Start of the window, inclusive"`
	Offset float64 `required:"" help:"End of the window, inclusive"`
	Out    string  `short:"o" required:"" help:"Output file" type:"path"`
}

func (c *WindowCmd) Run(g *Globals, logger *slog.Logger) error {
	scale, err := g.scale()
	if err != nil {
		return err
	}
	onset := timescale.ConvertValue(c.Onset, scale, timescale.Native)
	offset := timescale.ConvertValue(c.Offset, scale, timescale.Native)
	if onset > offset {
		return fmt.Errorf("onset %v is after offset %v", c.Onset, c.Offset)
	}

	return transform(c.File, c.Out, logger, func(u toelis.Unit[float64]) toelis.Unit[float64] {
		return toelis.Collect(toelis.Subrange(u, onset, offset))
	})
}

func transform(in, out string, logger *slog.Logger, f func(toelis.Unit[float64]) toelis.Unit[float64]) error {
	units, err := toelis.ReadFile(in, toelis.WithLogger(logger))
	if err != nil {
		return err
	}
	for i, u := range units {
		before := toelis.Count(u)
		units[i] = f(u)
		logger.Debug("transformed unit", "unit", i, "events_in", before, "events_out", toelis.Count(units[i]))
	}
	return toelis.WriteFile(out, units, toelis.WithLogger(logger))
}

// RasterCmd renders one unit as an image or an HTML page.
type RasterCmd struct {
	File  string `arg:"" help:"Input file"`
	Out   string `short:"o" required:"" help:"Output file (.png, .svg, .pdf or .html)" type:"path"`
	Unit  int    `short:"u" default:"0" help:"Index of the unit to plot"`
	Title string `help:"Plot title (defaults to the input file name)"`
}

func (c *RasterCmd) Run(g *Globals, logger *slog.Logger) error {
	scale, err := g.scale()
	if err != nil {
		return err
	}
	u, err := loadUnit(c.File, c.Unit, logger)
	if err != nil {
		return err
	}

	title := c.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
	}
	u = timescale.Convert(u, timescale.Native, scale)

	logger.Info("rendering raster", "file", c.File, "unit", c.Unit, "out", c.Out)
	return raster.Save(c.Out, u,
		raster.WithTitle(title),
		raster.WithXLabel(fmt.Sprintf("Time (%s)", scale)),
	)
}

// PsthCmd prints the event rate of one unit per time bin.
type PsthCmd struct {
	File string  `arg:"" help:"Input file"`
	Bin  float64 `required:"" help:"Bin width"`
	Unit int     `short:"u" default:"0" help:"Index of the unit"`
}

func (c *PsthCmd) Run(g *Globals, out io.Writer, logger *slog.Logger) error {
	scale, err := g.scale()
	if err != nil {
		return err
	}
	u, err := loadUnit(c.File, c.Unit, logger)
	if err != nil {
		return err
	}
	u = timescale.Convert(u, timescale.Native, scale)

	lo, hi, ok := toelis.Range(u)
	if !ok {
		return fmt.Errorf("unit %d of %s has no events", c.Unit, c.File)
	}
	// Bins are half-open, so the last edge has to lie past the latest event.
	edges, err := toelis.Edges(lo, math.Nextafter(hi, math.Inf(1)), c.Bin)
	if err != nil {
		return err
	}
	rate, err := toelis.Rate(u, edges)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "START\tEND\tRATE (1/%s)\n", scale)
	for i, r := range rate {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", formatFloat(edges[i]), formatFloat(edges[i+1]), formatFloat(r))
	}
	return tw.Flush()
}

func loadUnit(path string, index int, logger *slog.Logger) (toelis.Unit[float64], error) {
	units, err := toelis.ReadFile(path, toelis.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(units) {
		return nil, fmt.Errorf("%s has %d units, no unit %d", path, len(units), index)
	}
	return units[index], nil
}
