// Command toelis inspects and transforms toe_lis spike-time files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robert-malhotra/go-toelis/internal/logging"
	"github.com/robert-malhotra/go-toelis/internal/version"
	"github.com/robert-malhotra/go-toelis/toelis/timescale"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string          `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" env:"TOELIS_LOG_LEVEL"`
	LogFormat string          `name:"log-format" help:"Log format (text, json)" default:"text" env:"TOELIS_LOG_FORMAT"`
	Scale     string          `help:"Time scale of values given and printed on the command line (ms, s, us)" default:"ms" env:"TOELIS_SCALE"`
	Config    kong.ConfigFlag `help:"Load flag defaults from a JSON file"`
}

// CLI defines the command-line interface for toelis.
type CLI struct {
	Globals

	Info    InfoCmd    `cmd:"" help:"Summarize the units of toe_lis files"`
	Cat     CatCmd     `cmd:"" help:"Re-encode a file, optionally compressing or rescaling it"`
	Merge   MergeCmd   `cmd:"" help:"Merge files unit by unit, trial by trial"`
	Shift   ShiftCmd   `cmd:"" help:"Subtract a value from every event time"`
	Window  WindowCmd  `cmd:"" help:"Keep only events inside a time window"`
	Raster  RasterCmd  `cmd:"" help:"Render a raster plot of one unit"`
	Psth    PsthCmd    `cmd:"" help:"Print the peri-stimulus time histogram of one unit"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func (g *Globals) logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.Init(w, level, format), nil
}

func (g *Globals) scale() (timescale.Scale, error) {
	return timescale.Parse(g.Scale)
}

// VersionCmd prints build metadata.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintf(out, "toelis %s\n", version.String())
	return err
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("toelis"),
		kong.Description("Inspect and transform toe_lis spike-time files"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(kong.JSON, "~/.config/toelis.json"),
		kong.BindTo(stdout, (*io.Writer)(nil)),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := cli.logger(stderr)
	if err != nil {
		return err
	}
	return ctx.Run(&cli.Globals, logger)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "toelis: %v\n", err)
		os.Exit(1)
	}
}
