package config

import (
	"log/slog"

	"github.com/anrid/covid-plots/pkg/plot"
	"github.com/urfave/cli/v3"
)

// Output configures the chart files.
type Output struct {
	Dir    string `validate:"required"`
	Format string `validate:"oneof=svg png"`
	Width  int    `validate:"gte=0"`
	Height int    `validate:"gte=0"`
}

// Flags returns CLI flags for Output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "out-dir",
			Usage:       "Directory the charts are written to",
			Category:    "Output",
			Value:       "docs/plots",
			Sources:     cli.EnvVars("COVIDPLOTS_OUT_DIR"),
			Destination: &o.Dir,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Chart format (svg, png)",
			Category:    "Output",
			Value:       string(plot.SVG),
			Sources:     cli.EnvVars("COVIDPLOTS_FORMAT"),
			Destination: &o.Format,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "Chart width in pixels (0 for default)",
			Category:    "Output",
			Value:       1280,
			Sources:     cli.EnvVars("COVIDPLOTS_WIDTH"),
			Destination: &o.Width,
		},
		&cli.IntFlag{
			Name:        "height",
			Usage:       "Chart height in pixels (0 for default)",
			Category:    "Output",
			Value:       720,
			Sources:     cli.EnvVars("COVIDPLOTS_HEIGHT"),
			Destination: &o.Height,
		},
	}
}

// Emitter returns a chart emitter writing files named <prefix>_<label>.
func (o *Output) Emitter(prefix string) *plot.Emitter {
	return &plot.Emitter{
		Dir:    o.Dir,
		Prefix: prefix,
		Format: plot.Format(o.Format),
		Width:  o.Width,
		Height: o.Height,
	}
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", o.Dir),
		slog.String("format", o.Format),
		slog.Int("width", o.Width),
		slog.Int("height", o.Height),
	)
}
