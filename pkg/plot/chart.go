package plot

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	chart "github.com/wcharczuk/go-chart/v2"
)

var ErrNoData = goerr.New("chart has no drawable series")

// Format is the output file format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case SVG, "":
		return chart.SVG, nil
	case PNG:
		return chart.PNG, nil
	}
	return nil, goerr.New("unknown chart format", goerr.V("format", string(f)))
}

// Line is one named series of a chart.
type Line struct {
	Name      string
	Dates     []time.Time
	Values    []float64
	Secondary bool
	// Group picks the color. Lines of the same group share it.
	Group int
}

// Chart is a line chart with up to two y axes.
type Chart struct {
	Label   string
	Title   string
	XTitle  string
	YTitle  string
	Y2Title string
	Lines   []Line
}

// Emitter writes charts to Dir as <Prefix>_<label>.<format>.
type Emitter struct {
	Dir    string
	Prefix string
	Format Format
	Width  int
	Height int
}

// Path returns the file a chart with the given label is written to.
func (e *Emitter) Path(label string) string {
	format := e.Format
	if format == "" {
		format = SVG
	}
	name := label
	if e.Prefix != "" {
		name = e.Prefix + "_" + label
	}
	return filepath.Join(e.Dir, name+"."+string(format))
}

// Emit renders c and writes it. It returns the written path.
func (e *Emitter) Emit(ctx context.Context, c Chart) (string, error) {
	if c.Label == "" {
		return "", goerr.New("chart label is empty", goerr.V("title", c.Title))
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", goerr.Wrap(err, "create output directory", goerr.V("dir", e.Dir))
	}

	path := e.Path(c.Label)
	fd, err := os.Create(path)
	if err != nil {
		return "", goerr.Wrap(err, "create chart file", goerr.V("path", path))
	}
	if err := Render(fd, c, e.Format, e.Width, e.Height); err != nil {
		fd.Close()
		os.Remove(path)
		return "", goerr.Wrap(err, "render chart", goerr.V("label", c.Label))
	}
	if err := fd.Close(); err != nil {
		return "", goerr.Wrap(err, "close chart file", goerr.V("path", path))
	}

	ctxlog.From(ctx).Info("chart written", "label", c.Label, "path", path, "lines", len(c.Lines))
	return path, nil
}

// Render draws c to w. Zero width or height use the go-chart defaults.
func Render(w io.Writer, c Chart, format Format, width, height int) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	ch, err := build(c)
	if err != nil {
		return err
	}
	ch.Width = width
	ch.Height = height
	if err := ch.Render(provider, w); err != nil {
		return goerr.Wrap(err, "go-chart render")
	}
	return nil
}

func build(c Chart) (chart.Chart, error) {
	var series []chart.Series
	var primary, secondary bounds

	for _, l := range c.Lines {
		if len(l.Dates) != len(l.Values) {
			return chart.Chart{}, goerr.New("line dates and values differ in length",
				goerr.V("line", l.Name), goerr.V("dates", len(l.Dates)), goerr.V("values", len(l.Values)))
		}
		// go-chart needs two points to span an x range.
		if len(l.Values) < 2 {
			continue
		}

		style := chart.Style{
			StrokeColor: chart.GetDefaultColor(l.Group),
			StrokeWidth: 1.5,
		}
		axis := chart.YAxisPrimary
		if l.Secondary {
			axis = chart.YAxisSecondary
			style.StrokeDashArray = []float64{5, 3}
			secondary.add(l.Values)
		} else {
			primary.add(l.Values)
		}

		series = append(series, chart.TimeSeries{
			Name:    l.Name,
			Style:   style,
			YAxis:   axis,
			XValues: l.Dates,
			YValues: l.Values,
		})
	}

	if len(series) == 0 {
		return chart.Chart{}, goerr.Wrap(ErrNoData, "build chart", goerr.V("label", c.Label))
	}

	ch := chart.Chart{
		Title:      c.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           c.XTitle,
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  c.YTitle,
			Range: primary.flatRange(),
		},
		YAxisSecondary: chart.YAxis{
			Name:  c.Y2Title,
			Range: secondary.flatRange(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

type bounds struct {
	min, max float64
	seen     bool
}

func (b *bounds) add(values []float64) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !b.seen || v < b.min {
			b.min = v
		}
		if !b.seen || v > b.max {
			b.max = v
		}
		b.seen = true
	}
}

// flatRange pads constant data, which go-chart refuses to scale. Other data
// keeps the automatic range.
func (b *bounds) flatRange() chart.Range {
	if !b.seen || b.min != b.max {
		return nil
	}
	pad := math.Abs(b.min) * 0.1
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: b.min - pad, Max: b.max + pad}
}
