package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/anrid/covid-plots/pkg/plot"
	"github.com/anrid/covid-plots/pkg/report"
	"github.com/anrid/covid-plots/pkg/source"
	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/davecgh/go-spew/spew"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

var ErrCountryNotInFeed = goerr.New("country has no records in the feed")

// Global charts the per-country statistics of the global time series.
type Global struct {
	Fetcher   *source.Fetcher
	URL       string
	CachePath string
	FromCache bool

	Countries  []string
	Plots      []stats.Plot
	Params     stats.CountryParams
	Population *stats.Population
	// Strict fails on countries that cannot be charted instead of skipping
	// them.
	Strict bool

	Emitter *plot.Emitter
	// Summary receives the console table. Nil disables it.
	Summary      io.Writer
	SortBy       stats.Metric
	WorkbookPath string
}

// GlobalResult lists what a run produced.
type GlobalResult struct {
	Stats   []*stats.CountryStats
	Skipped []string
	Charts  []string
}

func (g *Global) Run(ctx context.Context) (*GlobalResult, error) {
	logger := ctxlog.From(ctx)

	db, err := openCache(ctx, g.CachePath)
	if err != nil {
		return nil, err
	}
	f, err := source.FetchGlobal(ctx, g.Fetcher, db, g.URL, g.FromCache)
	if err != nil {
		return nil, err
	}
	if err := saveCache(ctx, db, g.CachePath); err != nil {
		return nil, err
	}

	records, err := source.ParseGlobal(f)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed global time series", "countries", len(records))

	res := &GlobalResult{}
	for _, country := range g.Countries {
		cs, err := g.calculate(country, records[country])
		if err != nil {
			if g.Strict || !skippable(err) {
				return nil, err
			}
			logger.Warn("skipping country", "country", country, "error", err)
			res.Skipped = append(res.Skipped, country)
			continue
		}
		res.Stats = append(res.Stats, cs)
	}
	if len(res.Stats) == 0 {
		return nil, goerr.New("no country could be charted", goerr.V("countries", g.Countries))
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("derived statistics", "latest", spew.Sdump(latestValues(res.Stats)))
	}

	for _, p := range g.Plots {
		path, err := g.Emitter.Emit(ctx, countryChart(p, res.Stats))
		if err != nil {
			if errors.Is(err, plot.ErrNoData) {
				logger.Warn("nothing to draw", "plot", p.Label())
				continue
			}
			return nil, err
		}
		res.Charts = append(res.Charts, path)
	}

	if g.Summary != nil {
		report.WriteSummary(g.Summary, res.Stats, g.SortBy)
	}
	if g.WorkbookPath != "" {
		if err := report.WriteWorkbook(g.WorkbookPath, res.Stats); err != nil {
			return nil, err
		}
		logger.Info("workbook written", "path", g.WorkbookPath)
	}

	return res, nil
}

func (g *Global) calculate(country string, records []stats.Record) (*stats.CountryStats, error) {
	if len(records) == 0 {
		return nil, goerr.Wrap(ErrCountryNotInFeed, "calculate country statistics", goerr.V("country", country))
	}
	return stats.CalculateCountry(country, records, g.Population, g.Params)
}

func skippable(err error) bool {
	return errors.Is(err, stats.ErrUnknownCountry) ||
		errors.Is(err, stats.ErrInvalidPopulation) ||
		errors.Is(err, ErrCountryNotInFeed)
}

// countryChart overlays one line per country. With a secondary metric each
// country gets a second line of the same color on the right axis.
func countryChart(p stats.Plot, all []*stats.CountryStats) plot.Chart {
	c := plot.Chart{
		Label:  p.Label(),
		Title:  p.Label(),
		XTitle: "Date",
		YTitle: p.Primary().String(),
	}
	secondary, dual := p.Secondary()
	if dual {
		c.Y2Title = secondary.String()
	}

	for i, cs := range all {
		c.Lines = append(c.Lines, plot.Line{
			Name:   cs.Country,
			Dates:  cs.Dates,
			Values: cs.Values(p.Primary()),
			Group:  i,
		})
		if dual {
			c.Lines = append(c.Lines, plot.Line{
				Name:      cs.Country + " " + secondary.String(),
				Dates:     cs.Dates,
				Values:    cs.Values(secondary),
				Secondary: true,
				Group:     i,
			})
		}
	}
	return c
}

func latestValues(all []*stats.CountryStats) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(all))
	for _, cs := range all {
		if cs.Len() == 0 {
			continue
		}
		row := make(map[string]float64)
		for _, m := range stats.Metrics() {
			row[m.String()] = cs.Values(m)[cs.Len()-1]
		}
		out[cs.Country] = row
	}
	return out
}
