package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anrid/covid-plots/pkg/plot"
	"github.com/anrid/covid-plots/pkg/source"
	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

var ErrEmptyFeed = goerr.New("regional feed has no rows")

// Regional charts the German case and death counts by age group and state.
type Regional struct {
	Fetcher   *source.Fetcher
	URL       string
	CachePath string
	FromCache bool

	Params stats.RegionalParams
	// District is charted on its own in the charts labelled with DistrictTag.
	District     int
	DistrictName string
	DistrictTag  string

	Emitter *plot.Emitter
	// RowsCSV is an optional path for the flattened rows.
	RowsCSV string
}

// RegionalResult lists what a run produced.
type RegionalResult struct {
	Rows   int
	Charts []string
}

// RegionalChart is one entry of the regional chart plan. Every chart shows
// the rolling sums on the left axis and the all-time sums on the right.
type RegionalChart struct {
	Label  string
	YTitle string
	Query  stats.Query
}

// Charts returns the regional chart plan.
func (r *Regional) Charts() []RegionalChart {
	base := stats.Query{StateID: stats.AnyRegion, DistrictID: stats.AnyRegion}
	byAge := func(m stats.Measure, normalize, district bool) stats.Query {
		q := base
		q.ByAge = true
		q.Measure = m
		q.Normalize = normalize
		if district {
			q.DistrictID = r.District
		}
		return q
	}
	byState := func(m stats.Measure) stats.Query {
		q := base
		q.ByState = true
		q.Measure = m
		return q
	}
	gz := func(label string) string {
		return label + "_" + r.DistrictTag
	}

	return []RegionalChart{
		{"infected_normalized_age", "Infected normalized", byAge(stats.Cases, true, false)},
		{"deaths_normalized_age", "Deaths normalized", byAge(stats.Fatalities, true, false)},
		{gz("deaths_normalized_age"), fmt.Sprintf("Deaths %s normalized", r.DistrictName), byAge(stats.Fatalities, true, true)},
		{gz("infected_normalized_age"), fmt.Sprintf("Infected %s normalized", r.DistrictName), byAge(stats.Cases, true, true)},
		{"infected_age", "Infected", byAge(stats.Cases, false, false)},
		{"deaths_age", "Deaths", byAge(stats.Fatalities, false, false)},
		{gz("deaths_age"), fmt.Sprintf("Deaths %s", r.DistrictName), byAge(stats.Fatalities, false, true)},
		{gz("infected_age"), fmt.Sprintf("Infected %s", r.DistrictName), byAge(stats.Cases, false, true)},
		{"infected", "Infected per state", byState(stats.Cases)},
		{"deaths", "Deaths per state", byState(stats.Fatalities)},
	}
}

func (r *Regional) Run(ctx context.Context) (*RegionalResult, error) {
	logger := ctxlog.From(ctx)

	db, err := openCache(ctx, r.CachePath)
	if err != nil {
		return nil, err
	}
	files, err := source.FetchRegional(ctx, r.Fetcher, db, r.URL, r.FromCache)
	if err != nil {
		return nil, err
	}
	if err := saveCache(ctx, db, r.CachePath); err != nil {
		return nil, err
	}

	rows, err := source.ParseRegional(files)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed regional feed", "pages", len(files), "rows", len(rows))
	if len(rows) == 0 {
		return nil, goerr.Wrap(ErrEmptyFeed, "run regional pipeline", goerr.V("url", r.URL), goerr.V("pages", len(files)))
	}

	if r.RowsCSV != "" {
		if err := writeRows(r.RowsCSV, rows); err != nil {
			return nil, err
		}
		logger.Info("rows written", "path", r.RowsCSV)
	}

	res := &RegionalResult{Rows: len(rows)}
	for _, rc := range r.Charts() {
		c, err := r.chart(rows, rc)
		if err != nil {
			return nil, err
		}
		path, err := r.Emitter.Emit(ctx, c)
		if err != nil {
			if errors.Is(err, plot.ErrNoData) {
				logger.Warn("nothing to draw", "chart", rc.Label)
				continue
			}
			return nil, err
		}
		res.Charts = append(res.Charts, path)
	}

	return res, nil
}

func (r *Regional) chart(rows []stats.Row, rc RegionalChart) (plot.Chart, error) {
	c := plot.Chart{
		Label:   rc.Label,
		Title:   rc.YTitle,
		XTitle:  "Date",
		YTitle:  fmt.Sprintf("%s (%d days)", rc.YTitle, r.Params.Window),
		Y2Title: rc.YTitle + " (all time)",
	}

	for _, mode := range []stats.WindowMode{stats.Rolling, stats.AllTime} {
		q := rc.Query
		q.Window = mode
		series, err := stats.Aggregate(rows, q, r.Params)
		if err != nil {
			return plot.Chart{}, goerr.Wrap(err, "aggregate regional rows", goerr.V("chart", rc.Label))
		}
		for i, s := range series {
			c.Lines = append(c.Lines, plot.Line{
				Name:      s.Name,
				Dates:     s.Dates,
				Values:    s.Values,
				Secondary: mode == stats.AllTime,
				Group:     i,
			})
		}
	}
	return c, nil
}

func writeRows(path string, rows []stats.Row) error {
	fd, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "create rows file", goerr.V("path", path))
	}
	if err := source.WriteRowsCSV(fd, rows); err != nil {
		fd.Close()
		return err
	}
	if err := fd.Close(); err != nil {
		return goerr.Wrap(err, "close rows file", goerr.V("path", path))
	}
	return nil
}
