package config

import (
	"log/slog"

	"github.com/anrid/covid-plots/pkg/source"
	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// DefaultCountries are the countries charted when none are given.
var DefaultCountries = []string{
	"Austria",
	"Belgium",
	"Brazil",
	"China",
	"Denmark",
	"Egypt",
	"France",
	"Germany",
	"India",
	"Israel",
	"Italy",
	"Korea, South",
	"Poland",
	"Russia",
	"South Africa",
	"Spain",
	"Sweden",
	"Switzerland",
	"US",
	"United Kingdom",
}

// Global configures the global pipeline.
type Global struct {
	Countries []string `validate:"min=1,dive,required"`
	Plots     []string `validate:"dive,required"`
	SortBy    string   `validate:"required"`
	Strict    bool

	RecoveryDays int     `validate:"gt=0"`
	Lethality    float64 `validate:"gt=0,lte=1"`
	DeathWindow  int     `validate:"gt=0"`

	PopulationFile string
	NameColumn     int `validate:"gte=0"`
	ValueColumn    int `validate:"gte=0"`

	WorkbookPath string
}

// Flags returns CLI flags for Global configuration
func (g *Global) Flags() []cli.Flag {
	params := stats.DefaultCountryParams()

	var plots []string
	for _, p := range stats.DefaultPlots() {
		plots = append(plots, plotSpec(p))
	}

	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "country",
			Aliases:     []string{"c"},
			Usage:       "Country to chart, as named in the feed (repeatable or ';' separated)",
			Category:    "Global",
			Value:       DefaultCountries,
			Sources:     cli.EnvVars("COVIDPLOTS_COUNTRIES"),
			Destination: &g.Countries,
		},
		&cli.StringSliceFlag{
			Name:        "plot",
			Usage:       "Chart to draw: a metric or primary+secondary metrics (repeatable or ';' separated)",
			Category:    "Global",
			Value:       plots,
			Sources:     cli.EnvVars("COVIDPLOTS_PLOTS"),
			Destination: &g.Plots,
		},
		&cli.StringFlag{
			Name:        "sort-by",
			Usage:       "Metric the console summary is ranked by",
			Category:    "Global",
			Value:       stats.Deaths100k14d.String(),
			Sources:     cli.EnvVars("COVIDPLOTS_SORT_BY"),
			Destination: &g.SortBy,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Fail on countries missing from the feed or the population table instead of skipping them",
			Category:    "Global",
			Sources:     cli.EnvVars("COVIDPLOTS_STRICT"),
			Destination: &g.Strict,
		},
		&cli.IntFlag{
			Name:        "recovery-days",
			Usage:       "Days after which a confirmed case counts as recovered",
			Category:    "Model",
			Value:       params.RecoveryDays,
			Sources:     cli.EnvVars("COVIDPLOTS_RECOVERY_DAYS"),
			Destination: &g.RecoveryDays,
		},
		&cli.FloatFlag{
			Name:        "lethality",
			Usage:       "Assumed infection fatality rate",
			Category:    "Model",
			Value:       params.Lethality,
			Sources:     cli.EnvVars("COVIDPLOTS_LETHALITY"),
			Destination: &g.Lethality,
		},
		&cli.IntFlag{
			Name:        "death-window",
			Usage:       "Width in days of the windowed death rate",
			Category:    "Model",
			Value:       params.DeathWindow,
			Sources:     cli.EnvVars("COVIDPLOTS_DEATH_WINDOW"),
			Destination: &g.DeathWindow,
		},
		&cli.StringFlag{
			Name:        "population-file",
			Usage:       "Spreadsheet (.xls or .xlsx) with country populations, replaces the built-in table",
			Category:    "Reference",
			Sources:     cli.EnvVars("COVIDPLOTS_POPULATION_FILE"),
			Destination: &g.PopulationFile,
		},
		&cli.IntFlag{
			Name:        "name-column",
			Usage:       "Zero based column of the country name in the population file",
			Category:    "Reference",
			Value:       0,
			Sources:     cli.EnvVars("COVIDPLOTS_NAME_COLUMN"),
			Destination: &g.NameColumn,
		},
		&cli.IntFlag{
			Name:        "value-column",
			Usage:       "Zero based column of the population in the population file",
			Category:    "Reference",
			Value:       1,
			Sources:     cli.EnvVars("COVIDPLOTS_VALUE_COLUMN"),
			Destination: &g.ValueColumn,
		},
		&cli.StringFlag{
			Name:        "xlsx",
			Usage:       "Also export the derived series to this xlsx workbook",
			Category:    "Output",
			Sources:     cli.EnvVars("COVIDPLOTS_XLSX"),
			Destination: &g.WorkbookPath,
		},
	}
}

// Params returns the model constants.
func (g *Global) Params() stats.CountryParams {
	return stats.CountryParams{
		RecoveryDays: g.RecoveryDays,
		Lethality:    g.Lethality,
		DeathWindow:  g.DeathWindow,
	}
}

// ParsePlots parses the chart selection.
func (g *Global) ParsePlots() ([]stats.Plot, error) {
	if len(g.Plots) == 0 {
		return stats.DefaultPlots(), nil
	}
	plots := make([]stats.Plot, 0, len(g.Plots))
	for _, s := range g.Plots {
		p, err := stats.ParsePlot(s)
		if err != nil {
			return nil, goerr.Wrap(err, "parse plot flag")
		}
		plots = append(plots, p)
	}
	return plots, nil
}

// Population returns the population table, read from PopulationFile when
// set.
func (g *Global) Population() (*stats.Population, error) {
	if g.PopulationFile == "" {
		return stats.CountryPopulation(), nil
	}
	f, err := source.OpenFile(g.PopulationFile)
	if err != nil {
		return nil, err
	}
	return source.LoadPopulation(f, g.NameColumn, g.ValueColumn)
}

// LogValue returns structured log value
func (g Global) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("countries", g.Countries),
		slog.Any("plots", g.Plots),
		slog.Bool("strict", g.Strict),
		slog.Int("recovery_days", g.RecoveryDays),
		slog.Float64("lethality", g.Lethality),
		slog.Int("death_window", g.DeathWindow),
		slog.String("population_file", g.PopulationFile),
		slog.String("xlsx", g.WorkbookPath),
	)
}

func plotSpec(p stats.Plot) string {
	s := p.Primary().String()
	if m, ok := p.Secondary(); ok {
		s += "+" + m.String()
	}
	return s
}
