package config

import (
	"log/slog"

	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/urfave/cli/v3"
)

// Regional configures the regional pipeline.
type Regional struct {
	Window       int    `validate:"gt=0"`
	District     int    `validate:"gt=0"`
	DistrictName string `validate:"required"`
	DistrictTag  string `validate:"required,alphanum"`
	RowsCSV      string
}

// Flags returns CLI flags for Regional configuration
func (r *Regional) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "window",
			Usage:       "Width in days of the rolling sums",
			Category:    "Regional",
			Value:       stats.DefaultRegionalParams().Window,
			Sources:     cli.EnvVars("COVIDPLOTS_WINDOW"),
			Destination: &r.Window,
		},
		&cli.IntFlag{
			Name:        "district",
			Usage:       "District id (IdLandkreis) of the district charts",
			Category:    "Regional",
			Value:       9774,
			Sources:     cli.EnvVars("COVIDPLOTS_DISTRICT"),
			Destination: &r.District,
		},
		&cli.StringFlag{
			Name:        "district-name",
			Usage:       "District name used in axis titles",
			Category:    "Regional",
			Value:       "Guenzburg",
			Sources:     cli.EnvVars("COVIDPLOTS_DISTRICT_NAME"),
			Destination: &r.DistrictName,
		},
		&cli.StringFlag{
			Name:        "district-tag",
			Usage:       "Suffix of the district chart labels",
			Category:    "Regional",
			Value:       "gz",
			Sources:     cli.EnvVars("COVIDPLOTS_DISTRICT_TAG"),
			Destination: &r.DistrictTag,
		},
		&cli.StringFlag{
			Name:        "rows-csv",
			Usage:       "Also write the flattened rows as ';' separated CSV to this path",
			Category:    "Output",
			Sources:     cli.EnvVars("COVIDPLOTS_ROWS_CSV"),
			Destination: &r.RowsCSV,
		},
	}
}

// Params returns the aggregation reference data.
func (r *Regional) Params() stats.RegionalParams {
	params := stats.DefaultRegionalParams()
	params.Window = r.Window
	return params
}

// LogValue returns structured log value
func (r Regional) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window", r.Window),
		slog.Int("district", r.District),
		slog.String("district_name", r.DistrictName),
		slog.String("rows_csv", r.RowsCSV),
	)
}
