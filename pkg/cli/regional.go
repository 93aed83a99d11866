package cli

import (
	"context"
	"log/slog"

	"github.com/anrid/covid-plots/pkg/cli/config"
	"github.com/anrid/covid-plots/pkg/pipeline"
	"github.com/anrid/covid-plots/pkg/source"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdRegional() *cli.Command {
	var (
		sourceCfg   config.Source
		outputCfg   config.Output
		regionalCfg config.Regional
	)

	flags := joinFlags(
		sourceCfg.Flags(source.RegionalURL, "raw_rki_data.db"),
		outputCfg.Flags(),
		regionalCfg.Flags(),
	)

	return &cli.Command{
		Name:  "covid-regional",
		Usage: "Chart German COVID-19 cases and deaths by age group and state",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validate(&sourceCfg, &outputCfg, &regionalCfg); err != nil {
				return err
			}

			logger := ctxlog.From(ctx)
			logger.Info("Starting regional pipeline",
				slog.Any("source", sourceCfg),
				slog.Any("output", outputCfg),
				slog.Any("regional", regionalCfg),
			)

			p := &pipeline.Regional{
				Fetcher:      sourceCfg.Fetcher(),
				URL:          sourceCfg.URL,
				CachePath:    sourceCfg.CachePath,
				FromCache:    sourceCfg.FromCache,
				Params:       regionalCfg.Params(),
				District:     regionalCfg.District,
				DistrictName: regionalCfg.DistrictName,
				DistrictTag:  regionalCfg.DistrictTag,
				Emitter:      outputCfg.Emitter("rki"),
				RowsCSV:      regionalCfg.RowsCSV,
			}
			res, err := p.Run(ctx)
			if err != nil {
				return err
			}

			logger.Info("Regional pipeline done", "rows", res.Rows, "charts", len(res.Charts))
			return nil
		},
	}
}
