package cli

import (
	"context"
	"log/slog"

	"github.com/anrid/covid-plots/pkg/cli/config"
	"github.com/anrid/covid-plots/pkg/pipeline"
	"github.com/anrid/covid-plots/pkg/source"
	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdGlobal() *cli.Command {
	var (
		sourceCfg config.Source
		outputCfg config.Output
		globalCfg config.Global
	)

	flags := joinFlags(
		sourceCfg.Flags(source.GlobalURL, "raw_data.db"),
		outputCfg.Flags(),
		globalCfg.Flags(),
	)

	return &cli.Command{
		Name:  "covid-global",
		Usage: "Chart per-country statistics of the global COVID-19 time series",
		Flags: flags,

		// Country names contain commas.
		SliceFlagSeparator: ";",

		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validate(&sourceCfg, &outputCfg, &globalCfg); err != nil {
				return err
			}

			logger := ctxlog.From(ctx)
			logger.Info("Starting global pipeline",
				slog.Any("source", sourceCfg),
				slog.Any("output", outputCfg),
				slog.Any("global", globalCfg),
			)

			plots, err := globalCfg.ParsePlots()
			if err != nil {
				return err
			}
			sortBy, err := stats.ParseMetric(globalCfg.SortBy)
			if err != nil {
				return err
			}
			pop, err := globalCfg.Population()
			if err != nil {
				return err
			}

			p := &pipeline.Global{
				Fetcher:      sourceCfg.Fetcher(),
				URL:          sourceCfg.URL,
				CachePath:    sourceCfg.CachePath,
				FromCache:    sourceCfg.FromCache,
				Countries:    globalCfg.Countries,
				Plots:        plots,
				Params:       globalCfg.Params(),
				Population:   pop,
				Strict:       globalCfg.Strict,
				Emitter:      outputCfg.Emitter("jh"),
				Summary:      c.Root().Writer,
				SortBy:       sortBy,
				WorkbookPath: globalCfg.WorkbookPath,
			}
			res, err := p.Run(ctx)
			if err != nil {
				return err
			}

			logger.Info("Global pipeline done",
				"countries", len(res.Stats),
				"skipped", res.Skipped,
				"charts", len(res.Charts),
			)
			return nil
		},
	}
}
