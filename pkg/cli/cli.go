package cli

import (
	"context"
	"log/slog"

	"github.com/anrid/covid-plots/pkg/cli/config"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// RunGlobal runs the global pipeline command.
func RunGlobal(ctx context.Context, args []string) error {
	return run(ctx, cmdGlobal(), args)
}

// RunRegional runs the regional pipeline command.
func RunRegional(ctx context.Context, args []string) error {
	return run(ctx, cmdRegional(), args)
}

// run adds the logging flags to cmd and executes it. Failures are logged
// before they are returned.
func run(ctx context.Context, cmd *cli.Command, args []string) error {
	var loggerCfg config.Logger

	cmd.Flags = joinFlags(loggerCfg.Flags(), cmd.Flags)
	cmd.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		logger, err := loggerCfg.Configure()
		if err != nil {
			return nil, err
		}

		slog.SetDefault(logger)
		ctx = ctxlog.With(ctx, logger)
		return ctx, nil
	}

	if err := cmd.Run(ctx, args); err != nil {
		slog.Default().Error("command failed", "command", cmd.Name, "error", err)
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

func validate(cfgs ...any) error {
	for _, cfg := range cfgs {
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	return nil
}
