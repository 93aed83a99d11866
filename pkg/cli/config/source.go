package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anrid/covid-plots/pkg/source"
	"github.com/urfave/cli/v3"
)

// Source configures where raw data comes from and where it is cached.
type Source struct {
	URL       string        `validate:"required,url"`
	CachePath string        `validate:"required"`
	FromCache bool
	Interval  time.Duration `validate:"gte=0"`
	Timeout   time.Duration `validate:"gt=0"`
}

// Flags returns CLI flags for Source configuration. The defaults differ per
// feed.
func (s *Source) Flags(defaultURL, defaultCache string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Feed URL",
			Category:    "Source",
			Value:       defaultURL,
			Sources:     cli.EnvVars("COVIDPLOTS_URL"),
			Destination: &s.URL,
		},
		&cli.StringFlag{
			Name:        "cache",
			Usage:       "Path of the raw data cache (snappy compressed)",
			Category:    "Source",
			Value:       defaultCache,
			Sources:     cli.EnvVars("COVIDPLOTS_CACHE"),
			Destination: &s.CachePath,
		},
		&cli.BoolFlag{
			Name:        "from-cache",
			Usage:       "Use cached raw data instead of downloading it",
			Category:    "Source",
			Sources:     cli.EnvVars("COVIDPLOTS_FROM_CACHE"),
			Destination: &s.FromCache,
		},
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Minimum pause between two requests",
			Category:    "Source",
			Value:       source.DefaultInterval,
			Sources:     cli.EnvVars("COVIDPLOTS_INTERVAL"),
			Destination: &s.Interval,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "HTTP request timeout",
			Category:    "Source",
			Value:       2 * time.Minute,
			Sources:     cli.EnvVars("COVIDPLOTS_TIMEOUT"),
			Destination: &s.Timeout,
		},
	}
}

// Fetcher builds the rate limited HTTP fetcher.
func (s *Source) Fetcher() *source.Fetcher {
	return source.NewFetcher(&http.Client{Timeout: s.Timeout}, s.Interval)
}

// LogValue returns structured log value
func (s Source) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", s.URL),
		slog.String("cache", s.CachePath),
		slog.Bool("from_cache", s.FromCache),
		slog.Duration("interval", s.Interval),
	)
}
