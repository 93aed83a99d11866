package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/clog"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Logger holds logger configuration
type Logger struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"omitempty,oneof=console json auto"`
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("COVIDPLOTS_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("COVIDPLOTS_LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

// Configure builds the logger. Output goes to stderr so that the summary
// table on stdout stays clean.
func (l *Logger) Configure() (*slog.Logger, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}
	return NewLogger(l.level(), os.Stderr, l.Format), nil
}

func (l *Logger) level() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger creates a slog.Logger. With format "auto" a terminal gets
// colored console output and anything else gets JSON.
func NewLogger(level slog.Level, w io.Writer, format string) *slog.Logger {
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "console"
		}
	}

	var handler slog.Handler
	if format == "console" {
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// LogValue returns structured log value
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}
