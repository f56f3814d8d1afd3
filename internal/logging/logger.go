package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/edvin/snowguard/internal/config"
)

// NewLogger creates a structured zerolog.Logger writing JSON to stdout.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return New(os.Stdout, cfg)
}

// New creates a logger writing to w, tagged with the service name from cfg.
// An unparsable level falls back to info.
func New(w io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()

	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}

	logger := ctx.Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}

// NewConsole creates a human-readable logger for the CLI, writing to stderr.
func NewConsole(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Logger().Level(level)
}
