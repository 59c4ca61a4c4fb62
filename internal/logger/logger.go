// Package logger builds the service's zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"biliredirect/internal/config"
)

// New creates a zerolog.Logger configured for the service. Production
// logs are JSON; everything else goes through the console writer.
func New(cfg *config.Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := parseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	out := w
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger().
		Level(level)
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
