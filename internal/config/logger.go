package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// consoleTimeFormat is the timestamp layout for human-readable console
// output. JSON output keeps zerolog's default unix timestamps.
const consoleTimeFormat = time.RFC3339

// NewLogger builds the root logger from the logging configuration. The
// console format is meant for local development; anything else emits JSON
// lines.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: consoleTimeFormat,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// parseLevel maps a configured level name onto zerolog's levels. Unknown
// names fall back to info rather than failing startup.
func parseLevel(raw string) zerolog.Level {
	switch raw {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
