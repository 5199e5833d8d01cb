// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

func init() {
	Logger = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = Logger
}

// Init reconfigures the global logger with the given level and, optionally,
// human-readable console output.
func Init(level string, pretty bool) {
	var zlLevel zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		zlLevel = zerolog.DebugLevel
	case "info":
		zlLevel = zerolog.InfoLevel
	case "warn", "warning":
		zlLevel = zerolog.WarnLevel
	case "error":
		zlLevel = zerolog.ErrorLevel
	default:
		zlLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(zlLevel)

	var output io.Writer = os.Stderr
	if pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	Logger = zerolog.New(output).
		With().
		Timestamp().
		Logger()
	log.Logger = Logger
}

// WithComponent returns a logger with a component field set.
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}
