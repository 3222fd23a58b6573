package logger

import (
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New builds the CLI logger. Logs go to stderr so that command output on
// stdout stays clean.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Logger()

	logger = logger.Level(zerolog.InfoLevel)

	return logger
}

// SetLevel rebuilds the logger at the given level, used once the configured
// level is known.
func SetLevel(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Logger()

	logger = logger.Level(level)

	return logger
}

var Module = fx.Provide(New)
