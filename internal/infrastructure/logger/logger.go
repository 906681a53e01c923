package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/janhq/jan-ask/internal/config"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	once.Do(func() {
		// Default to console output with info level
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		globalLogger = zerolog.New(consoleWriter).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	})
	return globalLogger
}

// New builds the service logger from configuration. Invalid level or format
// values fall back to info/console and are reported on the returned logger.
func New(cfg *config.Config) zerolog.Logger {
	l, err := Build(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		l, _ = Build(os.Stdout, "info", "console")
		l.Warn().Err(err).Str("level", cfg.LogLevel).Str("format", cfg.LogFormat).Msg("invalid log configuration, using defaults")
	}
	l = l.With().Str("service", cfg.ServiceName).Logger()

	once.Do(func() {})
	globalLogger = l
	log.Logger = l
	return l
}

// Build constructs a zerolog logger writing to out based on level and format configuration.
func Build(out io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		writer = zerolog.New(out).With().Timestamp().Logger()
	case "console":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	return writer.Level(lvl), nil
}
