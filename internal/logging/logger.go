// Package logging wraps zerolog behind a small global surface so every
// package logs with the same configuration.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. Packages either use it directly via the
// level helpers below or derive a request-scoped child with FromContext.
var Logger = log.Logger

// Config controls log level and output format.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "pretty"
}

// Init configures the global logger. Call once at startup.
func Init(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = Logger
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event { return Logger.Debug() }

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event { return Logger.Info() }

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event { return Logger.Warn() }

// Error starts an error-level event on the global logger.
func Error() *zerolog.Event { return Logger.Error() }

// Fatal starts a fatal-level event; the program exits after logging.
func Fatal() *zerolog.Event { return Logger.Fatal() }

// WithContext returns a context carrying the global logger, typically with
// request-scoped fields already attached.
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or the global logger when
// none is attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &Logger
	}
	return l
}
