package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level is a logging threshold.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Config selects the logger's level, format, and output.
type Config struct {
	Level  Level
	Pretty bool
	Output io.Writer
}

// Logger is the engine's structured logger, used for backend-selection
// decisions, rescale events, and numerical faults.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger from cfg, defaulting to stderr/JSON/info.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		zl = zl.Level(zerolog.DebugLevel)
	case LevelWarn:
		zl = zl.Level(zerolog.WarnLevel)
	case LevelError:
		zl = zl.Level(zerolog.ErrorLevel)
	default:
		zl = zl.Level(zerolog.InfoLevel)
	}
	return &Logger{zl: zl}
}

// Nop returns a Logger that discards every event, for callers that do
// not want logging overhead (e.g. benchmarks).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// BackendSelected logs the outcome of a registry create call walking the
// backend chain.
func (l *Logger) BackendSelected(handle int, backendName string, resourceIndex int) {
	l.zl.Info().
		Int("handle", handle).
		Str("backend", backendName).
		Int("resource", resourceIndex).
		Msg("backend selected")
}

// RescaleApplied logs one operation's rescale outcome.
func (l *Logger) RescaleApplied(handle, dest, pattern int, logScale float64) {
	l.zl.Debug().
		Int("handle", handle).
		Int("dest", dest).
		Int("pattern", pattern).
		Float64("log_scale", logScale).
		Msg("rescale applied")
}

// NumericalFault logs a non-finite or negative partial surfaced from the
// pruning kernel.
func (l *Logger) NumericalFault(handle, opIndex, pattern int, err error) {
	l.zl.Warn().
		Int("handle", handle).
		Int("op", opIndex).
		Int("pattern", pattern).
		Err(err).
		Msg("numerical fault")
}

// Error logs an arbitrary operational error with a handle for context.
func (l *Logger) Error(handle int, msg string, err error) {
	l.zl.Error().Int("handle", handle).Err(err).Msg(msg)
}

// With returns a child Logger annotated with an extra integer field,
// useful for tagging every subsequent event from one instance.
func (l *Logger) With(key string, value int) *Logger {
	return &Logger{zl: l.zl.With().Int(key, value).Logger()}
}
