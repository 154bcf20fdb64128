// Package logger wraps log/slog for the validation engine. Components take
// the small Interface so tests can silence them; the CLI picks the level from
// a flag via ParseLevel.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Interface is the logging surface the engine components depend on.
type Interface interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Logger implements Interface on top of slog.
type Logger struct {
	logger *slog.Logger
}

// New returns a logger writing text to stderr at info level.
func New() *Logger {
	return NewWithLevel(slog.LevelInfo)
}

// NewWithLevel returns a stderr logger at the given level.
func NewWithLevel(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{logger: slog.New(handler)}
}

// Nop returns a logger that discards everything. Used by tests and by callers
// embedding the engine behind their own logging.
func Nop() *Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return &Logger{logger: slog.New(handler)}
}

// Component returns a child logger carrying a component attribute, so the
// validator and individual checkers are distinguishable in shared output.
func (l *Logger) Component(name string) *Logger {
	return &Logger{logger: l.logger.With("component", name)}
}

func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Slog returns the underlying slog logger for libraries that want one.
func (l *Logger) Slog() *slog.Logger { return l.logger }

// ParseLevel maps a flag value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Errorf("unknown log level %q", s)
	}
}

// Err builds a structured error attribute.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

// Stack builds a structured stack attribute.
func Stack(stack string) slog.Attr {
	return slog.String("stack", stack)
}
