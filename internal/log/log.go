// Package log configures structured logging for the CLI. Debug and info
// records are only written when debug output is enabled; warnings and
// errors always reach stderr.
package log

import (
	"io"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// Options configures the logger.
type Options struct {
	// Debug enables debug/info output.
	Debug bool
	// JSONFormat uses JSON output instead of key=value text.
	JSONFormat bool
	// Stderr is the destination (defaults to os.Stderr).
	Stderr io.Writer
}

// Init replaces the package logger and the slog default.
func Init(opts Options) {
	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.JSONFormat {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}

	logger = slog.New(h)
	slog.SetDefault(logger)
}

// Logger returns the configured logger for injection into components.
func Logger() *slog.Logger {
	return logger
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// With returns a logger with additional context.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}
