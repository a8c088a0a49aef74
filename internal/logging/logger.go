// Package logging defines the structured-logging interface used across
// budgetkeeper and its slog and zerolog implementations.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "store opened", "backend", "sqlite", "path", path)
type Logger interface {
	// Debug logs diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported values of the log_format setting.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatZerolog = "zerolog"
	FormatConsole = "console"
)

// New builds a Logger writing to w. text and json use log/slog; zerolog emits
// zerolog JSON and console the zerolog human-readable writer. Unknown formats
// fall back to text.
func New(level, format string, w io.Writer) Logger {
	switch strings.ToLower(format) {
	case FormatZerolog:
		return NewZerologLogger(w, level, false)
	case FormatConsole:
		return NewZerologLogger(w, level, true)
	}

	return newSlogWriter(w, level, strings.EqualFold(format, FormatJSON))
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func parseSlogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
