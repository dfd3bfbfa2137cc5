// Package logging builds the structured logger used by the server shell.
// Library packages under pkg/verba never log; they return errors.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the logging surface handed to the HTTP shell. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// New returns a JSON logger on stderr at the given level. Unknown level
// names fall back to info.
func New(level string) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
