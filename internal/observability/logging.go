// Package observability provides logging, metrics, and tracing.
package observability

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the default structured logger for the application.
var Logger *slog.Logger

func init() {
	Logger = NewLogger("info")
}

// NewLogger builds a JSON slog logger at the given level name. Unknown level
// names fall back to info.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

// SetDefault replaces the package logger, e.g. after configuration is loaded.
func SetDefault(l *slog.Logger) {
	if l != nil {
		Logger = l
	}
}
