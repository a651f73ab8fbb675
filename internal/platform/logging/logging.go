// Package logging builds the process-wide slog logger from the environment.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const serviceName = "stock_analysis"

const (
	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"
)

// NewLogger creates a slog.Logger writing to w (stdout when nil) and installs
// it as the default logger. Level and format come from LOG_LEVEL and LOG_FORMAT.
func NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(os.Getenv(envLogLevel), slog.LevelInfo)
	logger := slog.New(newHandler(w, level, os.Getenv(envLogFormat))).With("service", serviceName)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts debug|info|warn|error (or a numeric slog level) to a
// slog.Level, returning fallback for anything else.
func ParseLevel(value string, fallback slog.Level) slog.Level {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		if i, err := strconv.Atoi(value); err == nil {
			return slog.Level(i)
		}
		return fallback
	}
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}
