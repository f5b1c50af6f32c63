// cmd/api/logger.go
package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// parseLevel maps a -log-level value to a slog level, defaulting to info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger returns a colourised human-readable logger in development and a
// JSON logger everywhere else.
func newLogger(cfg serverConfig) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	if cfg.Environment == "development" {
		return newDevelopmentLogger(os.Stderr, level, !isatty.IsTerminal(os.Stderr.Fd()))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func newDevelopmentLogger(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}
