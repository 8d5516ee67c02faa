// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger. It discards everything until Init is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Level slog.Level // minimum level
	File  string     // JSON log file; empty logs text to Stderr
	JSON  bool       // JSON output on Stderr when File is empty
}

// Init replaces L according to opts. The returned function closes the log
// file, if one was opened.
func Init(opts Options) (func() error, error) {
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.File == "" {
		if opts.JSON {
			L = slog.New(slog.NewJSONHandler(os.Stderr, hopts))
		} else {
			L = slog.New(slog.NewTextHandler(os.Stderr, hopts))
		}
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	L = slog.New(slog.NewJSONHandler(f, hopts))
	return f.Close, nil
}

// Discard restores the silent default.
func Discard() { L = slog.New(slog.NewTextHandler(io.Discard, nil)) }

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
