// Package logging builds the process-wide logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Debug enables debug-level records, including per-request transport
	// diagnostics.
	Debug bool
	// File, when set, mirrors log output to a size-rotated file.
	File string
	// MaxSizeMB caps the rotated file size. Zero means 10 MB.
	MaxSizeMB int
}

// New returns a text logger writing to stderr and, when configured, to a
// rotating log file.
func New(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
