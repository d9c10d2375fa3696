// Package logging sets up the debug/perf log file.
//
// Logs go to ~/.tmux-easyjump/easyjump.log with size-based rotation. With
// neither debug nor perf enabled the logger writes to io.Discard, so the
// common path performs zero log I/O.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	// Debug enables command and match tracing.
	Debug bool
	// Perf enables phase timing lines.
	Perf bool
	// Dir overrides the log directory (default ~/.tmux-easyjump).
	Dir string
}

// New builds the logger for one run. The returned close function flushes
// the rotated file writer; it is safe to call on every exit path.
func New(cfg Config) (*slog.Logger, func()) {
	if !cfg.Debug && !cfg.Perf {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}

	dir := cfg.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}
		}
		dir = filepath.Join(home, ".tmux-easyjump")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "easyjump.log"),
		MaxSize:    5, // MB
		MaxBackups: 2,
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = w.Close() }
}
