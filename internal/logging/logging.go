// Package logging builds the slog logger for a session.
//
// Logging is off unless TALKTIMER_DEBUG is set. The TUI owns the terminal, so
// records always go to a file in the session directory, never to stdout:
//
//	TALKTIMER_DEBUG=1 talktimer slides.md
//	tail -f ~/.talktimer/sessions/default/talktimer.log
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const envDebug = "TALKTIMER_DEBUG"

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Level parses a TALKTIMER_DEBUG value. ok is false when logging is disabled.
func Level(v string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off":
		return 0, false
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelDebug, true
	}
}

// Open returns a logger appending to path at the level chosen by
// TALKTIMER_DEBUG, and a func closing the file. With logging disabled the
// logger discards and no file is created.
func Open(path string) (*slog.Logger, func() error, error) {
	level, ok := Level(os.Getenv(envDebug))
	if !ok {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f.Close, nil
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
