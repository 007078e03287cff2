package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"off", 0, false},
		{"1", slog.LevelDebug, true},
		{"true", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
	}
	for _, tt := range tests {
		got, ok := Level(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Fatalf("Level(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestOpen_DisabledCreatesNoFile(t *testing.T) {
	t.Setenv(envDebug, "")
	path := filepath.Join(t.TempDir(), "talktimer.log")

	log, closeFn, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	log.Info("hello")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, stat err = %v", err)
	}
}

func TestOpen_WritesToFile(t *testing.T) {
	t.Setenv(envDebug, "1")
	path := filepath.Join(t.TempDir(), "nested", "talktimer.log")

	log, closeFn, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Debug("countdown started", "minutes", 45)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "countdown started") || !strings.Contains(string(b), "minutes=45") {
		t.Fatalf("unexpected log contents: %q", b)
	}
}
