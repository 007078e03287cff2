package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSessionDir_DefaultsUnderConfigDir(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TALKTIMER_CONFIG_DIR", cfgDir)

	dir, err := SessionDir("keynote")
	if err != nil {
		t.Fatalf("SessionDir: %v", err)
	}
	if want := filepath.Join(cfgDir, "sessions", "keynote"); dir != want {
		t.Fatalf("expected %q, got %q", want, dir)
	}
}

func TestSessionDir_UsesRegistryWhenPresent(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TALKTIMER_CONFIG_DIR", cfgDir)

	path := filepath.Join(t.TempDir(), "conf-2026")
	cfg := &GlobalConfig{Sessions: map[string]SessionRef{"conf": {Path: path}}}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	dir, err := SessionDir("conf")
	if err != nil {
		t.Fatalf("SessionDir: %v", err)
	}
	if dir != path {
		t.Fatalf("expected %q, got %q", path, dir)
	}
}

func TestNormalizeSessionName(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "  ", "a/b", `a\b`, "..", "."} {
		if _, err := NormalizeSessionName(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	got, err := NormalizeSessionName("  talk ")
	if err != nil || got != "talk" {
		t.Fatalf("NormalizeSessionName = %q, %v", got, err)
	}
}

func TestListSessions_IncludesRegistryAndDirs(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TALKTIMER_CONFIG_DIR", cfgDir)

	if err := os.MkdirAll(filepath.Join(cfgDir, "sessions", "default"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := &GlobalConfig{Sessions: map[string]SessionRef{"conf": {Path: "/tmp/conf"}}}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := ListSessions()
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(got) != 2 || got[0] != "conf" || got[1] != "default" {
		t.Fatalf("unexpected sessions: %#v", got)
	}
}

func TestSaveConfig_KeepsBackupOfPrevious(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TALKTIMER_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{CurrentSession: "first"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if err := SaveConfig(&GlobalConfig{CurrentSession: "second"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	var prev GlobalConfig
	if err := json.Unmarshal(b, &prev); err != nil {
		t.Fatalf("backup is not valid json: %v", err)
	}
	if prev.CurrentSession != "first" {
		t.Fatalf("backup holds %q, want first", prev.CurrentSession)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CurrentSession != "second" {
		t.Fatalf("current session = %q, want second", cfg.CurrentSession)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TALKTIMER_CONFIG_DIR", cfgDir)

	const n = 32
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg := &GlobalConfig{CurrentSession: fmt.Sprintf("s-%d", i)}
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	if _, err := LoadConfig(); err != nil {
		t.Fatalf("config corrupted after concurrent writes: %v", err)
	}
}
