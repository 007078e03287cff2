package store

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSession is used when neither a flag nor the config names one.
const DefaultSession = "default"

// Store is a session directory. It holds the timer state database, the TUI
// state file and the debug log.
type Store struct {
	Dir string
}

// SessionDir resolves a session name to its directory.
func SessionDir(name string) (string, error) {
	name, err := NormalizeSessionName(name)
	if err != nil {
		return "", err
	}

	if cfg, err := LoadConfig(); err == nil && cfg.Sessions != nil {
		if ref, ok := cfg.Sessions[name]; ok && strings.TrimSpace(ref.Path) != "" {
			return filepath.Clean(ref.Path), nil
		}
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// LogPath is where the debug log of this session is written.
func (s Store) LogPath() string {
	return filepath.Join(s.Dir, "talktimer.log")
}
