package cli

import (
	"strings"
	"time"

	"talktimer/internal/store"

	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management (one countdown and page per session)",
	}

	cmd.AddCommand(newSessionUseCmd(app))
	cmd.AddCommand(newSessionCurrentCmd(app))
	cmd.AddCommand(newSessionListCmd(app))

	return cmd
}

type sessionView struct {
	Session string `json:"session"`
	Dir     string `json:"dir"`
}

func (v sessionView) Text() string {
	return v.Session + "\t" + v.Dir
}

func newSessionUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the current session (created on first use)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeSessionName(args[0])
			if err != nil {
				return writeErr(cmd, errUsage("%v", err))
			}
			dir, err := store.SessionDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}

			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cfg.Sessions != nil {
				if ref, ok := cfg.Sessions[name]; ok {
					ref.LastOpened = time.Now().UTC().Format(time.RFC3339Nano)
					cfg.Sessions[name] = ref
				}
			}
			cfg.CurrentSession = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}

			app.Session = name
			app.Dir = dir
			return writeOut(cmd, app, sessionView{Session: name, Dir: dir})
		},
	}
}

func newSessionCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			name := strings.TrimSpace(cfg.CurrentSession)
			if name == "" {
				name = store.DefaultSession
			}
			dir, err := store.SessionDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, sessionView{Session: name, Dir: dir})
		},
	}
}

type sessionListView struct {
	Sessions       []string `json:"sessions"`
	CurrentSession string   `json:"currentSession"`
}

func (v sessionListView) Text() string {
	var b strings.Builder
	for _, name := range v.Sessions {
		if name == v.CurrentSession {
			b.WriteString("* ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			current := strings.TrimSpace(cfg.CurrentSession)
			if current == "" {
				current = store.DefaultSession
			}
			names, err := store.ListSessions()
			if err != nil {
				return writeErr(cmd, err)
			}
			if names == nil {
				names = []string{}
			}
			return writeOut(cmd, app, sessionListView{Sessions: names, CurrentSession: current})
		},
	}
}
