package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"talktimer/internal/format"
	"talktimer/internal/logging"
	"talktimer/internal/store"
	"talktimer/internal/timer"
	"talktimer/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir     string
	Session string
	Origin  string
	Format  string
	Pretty  bool

	// now freezes the clock of one-shot commands (tests).
	now func() time.Time
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "talktimer [markdown-file]",
		Short:        "Presentation countdown for the terminal",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Present a markdown page with the countdown (alt+g starts it)
  talktimer slides.md

  # Scriptable commands
  talktimer start --minutes 30
  talktimer adjust +5
  talktimer adjust -- -2
  talktimer status --format text
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := ""
			if len(args) == 1 {
				page = args[0]
			}
			return runTUI(cmd, app, page)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !format.Valid(app.Format) {
			return writeErr(cmd, errUsage("unknown --format %q (json|text)", app.Format))
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TALKTIMER_DIR", ""), "Session directory (overrides --session; mostly for scripts and tests)")
	cmd.PersistentFlags().StringVar(&app.Session, "session", envOr("TALKTIMER_SESSION", ""), "Session name (default: current session from config, else 'default')")
	cmd.PersistentFlags().StringVar(&app.Origin, "origin", envOr("TALKTIMER_ORIGIN", store.DefaultOrigin), "Storage origin; each origin keeps its own countdown")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TALKTIMER_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newStartCmd(app))
	cmd.AddCommand(newStopCmd(app))
	cmd.AddCommand(newAdjustCmd(app))
	cmd.AddCommand(newDurationCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newShortcutsCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newSessionCmd(app))

	return cmd
}

// resolveSession picks the session directory:
// 1) --dir
// 2) --session
// 3) ~/.talktimer/config.json currentSession
// 4) the default session
func resolveSession(app *App) (store.Store, error) {
	if app.Dir != "" {
		s := store.Store{Dir: app.Dir}
		return s, s.Ensure()
	}

	name := app.Session
	if name == "" {
		if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentSession != "" {
			name = cfg.CurrentSession
		} else {
			name = store.DefaultSession
		}
	}
	dir, err := store.SessionDir(name)
	if err != nil {
		return store.Store{}, err
	}
	app.Session = name
	app.Dir = dir

	s := store.Store{Dir: dir}
	return s, s.Ensure()
}

// session bundles what one command needs to drive the timer.
type session struct {
	store  store.Store
	kv     *store.KV
	engine *timer.Engine
	closer []func() error
}

func (s *session) Close() error {
	var first error
	for i := len(s.closer) - 1; i >= 0; i-- {
		if err := s.closer[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openSession loads the countdown of the selected session and origin. The
// engine renders nowhere and schedules nothing: the next TUI run (or the
// next command) recomputes everything from the stored deadline.
func openSession(ctx context.Context, app *App) (*session, error) {
	st, err := resolveSession(app)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.Open(st.LogPath())
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	sess := &session{store: st, closer: []func() error{closeLog}}

	kv, err := st.OpenKV(ctx, app.Origin)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	sess.kv = kv
	sess.closer = append(sess.closer, kv.Close)

	var clock timer.Clock = timer.HeadlessClock{}
	if app.now != nil {
		clock = timer.NewManualClock(app.now())
	}
	sess.engine = timer.New(clock, timer.NewPersistence(kv, log), timer.NopSurface{}, timer.WithLogger(log))
	return sess, nil
}

func runTUI(cmd *cobra.Command, app *App, page string) error {
	st, err := resolveSession(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	var prefs *store.TUIConfig
	if cfg, err := store.LoadConfig(); err == nil {
		prefs = cfg.TUI
	}

	log, closeLog, err := logging.Open(st.LogPath())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = closeLog() }()

	kv, err := st.OpenKV(cmd.Context(), app.Origin)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = kv.Close() }()

	return tui.Run(tui.Options{
		Store:    st,
		KV:       kv,
		Log:      log,
		Session:  app.Session,
		PagePath: page,
		Config:   prefs,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
