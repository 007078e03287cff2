package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"talktimer/internal/timer"

	"github.com/spf13/cobra"
)

// statusView is the payload of every timer command.
type statusView struct {
	timer.Snapshot
	Session string `json:"session,omitempty"`
	Dir     string `json:"dir"`
	Origin  string `json:"origin"`
}

func (v statusView) Text() string {
	if !v.Running {
		return fmt.Sprintf("stopped (%dm)", v.DurationMinutes)
	}
	return fmt.Sprintf("%s left of %dm (ends %s)",
		v.RemainingText, v.DurationMinutes, v.Deadline.Local().Format(time.Kitchen))
}

func newStatusView(app *App, sess *session) statusView {
	return statusView{
		Snapshot: sess.engine.Snapshot(),
		Session:  app.Session,
		Dir:      sess.store.Dir,
		Origin:   sess.kv.Origin(),
	}
}

// withEngine opens the session, runs fn and reports the resulting state.
func withEngine(cmd *cobra.Command, app *App, fn func(e *timer.Engine) error) error {
	sess, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = sess.Close() }()

	if err := fn(sess.engine); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, newStatusView(app, sess))
}

func newStartCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start (or restart) the countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("minutes") && minutes < 1 {
				return writeErr(cmd, errUsage("--minutes must be at least 1"))
			}
			return withEngine(cmd, app, func(e *timer.Engine) error {
				if cmd.Flags().Changed("minutes") {
					if err := e.SetDurationMinutes(minutes); err != nil {
						return err
					}
				}
				e.Start()
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Talk length in minutes (default: the stored length)")
	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the countdown and forget its deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, func(e *timer.Engine) error {
				e.Stop()
				return nil
			})
		},
	}
}

func newAdjustCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <delta-minutes>",
		Short: "Move the running deadline and talk length by whole minutes",
		Long: strings.TrimSpace(`
Move the running deadline and the talk length together. Negative deltas
must follow "--" so they are not read as flags:

  talktimer adjust +5
  talktimer adjust -- -2
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, errUsage("delta must be a whole number of minutes: %q", args[0]))
			}
			return withEngine(cmd, app, func(e *timer.Engine) error {
				if !e.Running() {
					return rejectedError{op: "adjust", reason: "no countdown is running"}
				}
				if !e.AdjustBy(delta) {
					return rejectedError{op: "adjust", reason: "the talk length would drop below one minute"}
				}
				return nil
			})
		},
	}
}

func newDurationCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duration <minutes>",
		Short: "Set the talk length (shifts a running deadline by the difference)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := timer.ParseMinutes(args[0])
			if err != nil {
				return writeErr(cmd, errUsage("%v", err))
			}
			return withEngine(cmd, app, func(e *timer.Engine) error {
				return e.ApplyDuration(minutes)
			})
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the countdown of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, func(*timer.Engine) error { return nil })
		},
	}
}
