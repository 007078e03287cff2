package cli

import (
	"fmt"

	"talktimer/internal/docs"
	"talktimer/internal/timer"
	"talktimer/internal/tui"

	"github.com/spf13/cobra"
)

const docsRenderWidth = 80

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var render bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"topics": docs.Topics()})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, errUsage("unknown docs topic: %q (run `talktimer docs` to list topics)", topic))
			}
			return writeMarkdown(cmd, app, topic, body, raw, render)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&render, "render", false, "Print markdown rendered for the terminal")
	return cmd
}

type shortcutView struct {
	Key    string `json:"key"`
	Action string `json:"action"`
	Help   string `json:"help"`
}

func newShortcutsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "shortcuts",
		Short: "List the presenter keyboard shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw || app.Format == "text" {
				return writeMarkdown(cmd, app, "shortcuts", docs.Shortcuts(), raw, !raw)
			}
			out := make([]shortcutView, 0, len(timer.Shortcuts))
			for _, s := range timer.Shortcuts {
				out = append(out, shortcutView{
					Key:    timer.ModifierName + "+" + s.Key,
					Action: s.Action.String(),
					Help:   s.Help,
				})
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the shortcuts as raw markdown")
	return cmd
}

func writeMarkdown(cmd *cobra.Command, app *App, topic, body string, raw, render bool) error {
	switch {
	case raw:
		_, err := fmt.Fprint(cmd.OutOrStdout(), body)
		return err
	case render:
		_, err := fmt.Fprint(cmd.OutOrStdout(), tui.RenderMarkdown(body, docsRenderWidth))
		return err
	}
	return writeOut(cmd, app, map[string]any{"topic": topic, "markdown": body})
}
