package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run presents the page with its countdown until the presenter quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	theme := ""
	if opts.Config != nil {
		theme = opts.Config.Theme
	}
	applyThemePreference(theme)

	m := newAppModel(opts, nil)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(appModel); ok {
		fm.saveState()
	}
	return nil
}
