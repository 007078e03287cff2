package tui

import (
	"errors"
	"unicode"

	"talktimer/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	// The engine may have resumed a saved countdown while being built.
	return m.flush()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPage()
		return m, nil

	case clockFireMsg:
		m.clock.fire(msg.id)
		return m, m.flush()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.counterHover = m.inCounter(msg.X, msg.Y)
		}
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.saveState()
		return m, tea.Quit
	}

	// Presenter shortcuts share the key stream with everything else and win.
	if a := shortcutAction(msg); a != timer.ActionNone {
		m.log.Debug("shortcut", "action", a.String())
		m.engine.Perform(a)
		return m, m.flush()
	}

	if m.screen.prompt != nil {
		return m.updatePrompt(msg)
	}

	switch msg.String() {
	case "q":
		m.saveState()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	return m, cmd
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.screen.prompt
	switch msg.String() {
	case "enter":
		if err := m.engine.ConfirmPrompt(); err != nil {
			if errors.Is(err, timer.ErrInvalidMinutes) {
				p.err = "enter a whole number of minutes (at least 1)"
			} else {
				p.err = err.Error()
			}
			m.log.Debug("prompt rejected", "err", err)
		}
		return m, m.flush()
	case "esc":
		m.engine.CancelPrompt()
		return m, m.flush()
	}

	if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
		return m, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return m, cmd
}

func (m appModel) flush() tea.Cmd {
	return tea.Batch(m.clock.flush(), m.screen.flush())
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(rs) > 0
}
