package tui

import (
	"strings"

	"talktimer/internal/timer"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap feeds the help footer. Presenter shortcuts are dispatched through
// timer.ActionForKey; the bindings here only describe them.
type keyMap struct {
	shortcuts []key.Binding
	scroll    key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	km := keyMap{
		scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for _, s := range timer.Shortcuts {
		combo := timer.ModifierName + "+" + s.Key
		km.shortcuts = append(km.shortcuts, key.NewBinding(
			key.WithKeys(combo),
			key.WithHelp(shortcutLabel(s.Key), s.Action.String()),
		))
	}
	return km
}

func shortcutLabel(k string) string {
	switch k {
	case "up":
		k = "↑"
	case "down":
		k = "↓"
	}
	return timer.ModifierName + "+" + k
}

func (k keyMap) ShortHelp() []key.Binding {
	out := append([]key.Binding{}, k.shortcuts...)
	return append(out, k.quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.shortcuts, {k.scroll, k.quit}}
}

// shortcutAction translates a key event into a presenter action.
func shortcutAction(msg tea.KeyMsg) timer.Action {
	name := strings.TrimPrefix(msg.String(), timer.ModifierName+"+")
	return timer.ActionForKey(msg.Alt, name)
}
