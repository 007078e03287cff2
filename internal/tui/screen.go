package tui

import (
	"strconv"

	"talktimer/internal/timer"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// counterState is the on-screen counter (id "counter").
type counterState struct {
	text  string
	color timer.RGB
}

// promptState is the duration prompt (id "minutes-prompt").
type promptState struct {
	input textinput.Model
	err   string
}

// screen is the terminal rendering target of the timer engine. The model
// holds it by pointer so the engine and View see the same widgets.
type screen struct {
	counter *counterState
	prompt  *promptState
	cmds    []tea.Cmd
}

func (s *screen) RenderCounter(text string, color timer.RGB) {
	if s.counter == nil {
		s.counter = &counterState{}
	}
	s.counter.text = text
	s.counter.color = color
}

func (s *screen) RemoveCounter() {
	s.counter = nil
}

func (s *screen) PromptOpen() bool { return s.prompt != nil }

func (s *screen) OpenPrompt(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 4
	in.Width = 6
	in.Placeholder = "minutes"
	in.SetValue(strconv.Itoa(minutes))
	in.CursorEnd()
	s.cmds = append(s.cmds, in.Focus())
	s.prompt = &promptState{input: in}
}

func (s *screen) PromptValue() (string, bool) {
	if s.prompt == nil {
		return "", false
	}
	return s.prompt.input.Value(), true
}

func (s *screen) ClosePrompt() {
	s.prompt = nil
}

func (s *screen) flush() tea.Cmd {
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
