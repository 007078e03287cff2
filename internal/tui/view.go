package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const promptBodyWidth = 30

func (m appModel) View() string {
	w, h := m.size()
	bodyH := h - headerHeight - footerHeight
	if bodyH < 1 {
		bodyH = 1
	}

	body := m.page.View()
	if m.screen.prompt != nil {
		body = lipgloss.Place(w, bodyH, lipgloss.Center, lipgloss.Center, m.promptView())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(w),
		body,
		truncateLine(m.help.View(m.keys), w),
	)
}

func (m appModel) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (m appModel) headerView(w int) string {
	counter := m.counterView()
	titleW := w - lipgloss.Width(counter)
	if titleW < 1 {
		return counter
	}

	parts := []string{"talktimer"}
	if m.session != "" {
		parts = append(parts, m.session)
	}
	if m.pagePath != "" {
		parts = append(parts, filepath.Base(m.pagePath))
	}
	title := styleTitle().Render(truncateLine(strings.Join(parts, " · "), titleW-2))

	left := lipgloss.NewStyle().
		Width(titleW).
		Height(headerHeight).
		PaddingLeft(1).
		PaddingTop(1).
		Render(title)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, counter)
}

// counterView renders the counter docked top-right. Its border carries the
// urgency color; hovering reveals the configured talk length.
func (m appModel) counterView() string {
	c := m.screen.counter
	if c == nil {
		return ""
	}
	text := c.text
	if m.counterHover {
		text += styleMuted().Render(fmt.Sprintf(" / %dm", m.engine.DurationMinutes()))
	}
	return lipgloss.NewStyle().
		Border(counterBorder(m.counterStyle)).
		BorderForeground(lipgloss.Color(c.color.Hex())).
		Foreground(colorSurfaceFg).
		Padding(0, 1).
		Render(text)
}

// inCounter reports whether a terminal cell lies on the counter.
func (m appModel) inCounter(x, y int) bool {
	counter := m.counterView()
	if counter == "" {
		return false
	}
	w, _ := m.size()
	return y >= 0 && y < lipgloss.Height(counter) && x >= w-lipgloss.Width(counter) && x < w
}

func (m appModel) promptView() string {
	p := m.screen.prompt
	lines := []string{
		styleTitle().Render("Presentation Length"),
		"",
		renderInputLine(promptBodyWidth, p.input.View()),
		"",
	}
	if p.err != "" {
		lines = append(lines, styleError().Width(promptBodyWidth).Render(p.err), "")
	}
	lines = append(lines, styleMuted().Render("enter: ok   esc: cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorSurfaceBg).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
