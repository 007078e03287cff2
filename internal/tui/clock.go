package tui

import (
	"time"

	"talktimer/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

// clockFireMsg delivers a scheduled callback back onto the update loop.
type clockFireMsg struct{ id uint64 }

// teaClock implements timer.Clock on top of Bubble Tea. AfterFunc queues a
// tea.Tick command; the callback runs when its clockFireMsg reaches Update,
// so timer callbacks never run concurrently with key handling. A stopped
// handle is forgotten, and its late message is dropped.
type teaClock struct {
	now     func() time.Time
	nextID  uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTeaClock(now func() time.Time) *teaClock {
	if now == nil {
		now = time.Now
	}
	return &teaClock{now: now, pending: map[uint64]func(){}}
}

func (c *teaClock) Now() time.Time { return c.now() }

func (c *teaClock) AfterFunc(d time.Duration, f func()) timer.Timer {
	c.nextID++
	id := c.nextID
	c.pending[id] = f
	c.queued = append(c.queued, tea.Tick(d, func(time.Time) tea.Msg { return clockFireMsg{id: id} }))
	return teaTimer{c: c, id: id}
}

func (c *teaClock) fire(id uint64) {
	f, ok := c.pending[id]
	if !ok {
		return
	}
	delete(c.pending, id)
	f()
}

// flush hands queued tick commands to the runtime.
func (c *teaClock) flush() tea.Cmd {
	cmds := c.queued
	c.queued = nil
	return tea.Batch(cmds...)
}

type teaTimer struct {
	c  *teaClock
	id uint64
}

func (t teaTimer) Stop() bool {
	if _, ok := t.c.pending[t.id]; !ok {
		return false
	}
	delete(t.c.pending, t.id)
	return true
}
