package timer

import (
	"sort"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the timer;
	// false means it already fired or was already stopped.
	Stop() bool
}

// Clock provides the current time and one-shot callback scheduling.
//
// The engine assumes callbacks run on the same logical thread as every other
// engine call. Implementations that fire on another goroutine must hand the
// callback back to the owning loop (see the TUI clock).
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// HeadlessClock reports wall-clock time but never fires scheduled callbacks.
// It is used by one-shot CLI commands that mutate persisted state and exit.
type HeadlessClock struct{}

func (HeadlessClock) Now() time.Time { return time.Now() }

func (HeadlessClock) AfterFunc(time.Duration, func()) Timer { return &manualTimer{} }

// ManualClock is a deterministic clock for tests. Time only moves through
// Advance/Set, and due callbacks run synchronously inside those calls.
type ManualClock struct {
	now     time.Time
	seq     int
	pending []*manualTimer
}

func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

type manualTimer struct {
	at      time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.seq++
	t := &manualTimer{at: c.now.Add(d), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Pending returns the number of scheduled callbacks that have neither fired
// nor been stopped.
func (c *ManualClock) Pending() int {
	n := 0
	for _, t := range c.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing due callbacks in order. Callbacks
// scheduled while advancing fire too if they fall inside the window.
func (c *ManualClock) Advance(d time.Duration) {
	c.Set(c.now.Add(d))
}

// Set jumps to t, firing due callbacks as Advance does. Jumping backwards
// fires nothing.
func (c *ManualClock) Set(t time.Time) {
	for {
		next := c.nextDue(t)
		if next == nil {
			break
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		next.f()
	}
	c.now = t
	c.compact()
}

func (c *ManualClock) nextDue(limit time.Time) *manualTimer {
	var due []*manualTimer
	for _, t := range c.pending {
		if t.stopped || t.fired || t.at.After(limit) {
			continue
		}
		due = append(due, t)
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (c *ManualClock) compact() {
	out := c.pending[:0]
	for _, t := range c.pending {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	c.pending = out
}
