// Package timer implements the presentation countdown: deadline arithmetic,
// recovery of a saved countdown, the once-per-second tick loop, the urgency
// color model and the presenter's adjustment protocol.
//
// An Engine is not safe for concurrent use. Every call, including scheduled
// ticks, must happen on the host's single update loop.
package timer

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// TickInterval is the nominal period of the re-render loop.
const TickInterval = time.Second

// ErrInvalidMinutes is returned when a talk length is not a positive integer.
var ErrInvalidMinutes = errors.New("minutes must be a positive integer")

// Engine owns the countdown state and is its only writer.
type Engine struct {
	clock   Clock
	store   *Persistence
	surface Surface
	log     *slog.Logger

	deadline time.Time
	running  bool
	minutes  int
	pending  Timer
}

type Option func(*Engine)

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New builds the engine for one loaded page. It recovers the saved duration
// and, if a saved deadline survives the staleness check, starts ticking at once.
func New(clock Clock, store *Persistence, surface Surface, opts ...Option) *Engine {
	e := &Engine{
		clock:   clock,
		store:   store,
		surface: surface,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.minutes = store.LoadDuration()
	if deadline, ok := store.LoadDeadline(clock.Now()); ok {
		e.deadline = deadline
		e.running = true
		e.log.Info("resuming countdown", "deadline", deadline, "minutes", e.minutes)
		e.tick()
	}
	return e
}

// Running reports whether a deadline is set.
func (e *Engine) Running() bool { return e.running }

// Deadline returns the current deadline; ok is false when not running.
func (e *Engine) Deadline() (time.Time, bool) { return e.deadline, e.running }

// DurationMinutes returns the configured talk length.
func (e *Engine) DurationMinutes() int { return e.minutes }

// Start sets the deadline to now plus the configured duration and begins ticking.
func (e *Engine) Start() {
	e.cancel()
	e.deadline = e.clock.Now().Add(time.Duration(e.minutes) * time.Minute)
	e.running = true
	e.saveAll()
	e.log.Info("countdown started", "deadline", e.deadline, "minutes", e.minutes)
	e.tick()
}

// Stop cancels the countdown, forgets the saved deadline and removes the
// counter. The duration is kept for the next Start.
func (e *Engine) Stop() {
	e.cancel()
	e.running = false
	e.deadline = time.Time{}
	e.store.ClearDeadline()
	e.surface.RemoveCounter()
	e.log.Info("countdown stopped")
}

// AdjustBy moves the deadline and the duration by delta minutes and
// re-renders immediately. It does nothing, and returns false, when no
// countdown is running or the duration would drop below one minute.
func (e *Engine) AdjustBy(delta int) bool {
	if !e.running {
		e.log.Debug("adjust ignored: not running", "delta", delta)
		return false
	}
	if e.minutes+delta < 1 {
		e.log.Debug("adjust ignored: duration would drop below one minute", "minutes", e.minutes, "delta", delta)
		return false
	}
	e.cancel()
	e.deadline = e.deadline.Add(time.Duration(delta) * time.Minute)
	e.minutes += delta
	e.saveAll()
	e.log.Info("countdown adjusted", "delta", delta, "deadline", e.deadline, "minutes", e.minutes)
	e.tick()
	return true
}

// SetDurationMinutes changes the configured length without touching a
// running deadline.
func (e *Engine) SetDurationMinutes(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("set duration %d: %w", minutes, ErrInvalidMinutes)
	}
	e.minutes = minutes
	e.store.SaveDuration(minutes)
	return nil
}

// ApplyDuration makes minutes the talk length. A running countdown is
// shifted by the difference so the new total applies to it; otherwise only
// the stored duration changes.
func (e *Engine) ApplyDuration(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("apply duration %d: %w", minutes, ErrInvalidMinutes)
	}
	if e.running {
		if minutes != e.minutes {
			e.AdjustBy(minutes - e.minutes)
		}
		return nil
	}
	return e.SetDurationMinutes(minutes)
}

// PromptForDuration opens the duration prompt unless it is already open.
func (e *Engine) PromptForDuration() {
	if e.surface.PromptOpen() {
		return
	}
	e.surface.OpenPrompt(e.minutes)
}

// ConfirmPrompt applies the prompt's value as the new talk length and closes
// it. Input that is not a positive integer leaves the prompt open and
// returns ErrInvalidMinutes.
func (e *Engine) ConfirmPrompt() error {
	raw, ok := e.surface.PromptValue()
	if !ok {
		return nil
	}
	minutes, err := ParseMinutes(raw)
	if err != nil {
		return err
	}
	if err := e.ApplyDuration(minutes); err != nil {
		return err
	}
	e.surface.ClosePrompt()
	return nil
}

// CancelPrompt closes the prompt without applying anything.
func (e *Engine) CancelPrompt() {
	if e.surface.PromptOpen() {
		e.surface.ClosePrompt()
	}
}

// ParseMinutes parses presenter input as a positive whole number of minutes.
func ParseMinutes(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidMinutes)
	}
	return n, nil
}

func (e *Engine) tick() {
	e.pending = nil
	if !e.running {
		return
	}
	now := e.clock.Now()
	if !now.Before(e.deadline) {
		e.render(0, 0)
		return
	}
	mins, secs := splitRemaining(e.deadline.Sub(now))
	e.render(mins, secs)
	e.pending = e.clock.AfterFunc(TickInterval, e.tick)
}

func (e *Engine) render(minutes, seconds int) {
	remaining := float64(minutes*60 + seconds)
	total := float64(e.minutes * 60)
	e.surface.RenderCounter(Format(minutes, seconds), ColorFor(remaining, total))
}

func (e *Engine) cancel() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) saveAll() {
	e.store.SaveDeadline(e.deadline)
	e.store.SaveDuration(e.minutes)
}

// Snapshot is a read-only view of the countdown at one instant.
type Snapshot struct {
	Running         bool          `json:"running"`
	Deadline        *time.Time    `json:"deadline,omitempty"`
	DurationMinutes int           `json:"durationMinutes"`
	Remaining       time.Duration `json:"-"`
	RemainingText   string        `json:"remaining,omitempty"`
	Color           string        `json:"color,omitempty"`
}

// Snapshot reports the state as the next tick would render it.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{Running: e.running, DurationMinutes: e.minutes}
	if !e.running {
		return s
	}
	deadline := e.deadline
	s.Deadline = &deadline
	remaining := deadline.Sub(e.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	mins, secs := splitRemaining(remaining)
	s.Remaining = remaining
	s.RemainingText = Format(mins, secs)
	s.Color = ColorFor(float64(mins*60+secs), float64(e.minutes*60)).String()
	return s
}
