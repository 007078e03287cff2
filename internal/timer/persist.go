package timer

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const (
	// Keys in the origin-scoped store.
	KeyDeadline = "end-date"
	KeyMinutes  = "total-minutes"

	// DefaultMinutes is the talk length used until one is saved.
	DefaultMinutes = 45

	// StaleAfter is how long past its deadline a saved countdown is still resumed.
	StaleAfter = time.Hour

	deadlineLayout = time.RFC3339Nano
)

// KV is a durable string key/value store scoped to one origin.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Persistence reads and writes the timer's two durable values.
//
// Writes are fire-and-forget: failures are logged and otherwise ignored so a
// broken store never interrupts the countdown on screen.
type Persistence struct {
	kv  KV
	log *slog.Logger
}

func NewPersistence(kv KV, log *slog.Logger) *Persistence {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Persistence{kv: kv, log: log}
}

func (p *Persistence) SaveDeadline(t time.Time) {
	if err := p.kv.Set(KeyDeadline, t.Format(deadlineLayout)); err != nil {
		p.log.Warn("save deadline", "err", err)
	}
}

func (p *Persistence) SaveDuration(minutes int) {
	if err := p.kv.Set(KeyMinutes, strconv.Itoa(minutes)); err != nil {
		p.log.Warn("save duration", "err", err)
	}
}

func (p *Persistence) ClearDeadline() {
	if err := p.kv.Delete(KeyDeadline); err != nil {
		p.log.Warn("clear deadline", "err", err)
	}
}

// LoadDeadline returns the saved deadline unless it is missing, unreadable,
// or expired more than StaleAfter before now. Rejected values are erased.
func (p *Persistence) LoadDeadline(now time.Time) (time.Time, bool) {
	raw, ok, err := p.kv.Get(KeyDeadline)
	if err != nil {
		p.log.Warn("load deadline", "err", err)
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(deadlineLayout, strings.TrimSpace(raw))
	if err != nil {
		p.log.Warn("discarding unreadable deadline", "value", raw, "err", err)
		p.ClearDeadline()
		return time.Time{}, false
	}
	if t.Before(now.Add(-StaleAfter)) {
		p.log.Debug("discarding stale deadline", "deadline", t)
		p.ClearDeadline()
		return time.Time{}, false
	}
	return t, true
}

// LoadDuration returns the saved talk length, or DefaultMinutes when none is
// stored or the stored value is not a positive integer. The default is not
// written back.
func (p *Persistence) LoadDuration() int {
	raw, ok, err := p.kv.Get(KeyMinutes)
	if err != nil {
		p.log.Warn("load duration", "err", err)
		return DefaultMinutes
	}
	if !ok {
		return DefaultMinutes
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		p.log.Warn("malformed saved duration, using default", "value", raw, "default", DefaultMinutes)
		return DefaultMinutes
	}
	return n
}
