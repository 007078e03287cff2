package timer

import (
	"errors"
	"testing"
	"time"
)

type harness struct {
	clock   *ManualClock
	kv      *mapKV
	surface *fakeSurface
	engine  *Engine
}

func newHarness(t *testing.T, seed map[string]string) *harness {
	t.Helper()
	h := &harness{
		clock:   NewManualClock(t0),
		kv:      newMapKV(),
		surface: &fakeSurface{},
	}
	for k, v := range seed {
		h.kv.m[k] = v
	}
	h.engine = New(h.clock, NewPersistence(h.kv, nil), h.surface)
	return h
}

func TestEngine_NewDefaults(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	if h.engine.Running() {
		t.Fatalf("fresh engine should not be running")
	}
	if got := h.engine.DurationMinutes(); got != DefaultMinutes {
		t.Fatalf("duration = %d, want %d", got, DefaultMinutes)
	}
	if h.surface.counter {
		t.Fatalf("counter rendered before start")
	}
	if h.clock.Pending() != 0 {
		t.Fatalf("tick scheduled before start")
	}
}

func TestEngine_StartThenAdjust(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.engine.Start()

	deadline, ok := h.engine.Deadline()
	if !ok || !deadline.Equal(t0.Add(45*time.Minute)) {
		t.Fatalf("deadline = %v (ok=%v), want start+45m", deadline, ok)
	}
	if h.surface.text != "45:00" {
		t.Fatalf("counter = %q, want 45:00", h.surface.text)
	}
	if h.surface.color != colorBlack {
		t.Fatalf("color = %v, want black at full time", h.surface.color)
	}
	if h.kv.m[KeyMinutes] != "45" || h.kv.m[KeyDeadline] == "" {
		t.Fatalf("state not persisted: %v", h.kv.m)
	}

	if !h.engine.AdjustBy(-1) {
		t.Fatalf("AdjustBy(-1) rejected while running")
	}
	deadline, _ = h.engine.Deadline()
	if !deadline.Equal(t0.Add(44 * time.Minute)) {
		t.Fatalf("deadline after adjust = %v, want start+44m", deadline)
	}
	if h.engine.DurationMinutes() != 44 {
		t.Fatalf("duration after adjust = %d, want 44", h.engine.DurationMinutes())
	}
	if h.surface.text != "44:00" {
		t.Fatalf("adjust should re-render at once; counter = %q", h.surface.text)
	}
	if h.kv.m[KeyMinutes] != "44" {
		t.Fatalf("adjusted duration not persisted: %v", h.kv.m)
	}
	if h.clock.Pending() != 1 {
		t.Fatalf("pending ticks = %d, want 1", h.clock.Pending())
	}
}

func TestEngine_TicksOncePerSecond(t *testing.T) {
	t.Parallel()

	h := newHarness(t, map[string]string{KeyMinutes: "1"})
	h.engine.Start()
	h.clock.Advance(1 * time.Second)
	if h.surface.text != "00:59" {
		t.Fatalf("counter = %q, want 00:59", h.surface.text)
	}
	h.clock.Advance(29 * time.Second)
	if h.surface.text != "00:30" {
		t.Fatalf("counter = %q, want 00:30", h.surface.text)
	}
	if h.surface.color != (RGB{R: 255, G: 255}) {
		t.Fatalf("color at half time = %v, want yellow", h.surface.color)
	}
	if h.clock.Pending() != 1 {
		t.Fatalf("pending ticks = %d, want 1", h.clock.Pending())
	}
}

func TestEngine_TickPastDeadlineIsTerminal(t *testing.T) {
	t.Parallel()

	h := newHarness(t, map[string]string{KeyMinutes: "1"})
	h.engine.Start()
	h.clock.Advance(61 * time.Second)

	if h.surface.text != "00:00" {
		t.Fatalf("counter = %q, want 00:00", h.surface.text)
	}
	if h.surface.color != colorRed {
		t.Fatalf("color = %v, want red", h.surface.color)
	}
	if h.clock.Pending() != 0 {
		t.Fatalf("pending ticks = %d after deadline, want 0", h.clock.Pending())
	}
	// The countdown is finished, not stopped.
	if !h.engine.Running() || !h.surface.counter {
		t.Fatalf("finished countdown must stay rendered until stopped")
	}
	if _, ok := h.kv.m[KeyDeadline]; !ok {
		t.Fatalf("finished countdown must stay persisted until stopped")
	}
}

func TestEngine_RecomputesFromWallClock(t *testing.T) {
	t.Parallel()

	h := newHarness(t, map[string]string{KeyMinutes: "10"})
	h.engine.Start()
	renders := h.surface.renders

	// Simulate a suspended host: wall time jumps without the tick firing in
	// between, then the overdue tick runs once.
	h.clock.now = h.clock.now.Add(4*time.Minute + 30*time.Second)
	h.clock.Advance(0)

	if h.surface.text != "05:30" {
		t.Fatalf("counter = %q, want 05:30", h.surface.text)
	}
	if h.surface.renders != renders+1 {
		t.Fatalf("renders = %d, want a single catch-up render", h.surface.renders-renders)
	}
}

func TestEngine_RestartCancelsPreviousTick(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.engine.Start()
	h.engine.Start()
	h.engine.AdjustBy(1)
	h.engine.AdjustBy(1)
	if h.clock.Pending() != 1 {
		t.Fatalf("pending ticks = %d, want 1", h.clock.Pending())
	}
}

func TestEngine_Stop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.engine.Start()
	h.engine.Stop()

	if h.engine.Running() {
		t.Fatalf("still running after Stop")
	}
	if h.surface.counter {
		t.Fatalf("counter still present after Stop")
	}
	if _, ok := h.kv.m[KeyDeadline]; ok {
		t.Fatalf("deadline still persisted after Stop")
	}
	if h.kv.m[KeyMinutes] != "45" {
		t.Fatalf("duration should survive Stop: %v", h.kv.m)
	}
	if h.clock.Pending() != 0 {
		t.Fatalf("pending ticks = %d after Stop", h.clock.Pending())
	}

	// Stopping again with no counter is harmless.
	h.engine.Stop()
}

func TestEngine_AdjustWhenStoppedIsNoop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	if h.engine.AdjustBy(5) {
		t.Fatalf("AdjustBy accepted without a deadline")
	}
	if h.engine.DurationMinutes() != DefaultMinutes || len(h.kv.m) != 0 || h.surface.counter {
		t.Fatalf("AdjustBy mutated state without a deadline")
	}
}

func TestEngine_AdjustNeverDropsBelowOneMinute(t *testing.T) {
	t.Parallel()

	h := newHarness(t, map[string]string{KeyMinutes: "1"})
	h.engine.Start()
	if h.engine.AdjustBy(-1) {
		t.Fatalf("AdjustBy(-1) accepted at one minute")
	}
	if h.engine.DurationMinutes() != 1 {
		t.Fatalf("duration = %d, want 1", h.engine.DurationMinutes())
	}
}

func TestEngine_ResumesSavedDeadline(t *testing.T) {
	t.Parallel()

	saved := t0.Add(10*time.Minute + 5*time.Second)
	h := newHarness(t, map[string]string{
		KeyDeadline: saved.Format(time.RFC3339Nano),
		KeyMinutes:  "20",
	})
	if !h.engine.Running() {
		t.Fatalf("saved countdown not resumed")
	}
	if h.surface.text != "10:05" {
		t.Fatalf("counter = %q, want 10:05", h.surface.text)
	}
	if h.engine.DurationMinutes() != 20 {
		t.Fatalf("duration = %d, want 20", h.engine.DurationMinutes())
	}
	if h.clock.Pending() != 1 {
		t.Fatalf("pending ticks = %d, want 1", h.clock.Pending())
	}
}

func TestEngine_DiscardsStaleDeadline(t *testing.T) {
	t.Parallel()

	h := newHarness(t, map[string]string{
		KeyDeadline: t0.Add(-61 * time.Minute).Format(time.RFC3339Nano),
		KeyMinutes:  "30",
	})
	if h.engine.Running() {
		t.Fatalf("stale countdown resumed")
	}
	if h.surface.counter {
		t.Fatalf("stale countdown rendered")
	}
	if _, ok := h.kv.m[KeyDeadline]; ok {
		t.Fatalf("stale deadline not erased")
	}
	if h.engine.DurationMinutes() != 30 {
		t.Fatalf("duration = %d, want 30", h.engine.DurationMinutes())
	}
}

func TestEngine_PromptOpensOnce(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.engine.PromptForDuration()
	h.engine.PromptForDuration()
	if h.surface.promptOpened != 1 {
		t.Fatalf("prompt opened %d times, want 1", h.surface.promptOpened)
	}
	if h.surface.promptValue != "45" {
		t.Fatalf("prompt pre-filled with %q, want 45", h.surface.promptValue)
	}
}

func TestEngine_ConfirmPromptWhileStopped(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.engine.PromptForDuration()
	h.surface.promptValue = "30"
	if err := h.engine.ConfirmPrompt(); err != nil {
		t.Fatalf("ConfirmPrompt: %v", err)
	}
	if h.engine.Running() {
		t.Fatalf("confirming a duration must not start the countdown")
	}
	if h.engine.DurationMinutes() != 30 || h.kv.m[KeyMinutes] != "30" {
		t.Fatalf("duration not applied: %d %v", h.engine.DurationMinutes(), h.kv.m)
	}
	if h.surface.promptOpen {
		t.Fatalf("prompt still open")
	}
}

func TestEngine_ConfirmPromptWhileRunningShiftsDeadline(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.engine.Start()
	h.clock.Advance(5 * time.Minute)

	h.engine.PromptForDuration()
	h.surface.promptValue = "50"
	if err := h.engine.ConfirmPrompt(); err != nil {
		t.Fatalf("ConfirmPrompt: %v", err)
	}
	deadline, _ := h.engine.Deadline()
	if !deadline.Equal(t0.Add(50 * time.Minute)) {
		t.Fatalf("deadline = %v, want start+50m", deadline)
	}
	if h.surface.text != "45:00" {
		t.Fatalf("counter = %q, want 45:00", h.surface.text)
	}
	if h.clock.Pending() != 1 {
		t.Fatalf("pending ticks = %d, want 1", h.clock.Pending())
	}
}

func TestEngine_ConfirmPromptRejectsBadInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "0", "-3", "2.5"} {
		h := newHarness(t, nil)
		h.engine.PromptForDuration()
		h.surface.promptValue = in
		err := h.engine.ConfirmPrompt()
		if !errors.Is(err, ErrInvalidMinutes) {
			t.Fatalf("input %q: err = %v, want ErrInvalidMinutes", in, err)
		}
		if !h.surface.promptOpen {
			t.Fatalf("input %q: prompt closed on invalid input", in)
		}
		if h.engine.DurationMinutes() != DefaultMinutes {
			t.Fatalf("input %q: duration changed", in)
		}
	}
}

func TestEngine_ConfirmWithoutPromptIsNoop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	if err := h.engine.ConfirmPrompt(); err != nil {
		t.Fatalf("ConfirmPrompt without prompt: %v", err)
	}
	h.engine.CancelPrompt()
	if len(h.kv.m) != 0 {
		t.Fatalf("state changed: %v", h.kv.m)
	}
}

func TestEngine_Snapshot(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	if s := h.engine.Snapshot(); s.Running || s.Deadline != nil || s.DurationMinutes != 45 {
		t.Fatalf("stopped snapshot = %+v", s)
	}
	h.engine.Start()
	h.clock.Advance(90 * time.Second)
	s := h.engine.Snapshot()
	if !s.Running || s.RemainingText != "43:30" || s.Remaining != 43*time.Minute+30*time.Second {
		t.Fatalf("running snapshot = %+v", s)
	}
}
