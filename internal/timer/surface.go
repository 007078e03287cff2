package timer

const (
	// Stable identifiers of the two rendering targets.
	CounterID = "counter"
	PromptID  = "minutes-prompt"
)

// Surface is the rendering target the engine draws on. Hosts own the actual
// widgets; the engine only asks for them to exist, change or go away.
type Surface interface {
	// RenderCounter creates the counter if it is absent and updates it.
	RenderCounter(text string, color RGB)
	// RemoveCounter removes the counter; it is a no-op when none exists.
	RemoveCounter()

	PromptOpen() bool
	// OpenPrompt shows the duration prompt pre-filled with minutes and focuses it.
	OpenPrompt(minutes int)
	// PromptValue returns the raw prompt input; ok is false when no prompt is open.
	PromptValue() (value string, ok bool)
	ClosePrompt()
}

// NopSurface renders nothing. One-shot CLI commands use it.
type NopSurface struct{}

func (NopSurface) RenderCounter(string, RGB)   {}
func (NopSurface) RemoveCounter()              {}
func (NopSurface) PromptOpen() bool            { return false }
func (NopSurface) OpenPrompt(int)              {}
func (NopSurface) PromptValue() (string, bool) { return "", false }
func (NopSurface) ClosePrompt()                {}
