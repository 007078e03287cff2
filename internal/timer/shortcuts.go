package timer

// Action is a presenter command triggered by a keyboard shortcut.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionIncrease
	ActionDecrease
	ActionPrompt
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionIncrease:
		return "increase"
	case ActionDecrease:
		return "decrease"
	case ActionPrompt:
		return "prompt"
	case ActionStop:
		return "stop"
	default:
		return "none"
	}
}

// ModifierName is the presenter modifier every shortcut requires.
const ModifierName = "alt"

// Shortcut binds a key (pressed together with the modifier) to an action.
type Shortcut struct {
	Key    string
	Action Action
	Help   string
}

// Shortcuts is the fixed presenter keymap. Key names follow Bubble Tea's
// KeyMsg.String() without the modifier prefix.
var Shortcuts = []Shortcut{
	{Key: "g", Action: ActionStart, Help: "start the countdown"},
	{Key: "up", Action: ActionIncrease, Help: "add one minute"},
	{Key: "down", Action: ActionDecrease, Help: "remove one minute"},
	{Key: "m", Action: ActionPrompt, Help: "enter the talk length"},
	{Key: ".", Action: ActionStop, Help: "stop and hide the counter"},
}

// ActionForKey maps a key event to an action. Events without the modifier
// and unmapped keys yield ActionNone.
func ActionForKey(modifier bool, key string) Action {
	if !modifier {
		return ActionNone
	}
	for _, s := range Shortcuts {
		if s.Key == key {
			return s.Action
		}
	}
	return ActionNone
}

// Perform runs the engine operation behind a shortcut. It reports whether
// the action was recognised.
func (e *Engine) Perform(a Action) bool {
	switch a {
	case ActionStart:
		e.Start()
	case ActionIncrease:
		e.AdjustBy(1)
	case ActionDecrease:
		e.AdjustBy(-1)
	case ActionPrompt:
		e.PromptForDuration()
	case ActionStop:
		e.Stop()
	default:
		return false
	}
	return true
}
