package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionFlap        // Space, f - upward impulse
	ActionQuit        // Ctrl+C - leave the host
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ActionForKey maps a key name, as reported by the host, to an action.
// Hosts normalise their key events to strings like " ", "f", "ctrl+c".
func ActionForKey(key string) Action {
	switch key {
	case " ", "space", "f", "F":
		return ActionFlap
	case "ctrl+c":
		return ActionQuit
	}
	return ActionNone
}

// InputFrame represents the input consumed by one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
