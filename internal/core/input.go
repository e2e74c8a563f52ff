package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H
	ActionRight          // Right arrow, D, L
	ActionUp             // Up arrow, W, K
	ActionDown           // Down arrow, S, J
	ActionRestart        // R - skip the post-game-over delay
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Heading maps a direction action to a heading.
func (a Action) Heading() (Heading, bool) {
	switch a {
	case ActionLeft:
		return HeadingLeft, true
	case ActionRight:
		return HeadingRight, true
	case ActionUp:
		return HeadingUp, true
	case ActionDown:
		return HeadingDown, true
	}
	return 0, false
}

// InputFrame collects the input gathered between two driver polls.
// Direction actions are last-key-wins: only the most recent one is kept.
type InputFrame struct {
	// Actions maps non-direction actions to whether they were triggered.
	Actions map[Action]bool

	heading    Heading
	hasHeading bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set records an action. A direction overwrites any earlier direction.
func (f *InputFrame) Set(a Action) {
	if h, ok := a.Heading(); ok {
		f.heading = h
		f.hasHeading = true
		return
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
// For directions it reports whether a is the surviving direction.
func (f InputFrame) Has(a Action) bool {
	if h, ok := a.Heading(); ok {
		return f.hasHeading && f.heading == h
	}
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Heading returns the last direction set this frame.
func (f InputFrame) Heading() (Heading, bool) {
	return f.heading, f.hasHeading
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.hasHeading = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.heading = f.heading
	clone.hasHeading = f.hasHeading
	return clone
}
