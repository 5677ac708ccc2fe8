package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - move paddle left
	ActionRight           // D, Right arrow - move paddle right
	ActionJump            // Space - short jump
	ActionLongJump        // W, Up arrow - long jump
	ActionDuck            // S, Down arrow - crouch / fast fall
	ActionConfirm         // Enter - start or restart
	ActionBack            // B, Escape - back to the game picker
	ActionRestart         // R - restart after game over
	ActionQuit            // Q, Ctrl+C - exit
	ActionPause           // P - pause/unpause
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
	case ActionJump:
		return "Jump"
	case ActionLongJump:
		return "LongJump"
	case ActionDuck:
		return "Duck"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state seen by the simulation during one frame.
type InputFrame struct {
	// Actions holds actions triggered since the previous frame.
	Actions map[Action]bool
	// Held holds actions whose key is currently down.
	Held map[Action]bool

	// Pointer is the last known pointer position in world pixels.
	Pointer Vector
	// PointerMoved is set when the pointer moved since the previous frame.
	PointerMoved bool
	// PointerPressed is set when the primary button went down since the
	// previous frame.
	PointerPressed bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
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
func (f *InputFrame) Has(a Action) bool {
	return f != nil && f.Actions[a]
}

// SetHeld records whether the key bound to a is down.
func (f *InputFrame) SetHeld(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
	} else {
		delete(f.Held, a)
	}
}

// IsDown reports whether a was triggered this frame or is being held.
func (f *InputFrame) IsDown(a Action) bool {
	return f != nil && (f.Actions[a] || f.Held[a])
}

// Started reports whether the player asked to start or restart: confirm,
// either jump key or a pointer press.
func (f *InputFrame) Started() bool {
	if f == nil {
		return false
	}
	return f.PointerPressed || f.Actions[ActionConfirm] || f.Actions[ActionJump] ||
		f.Actions[ActionLongJump] || f.Actions[ActionRestart]
}

// Clear resets the per-frame edges. Held keys and the pointer position survive.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.PointerMoved = false
	f.PointerPressed = false
}
