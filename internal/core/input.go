package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Shift left one cell (auto-shifts while repeated)
	ActionRight            // Shift right one cell
	ActionSoftDrop         // Drop one cell faster than gravity
	ActionSonicDrop        // Drop to the floor without locking
	ActionHardDrop         // Drop and lock
	ActionRotateCW
	ActionRotateCCW
	ActionRotate180
	ActionHold
	ActionForfeit
	ActionPause
	ActionRestart
	ActionQuit
	ActionBack
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionSoftDrop:  "SoftDrop",
	ActionSonicDrop: "SonicDrop",
	ActionHardDrop:  "HardDrop",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionRotate180: "Rotate180",
	ActionHold:      "Hold",
	ActionForfeit:   "Forfeit",
	ActionPause:     "Pause",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionBack:      "Back",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the input collected for one simulation tick.
// Actions keep the order they arrived in; the same action may appear twice
// (a key pressed twice within one frame).
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set appends an action to the frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has reports whether the action occurred this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.actions) == 0
}

// Clear resets the frame, reusing its storage.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
