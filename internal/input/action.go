// internal/input/action.go
package input

// Action represents a command the editor state machine understands.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Ignored, state unchanged
	ActionQuit

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// --- Text Manipulation ---
	ActionInsertRune // Carries Rune; '\r' and '\n' become a line break
	ActionBackspace
)

var actionNames = map[Action]string{
	ActionUnknown:    "Unknown",
	ActionQuit:       "Quit",
	ActionMoveUp:     "MoveUp",
	ActionMoveDown:   "MoveDown",
	ActionMoveLeft:   "MoveLeft",
	ActionMoveRight:  "MoveRight",
	ActionInsertRune: "InsertRune",
	ActionBackspace:  "Backspace",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}

// IsLineBreak reports whether r splits the line instead of being inserted.
func IsLineBreak(r rune) bool {
	return r == '\r' || r == '\n'
}
