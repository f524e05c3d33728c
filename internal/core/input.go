package core

// Action represents a semantic game action, abstracted from physical key presses.
// The UI maps keys to actions and the actions to session intents.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - slide towards the top row
	ActionDown           // S, J, Down arrow - slide towards the bottom row
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionUndo           // U - restore the previous board
	ActionPause          // P, Escape - pause/unpause
	ActionReset          // R - start over at the current size
	ActionSave           // Ctrl+S
	ActionLoad           // Ctrl+O
	ActionWiden          // ] - one more column
	ActionNarrow         // [ - one column less
	ActionTaller         // } - one more row
	ActionShorter        // { - one row less
	ActionHelp           // ? - toggle the full help
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionPause:
		return "Pause"
	case ActionReset:
		return "Reset"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionWiden:
		return "Widen"
	case ActionNarrow:
		return "Narrow"
	case ActionTaller:
		return "Taller"
	case ActionShorter:
		return "Shorter"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the move vector of a directional action in screen
// coordinates (y grows downwards). ok is false for every other action.
func (a Action) Delta() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// Resize returns the width and height change requested by a resize action.
// ok is false for every other action.
func (a Action) Resize() (dw, dh int, ok bool) {
	switch a {
	case ActionWiden:
		return 1, 0, true
	case ActionNarrow:
		return -1, 0, true
	case ActionTaller:
		return 0, 1, true
	case ActionShorter:
		return 0, -1, true
	default:
		return 0, 0, false
	}
}
