package tui

import "github.com/gdamore/tcell/v2"

// Action is a viewer command decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionTorch
	ActionFireball
	ActionBlast
	ActionDouse
	ActionPause
	ActionStep
	ActionReset
	ActionQuit
)

// keyToAction maps a tcell key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch ev.Rune() {
	case 'k', 'K':
		return ActionUp
	case 'j', 'J':
		return ActionDown
	case 'h', 'H':
		return ActionLeft
	case 'l', 'L':
		return ActionRight
	case 't', 'T':
		return ActionTorch
	case 'f', 'F':
		return ActionFireball
	case 'b', 'B':
		return ActionBlast
	case 'w', 'W':
		return ActionDouse
	case ' ':
		return ActionPause
	case 'n', 'N':
		return ActionStep
	case 'r', 'R':
		return ActionReset
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}
