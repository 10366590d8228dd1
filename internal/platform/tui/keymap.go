package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aabb-lab/internal/core"
)

// KeyMapper translates Bubble Tea key messages to demo actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case " ", "z":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "v":
		return core.ActionDebug, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionRuns
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "o":
		return MenuActionRuns
	}
	return MenuActionNone
}

// holdTicks is how long a movement key counts as held after its last press.
// Terminals report key presses and auto-repeat, never key releases.
const holdTicks = 8

// HeldInput turns discrete key presses into a per-tick input frame.
// Movement and jump stay held for holdTicks ticks after the last press;
// toggles (pause, debug, restart) fire on exactly one tick.
type HeldInput struct {
	remaining [core.ActionDebug + 1]int
}

// Press records a key press for a.
func (h *HeldInput) Press(a core.Action) {
	if a <= core.ActionNone || a > core.ActionDebug {
		return
	}
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump:
		h.remaining[a] = holdTicks
		// Opposite directions cancel each other.
		switch a {
		case core.ActionLeft:
			h.remaining[core.ActionRight] = 0
		case core.ActionRight:
			h.remaining[core.ActionLeft] = 0
		case core.ActionUp:
			h.remaining[core.ActionDown] = 0
		case core.ActionDown:
			h.remaining[core.ActionUp] = 0
		}
	default:
		h.remaining[a] = 1
	}
}

// Next returns the frame for the coming tick and ages every held action.
func (h *HeldInput) Next() core.InputFrame {
	var f core.InputFrame
	for a := range h.remaining {
		if h.remaining[a] > 0 {
			f.Set(core.Action(a))
			h.remaining[a]--
		}
	}
	return f
}

// Peek reports whether a is held without aging anything.
func (h *HeldInput) Peek(a core.Action) bool {
	if a <= core.ActionNone || a > core.ActionDebug {
		return false
	}
	return h.remaining[a] > 0
}

// Release drops every held action.
func (h *HeldInput) Release() {
	h.remaining = [core.ActionDebug + 1]int{}
}
