package core

import (
	"fmt"
	"strings"
)

// Action is a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	ActionDebug // Toggle ray and contact overlay
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionJump:    "jump",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
	ActionPause:   "pause",
	ActionDebug:   "debug",
}

// String returns the lowercase action name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction resolves an action by name, ignoring case.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// InputFrame is the set of actions held during one simulation tick, stored
// as a bit mask so frames are cheap to copy, compare and persist.
type InputFrame uint32

// NewInputFrame creates a frame with the given actions set.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as held.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone {
		return
	}
	*f |= 1 << uint(a)
}

// Has reports whether an action is held.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && f&(1<<uint(a)) != 0
}

// Clear drops all actions.
func (f *InputFrame) Clear() {
	*f = 0
}

// Empty reports whether no action is held.
func (f InputFrame) Empty() bool {
	return f == 0
}

// Actions lists the held actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionLeft; a <= ActionDebug; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String joins held action names with '+', or returns "none".
func (f InputFrame) String() string {
	actions := f.Actions()
	if len(actions) == 0 {
		return ActionNone.String()
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, "+")
}

// ParseInputFrame parses the String form of a frame.
func ParseInputFrame(s string) (InputFrame, error) {
	var f InputFrame
	for _, part := range strings.Split(s, "+") {
		a, err := ParseAction(part)
		if err != nil {
			return 0, err
		}
		f.Set(a)
	}
	return f, nil
}
