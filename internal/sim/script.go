// Package sim runs demos headless: scripted input for a fixed number of
// ticks, with every tick recorded as a frame.
package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/aabb-lab/internal/core"
)

// ErrBadScript is returned for unknown actions or invalid repeat counts.
var ErrBadScript = errors.New("bad script")

// maxRepeat bounds a single token's repeat count.
const maxRepeat = 1_000_000

// scriptActions are the actions a script may hold.
var scriptActions = map[string]core.Action{
	"left":  core.ActionLeft,
	"right": core.ActionRight,
	"up":    core.ActionUp,
	"down":  core.ActionDown,
	"jump":  core.ActionJump,
}

type segment struct {
	frame core.InputFrame
	count int
}

// Script is a parsed input script. It repeats from the start once exhausted.
type Script struct {
	segments []segment
	length   int
}

// ParseScript parses whitespace-separated tokens of the form action[*count].
// An action is "wait" or one or more of left, right, up, down and jump joined
// with '+', e.g. "right*30 right+jump wait*10".
func ParseScript(src string) (Script, error) {
	var s Script
	for _, tok := range strings.Fields(src) {
		name, countStr, hasCount := strings.Cut(tok, "*")
		count := 1
		if hasCount {
			n, err := strconv.Atoi(countStr)
			if err != nil || n <= 0 || n > maxRepeat {
				return Script{}, fmt.Errorf("sim: %w: invalid count in %q", ErrBadScript, tok)
			}
			count = n
		}

		frame, err := parseFrame(name)
		if err != nil {
			return Script{}, fmt.Errorf("sim: %w: %q", ErrBadScript, tok)
		}

		// Merge runs of the same input.
		if n := len(s.segments); n > 0 && s.segments[n-1].frame == frame {
			s.segments[n-1].count += count
		} else {
			s.segments = append(s.segments, segment{frame: frame, count: count})
		}
		s.length += count
	}
	return s, nil
}

func parseFrame(name string) (core.InputFrame, error) {
	if name == "wait" {
		return 0, nil
	}
	var f core.InputFrame
	for _, part := range strings.Split(name, "+") {
		a, ok := scriptActions[part]
		if !ok {
			return 0, fmt.Errorf("unknown action %q", part)
		}
		f.Set(a)
	}
	return f, nil
}

// Len is the number of ticks in one pass of the script.
func (s Script) Len() int {
	return s.length
}

// At returns the input for the i-th tick (zero based), wrapping around.
func (s Script) At(i int) core.InputFrame {
	if s.length == 0 {
		return 0
	}
	i %= s.length
	for _, seg := range s.segments {
		if i < seg.count {
			return seg.frame
		}
		i -= seg.count
	}
	return 0
}

// String renders the script in its canonical compact form.
func (s Script) String() string {
	parts := make([]string, 0, len(s.segments))
	for _, seg := range s.segments {
		name := "wait"
		if !seg.frame.Empty() {
			name = seg.frame.String()
		}
		if seg.count > 1 {
			name += "*" + strconv.Itoa(seg.count)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}
