package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aabb-lab/internal/core"
	"github.com/vovakirdan/aabb-lab/internal/games/platformer"
	"github.com/vovakirdan/aabb-lab/internal/registry"
	"github.com/vovakirdan/aabb-lab/internal/storage"
)

// Options configures a headless run.
type Options struct {
	// Demo is the registry id of the demo to run.
	Demo string

	// Ticks is the number of ticks to run. Zero means one pass of Script.
	Ticks int

	// Script supplies the input for every tick.
	Script Script

	// Config is passed to the demo's Reset.
	Config core.RuntimeConfig

	// StopOnGameOver ends the run early once the demo reports game over.
	StopOnGameOver bool

	// Logger receives per-tick debug lines and a summary. Nil discards.
	Logger *log.Logger
}

// Result is a finished (or cancelled) run.
type Result struct {
	Demo    string
	Script  string
	Frames  []storage.Frame
	Final   platformer.Snapshot
	Elapsed time.Duration
}

// recordable is a demo whose state can be captured after each tick.
type recordable interface {
	registry.Game
	Snapshot() platformer.Snapshot
}

// Run steps the demo for the requested number of ticks. It checks ctx between
// ticks; on cancellation it returns the frames recorded so far together with
// the context error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ticks := opts.Ticks
	if ticks <= 0 {
		ticks = opts.Script.Len()
	}
	if ticks <= 0 {
		return nil, errors.New("sim: nothing to run: no ticks and an empty script")
	}

	game, err := registry.Create(opts.Demo)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	rec, ok := game.(recordable)
	if !ok {
		return nil, fmt.Errorf("sim: demo %q cannot be recorded", opts.Demo)
	}
	if err := rec.Reset(opts.Config); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	res := &Result{
		Demo:   opts.Demo,
		Script: opts.Script.String(),
		Frames: make([]storage.Frame, 0, ticks),
	}
	start := time.Now()

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			res.Final = rec.Snapshot()
			res.Elapsed = time.Since(start)
			logger.Warn("simulation cancelled", "demo", opts.Demo, "tick", i)
			return res, err
		}

		in := opts.Script.At(i)
		step := rec.Step(in)
		snap := rec.Snapshot()
		res.Frames = append(res.Frames, frameOf(snap, in))

		logger.Debug("tick",
			"tick", snap.Tick,
			"input", in,
			"x", snap.X,
			"y", snap.Y,
			"grounded", snap.Grounded,
			"contacts", step.Contacts,
			"candidates", step.Candidates,
		)

		if opts.StopOnGameOver && step.State.GameOver {
			break
		}
	}

	res.Final = rec.Snapshot()
	res.Elapsed = time.Since(start)

	logger.Info("simulation finished",
		"demo", opts.Demo,
		"ticks", len(res.Frames),
		"score", res.Final.Score,
		"coins", res.Final.Coins,
		"won", res.Final.Won,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// Record converts the result into a storage run.
func (r *Result) Record() storage.Run {
	return storage.Run{
		GameID: r.Demo,
		Script: r.Script,
		Ticks:  len(r.Frames),
		Score:  r.Final.Score,
		Coins:  r.Final.Coins,
		Won:    r.Final.Won,
	}
}

func frameOf(s platformer.Snapshot, in core.InputFrame) storage.Frame {
	return storage.Frame{
		Tick:     s.Tick,
		Input:    in.String(),
		X:        s.X,
		Y:        s.Y,
		VX:       s.VX,
		VY:       s.VY,
		Grounded: s.Grounded,
		Contacts: s.Contacts,
	}
}
