package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aabb-lab/internal/games/platformer"
	"github.com/vovakirdan/aabb-lab/internal/sim"
	"github.com/vovakirdan/aabb-lab/internal/storage"
)

func setDBPath(t *testing.T, path string) {
	t.Helper()
	old := flagDBPath
	flagDBPath = path
	t.Cleanup(func() { flagDBPath = old })
}

func TestRecordRun(t *testing.T) {
	setDBPath(t, filepath.Join(t.TempDir(), "lab.db"))

	res := &sim.Result{
		Demo:   "platformer",
		Script: "right",
		Frames: []storage.Frame{{Tick: 1, Input: "right", X: 10.35, Y: 5}},
		Final:  platformer.Snapshot{Tick: 1, Score: 100, Coins: 1},
	}
	id, err := recordRun(res, log.New(io.Discard))
	if err != nil {
		t.Fatalf("recordRun() error: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	frames, err := store.RunFrames(id)
	if err != nil || len(frames) != 1 {
		t.Errorf("RunFrames(%d) = %v, %v, want one frame", id, frames, err)
	}
	if best, err := store.HighScore("platformer"); err != nil || best != 100 {
		t.Errorf("HighScore() = %d, %v, want 100", best, err)
	}
}

func TestRecordRunReturnsOpenError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	setDBPath(t, filepath.Join(blocker, "lab.db"))

	if _, err := recordRun(&sim.Result{Demo: "platformer"}, log.New(io.Discard)); err == nil {
		t.Error("recordRun() should fail when the database cannot be created")
	}
}

func TestShowRunsErrors(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "lab.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := showRuns(store, []string{"abc"}); err == nil {
		t.Error("showRuns() accepted a non-numeric id")
	}

	flagRunsDelete = true
	t.Cleanup(func() { flagRunsDelete = false })
	if err := showRuns(store, []string{"99"}); !errors.Is(err, storage.ErrRunNotFound) {
		t.Errorf("deleting a missing run: err = %v, want ErrRunNotFound", err)
	}
}
