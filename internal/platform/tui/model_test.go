package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aabb-lab/internal/core"
	"github.com/vovakirdan/aabb-lab/internal/storage"
)

// stubGame records inputs and ends after a fixed number of ticks.
type stubGame struct {
	inputs   []core.InputFrame
	endAfter int
	score    int
	resets   int
	resetErr error
	paused   bool
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.inputs = nil
	g.paused = false
	return g.resetErr
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	g.inputs = append(g.inputs, in)
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColored(0, 0, "stub", core.ColorPlayer)
}

func (g *stubGame) State() core.GameState {
	over := g.endAfter > 0 && len(g.inputs) >= g.endAfter
	st := core.GameState{Tick: uint64(len(g.inputs)), GameOver: over, Paused: g.paused}
	if over {
		st.Score = g.score
	}
	return st
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(time.Now()))
	return m
}

func TestModelHeldMovementReachesGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}

	if len(g.inputs) != 3 {
		t.Fatalf("game stepped %d times, want 3", len(g.inputs))
	}
	for i, in := range g.inputs {
		if !in.Has(core.ActionRight) {
			t.Errorf("tick %d input = %v, want right held", i, in)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, core.DefaultConfig())

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &stubGame{endAfter: 2, score: 450}
	m := NewModel(g, store, core.DefaultConfig())
	var overs int
	m.onGameOver = func(core.GameState) { overs++ }

	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 450 {
		t.Errorf("scores = %v, want one 450", scores)
	}
	if overs != 1 {
		t.Errorf("game over hook ran %d times, want 1", overs)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{endAfter: 1}
	m := NewModel(g, nil, core.DefaultConfig())

	m = tick(t, m)
	if !m.gameState.GameOver {
		t.Fatal("stub should be over after one tick")
	}

	m, _ = update(t, m, runeKey('r'))
	m = tick(t, m)
	if g.resets != 1 {
		t.Errorf("Reset called %d times, want 1", g.resets)
	}
	if m.gameState.GameOver {
		t.Error("restart should clear game over")
	}
}

func TestModelRestartError(t *testing.T) {
	g := &stubGame{endAfter: 1, resetErr: errors.New("scene gone")}
	m := NewModel(g, nil, core.DefaultConfig())
	m.standalone = true

	m = tick(t, m)
	m, _ = update(t, m, runeKey('r'))
	m, cmd := update(t, m, TickMsg(time.Now()))
	if m.Err() == nil || cmd == nil {
		t.Error("failed restart should stop the model with an error")
	}
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m)
	if !m.gameState.Paused {
		t.Fatal("p should pause")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("back should leave a paused demo")
	}
	if cmd != nil {
		t.Error("embedded model must not quit the program")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 10})
	if g.resets != 0 {
		t.Error("resize should not reset the demo")
	}

	view := m.View()
	if !strings.Contains(view, "stub") {
		t.Errorf("view missing game output:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 10 {
		t.Errorf("view has %d lines, want 10", lines)
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorWall)
	s.DrawTextColored(2, 0, "cd", core.ColorCoin)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("RenderScreen produced %d newlines, want 1", n)
	}
}
