// Package platformer implements the collision demos: a side-view platformer
// with gravity and jumping, and a top-down mode with free movement. Each tick
// turns input into a desired motion, lets the collision world resolve it,
// then reads contacts and rays back to update velocity and grounding.
package platformer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/aabb-lab/internal/collision"
	"github.com/vovakirdan/aabb-lab/internal/config"
	"github.com/vovakirdan/aabb-lab/internal/core"
	"github.com/vovakirdan/aabb-lab/internal/registry"
	"github.com/vovakirdan/aabb-lab/internal/scene"
)

// Scoring
const (
	CoinPoints      = 100
	WinBonus        = 1000
	BonusDecayTicks = 10 // One bonus point lost per this many ticks
)

// Game drives one scene.
type Game struct {
	id    string
	title string

	cfg   core.RuntimeConfig
	scene *scene.Scene

	velocity mgl64.Vec2
	grounded bool
	contacts []collision.Contact
	stats    collision.StepStats

	tick     uint64
	score    int
	coins    int
	gameOver bool
	won      bool
	paused   bool
	debug    bool
}

// New creates a demo for the scene with the given id.
func New(id, title string) *Game {
	return &Game{id: id, title: title}
}

// ID returns the scene id.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the scene and restarts the demo.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	sceneCfg, err := config.Load(g.id, cfg.Scene)
	if err != nil {
		return fmt.Errorf("platformer: %w", err)
	}
	preset, err := config.ParsePreset(cfg.Preset)
	if err != nil {
		return fmt.Errorf("platformer: %w", err)
	}
	config.ApplyPreset(&sceneCfg, preset)

	s, err := scene.Build(sceneCfg)
	if err != nil {
		return fmt.Errorf("platformer: %w", err)
	}

	debug := g.debug
	*g = Game{id: g.id, title: g.title, cfg: cfg, scene: s, debug: debug}
	return nil
}

// Scene returns the loaded scene, or nil before Reset.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// LastStats returns the collision statistics of the last tick.
func (g *Game) LastStats() collision.StepStats {
	return g.stats
}

// Step advances the demo by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.scene == nil {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	physics := g.scene.Config.Physics
	if g.scene.Config.Mode == config.ModeTopDown {
		g.steerTopDown(in, physics)
	} else {
		g.steerPlatformer(in, physics)
	}

	world := g.scene.World
	world.SetMotion(g.scene.Player, g.velocity)
	g.stats = world.Step()
	g.contacts = world.Contacts(g.scene.Player)
	g.applyContacts()

	got := g.scene.CollectCoins(g.scene.PlayerBox())
	g.coins += got
	g.score += got * CoinPoints

	switch {
	case len(g.scene.Coins) > 0 && g.scene.CoinsLeft() == 0:
		g.won = true
		g.gameOver = true
		g.score += max(0, WinBonus-int(g.tick/BonusDecayTicks))
	case g.scene.PlayerBox().Min().Y() > g.scene.Size().Y():
		g.gameOver = true
	}

	return core.StepResult{
		State:      g.State(),
		Contacts:   g.stats.Contacts,
		RayHits:    g.stats.RayHits,
		Candidates: g.stats.Candidates,
	}
}

func (g *Game) steerPlatformer(in core.InputFrame, p config.PhysicsConfig) {
	dir := 0.0
	if in.Has(core.ActionLeft) {
		dir--
	}
	if in.Has(core.ActionRight) {
		dir++
	}
	if dir != 0 {
		g.velocity[0] = dir * p.MoveSpeed
	} else {
		g.velocity[0] *= p.Friction
	}

	g.velocity[1] = min(g.velocity[1]+p.Gravity, p.MaxFallSpeed)
	if g.grounded && (in.Has(core.ActionJump) || in.Has(core.ActionUp)) {
		g.velocity[1] = -p.JumpStrength
	}
}

func (g *Game) steerTopDown(in core.InputFrame, p config.PhysicsConfig) {
	var dir mgl64.Vec2
	if in.Has(core.ActionLeft) {
		dir[0]--
	}
	if in.Has(core.ActionRight) {
		dir[0]++
	}
	if in.Has(core.ActionUp) {
		dir[1]--
	}
	if in.Has(core.ActionDown) {
		dir[1]++
	}

	if dir == (mgl64.Vec2{}) {
		g.velocity = g.velocity.Mul(p.Friction)
		return
	}
	g.velocity = dir.Normalize().Mul(p.MoveSpeed)
}

// applyContacts stops velocity into every touched surface and works out
// whether the player is standing on something. The y axis grows downwards,
// so a floor pushes back with a negative normal.
func (g *Game) applyContacts() {
	g.grounded = false
	for _, c := range g.contacts {
		switch {
		case c.Normal.Y() < 0:
			g.grounded = true
			g.velocity[1] = min(g.velocity[1], 0)
		case c.Normal.Y() > 0:
			g.velocity[1] = max(g.velocity[1], 0)
		case c.Normal.X() != 0:
			g.velocity[0] = 0
		}
	}

	if g.scene.Config.Mode == config.ModeTopDown {
		g.grounded = false
		return
	}
	if id, ok := g.scene.Ray(config.GroundRay); ok && g.scene.World.IsColliding(id) {
		g.grounded = true
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Tick:     g.tick,
		Score:    g.score,
		Coins:    g.coins,
		Grounded: g.grounded,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
	if g.scene != nil {
		st.CoinsTotal = len(g.scene.Coins)
	}
	return st
}

var demos = []struct {
	id    string
	title string
}{
	{"platformer", "Platformer"},
	{"caverns", "Caverns"},
	{"corridors", "Corridors (top-down)"},
}

func init() {
	for _, d := range demos {
		registry.Register(d.id, func() registry.Game {
			return New(d.id, d.title)
		})
	}
}
