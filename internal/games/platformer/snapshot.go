package platformer

// Snapshot captures the observable demo state for determinism checks and
// run recording.
type Snapshot struct {
	Tick     uint64
	X, Y     float64
	VX, VY   float64
	Grounded bool
	Contacts int
	Coins    int
	Score    int
	GameOver bool
	Won      bool
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		VX:       g.velocity.X(),
		VY:       g.velocity.Y(),
		Grounded: g.grounded,
		Contacts: len(g.contacts),
		Coins:    g.coins,
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
	}
	if g.scene != nil {
		pos, _ := g.scene.World.Position(g.scene.Player)
		snap.X, snap.Y = pos.X(), pos.Y()
	}
	return snap
}
