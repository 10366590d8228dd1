package core

// RuntimeConfig is passed to games when they are reset.
type RuntimeConfig struct {
	ScreenW  int    // Viewport width in cells
	ScreenH  int    // Viewport height in cells
	TickRate int    // Simulation ticks per second (default 60)
	Scene    string // Optional path of a scene file overriding the built-in one
	Preset   string // Optional physics preset name
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Tick       uint64
	Score      int
	Coins      int // Coins collected
	CoinsTotal int // Coins placed in the scene
	Grounded   bool
	GameOver   bool
	Won        bool
	Paused     bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState

	// Collision counters from the physics step, for logging.
	Contacts   int
	RayHits    int
	Candidates int
}
