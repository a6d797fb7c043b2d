package core

// RuntimeConfig is what the platform hands a game when it starts.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     uint32 // Randomizer seed
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
// Seed 0 is a valid seed; the platform substitutes a time-based one only
// when the user did not ask for a specific seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status a game reports to the platform. The puzzle has no
// score; the counters are plain facts about the session.
type GameState struct {
	Tick      int64
	Pieces    int // Pieces locked
	Rows      int // Rows cleared
	GameOver  bool
	Paused    bool
	EndReason string // Empty while running
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
