package core

// RuntimeConfig contains host settings passed to a session at reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic play
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the coarse status reported to the platform after each tick.
type GameState struct {
	Score    int    // Money rounded down, shown on the HUD
	GameOver bool   // The run has ended
	Paused   bool   // Simulation is suspended (paused or shopping)
	InShop   bool   // A dealer shop is open
	InMenu   bool   // Title menu is showing
	Reason   string // Game over reason, empty while running
}

// StepResult is returned by Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
