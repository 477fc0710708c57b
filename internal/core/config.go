package core

import "time"

// RuntimeConfig contains configuration passed to widgets and the loop at startup.
// Game constants live in the YAML config; this carries timing and seeding.
type RuntimeConfig struct {
	TickRate   int           // Simulation ticks per second (default 10)
	Dwell      time.Duration // How long the final screen stays up
	Seed       int64         // RNG seed, 0 means time-based
	ConfigPath string        // Optional YAML path for game constants
}

// DefaultConfig returns a RuntimeConfig with the stock timing.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 10,
		Dwell:    2 * time.Second,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickInterval returns the duration of one simulation tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 10
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Pipes fully passed
	GameOver bool // Whether the game has ended
	Ticks    int  // Ticks simulated so far
}

// Events records what happened during a single tick.
type Events struct {
	Flapped bool // A pending flap was consumed
	Scored  bool // The oldest pipe scrolled off and was counted
	Crashed bool // The tick ended the game
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events Events
}
