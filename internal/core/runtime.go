package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic gameplay
	Level    int   // Level to start on (1-based, 0 means first)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
		Level:    1,
	}
}

// TickDuration returns the fixed simulation step for this config.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	Level    int  // Level currently being played
	Reached  int  // Highest level reached in this run
	GameOver bool // Whether the game has ended
	Won      bool // Whether the campaign was completed
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind classifies notable things that happened during a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventLevelCleared
	EventPlayerDied
	EventCampaignWon
)

// Event is a notification emitted by a simulation tick.
type Event struct {
	Kind  EventKind
	Level int
}
