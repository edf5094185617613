// Package registry holds the factories of the playable games. Games register
// themselves in init(), so the CLI, the local runner and the SSH server can
// create them by ID without importing them.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

// Game is the interface a playable game implements.
// Games are pure simulation with no Bubble Tea dependency: the platform
// maps keys to actions, drives the fixed tick and paints the screen buffer.
type Game interface {
	// ID returns the identifier used for CLI commands, score storage and
	// level progress (e.g., "drone").
	ID() string

	// Title returns a human-readable name for display (e.g., "Bubble Drone").
	Title() string

	// Reset starts a new run. The config carries screen size, tick rate,
	// RNG seed and the level to start on.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick and returns the state
	// after the tick together with the events it produced.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current score, level and run flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory. It panics if the ID is taken, which can only
// happen through two init() functions claiming the same game.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// Lookup returns the description of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// List returns every registered game, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	ids := slices.Sorted(maps.Keys(entries))
	out := make([]GameInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, entries[id].info)
	}
	return out
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
