package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/level"
	"github.com/vovakirdan/bubble-drone/internal/storage"
)

// scriptedGame replays canned states and records the input it was given.
type scriptedGame struct {
	state  core.GameState
	events []core.Event
	inputs []core.InputFrame
	resets int
	sizes  [][2]int
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Level: 1, Reached: 1}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }

func (g *scriptedGame) State() core.GameState { return g.state }

func (g *scriptedGame) Resize(w, h int) { g.sizes = append(g.sizes, [2]int{w, h}) }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	g.inputs = append(g.inputs, frame)
	res := core.StepResult{State: g.state, Events: g.events}
	g.events = nil
	return res
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, g *scriptedGame, store *storage.Store) GameModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	m := NewGameModel(g, store, cfg)
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm
}

func TestModelFeedsHeldKeys(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, runes("w"))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(g.inputs) != 2 {
		t.Fatalf("Step() called %d times, expected 2", len(g.inputs))
	}
	for i, in := range g.inputs {
		if !in.Has(core.ActionUp) {
			t.Errorf("tick %d: Up not held", i)
		}
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	g := &scriptedGame{}
	m := newTestModel(t, g, store)

	g.state = core.GameState{Score: 620, Level: 2, Reached: 2, GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	scores, err := store.TopScores(g.ID(), 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Score != 620 || scores[0].Level != 2 {
		t.Errorf("saved score %d level %d, expected 620 level 2", scores[0].Score, scores[0].Level)
	}
	if scores[0].RunID != m.RunID() {
		t.Errorf("saved run %q, expected %q", scores[0].RunID, m.RunID())
	}
}

func TestModelUnlocksNextLevel(t *testing.T) {
	store := openTestStore(t)
	g := &scriptedGame{}
	m := newTestModel(t, g, store)

	g.state = core.GameState{Score: 500, Level: 2, Reached: 2}
	g.events = []core.Event{{Kind: core.EventLevelCleared, Level: 1}}
	update(t, m, TickMsg{})

	unlocked, err := store.UnlockedLevel(g.ID())
	if err != nil {
		t.Fatalf("UnlockedLevel() error = %v", err)
	}
	if unlocked != 2 {
		t.Errorf("UnlockedLevel() = %d, expected 2", unlocked)
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(t, g, nil)
	first := m.RunID()

	g.state = core.GameState{Score: 10, GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, runes("r"))
	m = update(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("Reset() called %d times, expected 2", g.resets)
	}
	if m.RunID() == first {
		t.Error("restart kept the old run ID")
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, TickMsg{})
	m = update(t, m, runes("b"))
	if m.BackToMenu() {
		t.Error("back to menu while playing")
	}

	m = update(t, m, TickMsg{})
	g.state.Paused = true
	m = update(t, m, TickMsg{})
	m = update(t, m, runes("b"))
	if !m.BackToMenu() {
		t.Error("back to menu ignored while paused")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(t, g, nil)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resets != 1 {
		t.Errorf("Reset() called %d times, expected 1", g.resets)
	}
	if len(g.sizes) != 1 || g.sizes[0] != [2]int{100, 30} {
		t.Errorf("Resize() calls = %v, expected [[100 30]]", g.sizes)
	}
}

func TestMenuLocksLevels(t *testing.T) {
	store := openTestStore(t)
	if err := store.UnlockLevel("scripted", 2); err != nil {
		t.Fatalf("UnlockLevel() error = %v", err)
	}
	levels := []level.Level{{ID: 1, Name: "One"}, {ID: 2, Name: "Two"}, {ID: 3, Name: "Three"}}

	m := NewMenuModel(store, core.DefaultConfig(), "scripted", "Scripted", levels)
	for i, expected := range []bool{false, false, true} {
		if m.items[i].Locked != expected {
			t.Errorf("level %d Locked = %v, expected %v", i+1, m.items[i].Locked, expected)
		}
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	next, _ := m.Update(down)
	next, _ = next.Update(down)
	next, _ = next.Update(enter)
	if next.(MenuModel).Selected() != nil {
		t.Error("selected a locked level")
	}

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(enter)
	res := next.(MenuModel).result()
	if res.Quit || res.Level != 2 {
		t.Errorf("result() = %+v, expected level 2", res)
	}
	if res.Config.Level != 2 {
		t.Errorf("Config().Level = %d, expected 2", res.Config.Level)
	}
}
