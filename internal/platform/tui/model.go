// Package tui provides the Bubble Tea integration for bubble drone.
// It runs the terminal UI loop, maps keys to actions and serves SSH sessions.
package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/registry"
	"github.com/vovakirdan/bubble-drone/internal/storage"
)

const (
	// ScreenshotDir is the directory under the home directory for Ctrl+S dumps.
	ScreenshotDir = ".bubbledrone/screenshots"
	// StatusRows is the height of the HUD bar games draw at the top.
	StatusRows = 1
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used by game models.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next simulation tick one fixed step from now.
func tickCmd(step time.Duration) tea.Cmd {
	return tea.Tick(step, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// resizer is implemented by games that can follow a terminal resize without
// starting over.
type resizer interface {
	Resize(w, h int)
}

// GameModel runs one game: it feeds key presses to the fixed tick, records
// runs and level progress, and hands control back to a menu when asked.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	renderer   *Renderer
	runID      string
	log        *log.Logger
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	runID := storage.NewRunID()
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		renderer:   NewRenderer(StatusRows),
		runID:      runID,
		log:        logger.With("game", game.ID(), "run", runID),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	return tickCmd(m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc returns to the menu when the game is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// A finished run restarts with a fresh seed and a new run ID
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.runID = storage.NewRunID()
		m.log = logger.With("game", m.game.ID(), "run", m.runID)
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.keyMapper.Release()
		return m, tickCmd(m.config.TickDuration())
	}

	m.keyMapper.Hold(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.record(result)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickDuration())
}

// record stores level progress and the final score of a run.
func (m *GameModel) record(result core.StepResult) {
	for _, e := range result.Events {
		switch e.Kind {
		case core.EventLevelCleared:
			m.log.Info("level cleared", "level", e.Level, "score", result.State.Score)
			if m.store == nil || result.State.Won {
				continue
			}
			if err := m.store.UnlockLevel(m.game.ID(), result.State.Level); err != nil {
				m.log.Warn("cannot unlock level", "level", result.State.Level, "err", err)
			}
		case core.EventPlayerDied:
			m.log.Info("drone lost", "level", e.Level, "score", result.State.Score)
		case core.EventCampaignWon:
			m.log.Info("campaign won", "score", result.State.Score)
		}
	}

	if !result.State.GameOver || m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || result.State.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.runID, result.State.Score, result.State.Reached); err != nil {
		m.log.Warn("cannot save score", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ScreenshotDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	m.log.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunID returns the ID under which the current run is recorded.
func (m GameModel) RunID() string {
	return m.runID
}

// Run plays game in the local terminal until the player quits or asks for
// the menu. It reports whether the menu was requested.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
