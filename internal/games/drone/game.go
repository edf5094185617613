// Package drone is the bubble drone game: fly a drone through a level,
// collect colored bubbles and let their effects clear the way to the finish.
package drone

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/config"
	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/hazard"
	"github.com/vovakirdan/bubble-drone/internal/level"
	"github.com/vovakirdan/bubble-drone/internal/player"
	"github.com/vovakirdan/bubble-drone/internal/registry"
	"github.com/vovakirdan/bubble-drone/internal/sched"
	"github.com/vovakirdan/bubble-drone/internal/spawner"
)

// ID is the registry and score table identifier of the game.
const ID = "drone"

// Score rewards
const (
	ScoreAttach = 10  // bubble picked up
	ScoreEffect = 25  // color effect resolved
	ScoreLevel  = 500 // level cleared
)

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
	StateWin      = "win"
)

// Minimum terminal size for a playable view.
const (
	minScreenW = 40
	minScreenH = 12
)

var (
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	// levelDir is a directory of custom levels replacing the campaign
	levelDir string

	cues   core.Cuer   = core.NopCuer{}
	logger *log.Logger = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLevelDir makes games load their levels from dir. Empty restores the campaign.
func SetLevelDir(dir string) {
	levelDir = dir
}

// SetCuer routes presentation cues of new games to c.
func SetCuer(c core.Cuer) {
	if c == nil {
		c = core.NopCuer{}
	}
	cues = c
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadLevels returns the levels games will play, in order.
func LoadLevels() ([]level.Level, error) {
	if levelDir != "" {
		levels, err := level.NewLoader(levelDir).LoadAll()
		if err != nil {
			return nil, err
		}
		if len(levels) > 0 {
			return levels, nil
		}
		logger.Warn("no levels in directory, using campaign", "dir", levelDir)
	}
	return level.Campaign().LoadAll()
}

// Game implements the drone game logic.
type Game struct {
	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.DroneConfig
	difficulty *config.DifficultyManager
	cues       core.Cuer
	log        *log.Logger

	// Campaign
	levels []level.Level
	index  int
	lvl    level.Level

	// Per-level world
	sched     *sched.Scheduler
	rng       *core.RNG
	field     *bubble.Field
	drone     *player.Controller
	course    *hazard.Course
	producers []*spawner.Producer

	// Run state
	state          string
	score          int
	levelScore     int // score when the current level started
	reached        int
	tick           int
	popped         int
	died           bool
	events         []core.Event
	screenTooSmall bool
}

// New creates a new drone game instance.
func New() *Game {
	return &Game{state: StateGameOver}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Bubble Drone" }

// Reset starts a new run on the level with ID runtime.Level, or on the first
// level when no such level exists.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cues = cues
	g.log = logger

	cfg, err := config.LoadDrone(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultDroneConfig()
	}
	if difficultyPreset != "" {
		config.ApplyDronePreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.levels, err = LoadLevels()
	if err == nil && len(g.levels) == 0 {
		err = level.ErrNotFound
	}
	if err != nil {
		g.log.Error("cannot load levels", "err", err)
		g.levels = nil
		g.state = StateGameOver
		return
	}

	g.rng = core.NewRNG(runtime.Seed)
	g.score = 0
	g.levelScore = 0
	g.tick = 0
	g.popped = 0
	g.events = nil

	start := slices.IndexFunc(g.levels, func(l level.Level) bool { return l.ID == runtime.Level })
	if start < 0 {
		start = 0
	}
	g.reached = g.levels[start].ID
	g.enterLevel(start)
}

// Resize adapts the game to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < minScreenW || h < minScreenH
}

// enterLevel builds the world of level i and starts playing it.
func (g *Game) enterLevel(i int) {
	if err := g.loadLevel(i); err != nil {
		g.log.Error("cannot load level", "level", g.levels[i].ID, "err", err)
		g.state = StateGameOver
		return
	}
	g.state = StatePlaying
	g.cues.Cue("level", core.EffectStart)
}

// loadLevel replaces the per-level world with a fresh one for level i.
func (g *Game) loadLevel(i int) error {
	if g.field != nil {
		g.field.Clear()
	}
	if g.course != nil {
		g.course.Clear()
	}

	l := g.levels[i]
	g.index = i
	g.lvl = l
	g.levelScore = g.score
	g.died = false

	g.sched = sched.New()

	g.drone = player.New(g.cfg.PlayerTuning(), g.sched, g.cues)
	g.drone.Reset(l.Start)
	g.drone.OnDeath(func() { g.died = true })

	field, err := bubble.NewField(bubble.Options{
		Tuning:          g.cfg.Tuning(),
		FloatCapacity:   g.cfg.Pools.Float,
		CombineCapacity: g.cfg.Pools.Combine,
		Layout:          g.cfg.Pools.Layout,
		Sched:           g.sched,
		Cues:            g.cues,
		Logger:          g.log,
		Hooks: bubble.Hooks{
			Attached: func(*bubble.Bubble) { g.score += ScoreAttach },
			Resolved: func(*bubble.Bubble, int) { g.score += ScoreEffect },
			Popped:   func(*bubble.Bubble) { g.popped++ },
		},
	})
	if err != nil {
		return fmt.Errorf("drone: bubbles: %w", err)
	}
	field.SetPlayer(g.drone)
	field.SetTerrain(l.Terrain)
	g.field = field

	course, err := hazard.NewCourse(hazard.Options{
		Bounds:         l.Bounds,
		BulletCapacity: g.cfg.Pools.Bullets,
		Bee:            g.cfg.BeeTuning(),
		Layout:         g.cfg.Pools.Layout,
		Cues:           g.cues,
		Logger:         g.log,
	})
	if err != nil {
		return fmt.Errorf("drone: hazards: %w", err)
	}
	course.Terrain = l.Terrain
	course.Finish = &hazard.FinishLine{Box: l.Finish}
	for _, d := range l.Dye {
		course.Zones = append(course.Zones, &hazard.DyeZone{Box: d.Box, Color: d.Color})
	}
	for _, s := range l.Spines {
		if s.Moving() {
			from := core.V(s.Box.X, s.Box.Y)
			course.Spines = append(course.Spines, hazard.NewMovingSpine(from, s.To, core.V(s.Box.W, s.Box.H), s.Speed))
		} else {
			course.Spines = append(course.Spines, hazard.NewSpine(s.Box))
		}
	}
	for _, at := range l.Bees {
		course.AddBee(at)
	}
	g.course = course

	g.producers = g.producers[:0]
	for _, pc := range l.Producers {
		g.producers = append(g.producers, spawner.New(pc, field, g.rng, g.cues))
	}

	g.log.Debug("level loaded", "level", l.ID, "name", l.Name, "producers", len(l.Producers))
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if g.screenTooSmall || len(g.levels) == 0 {
		return g.result()
	}

	// Handle restart: a finished run starts over, a running one retries the level
	if in.Has(core.ActionRestart) {
		switch g.state {
		case StateGameOver, StateWin:
			g.Reset(g.runtime)
		default:
			g.score = g.levelScore
			g.enterLevel(g.index)
		}
		return g.result()
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return g.result()
	}

	g.tick++
	dt := g.runtime.TickDuration()

	g.drone.Move(in.Direction(), dt)
	g.drone.Collide(g.lvl.Terrain)
	g.drone.Confine(g.lvl.Bounds)

	g.sched.Tick(dt)
	g.applyDifficulty()

	for _, p := range g.producers {
		p.Update(dt)
	}
	g.field.Update(dt)
	finished := g.course.Update(dt, g.field, g.drone)

	switch {
	case g.died:
		g.state = StateGameOver
		g.events = append(g.events, core.Event{Kind: core.EventPlayerDied, Level: g.lvl.ID})
	case finished && !g.drone.IsDead():
		g.completeLevel()
	}

	return g.result()
}

// applyDifficulty rescales producer intervals and bullet speed.
func (g *Game) applyDifficulty() {
	for i, p := range g.producers {
		p.SetInterval(g.difficulty.Interval(g.lvl.Producers[i].Interval, g.score, g.tick))
	}
	g.course.SetBulletSpeed(g.difficulty.BulletSpeed(g.cfg.Bee.BulletSpeed, g.score, g.tick))
}

// completeLevel scores the level and moves on to the next one.
func (g *Game) completeLevel() {
	g.score += ScoreLevel
	g.events = append(g.events, core.Event{Kind: core.EventLevelCleared, Level: g.lvl.ID})

	next := g.index + 1
	if next >= len(g.levels) {
		g.state = StateWin
		g.events = append(g.events, core.Event{Kind: core.EventCampaignWon, Level: g.lvl.ID})
		return
	}
	g.reached = max(g.reached, g.levels[next].ID)
	g.enterLevel(next)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.lvl.ID,
		Reached:  g.reached,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// Level returns the level being played.
func (g *Game) Level() level.Level { return g.lvl }

// Field returns the bubbles of the current level.
func (g *Game) Field() *bubble.Field { return g.field }

// Drone returns the player controller of the current level.
func (g *Game) Drone() *player.Controller { return g.drone }

// Levels returns the levels of the run.
func (g *Game) Levels() []level.Level { return slices.Clone(g.levels) }

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
