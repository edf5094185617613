package config

import (
	"math"
	"time"
)

// Floors keeping the game playable at max difficulty.
const (
	minInterval    = time.Second
	minBulletSpeed = 1.0
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Interval returns the producer refill interval for the current difficulty.
func (d *DifficultyManager) Interval(base time.Duration, score int, ticks int) time.Duration {
	level := d.Level(score, ticks)
	cut := clampF(level*d.cfg.Scaling.IntervalReduction, 0, 1)
	result := time.Duration(float64(base) * (1 - cut))
	if result < minInterval {
		result = min(base, minInterval)
	}
	return result
}

// BulletSpeed returns the bee bullet speed for the current difficulty.
func (d *DifficultyManager) BulletSpeed(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return math.Max(minBulletSpeed, base*(1.0+level*d.cfg.Scaling.BulletSpeedup))
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
