// Package config provides YAML-based tuning for the drone game and
// difficulty management.
package config

import (
	"time"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/hazard"
	"github.com/vovakirdan/bubble-drone/internal/player"
)

// DroneConfig contains all tuning for the drone game.
type DroneConfig struct {
	Bubbles    BubbleConfig     `yaml:"bubbles"`
	Player     PlayerConfig     `yaml:"player"`
	Pools      PoolConfig       `yaml:"pools"`
	Bee        BeeConfig        `yaml:"bee"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BubbleConfig defines bubble behavior. Durations are in seconds.
type BubbleConfig struct {
	Radius       float64 `yaml:"radius"`
	ClosestRatio float64 `yaml:"closest_ratio"`
	ReskinRatio  float64 `yaml:"reskin_ratio"`
	AttackDelay  float64 `yaml:"attack_delay"`

	YellowDuration float64 `yaml:"yellow_duration"`
	YellowScale    float64 `yaml:"yellow_scale"`
	OrangeRadius   float64 `yaml:"orange_radius"`
	GreenSizeRatio float64 `yaml:"green_size_ratio"`
	GreenSpawn     float64 `yaml:"green_spawn"`

	BurstThreshold    float64 `yaml:"burst_threshold"`
	MaxCompression    float64 `yaml:"max_compression"`
	Expansion         float64 `yaml:"expansion"`
	RecoverySpeed     float64 `yaml:"recovery_speed"`
	KnockbackDistance float64 `yaml:"knockback_distance"`
	KnockbackSpeed    float64 `yaml:"knockback_speed"`
}

// PlayerConfig defines drone parameters. Durations are in seconds.
type PlayerConfig struct {
	Speed         float64 `yaml:"speed"`
	Radius        float64 `yaml:"radius"`
	Boost         float64 `yaml:"boost"`
	BoostDuration float64 `yaml:"boost_duration"`
	DeathDuration float64 `yaml:"death_duration"`
	Drag          float64 `yaml:"drag"`
}

// PoolConfig sets the capacity of each pooled kind.
type PoolConfig struct {
	Float   int  `yaml:"float"`   // per float color
	Combine int  `yaml:"combine"` // per combine color
	Bullets int  `yaml:"bullets"`
	Layout  bool `yaml:"layout"` // parent pooled instances under pool/<kind>
}

// BeeConfig defines bee parameters. Durations are in seconds.
type BeeConfig struct {
	ViewRange    float64 `yaml:"view_range"`
	MoveDistance float64 `yaml:"move_distance"`
	Speed        float64 `yaml:"speed"`
	Pause        float64 `yaml:"pause"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletRadius float64 `yaml:"bullet_radius"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	IntervalReduction float64 `yaml:"interval_reduction"` // fraction of the producer interval removed at max difficulty
	BulletSpeedup     float64 `yaml:"bullet_speedup"`     // multiplier added to bullet speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Tuning converts the bubble section into bubble.Tuning.
func (c DroneConfig) Tuning() bubble.Tuning {
	b := c.Bubbles
	return bubble.Tuning{
		Radius:            b.Radius,
		ClosestRatio:      b.ClosestRatio,
		ReskinRatio:       b.ReskinRatio,
		AttackDelay:       seconds(b.AttackDelay),
		YellowDuration:    seconds(b.YellowDuration),
		YellowScale:       b.YellowScale,
		OrangeRadius:      b.OrangeRadius,
		GreenSizeRatio:    b.GreenSizeRatio,
		GreenSpawn:        b.GreenSpawn,
		BurstThreshold:    b.BurstThreshold,
		MaxCompression:    b.MaxCompression,
		Expansion:         b.Expansion,
		RecoverySpeed:     b.RecoverySpeed,
		KnockbackDistance: b.KnockbackDistance,
		KnockbackSpeed:    b.KnockbackSpeed,
	}
}

// PlayerTuning converts the player section into player.Config.
func (c DroneConfig) PlayerTuning() player.Config {
	p := c.Player
	return player.Config{
		Speed:         p.Speed,
		Radius:        p.Radius,
		Boost:         p.Boost,
		BoostDuration: seconds(p.BoostDuration),
		DeathDuration: seconds(p.DeathDuration),
		Drag:          p.Drag,
	}
}

// BeeTuning converts the bee section into hazard.BeeConfig.
func (c DroneConfig) BeeTuning() hazard.BeeConfig {
	b := c.Bee
	return hazard.BeeConfig{
		ViewRange:    b.ViewRange,
		MoveDistance: b.MoveDistance,
		Speed:        b.Speed,
		Pause:        seconds(b.Pause),
		BulletSpeed:  b.BulletSpeed,
		BulletRadius: b.BulletRadius,
	}
}
