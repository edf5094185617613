package config

import (
	_ "embed"
)

//go:embed defaults/drone.yaml
var defaultDroneYAML []byte

// DefaultDroneConfig returns the default drone game configuration.
func DefaultDroneConfig() DroneConfig {
	return DroneConfig{
		Bubbles: BubbleConfig{
			Radius:            0.5,
			ClosestRatio:      0.8,
			ReskinRatio:       1.0,
			AttackDelay:       0.4,
			YellowDuration:    4.0,
			YellowScale:       5.5,
			OrangeRadius:      2.0,
			GreenSizeRatio:    0.5,
			GreenSpawn:        0.5,
			BurstThreshold:    0.7,
			MaxCompression:    1.0,
			Expansion:         0.5,
			RecoverySpeed:     2.0,
			KnockbackDistance: 0.5,
			KnockbackSpeed:    10.0,
		},
		Player: PlayerConfig{
			Speed:         5.0,
			Radius:        0.8,
			Boost:         1.0,
			BoostDuration: 5.0,
			DeathDuration: 1.2,
			Drag:          6.0,
		},
		Pools: PoolConfig{
			Float:   8,
			Combine: 16,
			Bullets: 8,
			Layout:  true,
		},
		Bee: BeeConfig{
			ViewRange:    20.0,
			MoveDistance: 3.0,
			Speed:        5.0,
			Pause:        0.5,
			BulletSpeed:  8.0,
			BulletRadius: 0.3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 5400, // three minutes at 30 ticks per second
			},
			Scaling: ScalingConfig{
				IntervalReduction: 0.5,
				BulletSpeedup:     0.5,
			},
		},
	}
}
