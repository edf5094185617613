package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigDir is the per-user directory under the home directory.
const ConfigDir = ".bubbledrone"

// LoadDrone loads the drone game configuration. Keys missing from a file keep
// their default values.
// Search order: customPath -> ~/.bubbledrone/configs/drone.yaml -> ./configs/drone.yaml -> embedded default
func LoadDrone(customPath string) (DroneConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultDroneConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseDrone(data)
		if err != nil {
			return DefaultDroneConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("drone.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseDrone(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "drone.yaml")); err == nil {
		if cfg, err := parseDrone(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseDrone(defaultDroneYAML)
	if err != nil {
		return DefaultDroneConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseDrone(data []byte) (DroneConfig, error) {
	cfg := DefaultDroneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDir, "configs", filename)
}

// ParsePreset parses a difficulty preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyDronePreset modifies the config based on a difficulty preset.
// Easy stretches the shield and the boost, hard shortens the shield and
// speeds up bee bullets.
func ApplyDronePreset(cfg *DroneConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Bubbles.YellowDuration += 1
		cfg.Player.BoostDuration += 1
	case DifficultyHard:
		cfg.Bubbles.YellowDuration = max(1, cfg.Bubbles.YellowDuration-1)
		cfg.Bee.BulletSpeed *= 1.25
	}
}
