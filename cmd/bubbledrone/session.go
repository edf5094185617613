package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vovakirdan/bubble-drone/internal/audio"
	"github.com/vovakirdan/bubble-drone/internal/config"
	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/games/drone"
	"github.com/vovakirdan/bubble-drone/internal/level"
	"github.com/vovakirdan/bubble-drone/internal/storage"
)

func parseDifficulty() (config.DifficultyPreset, error) {
	return config.ParsePreset(viper.GetString(keyDifficulty))
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig(startLevel int) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: viper.GetInt(keyFPS),
		Seed:     viper.GetInt64(keySeed),
		Level:    startLevel,
	}
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the scores database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// startAudio routes game cues to the speaker at the stored volume.
// The returned func stops the sound.
func startAudio(store *storage.Store, logger *log.Logger) func() {
	if viper.GetBool(keyMute) {
		drone.SetCuer(nil)
		return func() {}
	}

	volume := storage.DefaultVolume
	if store != nil {
		v, err := store.Volume()
		if err != nil {
			logger.Warn("bad stored volume", "err", err)
		}
		volume = v
	}

	cuer, stop := audio.Open(volume, logger)
	drone.SetCuer(cuer)
	return func() {
		drone.SetCuer(nil)
		stop()
	}
}

// unlockedLevel returns the highest level the player may start on.
// Custom level directories are never locked.
func unlockedLevel(store *storage.Store, levels []level.Level) int {
	if viper.GetString(keyLevels) != "" || store == nil {
		return levels[len(levels)-1].ID
	}
	n, err := store.UnlockedLevel(drone.ID)
	if err != nil {
		return 1
	}
	return n
}
