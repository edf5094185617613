package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/games/drone"
	"github.com/vovakirdan/bubble-drone/internal/level"
	"github.com/vovakirdan/bubble-drone/internal/platform/tui"
	"github.com/vovakirdan/bubble-drone/internal/registry"
	"github.com/vovakirdan/bubble-drone/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to fly the selected level.
After a run ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - High scores
  Q            - Quit

Examples:
  bubbledrone menu
  bubbledrone menu --fps 60
  bubbledrone menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	levels, err := drone.LoadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	stopAudio := startAudio(store, appLog)
	defer stopAudio()

	menuLoop(store, levels, runtimeConfig(1))
}

// menuLoop alternates between the level picker, the scoreboard and the game
// until the player quits.
func menuLoop(store *storage.Store, levels []level.Level, cfg core.RuntimeConfig) {
	title := drone.New().Title()

	for {
		menuResult, err := tui.RunMenu(store, cfg, drone.ID, title, levels)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, drone.ID, levels, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from scoreboard
		}

		game, err := registry.Create(drone.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			return
		}

		cfg.Level = menuResult.Level
		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
