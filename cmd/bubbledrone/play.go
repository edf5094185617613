package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-drone/internal/games/drone"
	"github.com/vovakirdan/bubble-drone/internal/platform/tui"
	"github.com/vovakirdan/bubble-drone/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start flying from the given level, or from level 1.
Levels unlock as you clear them.

Controls:
  WASD/Arrows  - Thrust
  P            - Pause
  R            - Restart the level (or the run after game over)
  B/Esc        - Back to the level menu (paused or game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Longer shields and boosts, slow progression
  normal - Default tuning
  hard   - Short shields, faster bullets, starts further along
  fixed  - No progression

Examples:
  bubbledrone play
  bubbledrone play 2
  bubbledrone play --difficulty hard
  bubbledrone play --config ./my-drone.yaml
  bubbledrone play --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	start := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
		start = n
	}

	levels, err := drone.LoadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if limit := unlockedLevel(store, levels); start > limit {
		fmt.Fprintf(os.Stderr, "Error: level %d is locked, clear level %d first\n", start, limit)
		fmt.Fprintln(os.Stderr, "Run 'bubbledrone levels' to see your progress.")
		os.Exit(1)
	}

	stopAudio := startAudio(store, appLog)
	defer stopAudio()

	game, err := registry.Create(drone.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	backToMenu, err := tui.Run(game, store, runtimeConfig(start))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
	if backToMenu {
		menuLoop(store, levels, runtimeConfig(start))
	}
}
