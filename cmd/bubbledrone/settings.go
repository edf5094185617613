package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/bubble-drone/internal/games/drone"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change stored settings",
	Long: `Without a subcommand, prints the stored settings and progress.

Examples:
  bubbledrone settings
  bubbledrone settings volume 0.3
  bubbledrone settings reset-progress`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

var volumeCmd = &cobra.Command{
	Use:   "volume <0..1>",
	Short: "Set the sound volume (0 mutes)",
	Args:  cobra.ExactArgs(1),
	Run:   runVolume,
}

var resetProgressCmd = &cobra.Command{
	Use:   "reset-progress",
	Short: "Lock every level but the first again",
	Args:  cobra.NoArgs,
	Run:   runResetProgress,
}

func init() {
	settingsCmd.AddCommand(volumeCmd)
	settingsCmd.AddCommand(resetProgressCmd)
}

func runSettings(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	volume, err := store.Volume()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	unlocked, err := store.UnlockedLevel(drone.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading progress: %v\n", err)
		os.Exit(1)
	}

	difficulty := viper.GetString(keyDifficulty)
	if difficulty == "" {
		difficulty = "normal"
	}

	fmt.Printf("  %-12s %s\n", "Database", viper.GetString(keyDB))
	fmt.Printf("  %-12s %.2f\n", "Volume", volume)
	fmt.Printf("  %-12s %d\n", "Unlocked", unlocked)
	fmt.Printf("  %-12s %s\n", "Difficulty", difficulty)
	fmt.Printf("  %-12s %d\n", "FPS", viper.GetInt(keyFPS))
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("  %-12s %s\n", "CLI config", used)
	}
}

func runVolume(_ *cobra.Command, args []string) {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || v < 0 || v > 1 {
		fmt.Fprintf(os.Stderr, "Error: volume must be a number between 0 and 1, got %q\n", args[0])
		os.Exit(1)
	}

	store := mustOpenStore()
	defer store.Close()

	if err := store.SetVolume(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving volume: %v\n", err)
		return
	}
	fmt.Printf("Volume set to %.2f\n", v)
}

func runResetProgress(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.ResetProgress(drone.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
		return
	}
	fmt.Println("Progress reset. Only level 1 is open.")
}
