package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-drone/internal/games/drone"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long: `Shows the levels of the campaign (or of --levels) and which of
them are unlocked.`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels, err := drone.LoadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	unlocked := unlockedLevel(store, levels)

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, l := range levels {
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-9s  %-8s  %s\n", "ID", maxNameLen, "Name", "Producers", "Hazards", "Status")
	fmt.Printf("  %-3s  %-*s  %-9s  %-8s  %s\n", "--", maxNameLen, "----", "---------", "-------", "------")

	for i, l := range levels {
		status := "open"
		if i > 0 && l.ID > unlocked {
			status = "locked"
		}
		hazards := len(l.Spines) + len(l.Bees)
		fmt.Printf("  %-3d  %-*s  %-9d  %-8d  %s\n", l.ID, maxNameLen, l.Name, len(l.Producers), hazards, status)
	}

	fmt.Println()
	fmt.Println("Run 'bubbledrone play <id>' to fly a level.")
}
