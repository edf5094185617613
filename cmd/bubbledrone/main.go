// bubbledrone is a terminal arcade game: fly a drone, collect colored
// bubbles and let their effects clear the way to the finish line.
//
// Usage:
//
//	bubbledrone play [level]     - Play the campaign from a level
//	bubbledrone menu             - Pick a level interactively
//	bubbledrone levels           - List the levels
//	bubbledrone scores           - Show high scores
//	bubbledrone serve            - Start SSH server for remote play
//	bubbledrone settings         - Show or change stored settings
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.bubbledrone/scores.db)
//	--config <path>       - Custom game tuning YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <dir>        - Directory of custom level YAML files
//	--log <path>          - Write logs to a file
//
// Every flag can also be set with a BUBBLEDRONE_ environment variable
// (BUBBLEDRONE_FPS, BUBBLEDRONE_LOG_LEVEL, ...) or in
// ~/.bubbledrone/bubbledrone.yaml.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/bubble-drone/internal/games/drone"
	"github.com/vovakirdan/bubble-drone/internal/platform/tui"
)

// Setting keys shared by flags, environment and the CLI config file.
const (
	keyFPS        = "fps"
	keySeed       = "seed"
	keyDB         = "db"
	keyConfig     = "config"
	keyDifficulty = "difficulty"
	keyLevels     = "levels"
	keyLog        = "log"
	keyLogLevel   = "log-level"
	keyMute       = "mute"
)

var (
	// logFile is the open log destination, closed on exit.
	logFile io.Closer
	// appLog is the logger set up from the --log flags.
	appLog = log.New(io.Discard)
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubbledrone",
	Short: "Bubble Drone - a bubble collecting arcade game for the terminal",
	Long: `Bubble Drone is a terminal arcade game. Fly the drone with WASD or
the arrow keys, pick up bubbles and use their colors to get past spines
and bees to the finish line.

Bubble colors:
  red     - kills the drone on contact, or pops whatever it hits
  yellow  - shields the drone for a few seconds
  orange  - bursts nearby bubbles and speeds the drone up
  green   - turns the other bubbles green and multiplies

Available commands:
  play      - Play the campaign
  menu      - Interactive level picker
  levels    - Show all levels
  scores    - View high scores
  serve     - Start SSH server for remote play
  settings  - Show or change stored settings

Examples:
  bubbledrone play
  bubbledrone play 2 --difficulty hard
  bubbledrone menu
  bubbledrone serve --ssh :2222
  bubbledrone scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setup()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.Int(keyFPS, 30, "Tick rate (frames per second)")
	flags.Int64(keySeed, 0, "RNG seed (0 = random based on time)")
	flags.String(keyDB, "~/.bubbledrone/scores.db", "Path to scores database")
	flags.String(keyConfig, "", "Path to custom game config YAML")
	flags.String(keyDifficulty, "", "Difficulty preset: easy, normal, hard, fixed")
	flags.String(keyLevels, "", "Directory of custom levels replacing the campaign")
	flags.String(keyLog, "", "Write logs to this file")
	flags.String(keyLogLevel, "info", "Log level: debug, info, warn, error")
	flags.Bool(keyMute, false, "Disable sound")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
}

// initConfig wires environment variables and the optional CLI config file.
func initConfig() {
	viper.SetEnvPrefix("BUBBLEDRONE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("bubbledrone")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.bubbledrone")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: cannot read %s: %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

// setup applies the resolved settings to the game and the UI.
func setup() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	appLog = logger
	drone.SetLogger(logger)
	tui.SetLogger(logger)

	if _, err := parseDifficulty(); err != nil {
		return err
	}
	drone.SetConfigPath(viper.GetString(keyConfig))
	drone.SetDifficultyPreset(viper.GetString(keyDifficulty))
	drone.SetLevelDir(viper.GetString(keyLevels))

	if fps := viper.GetInt(keyFPS); fps <= 0 || fps > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", fps)
	}
	return nil
}

// newLogger opens the log file, or discards logs when none is set.
// The terminal belongs to the game while it runs.
func newLogger() (*log.Logger, error) {
	path := viper.GetString(keyLog)
	if path == "" {
		return log.New(io.Discard), nil
	}

	level, err := log.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	f, err := os.OpenFile(expandHome(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "bubbledrone",
		Level:           level,
	}), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
