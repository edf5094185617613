package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/bubble-drone/internal/games/drone"
	"github.com/vovakirdan/bubble-drone/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and fly.

Each SSH connection gets its own session with a level picker.
Scores and unlocked levels are stored per server, so all users share
the same leaderboard and progress. Sound stays on the server's side
and is disabled.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bubbledrone/host_key

Examples:
  bubbledrone serve                           # Listen on :23234
  bubbledrone serve --ssh :2222               # Listen on port 2222
  bubbledrone serve --host-key ./my_host_key  # Use specific host key
  bubbledrone serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	// A shared speaker makes no sense for remote players
	drone.SetCuer(nil)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = viper.GetString(keyDB)
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.GameID = drone.ID
	cfg.TickRate = viper.GetInt(keyFPS)
	cfg.Levels = drone.LoadLevels
	if viper.GetString(keyLog) != "" {
		cfg.Logger = appLog.WithPrefix("bubbledrone-ssh")
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	// Without a log file, sessions log to stderr next to the server
	if cfg.Logger == nil {
		l := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "bubbledrone"})
		drone.SetLogger(l)
		tui.SetLogger(l)
	}

	fmt.Printf("Starting Bubble Drone SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
