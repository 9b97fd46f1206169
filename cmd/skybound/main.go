// skybound is a Flappy Bird-style terminal game with a shared leaderboard.
//
// Usage:
//
//	skybound play                  - Play in the terminal
//	skybound leaderboard           - Show the leaderboard
//	skybound leaderboard submit    - Submit a score by hand
//	skybound leaderboard winner    - Show the current leader
//	skybound leaderboard reset     - Clear the leaderboard
//	skybound leaderboard history   - Show runs played on this device
//	skybound serve                 - Run the HTTP scoring service
//	skybound ssh                   - Host the game over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.skybound/configs/skybound.yaml)
//	--db <path>         - Device database
//	--remote <url>      - Scoring service URL
//	--offline           - Never contact the scoring service
//	--timeout <dur>     - Scoring service timeout (default: 1s)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagRemote   string
	flagOffline  bool
	flagTimeout  time.Duration
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skybound",
	Short: "Skybound - flap through the pipes, top the leaderboard",
	Long: `Skybound is a Flappy Bird-style game for the terminal.

Scores go to a shared scoring service when it is reachable and to a
leaderboard on this device when it is not. Up to 10 players fit on a
board; each keeps their best score.

Examples:
  skybound play
  skybound play --difficulty hard
  skybound leaderboard
  skybound serve --backend redis
  skybound ssh --addr :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagDBPath, "db", "", "Path to the device database")
	pf.StringVar(&flagRemote, "remote", "", "Scoring service URL")
	pf.BoolVar(&flagOffline, "offline", false, "Use only the device leaderboard")
	pf.DurationVar(&flagTimeout, "timeout", 0, "Scoring service timeout (e.g. 1s, 500ms)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
}
