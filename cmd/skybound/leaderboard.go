package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

var (
	flagResetYes     bool
	flagHistoryLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"scores", "lb"},
	Short:   "Show the leaderboard",
	Long: `Display the leaderboard: up to 10 players, each with their best score.

The scoring service answers when it is reachable; otherwise the board
stored on this device is shown.

Examples:
  skybound leaderboard
  skybound leaderboard winner
  skybound leaderboard submit Ann 12
  skybound leaderboard reset --yes
  skybound leaderboard history`,
	Args: cobra.NoArgs,
	RunE: runLeaderboardList,
}

var leaderboardSubmitCmd = &cobra.Command{
	Use:   "submit <name> <score>",
	Short: "Submit a score",
	Args:  cobra.ExactArgs(2),
	RunE:  runLeaderboardSubmit,
}

var leaderboardWinnerCmd = &cobra.Command{
	Use:   "winner",
	Short: "Show the current leader",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboardWinner,
}

var leaderboardResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the leaderboard",
	Long: `Clear the leaderboard on the scoring service (if reachable) and on
this device. This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: runLeaderboardReset,
}

var leaderboardHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs played on this device",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboardHistory,
}

func init() {
	leaderboardResetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Do not ask for confirmation")
	leaderboardHistoryCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")

	leaderboardCmd.AddCommand(leaderboardSubmitCmd)
	leaderboardCmd.AddCommand(leaderboardWinnerCmd)
	leaderboardCmd.AddCommand(leaderboardResetCmd)
	leaderboardCmd.AddCommand(leaderboardHistoryCmd)
}

func runLeaderboardList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dev, err := openDevice(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer dev.Close()

	printLeaderboard(cmd.OutOrStdout(), dev.service.List(cmd.Context()))
	return nil
}

// printLeaderboard writes entries as a plain table.
func printLeaderboard(w io.Writer, entries []leaderboard.RankedEntry) {
	fmt.Fprintf(w, "Skybound Leaderboard (%d/%d)\n\n", len(entries), leaderboard.MaxPlayers)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'skybound play' to set the first score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-20s  %s\n", "Rank", "Name", "Score")
	fmt.Fprintf(w, "  %-4s  %-20s  %s\n", "----", "----", "-----")
	for _, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-20s  %d\n", e.Rank, e.Name, e.Score)
	}
}

func runLeaderboardSubmit(cmd *cobra.Command, args []string) error {
	score, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("score must be a whole number, got %q", args[1])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dev, err := openDevice(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer dev.Close()

	res := dev.service.Submit(cmd.Context(), args[0], score)
	if err := res.Err(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Score saved.")
	return nil
}

func runLeaderboardWinner(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dev, err := openDevice(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer dev.Close()

	w, ok := dev.service.Winner(cmd.Context())
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No winner yet.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Winner: %s with %d points\n", w.Name, w.Score)
	return nil
}

func runLeaderboardReset(cmd *cobra.Command, _ []string) error {
	if !flagResetYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset the leaderboard? All names and scores are removed. [y/N] ") {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dev, err := openDevice(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer dev.Close()

	dev.service.Reset(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Leaderboard reset.")
	return nil
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func runLeaderboardHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dev, err := openDevice(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer dev.Close()

	runs, err := dev.kv.RecentRuns(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded on this device yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-20s  %-6s  %s\n", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-20s  %-6s  %s\n", "------", "-----", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-20s  %-6d  %s\n", r.Player, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
