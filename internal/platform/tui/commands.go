package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

// Leaderboard is the part of leaderboard.Service the UI talks to.
type Leaderboard interface {
	List(ctx context.Context) []leaderboard.RankedEntry
	Submit(ctx context.Context, name string, score int) leaderboard.SubmitResult
	Winner(ctx context.Context) (leaderboard.RankedEntry, bool)
	Reset(ctx context.Context)
}

// NameStore remembers the player name between sessions.
type NameStore interface {
	PlayerName(ctx context.Context) (string, error)
	SetPlayerName(ctx context.Context, name string) error
}

// RunLog keeps the history of finished runs on this device.
type RunLog interface {
	RecordRun(ctx context.Context, player string, score int) (int64, error)
	BestRun(ctx context.Context, player string) (int, error)
}

// Messages produced by the commands below.
type (
	rosterMsg struct {
		entries []leaderboard.RankedEntry
	}
	joinCheckMsg struct {
		name string
		ok   bool
	}
	submitMsg struct {
		score  int
		result leaderboard.SubmitResult
		record bool
		best   int
	}
	bestMsg struct {
		best int
	}
	winnerMsg struct {
		entry leaderboard.RankedEntry
		found bool
	}
	resetDoneMsg struct {
		entries []leaderboard.RankedEntry
	}
)

func rosterCmd(ctx context.Context, lb Leaderboard) tea.Cmd {
	return func() tea.Msg {
		return rosterMsg{entries: lb.List(ctx)}
	}
}

// joinCheckCmd checks whether name may enter the board before play starts.
func joinCheckCmd(ctx context.Context, lb Leaderboard, name string) tea.Cmd {
	return func() tea.Msg {
		return joinCheckMsg{name: name, ok: leaderboard.CanJoin(lb.List(ctx), name)}
	}
}

func saveNameCmd(ctx context.Context, names NameStore, name string, logger *log.Logger) tea.Cmd {
	if names == nil {
		return nil
	}
	return func() tea.Msg {
		if err := names.SetPlayerName(ctx, name); err != nil {
			logger.Warn("could not remember player name", "error", err)
		}
		return nil
	}
}

func bestCmd(ctx context.Context, runs RunLog, name string, logger *log.Logger) tea.Cmd {
	if runs == nil || name == "" {
		return nil
	}
	return func() tea.Msg {
		best, err := runs.BestRun(ctx, name)
		if err != nil {
			logger.Warn("could not read run history", "error", err)
		}
		return bestMsg{best: best}
	}
}

// submitCmd submits a finished run and, once it is accepted, re-reads the
// board to see whether the score became the player's best.
func submitCmd(ctx context.Context, lb Leaderboard, runs RunLog, name string, score int, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		msg := submitMsg{score: score}
		msg.result = lb.Submit(ctx, name, score)
		if msg.result.Success && score > 0 {
			msg.record = leaderboard.IsRecord(lb.List(ctx), name, score)
		}

		if runs != nil {
			if _, err := runs.RecordRun(ctx, name, score); err != nil {
				logger.Warn("could not record run", "error", err)
			}
			best, err := runs.BestRun(ctx, name)
			if err != nil {
				logger.Warn("could not read run history", "error", err)
			}
			msg.best = best
		}
		return msg
	}
}

func winnerCmd(ctx context.Context, lb Leaderboard) tea.Cmd {
	return func() tea.Msg {
		entry, found := lb.Winner(ctx)
		return winnerMsg{entry: entry, found: found}
	}
}

// resetCmd clears the board and reads it back in the same command.
func resetCmd(ctx context.Context, lb Leaderboard) tea.Cmd {
	return func() tea.Msg {
		lb.Reset(ctx)
		return resetDoneMsg{entries: lb.List(ctx)}
	}
}

// bellCmd rings the terminal bell.
func bellCmd(w io.Writer) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}
