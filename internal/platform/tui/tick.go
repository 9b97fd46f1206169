// Package tui is the terminal front end of Skybound: the Bubble Tea loop
// that drives the game, the name prompt, the leaderboard view, and the SSH
// server that hosts the same program for remote players.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultFPS is used when the runtime config leaves the frame rate unset.
const defaultFPS = 30

// TickMsg advances the flight by one frame.
type TickMsg time.Time

// frameInterval is the time between frames at fps.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
