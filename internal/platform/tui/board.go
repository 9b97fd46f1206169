package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

// Board layout constants
const (
	rankColWidth   = 5
	nameColWidth   = leaderboard.MaxNameLength + 2
	scoreColWidth  = 8
	markerColWidth = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))
	goodStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// BoardModel renders the ranked leaderboard as a table.
type BoardModel struct {
	entries      []leaderboard.RankedEntry
	player       string
	table        table.Model
	width        int
	height       int
	loading      bool
	loaded       bool
	confirmReset bool
	winner       *winnerView
}

// winnerView is the content of the winner modal.
type winnerView struct {
	entry leaderboard.RankedEntry
	found bool
}

// NewBoardModel creates a board sized for a width x height body.
func NewBoardModel(width, height int) BoardModel {
	m := BoardModel{width: width, height: height}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with the leaderboard columns.
func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: rankColWidth},
		{Title: "Name", Width: nameColWidth},
		{Title: "Score", Width: scoreColWidth},
		{Title: "", Width: markerColWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(leaderboard.MaxPlayers+1, max(m.height-8, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetEntries replaces the displayed entries.
func (m *BoardModel) SetEntries(entries []leaderboard.RankedEntry) {
	m.entries = entries
	m.loading = false
	m.loaded = true
	m.updateTableRows()
}

// SetPlayer marks which row belongs to the local player.
func (m *BoardModel) SetPlayer(name string) {
	m.player = name
	m.updateTableRows()
}

// Resize adapts the table to a new body size.
func (m *BoardModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table = m.createTable()
	m.updateTableRows()
}

// updateTableRows updates the table with the current entries.
func (m *BoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.Rank),
			e.Name,
			strconv.Itoa(e.Score),
			m.marker(e),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// marker labels the leader and the local player's row.
func (m *BoardModel) marker(e leaderboard.RankedEntry) string {
	switch {
	case e.Rank == 1 && e.Name == m.player:
		return "BEST/YOU"
	case e.Rank == 1:
		return "BEST"
	case e.Name == m.player:
		return "YOU"
	}
	return ""
}

// View renders the board body.
func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SKYBOUND LEADERBOARD"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d players", len(m.entries), leaderboard.MaxPlayers)))
	b.WriteString("\n\n")

	switch {
	case m.loading && !m.loaded:
		b.WriteString(mutedStyle.Render("Loading..."))
	case len(m.entries) == 0:
		empty := mutedStyle.Italic(true).Padding(1, 4)
		b.WriteString(frameStyle.Render(empty.Render("No scores yet.\nBe the first to fly!")))
	default:
		b.WriteString(frameStyle.Render(m.table.View()))
	}

	if m.confirmReset {
		b.WriteString("\n\n")
		b.WriteString(warnStyle.Render("Reset the leaderboard? All names and scores are removed. (y/n)"))
	}

	body := b.String()
	if m.winner != nil {
		body = m.winnerModal()
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// winnerModal renders the winner announcement.
func (m BoardModel) winnerModal() string {
	var content string
	if m.winner.found {
		content = fmt.Sprintf("%s\n\n%s\n%s",
			titleStyle.Render("WINNER"),
			goodStyle.Render(m.winner.entry.Name),
			fmt.Sprintf("%d points", m.winner.entry.Score),
		)
	} else {
		content = fmt.Sprintf("%s\n\n%s",
			titleStyle.Render("WINNER"),
			mutedStyle.Render("No winner yet."),
		)
	}
	content += "\n\n" + mutedStyle.Render("press any key")

	return frameStyle.
		BorderForeground(lipgloss.Color("229")).
		Padding(1, 4).
		Align(lipgloss.Center).
		Render(content)
}
