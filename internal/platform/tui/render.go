package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skybound/internal/core"
)

// theme maps what a cell shows to how the terminal draws it.
var theme = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorCraft:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorCraftBody: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorPipe:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPipeCap:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorGround:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorScore:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorNotice:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := theme[c]; ok {
		return st
	}
	return theme[core.ColorDefault]
}

// RenderScreen draws the screen buffer as styled text, one line per row.
// Neighbouring cells of the same colour share one escape sequence.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	var run strings.Builder
	for y := range rows {
		var line strings.Builder
		run.Reset()
		current := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				line.WriteString(styleFor(current).Render(run.String()))
				run.Reset()
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			line.WriteString(styleFor(current).Render(run.String()))
		}
		rows[y] = line.String()
	}
	return strings.Join(rows, "\n")
}
