package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a grid of coloured characters the game draws into. The front
// end turns it into terminal output. Drawing outside the grid is clipped.
type Screen struct {
	w, h  int
	cells []Cell // row-major
}

// NewScreen returns a blank screen of the given size.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Resize changes the size of the screen. Content that still fits is kept.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if s.cells != nil && width == s.w && height == s.h {
		return
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = blank
	}
	for y := range min(s.h, height) {
		copy(cells[y*width:y*width+min(s.w, width)], s.cells[y*s.w:(y+1)*s.w])
	}
	s.w, s.h, s.cells = width, height, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// SetColored puts r at (x, y).
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// GetCell returns the cell at (x, y), or a blank one outside the grid.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// DrawTextColored writes text left to right starting at (x, y).
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centred on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColored((s.w-utf8.RuneCountInString(text))/2, y, text, c)
}

// DrawHLine repeats r for length cells to the right of (x, y).
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := range max(length, 0) {
		s.SetColored(x+i, y, r, c)
	}
}

// DrawRect fills box with r.
func (s *Screen) DrawRect(box Rect, r rune, c Color) {
	for y := box.Y; y < box.Bottom(); y++ {
		s.DrawHLine(box.X, y, box.W, r, c)
	}
}

// DrawBox outlines box with single-line box drawing characters. Boxes
// smaller than 2x2 are not drawn.
func (s *Screen) DrawBox(box Rect, c Color) {
	if box.W < 2 || box.H < 2 {
		return
	}
	right, bottom := box.Right()-1, box.Bottom()-1

	s.DrawHLine(box.X+1, box.Y, box.W-2, '─', c)
	s.DrawHLine(box.X+1, bottom, box.W-2, '─', c)
	for y := box.Y + 1; y < bottom; y++ {
		s.SetColored(box.X, y, '│', c)
		s.SetColored(right, y, '│', c)
	}
	s.SetColored(box.X, box.Y, '┌', c)
	s.SetColored(right, box.Y, '┐', c)
	s.SetColored(box.X, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// Row returns row y as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the screen as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
