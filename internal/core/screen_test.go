package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if got := s.String(); got != "    \n    " {
		t.Errorf("String() = %q", got)
	}

	empty := NewScreen(-3, 5)
	if empty.Width() != 0 || empty.String() != strings.Repeat("\n", 4) {
		t.Errorf("negative width not clamped: %dx%d", empty.Width(), empty.Height())
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(3, 3)
	s.SetColored(-1, 0, 'x', ColorPipe)
	s.SetColored(3, 0, 'x', ColorPipe)
	s.SetColored(0, -1, 'x', ColorPipe)
	s.SetColored(0, 3, 'x', ColorPipe)

	if strings.ContainsRune(s.String(), 'x') {
		t.Errorf("out-of-bounds write landed: %q", s.String())
	}
	if got := s.GetCell(10, 10); got != blank {
		t.Errorf("GetCell outside = %+v, want blank", got)
	}
}

func TestScreenKeepsColors(t *testing.T) {
	s := NewScreen(3, 3)
	s.SetColored(1, 1, '@', ColorCraft)

	if got := s.GetCell(1, 1); got.Rune != '@' || got.Color != ColorCraft {
		t.Errorf("cell = %+v", got)
	}

	s.Clear()
	if got := s.GetCell(1, 1); got != blank {
		t.Errorf("Clear left %+v", got)
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(8, 0, "abc", ColorScore)
	if got := s.Row(0); got != "        ab" {
		t.Errorf("clipped text row = %q", got)
	}

	s.DrawTextCentered(1, "héllo", ColorScore)
	if got := s.Row(1); got != "  héllo   " {
		t.Errorf("centred row = %q", got)
	}
	if got := s.Row(5); got != strings.Repeat(" ", 10) {
		t.Errorf("Row outside = %q", got)
	}
}

func TestScreenLinesAndRects(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawHLine(1, 0, 3, '-', ColorGround)
	s.DrawHLine(0, 1, -2, '!', ColorGround)
	s.DrawRect(NewRect(4, 2, 5, 5), '#', ColorPipe)

	want := strings.Join([]string{
		" ---  ",
		"      ",
		"    ##",
		"    ##",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("screen =\n%s\nwant\n%s", got, want)
	}
}

func TestScreenBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorInfo)

	want := strings.Join([]string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("box =\n%s\nwant\n%s", got, want)
	}

	tiny := NewScreen(3, 3)
	tiny.DrawBox(NewRect(0, 0, 1, 3), ColorInfo)
	if strings.TrimSpace(tiny.String()) != "" {
		t.Errorf("1-wide box should not draw, got %q", tiny.String())
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawTextColored(0, 0, "abcd", ColorDefault)
	s.DrawTextColored(0, 2, "wxyz", ColorDefault)

	s.Resize(2, 4)
	want := "ab\n  \nwx\n  "
	if got := s.String(); got != want {
		t.Errorf("after shrink width = %q, want %q", got, want)
	}

	s.Resize(3, 1)
	if got := s.String(); got != "ab " {
		t.Errorf("after shrink height = %q", got)
	}
}

func TestRuntimeConfigNormalize(t *testing.T) {
	rc := RuntimeConfig{}.Normalize(0)
	if rc.ScreenW != DefaultScreenW || rc.ScreenH != DefaultScreenH || rc.TickRate != DefaultTickRate {
		t.Errorf("Normalize() = %+v", rc)
	}

	rc = RuntimeConfig{ScreenW: 100, ScreenH: 40, Seed: 7}.Normalize(60)
	if rc.ScreenW != 100 || rc.ScreenH != 40 || rc.TickRate != 60 || rc.Seed != 7 {
		t.Errorf("Normalize(60) = %+v", rc)
	}
}
