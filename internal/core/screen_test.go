package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColored(3, 4, '●', ColorBrightYellow)

	c := s.GetCell(3, 4)
	if c.Rune != '●' || c.Color != ColorBrightYellow {
		t.Errorf("GetCell(3, 4) = %+v, expected yellow '●'", c)
	}

	// Out of bounds writes are ignored, reads are blank
	s.SetColored(-1, 0, 'A', ColorGreen)
	s.SetColored(0, 10, 'A', ColorGreen)
	if s.GetCell(-1, 0).Rune != ' ' || s.GetCell(0, 10).Rune != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipsAndColors(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(5, 1, "Score", ColorBrightWhite)

	if got := s.Row(1); got != "     Sco" {
		t.Errorf("Row(1) = %q, expected clipped text", got)
	}
	if s.GetCell(6, 1).Color != ColorBrightWhite {
		t.Error("text cells should carry the requested color")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Hi", ColorDefault)

	if s.GetCell(9, 1).Rune != 'H' || s.GetCell(10, 1).Rune != 'i' {
		t.Errorf("centered text misplaced: %q", s.Row(1))
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '█', ColorGreen)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.GetCell(x, y).Rune != '█' {
				t.Errorf("DrawRect: expected fill at (%d, %d)", x, y)
			}
		}
	}
	if s.GetCell(5, 5).Rune != ' ' {
		t.Error("DrawRect should not affect outside area")
	}

	s.Clear()
	s.DrawBox(NewRect(1, 1, 5, 4), ColorWhite)
	corners := map[[2]int]rune{
		{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.GetCell(pos[0], pos[1]).Rune; got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.GetCell(3, 1).Rune != '─' || s.GetCell(1, 2).Rune != '│' {
		t.Error("box edges not drawn")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawHLine(0, 2, 10, '═', ColorBrown)

	if got := s.Row(2); got != strings.Repeat("═", 10) {
		t.Errorf("Row(2) = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawTextColored(0, 0, "abc", ColorDefault)
	s.DrawTextColored(0, 1, "def", ColorDefault)

	if got := s.String(); got != "abc\ndef" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorDefault)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize dimensions = %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content lost on shrink: %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content lost on grow: %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Error("out of bounds row should be spaces")
	}
}
