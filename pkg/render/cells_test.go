package render

import (
	"image/color"
	"strings"
	"testing"
)

func TestCells_TextPlacement(t *testing.T) {
	c := NewCells(20, 3)
	c.Text(2, 1, "hi", color.RGBA{R: 0xff, A: 0xff})

	lines := strings.Split(stripRender(c), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "hi") {
		t.Errorf("text not on row 1: %q", lines[1])
	}
	if strings.Contains(lines[0], "hi") || strings.Contains(lines[2], "hi") {
		t.Error("text bled into other rows")
	}
}

func TestCells_OutOfBoundsIgnored(t *testing.T) {
	c := NewCells(5, 2)
	// None of these may panic or wrap around.
	c.Text(-10, 0, "offscreen", color.RGBA{})
	c.Text(0, 99, "below", color.RGBA{})
	c.Line(-5, -5, 100, 100, 1, color.RGBA{})
	c.FilledCircle(-3, -3, 2, color.RGBA{}, color.RGBA{})

	if got := stripRender(c); strings.Contains(got, "below") {
		t.Errorf("out-of-bounds write landed on grid: %q", got)
	}
}

func TestCells_HorizontalLineGlyph(t *testing.T) {
	c := NewCells(10, 3)
	c.Line(1, 1, 8, 1, 1, color.RGBA{})

	row := strings.Split(stripRender(c), "\n")[1]
	if !strings.Contains(row, "────") {
		t.Errorf("horizontal line glyphs missing: %q", row)
	}
}

func TestCells_VerticalLineGlyph(t *testing.T) {
	c := NewCells(5, 5)
	c.Line(2, 0, 2, 4, 1, color.RGBA{})

	lines := strings.Split(stripRender(c), "\n")
	for i, row := range lines {
		if !strings.ContainsRune(row, '│') {
			t.Errorf("row %d missing vertical glyph: %q", i, row)
		}
	}
}

func TestCells_FilledCircleLitCells(t *testing.T) {
	c := NewCells(21, 11)
	c.FilledCircle(10, 5, 4, color.RGBA{R: 1}, color.RGBA{})

	got := stripRender(c)
	if !strings.ContainsRune(got, '█') {
		t.Error("no block cells lit")
	}
	// The center cell is always inside the disc.
	center := strings.Split(got, "\n")[5]
	if []rune(center)[10] != '█' {
		t.Errorf("center cell not lit: %q", center)
	}
}

func TestCells_TinyCircleFallsBackToDot(t *testing.T) {
	c := NewCells(5, 5)
	c.FilledCircle(2, 2, 0.5, color.RGBA{R: 1}, color.RGBA{})

	if !strings.ContainsRune(stripRender(c), '●') {
		t.Error("sub-cell circle should render a single dot")
	}
}

func TestCells_RenderRowCount(t *testing.T) {
	c := NewCells(4, 7)
	if rows := strings.Count(c.Render(), "\n") + 1; rows != 7 {
		t.Errorf("expected 7 rendered rows, got %d", rows)
	}
}

func TestCells_MinimumDimensions(t *testing.T) {
	c := NewCells(0, -3)
	w, h := c.Size()
	if w != 1 || h != 1 {
		t.Errorf("expected 1x1 floor, got %gx%g", w, h)
	}
}

func TestCells_ClearResets(t *testing.T) {
	c := NewCells(6, 2)
	c.Text(0, 0, "junk", color.RGBA{R: 9})
	c.Clear(color.RGBA{})

	if got := stripRender(c); strings.TrimSpace(got) != "" {
		t.Errorf("grid not blank after Clear: %q", got)
	}
}

// stripRender drops ANSI styling so tests can assert on bare runes.
func stripRender(c *Cells) string {
	s := c.Render()
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == 0x1b:
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
