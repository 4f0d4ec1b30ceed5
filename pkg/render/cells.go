package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Cells rasterizes the scene into a terminal character grid. Each cell holds
// one rune plus a foreground color; Render flattens the grid into styled
// lines for a bubbletea view.
type Cells struct {
	cols, rows int
	runes      []rune
	colors     []color.RGBA
}

// NewCells allocates a cols x rows terminal surface.
func NewCells(cols, rows int) *Cells {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &Cells{
		cols:   cols,
		rows:   rows,
		runes:  make([]rune, cols*rows),
		colors: make([]color.RGBA, cols*rows),
	}
	c.Clear(color.RGBA{})
	return c
}

func (c *Cells) Clear(bg color.RGBA) {
	for i := range c.runes {
		c.runes[i] = ' '
		c.colors[i] = bg
	}
}

func (c *Cells) set(col, row int, r rune, fg color.RGBA) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	i := row*c.cols + col
	c.runes[i] = r
	c.colors[i] = fg
}

// Line walks the segment cell by cell, picking a glyph from the slope.
func (c *Cells) Line(x1, y1, x2, y2 float64, _ float64, fg color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		c.set(int(x1), int(y1), lineGlyph(dx, dy), fg)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(x1+dx*t), int(y1+dy*t), lineGlyph(dx, dy), fg)
	}
}

func lineGlyph(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '·'
	}
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady < adx*0.5:
		return '─'
	case adx < ady*0.5:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// FilledCircle approximates a disc with block runes; a cell is lit when its
// center falls inside the radius.
func (c *Cells) FilledCircle(x, y, r float64, fill, _ color.RGBA) {
	if r < 1 {
		c.set(int(x), int(y), '●', fill)
		return
	}
	// Terminal cells are roughly twice as tall as wide; halve the vertical
	// extent so circles look round.
	ry := math.Max(r/2, 0.5)
	for row := int(y - ry); row <= int(y+ry); row++ {
		for col := int(x - r); col <= int(x+r); col++ {
			nx := (float64(col) - x) / r
			ny := (float64(row) - y) / ry
			if nx*nx+ny*ny <= 1.0 {
				c.set(col, row, '█', fill)
			}
		}
	}
}

func (c *Cells) Text(x, y float64, s string, fg color.RGBA) {
	col := int(x)
	row := int(y)
	for _, r := range s {
		c.set(col, row, r, fg)
		col += runewidth.RuneWidth(r)
	}
}

func (c *Cells) Size() (float64, float64) {
	return float64(c.cols), float64(c.rows)
}

// Render flattens the grid into newline-joined lines, coloring runs of equal
// foreground with lipgloss.
func (c *Cells) Render() string {
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var runColor color.RGBA
		flush := func() {
			if run.Len() == 0 {
				return
			}
			text := run.String()
			if runColor != (color.RGBA{}) {
				text = lipgloss.NewStyle().Foreground(lipgloss.Color(css(runColor))).Render(text)
			}
			sb.WriteString(text)
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			if col == 0 || c.colors[i] != runColor {
				flush()
				runColor = c.colors[i]
			}
			run.WriteRune(c.runes[i])
		}
		flush()
	}
	return sb.String()
}
