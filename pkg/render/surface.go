// Package render draws a laid-out graph onto pluggable surfaces. The same
// Scene drives a raster PNG context, a vector SVG writer, and a terminal cell
// grid, so interactive and snapshot output stay visually consistent.
package render

import "image/color"

// Surface is the minimal drawing contract a Scene needs. Coordinates are in
// screen space with the origin at the top-left.
type Surface interface {
	// Clear fills the whole surface with the given color.
	Clear(c color.RGBA)
	// Line draws a straight stroke between two points.
	Line(x1, y1, x2, y2 float64, width float64, c color.RGBA)
	// FilledCircle draws a disc centered at (x, y).
	FilledCircle(x, y, r float64, fill, stroke color.RGBA)
	// Text draws s with its left edge at x and its vertical center at y.
	Text(x, y float64, s string, c color.RGBA)
	// Size reports the drawable area in pixels (or cells).
	Size() (w, h float64)
}

// Palette used by every surface. Node fills come from the node's own color
// when set; these are the structural defaults.
var (
	ColorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	ColorNode     = color.RGBA{0xc8, 0xe6, 0xc9, 0xff}
	ColorSelected = color.RGBA{0xff, 0xf3, 0xe0, 0xff}
	ColorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	ColorEdge     = color.RGBA{0x6b, 0x80, 0xbf, 0xff}
	ColorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	ColorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
)
