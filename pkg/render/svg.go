package render

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVGSurface streams vector drawing commands to a writer via svgo. Callers
// must Close it to emit the closing </svg> tag.
type SVGSurface struct {
	canvas *svg.SVG
	width  int
	height int
	closed bool
}

// NewSVG starts an SVG document of the given size on w.
func NewSVG(w io.Writer, width, height int) *SVGSurface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	canvas := svg.New(w)
	canvas.Start(width, height)
	return &SVGSurface{canvas: canvas, width: width, height: height}
}

func (s *SVGSurface) Clear(c color.RGBA) {
	s.canvas.Rect(0, 0, s.width, s.height, "fill:"+css(c))
}

func (s *SVGSurface) Line(x1, y1, x2, y2 float64, width float64, c color.RGBA) {
	s.canvas.Line(int(x1), int(y1), int(x2), int(y2),
		fmt.Sprintf("stroke:%s;stroke-width:%.1f", css(c), width))
}

func (s *SVGSurface) FilledCircle(x, y, r float64, fill, stroke color.RGBA) {
	s.canvas.Circle(int(x), int(y), int(r),
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2", css(fill), css(stroke)))
}

func (s *SVGSurface) Text(x, y float64, text string, c color.RGBA) {
	// +4 compensates for the baseline anchor so text centers on y like the
	// raster surface does.
	s.canvas.Text(int(x), int(y)+4, text,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(c)))
}

func (s *SVGSurface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// Close ends the SVG document. Safe to call more than once.
func (s *SVGSurface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.canvas.End()
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
