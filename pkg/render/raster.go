package render

import (
	"fmt"
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// Raster draws onto an in-memory RGBA image via gg. Use EncodePNG or SavePNG
// to persist the result.
type Raster struct {
	dc     *gg.Context
	width  int
	height int
}

// NewRaster allocates a raster surface of the given pixel size.
func NewRaster(width, height int) *Raster {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	return &Raster{dc: dc, width: width, height: height}
}

func (r *Raster) Clear(c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Line(x1, y1, x2, y2 float64, width float64, c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

func (r *Raster) FilledCircle(x, y, rad float64, fill, stroke color.RGBA) {
	r.dc.SetColor(fill)
	r.dc.DrawCircle(x, y, rad)
	r.dc.Fill()
	r.dc.SetColor(stroke)
	r.dc.SetLineWidth(1.2)
	r.dc.DrawCircle(x, y, rad)
	r.dc.Stroke()
}

func (r *Raster) Text(x, y float64, s string, c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, x, y, 0, 0.5)
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.width), float64(r.height)
}

// EncodePNG writes the rendered image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the rendered image to path.
func (r *Raster) SavePNG(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}
