package render

import (
	"image/color"
	"math"

	"github.com/graphscape/graphscape/pkg/model"
)

// Scene binds a positioned graph to a viewport and knows how to draw itself
// onto any Surface and how to resolve pointer positions back to nodes.
type Scene struct {
	Graph    model.GraphData
	View     Viewport
	Selected string // node id highlighted as selected, "" for none
	Hovered  string // node id highlighted under the pointer, "" for none

	// ShowEdges toggles edge rendering; labels follow the zoom level.
	ShowEdges bool

	// NodeScale shrinks or grows every node radius uniformly. Zero means 1.
	// Cell surfaces use a fraction here since a terminal cell covers many
	// pixels worth of area.
	NodeScale float64
}

// NewScene wraps g with an identity viewport and edges visible.
func NewScene(g model.GraphData) *Scene {
	return &Scene{Graph: g, View: NewViewport(), ShowEdges: true}
}

// nodeRadius converts a node's logical size to a world-space radius.
func (s *Scene) nodeRadius(n model.Node) float64 {
	r := n.Size
	if r <= 0 {
		r = 10.0
	}
	if s.NodeScale > 0 {
		r *= s.NodeScale
	}
	return r
}

// Draw renders the scene. Nodes without positions and edges with a missing
// endpoint are skipped silently.
func (s *Scene) Draw(surface Surface) {
	if surface == nil {
		return
	}
	if w, h := surface.Size(); w <= 0 || h <= 0 {
		return
	}

	surface.Clear(ColorBackdrop)

	byID := make(map[string]*model.Node, len(s.Graph.Nodes))
	for i := range s.Graph.Nodes {
		byID[s.Graph.Nodes[i].ID] = &s.Graph.Nodes[i]
	}

	if s.ShowEdges {
		for _, e := range s.Graph.Edges {
			src, okS := byID[e.Source]
			tgt, okT := byID[e.Target]
			if !okS || !okT || !src.HasPosition() || !tgt.HasPosition() {
				continue
			}
			x1, y1 := s.View.ToScreen(src.Position.X, src.Position.Y)
			x2, y2 := s.View.ToScreen(tgt.Position.X, tgt.Position.Y)
			width := 1.0 + e.Weight*0.5
			surface.Line(x1, y1, x2, y2, width, ColorEdge)
			s.drawArrowhead(surface, x1, y1, x2, y2, s.nodeRadius(*tgt))
		}
	}

	for i := range s.Graph.Nodes {
		n := &s.Graph.Nodes[i]
		if !n.HasPosition() {
			continue
		}
		x, y := s.View.ToScreen(n.Position.X, n.Position.Y)
		r := s.nodeRadius(*n) * s.View.zoom()
		if r < 2 {
			r = 2
		}

		fill := nodeFill(*n)
		stroke := ColorStroke
		switch n.ID {
		case s.Selected:
			fill = ColorSelected
		case s.Hovered:
			stroke = ColorEdge
		}
		surface.FilledCircle(x, y, r, fill, stroke)

		if s.View.ShowLabels() {
			surface.Text(x+r+4, y, n.DisplayLabel(), ColorText)
		}
	}
}

// drawArrowhead draws a short two-stroke arrow at the target end of an edge,
// pulled back by the target radius so it meets the node rim.
func (s *Scene) drawArrowhead(surface Surface, x1, y1, x2, y2, targetRadius float64) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		return
	}
	ux, uy := dx/dist, dy/dist
	tipX := x2 - ux*targetRadius*s.View.zoom()
	tipY := y2 - uy*targetRadius*s.View.zoom()
	const headLen = 6.0
	// Two strokes at ±30 degrees from the reversed edge direction.
	leftX := tipX - headLen*(ux*0.866-uy*0.5)
	leftY := tipY - headLen*(uy*0.866+ux*0.5)
	rightX := tipX - headLen*(ux*0.866+uy*0.5)
	rightY := tipY - headLen*(uy*0.866-ux*0.5)
	surface.Line(tipX, tipY, leftX, leftY, 1, ColorEdge)
	surface.Line(tipX, tipY, rightX, rightY, 1, ColorEdge)
}

func nodeFill(n model.Node) color.RGBA {
	if c, ok := parseHexColor(n.Color); ok {
		return c
	}
	return ColorNode
}

// parseHexColor accepts "#rrggbb" and "#rgb".
func parseHexColor(s string) (color.RGBA, bool) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, false
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 6:
		var ok bool
		if r, ok = hexByte(hex[0], hex[1]); !ok {
			return color.RGBA{}, false
		}
		if g, ok = hexByte(hex[2], hex[3]); !ok {
			return color.RGBA{}, false
		}
		if b, ok = hexByte(hex[4], hex[5]); !ok {
			return color.RGBA{}, false
		}
	case 3:
		var ok bool
		if r, ok = hexByte(hex[0], hex[0]); !ok {
			return color.RGBA{}, false
		}
		if g, ok = hexByte(hex[1], hex[1]); !ok {
			return color.RGBA{}, false
		}
		if b, ok = hexByte(hex[2], hex[2]); !ok {
			return color.RGBA{}, false
		}
	default:
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, okH := hexNibble(hi)
	l, okL := hexNibble(lo)
	return h<<4 | l, okH && okL
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// HitTest resolves a screen-space pointer position to the topmost node whose
// radius contains it, or nil when the pointer is over empty space. Later
// nodes in the slice win ties, matching draw order.
func (s *Scene) HitTest(sx, sy float64) *model.Node {
	wx, wy := s.View.ToWorld(sx, sy)
	var hit *model.Node
	for i := range s.Graph.Nodes {
		n := &s.Graph.Nodes[i]
		if !n.HasPosition() {
			continue
		}
		dx := wx - n.Position.X
		dy := wy - n.Position.Y
		r := s.nodeRadius(*n)
		if dx*dx+dy*dy <= r*r {
			hit = n
		}
	}
	return hit
}
