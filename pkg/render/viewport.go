package render

const (
	// Zoom bounds and step factors for wheel input.
	MinZoom     = 0.1
	MaxZoom     = 5.0
	ZoomInStep  = 1.1
	ZoomOutStep = 0.9

	// Keyboard pan distance in screen pixels.
	NudgeStep = 20.0
)

// Viewport maps world coordinates (layout space) to screen coordinates:
// screen = world*Zoom + Pan. The zero value is usable and renders 1:1.
type Viewport struct {
	Zoom       float64
	PanX, PanY float64
}

// NewViewport returns an identity viewport.
func NewViewport() Viewport {
	return Viewport{Zoom: 1.0}
}

func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1.0
	}
	return v.Zoom
}

// ToScreen converts a world point to screen space.
func (v Viewport) ToScreen(wx, wy float64) (float64, float64) {
	z := v.zoom()
	return wx*z + v.PanX, wy*z + v.PanY
}

// ToWorld converts a screen point (pointer position) to world space.
func (v Viewport) ToWorld(sx, sy float64) (float64, float64) {
	z := v.zoom()
	return (sx - v.PanX) / z, (sy - v.PanY) / z
}

// ZoomAt multiplies the zoom by factor, keeping the world point under the
// given screen position fixed. The result is clamped to [MinZoom, MaxZoom].
func (v Viewport) ZoomAt(sx, sy, factor float64) Viewport {
	oldZoom := v.zoom()
	newZoom := clamp(oldZoom*factor, MinZoom, MaxZoom)
	if newZoom == oldZoom {
		return v
	}
	// Solve pan' so that (sx,sy) maps to the same world point before and
	// after the zoom change.
	wx, wy := v.ToWorld(sx, sy)
	return Viewport{
		Zoom: newZoom,
		PanX: sx - wx*newZoom,
		PanY: sy - wy*newZoom,
	}
}

// Pan shifts the view by a screen-space delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.Zoom = v.zoom()
	v.PanX += dx
	v.PanY += dy
	return v
}

// Nudge pans by one keyboard step in the given direction; dx and dy are
// direction signs (-1, 0, +1).
func (v Viewport) Nudge(dx, dy float64) Viewport {
	return v.Pan(dx*NudgeStep, dy*NudgeStep)
}

// Reset returns the identity viewport.
func (v Viewport) Reset() Viewport {
	return NewViewport()
}

// ShowLabels reports whether the zoom level is close enough for node labels
// to be legible.
func (v Viewport) ShowLabels() bool {
	return v.zoom() > 0.5
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
