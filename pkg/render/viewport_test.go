package render

import (
	"math"
	"testing"
)

func TestViewport_ZeroValueRendersOneToOne(t *testing.T) {
	var v Viewport
	x, y := v.ToScreen(123, 456)
	if x != 123 || y != 456 {
		t.Errorf("zero viewport not identity: (%g, %g)", x, y)
	}
}

func TestViewport_ScreenWorldInverse(t *testing.T) {
	v := Viewport{Zoom: 2.5, PanX: -40, PanY: 17}

	wx, wy := 123.4, -56.7
	sx, sy := v.ToScreen(wx, wy)
	bx, by := v.ToWorld(sx, sy)
	if math.Abs(bx-wx) > 1e-9 || math.Abs(by-wy) > 1e-9 {
		t.Errorf("round trip drifted: (%g, %g) -> (%g, %g)", wx, wy, bx, by)
	}
}

func TestViewport_ZoomAtKeepsCursorPointFixed(t *testing.T) {
	v := NewViewport()
	sx, sy := 320.0, 200.0
	wx, wy := v.ToWorld(sx, sy)

	for i := 0; i < 5; i++ {
		v = v.ZoomAt(sx, sy, ZoomInStep)
	}

	gx, gy := v.ToWorld(sx, sy)
	if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
		t.Errorf("world point under cursor moved: (%g, %g) -> (%g, %g)", wx, wy, gx, gy)
	}
}

func TestViewport_ZoomClamped(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 100; i++ {
		v = v.ZoomAt(0, 0, ZoomInStep)
	}
	if v.Zoom != MaxZoom {
		t.Errorf("zoom in not clamped: %g", v.Zoom)
	}

	for i := 0; i < 100; i++ {
		v = v.ZoomAt(0, 0, ZoomOutStep)
	}
	if v.Zoom != MinZoom {
		t.Errorf("zoom out not clamped: %g", v.Zoom)
	}
}

func TestViewport_Pan(t *testing.T) {
	v := NewViewport().Pan(10, -5).Pan(10, -5)
	if v.PanX != 20 || v.PanY != -10 {
		t.Errorf("pan accumulated wrong: (%g, %g)", v.PanX, v.PanY)
	}
}

func TestViewport_Nudge(t *testing.T) {
	v := NewViewport().Nudge(1, 0).Nudge(0, -1)
	if v.PanX != NudgeStep || v.PanY != -NudgeStep {
		t.Errorf("nudge moved (%g, %g), want (%g, %g)", v.PanX, v.PanY, NudgeStep, -NudgeStep)
	}
}

func TestViewport_Reset(t *testing.T) {
	v := Viewport{Zoom: 3, PanX: 50, PanY: 50}.Reset()
	if v.Zoom != 1 || v.PanX != 0 || v.PanY != 0 {
		t.Errorf("reset left state behind: %+v", v)
	}
}

func TestViewport_ShowLabels(t *testing.T) {
	if (Viewport{Zoom: 0.5}).ShowLabels() {
		t.Error("labels shown at the 0.5 threshold")
	}
	if !(Viewport{Zoom: 0.6}).ShowLabels() {
		t.Error("labels hidden above the threshold")
	}
	if !(Viewport{}).ShowLabels() {
		t.Error("zero viewport renders at 1:1 and should show labels")
	}
}
