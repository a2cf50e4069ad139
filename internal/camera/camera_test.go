package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 2000, 2000)

	if cam.X != 1000 || cam.Y != 1000 {
		t.Errorf("expected camera at (1000, 1000), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2000, 2000)
	cam.Zoom = 1.5

	testCases := []struct{ sx, sy float64 }{
		{640, 360},
		{0, 0},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 1e-9 || math.Abs(sy-tc.sy) > 1e-9 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestFollowDeadzone(t *testing.T) {
	cam := New(1000, 1000, 4000, 4000)
	cam.CenterOn(2000, 2000)

	// Deadzone 0.4 of a 1000px viewport is +-200 world units at zoom 1.
	cam.Follow(2150, 1850, 0.08, 0.4)
	if cam.X != 2000 || cam.Y != 2000 {
		t.Errorf("camera moved inside deadzone: (%f, %f)", cam.X, cam.Y)
	}

	cam.Follow(2300, 2000, 0.5, 0.4)
	if math.Abs(cam.X-2050) > 1e-9 {
		t.Errorf("expected half of the 100 overshoot, got X=%f", cam.X)
	}
}

func TestFollowConverges(t *testing.T) {
	cam := New(800, 600, 2000, 2000)
	for i := 0; i < 500; i++ {
		cam.Follow(1500, 1400, 0.08, 0.4)
	}
	sx, sy := cam.WorldToScreen(1500, 1400)
	if math.Abs(sx-400) > 800*0.2+1 || math.Abs(sy-300) > 600*0.2+1 {
		t.Errorf("target not inside deadzone after follow: (%f, %f)", sx, sy)
	}
}

func TestClampKeepsViewInWorld(t *testing.T) {
	cam := New(800, 600, 2000, 2000)
	for i := 0; i < 500; i++ {
		cam.Follow(0, 2000, 1, 0)
	}
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX < 0 || minY < 0 || maxX > 2000 || maxY > 2000 {
		t.Errorf("view left the world: (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
	if minX != 0 || maxY != 2000 {
		t.Errorf("expected view pinned to the corner, got (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestSmallWorldIsCentered(t *testing.T) {
	cam := New(1280, 720, 500, 500)
	cam.CenterOn(10, 490)
	if cam.X != 250 || cam.Y != 250 {
		t.Errorf("expected centered camera, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestResize(t *testing.T) {
	cam := New(800, 600, 2000, 2000)
	cam.CenterOn(400, 300)

	cam.Resize(1600, 1200)
	if cam.ViewportW != 1600 || cam.ViewportH != 1200 {
		t.Errorf("viewport not updated: %fx%f", cam.ViewportW, cam.ViewportH)
	}
	if cam.X != 800 || cam.Y != 600 {
		t.Errorf("expected camera re-clamped to (800, 600), got (%f, %f)", cam.X, cam.Y)
	}

	cam.Resize(0, 100)
	if cam.ViewportW != 1600 {
		t.Error("zero-sized resize should be ignored")
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 2000, 2000)
	if !cam.IsVisible(1000, 1000, 0) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(1500, 1000, 10) {
		t.Error("point far right should be culled")
	}
	if !cam.IsVisible(1405, 1000, 10) {
		t.Error("circle overlapping the edge should be visible")
	}
}
