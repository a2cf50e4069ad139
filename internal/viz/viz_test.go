package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/camera"
	"github.com/mverhelle/folio/internal/play"
	"github.com/mverhelle/folio/internal/steer"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.Dots(); w != 8 || h != 8 {
		t.Fatalf("expected 8x8 dots, got %dx%d", w, h)
	}

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("dot not set")
	}
	if c.Grid[1][1] != brailleBase|0x10 {
		t.Errorf("unexpected cell rune %U", c.Grid[1][1])
	}
	c.Unset(3, 5)
	if c.IsSet(3, 5) || c.Grid[1][1] != brailleBase {
		t.Error("dot not cleared")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if c.IsSet(-1, 0) || c.IsSet(100, 100) {
		t.Error("out-of-range dots must be ignored")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 11)
	if !c.IsSet(0, 0) || !c.IsSet(19, 11) {
		t.Error("line endpoints must be lit")
	}

	c.Clear()
	c.DrawDotted(0, 0, 9, 0, 3)
	lit := 0
	for x := 0; x < 10; x++ {
		if c.IsSet(x, 0) {
			lit++
		}
	}
	if lit != 4 {
		t.Errorf("expected 4 dots on a dotted line of 10, got %d", lit)
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 || len([]rune(lines[0])) != 3 {
		t.Errorf("unexpected canvas layout %q", c.String())
	}
}

func TestDrawScene(t *testing.T) {
	p := steer.DefaultParams()
	c := NewCanvas(40, 20)
	w, h := c.Dots()

	cam := camera.New(float64(w), float64(h), p.WorldSize, p.WorldSize)
	cam.Zoom = 1
	cam.CenterOn(1000, 1000)
	snap := play.Snapshot{State: steer.NewState(p), Params: p, Camera: *cam}

	DrawScene(c, snap, SceneOptions{Grid: 200, Vectors: true})

	// Nose line runs from the center to the right.
	if !c.IsSet(w/2, h/2) || !c.IsSet(w/2+20, h/2) {
		t.Error("expected the body's nose line through the screen center")
	}
	// Body corner at (+16, +16) world units.
	if !c.IsSet(w/2+16, h/2+16) {
		t.Error("expected a body corner")
	}
}

func TestDrawSceneClearsUnderBody(t *testing.T) {
	p := steer.DefaultParams()
	c := NewCanvas(40, 20)
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.Set(x, y)
		}
	}

	cam := camera.New(float64(w), float64(h), p.WorldSize, p.WorldSize)
	cam.Zoom = 1
	cam.CenterOn(1000, 1000)
	DrawScene(c, play.Snapshot{State: steer.NewState(p), Params: p, Camera: *cam}, SceneOptions{})

	if c.IsSet(w/2-8, h/2-8) || c.IsSet(w/2+8, h/2+8) {
		t.Error("expected the body interior to be cleared")
	}
	if !c.IsSet(w/2+16, h/2+16) || !c.IsSet(w/2+12, h/2) {
		t.Error("outline and nose are drawn after clearing")
	}
	if !c.IsSet(0, 0) || !c.IsSet(w/2+30, h/2) {
		t.Error("dots outside the body must stay lit")
	}
}

func TestDrawSceneSkipsOffscreenTarget(t *testing.T) {
	p := steer.DefaultParams()
	c := NewCanvas(40, 20)
	w, h := c.Dots()

	cam := camera.New(float64(w), float64(h), p.WorldSize, p.WorldSize)
	cam.Zoom = 1
	cam.CenterOn(1000, 1000)
	s := steer.NewState(p)
	s.Target = steer.Target{Active: true, Point: r2.Vec{X: 1000 + float64(w)/2 + 3, Y: 1000}}
	DrawScene(c, play.Snapshot{State: s, Params: p, Camera: *cam}, SceneOptions{})

	for y := h/2 - 4; y <= h/2+4; y++ {
		for x := w - 10; x < w; x++ {
			if c.IsSet(x, y) {
				t.Fatalf("target beyond the viewport must not be drawn, dot at (%d,%d)", x, y)
			}
		}
	}

	s.Target.Point.X = 1000 + 30
	c.Clear()
	DrawScene(c, play.Snapshot{State: s, Params: p, Camera: *cam}, SceneOptions{})
	if !c.IsSet(w/2+30, h/2-2) {
		t.Error("expected the target cross")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "midnight" {
		t.Error("unknown theme should fall back to midnight")
	}
	seen := map[string]bool{}
	th := ThemeMidnight
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != ThemeMidnight.Name {
		t.Errorf("NextTheme should cycle all themes, saw %v", seen)
	}
}

func TestHexHelpers(t *testing.T) {
	r, g, b := parseHex("#38bdf8")
	if r != 0x38 || g != 0xbd || b != 0xf8 {
		t.Errorf("parseHex: got %d %d %d", r, g, b)
	}
	if hexColor(300, -5, 171) != "#ff00ab" {
		t.Errorf("hexColor should clamp, got %s", hexColor(300, -5, 171))
	}
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("empty gradient should be empty")
	}
}
