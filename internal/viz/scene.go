package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/camera"
	"github.com/mverhelle/folio/internal/play"
)

type SceneOptions struct {
	Grid    float64 // floor grid spacing in world units, 0 for none
	Vectors bool    // draw velocity and lateral slip
}

// DrawScene renders snap onto c. The snapshot camera must be sized in dots.
func DrawScene(c *Canvas, snap play.Snapshot, opts SceneOptions) {
	cam := snap.Camera
	world := snap.Params.WorldSize
	toScreen := func(p r2.Vec) (float64, float64) { return cam.WorldToScreen(p.X, p.Y) }
	line := func(a, b r2.Vec) {
		ax, ay := toScreen(a)
		bx, by := toScreen(b)
		c.DrawLineF(ax, ay, bx, by)
	}

	if opts.Grid > 0 {
		minX, minY, maxX, maxY := cam.VisibleWorldBounds()
		minX, minY = math.Max(minX, 0), math.Max(minY, 0)
		maxX, maxY = math.Min(maxX, world), math.Min(maxY, world)
		for x := math.Ceil(minX/opts.Grid) * opts.Grid; x <= maxX; x += opts.Grid {
			x0, y0 := cam.WorldToScreen(x, minY)
			x1, y1 := cam.WorldToScreen(x, maxY)
			c.DrawDotted(round(x0), round(y0), round(x1), round(y1), 3)
		}
		for y := math.Ceil(minY/opts.Grid) * opts.Grid; y <= maxY; y += opts.Grid {
			x0, y0 := cam.WorldToScreen(minX, y)
			x1, y1 := cam.WorldToScreen(maxX, y)
			c.DrawDotted(round(x0), round(y0), round(x1), round(y1), 3)
		}
	}

	corners := []r2.Vec{{X: 0, Y: 0}, {X: world, Y: 0}, {X: world, Y: world}, {X: 0, Y: world}}
	for i := range corners {
		line(corners[i], corners[(i+1)%len(corners)])
	}

	s := snap.State
	if s.Target.Active && cam.IsVisible(s.Target.Point.X, s.Target.Point.Y, 2/cam.Zoom) {
		x, y := toScreen(s.Target.Point)
		c.DrawCross(round(x), round(y), 2)
	}

	// Body: a square rotated to the heading, with a nose line.
	half := snap.Params.BodySize / 2
	fwd := s.Heading()
	side := r2.Vec{X: -fwd.Y, Y: fwd.X}
	clearBody(c, &cam, s.Position, fwd, half)
	body := []r2.Vec{
		r2.Add(s.Position, r2.Add(r2.Scale(half, fwd), r2.Scale(half, side))),
		r2.Add(s.Position, r2.Add(r2.Scale(half, fwd), r2.Scale(-half, side))),
		r2.Add(s.Position, r2.Add(r2.Scale(-half, fwd), r2.Scale(-half, side))),
		r2.Add(s.Position, r2.Add(r2.Scale(-half, fwd), r2.Scale(half, side))),
	}
	for i := range body {
		line(body[i], body[(i+1)%len(body)])
	}
	line(s.Position, r2.Add(s.Position, r2.Scale(half*1.6, fwd)))

	if opts.Vectors {
		line(s.Position, r2.Add(s.Position, r2.Scale(0.5, s.Velocity)))
		line(s.Position, r2.Add(s.Position, r2.Scale(0.5, s.Lateral())))
	}
}

// clearBody erases dots strictly inside the body so the floor grid does not
// show through it.
func clearBody(c *Canvas, cam *camera.Camera, pos, fwd r2.Vec, half float64) {
	reach := half * math.Sqrt2 * cam.Zoom
	cx, cy := cam.WorldToScreen(pos.X, pos.Y)
	for y := int(math.Floor(cy - reach)); y <= int(math.Ceil(cy+reach)); y++ {
		for x := int(math.Floor(cx - reach)); x <= int(math.Ceil(cx+reach)); x++ {
			wx, wy := cam.ScreenToWorld(float64(x), float64(y))
			d := r2.Sub(r2.Vec{X: wx, Y: wy}, pos)
			along := r2.Dot(d, fwd)
			across := fwd.X*d.Y - fwd.Y*d.X
			if math.Abs(along) < half && math.Abs(across) < half {
				c.Unset(x, y)
			}
		}
	}
}
