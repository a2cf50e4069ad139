package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/play"
)

func vec(v r2.Vec) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

// drawFloor tiles the checker texture over the visible part of the world.
func (a *App) drawFloor(snap play.Snapshot) {
	world := snap.Params.WorldSize
	minX, minY, maxX, maxY := snap.Camera.VisibleWorldBounds()
	step := float64(tileSize * 2)

	x0 := math.Max(0, math.Floor(minX/step)*step)
	y0 := math.Max(0, math.Floor(minY/step)*step)
	x1 := math.Min(world, maxX)
	y1 := math.Min(world, maxY)

	for y := y0; y < y1; y += step {
		for x := x0; x < x1; x += step {
			// Clip the last row and column to the world edge.
			w := math.Min(step, world-x)
			h := math.Min(step, world-y)
			src := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)}
			rl.DrawTextureRec(a.floor, src, rl.NewVector2(float32(x), float32(y)), rl.White)
		}
	}
}

func drawWorld(snap play.Snapshot, vectors bool) {
	world := float32(snap.Params.WorldSize)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: 0, Y: 0, Width: world, Height: world}, 4, ColBounds)

	s := snap.State
	cam := snap.Camera
	if s.Target.Active && cam.IsVisible(s.Target.Point.X, s.Target.Point.Y, 12) {
		p := vec(s.Target.Point)
		rl.DrawCircleLines(int32(p.X), int32(p.Y), 10, ColTarget)
		rl.DrawLineEx(rl.NewVector2(p.X-6, p.Y), rl.NewVector2(p.X+6, p.Y), 2, ColTarget)
		rl.DrawLineEx(rl.NewVector2(p.X, p.Y-6), rl.NewVector2(p.X, p.Y+6), 2, ColTarget)
	}

	size := float32(snap.Params.BodySize)
	pos := vec(s.Position)
	rl.DrawRectanglePro(
		rl.Rectangle{X: pos.X, Y: pos.Y, Width: size, Height: size},
		rl.NewVector2(size/2, size/2),
		deg(s.Rotation),
		ColPlayer,
	)
	nose := r2.Add(s.Position, r2.Scale(snap.Params.BodySize*0.8, s.Heading()))
	rl.DrawLineEx(pos, vec(nose), 3, ColNose)

	if vectors {
		rl.DrawLineEx(pos, vec(r2.Add(s.Position, r2.Scale(0.5, s.Velocity))), 2, ColVel)
		rl.DrawLineEx(pos, vec(r2.Add(s.Position, r2.Scale(0.5, s.Lateral()))), 2, ColSlip)
	}
}
