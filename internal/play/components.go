package play

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/steer"
)

// Body is the square footprint used for wall clamping and drawing.
type Body struct {
	Size float64
}

// Motion is the kinematic part of the steering state.
type Motion struct {
	Position     r2.Vec
	Velocity     r2.Vec
	Rotation     float64
	Drag         float64
	Acceleration r2.Vec
}

// Navigation holds the pending click target.
type Navigation struct {
	Target steer.Target
}

func compose(m *Motion, n *Navigation) steer.State {
	return steer.State{
		Position:     m.Position,
		Velocity:     m.Velocity,
		Rotation:     m.Rotation,
		Drag:         m.Drag,
		Acceleration: m.Acceleration,
		Target:       n.Target,
	}
}

func decompose(s steer.State, m *Motion, n *Navigation) {
	m.Position = s.Position
	m.Velocity = s.Velocity
	m.Rotation = s.Rotation
	m.Drag = s.Drag
	m.Acceleration = s.Acceleration
	n.Target = s.Target
}
