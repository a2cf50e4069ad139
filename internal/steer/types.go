package steer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Default handling constants.
const (
	DefaultWorldSize     = 2000.0
	DefaultBodySize      = 32.0
	DefaultMaxSpeed      = 260.0
	DefaultAccel         = 400.0
	DefaultBrakeAccel    = 700.0 // braking outweighs forward thrust
	DefaultCoastDrag     = 120.0
	DefaultActiveDrag    = 600.0
	DefaultTurnSlow      = 4.0 // 1/s, extra decay while coasting and steering
	DefaultGrip          = 8.0
	DefaultArrivalRadius = 16.0
)

// moving is the speed below which the entity counts as stationary.
const moving = 1e-3

// Params holds the handling model parameters. Angles are in radians.
type Params struct {
	WorldSize       float64
	BodySize        float64
	MaxSpeed        float64
	Accel           float64
	BrakeAccel      float64
	CoastDrag       float64
	ActiveDrag      float64
	TurnSlow        float64
	Grip            float64
	TurnRateAtRest  float64 // rad/s at zero speed
	TurnRateAtSpeed float64 // rad/s at max speed
	CruiseSpeed     float64 // click-to-navigate translation speed
	ArrivalRadius   float64
	AlignTolerance  float64
}

// DefaultParams returns the stock handling model.
func DefaultParams() Params {
	return Params{
		WorldSize:       DefaultWorldSize,
		BodySize:        DefaultBodySize,
		MaxSpeed:        DefaultMaxSpeed,
		Accel:           DefaultAccel,
		BrakeAccel:      DefaultBrakeAccel,
		CoastDrag:       DefaultCoastDrag,
		ActiveDrag:      DefaultActiveDrag,
		TurnSlow:        DefaultTurnSlow,
		Grip:            DefaultGrip,
		TurnRateAtRest:  Radians(300),
		TurnRateAtSpeed: Radians(60),
		CruiseSpeed:     DefaultMaxSpeed,
		ArrivalRadius:   DefaultArrivalRadius,
		AlignTolerance:  Radians(2),
	}
}

// Validate reports the first parameter outside its valid range.
func (p Params) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"world_size", p.WorldSize > 0},
		{"body_size", p.BodySize >= 0 && p.BodySize < p.WorldSize},
		{"max_speed", p.MaxSpeed > 0},
		{"accel", p.Accel >= 0},
		{"brake_accel", p.BrakeAccel >= 0},
		{"coast_drag", p.CoastDrag >= 0},
		{"active_drag", p.ActiveDrag >= 0},
		{"turn_slow", p.TurnSlow >= 0},
		{"grip", p.Grip >= 0},
		{"turn_rate_at_rest", p.TurnRateAtRest > 0},
		{"turn_rate_at_speed", p.TurnRateAtSpeed > 0 && p.TurnRateAtSpeed <= p.TurnRateAtRest},
		{"cruise_speed", p.CruiseSpeed > 0},
		{"arrival_radius", p.ArrivalRadius >= 0},
		{"align_tolerance", p.AlignTolerance >= 0 && p.AlignTolerance < math.Pi},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%s: %w", c.name, ErrParameterBounds)
		}
	}
	return nil
}

// Target is a pending click-to-navigate destination. Heading is computed
// once, when the click lands.
type Target struct {
	Active  bool
	Point   r2.Vec
	Heading float64
}

// State is the controlled entity.
type State struct {
	Position     r2.Vec
	Velocity     r2.Vec
	Rotation     float64 // radians, wrapped to (-pi, pi]
	Drag         float64
	Acceleration r2.Vec
	Target       Target
}

// NewState places a stationary entity at the world center facing +x.
func NewState(p Params) State {
	c := p.WorldSize / 2
	return State{
		Position: r2.Vec{X: c, Y: c},
		Drag:     p.CoastDrag,
	}
}

// Speed returns the velocity magnitude.
func (s State) Speed() float64 { return r2.Norm(s.Velocity) }

// Heading returns the unit vector the entity faces.
func (s State) Heading() r2.Vec {
	return r2.Vec{X: math.Cos(s.Rotation), Y: math.Sin(s.Rotation)}
}

// Lateral returns the velocity component perpendicular to the heading.
func (s State) Lateral() r2.Vec {
	_, lat := decompose(s.Velocity, s.Heading())
	return lat
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	vals := []float64{
		s.Position.X, s.Position.Y,
		s.Velocity.X, s.Velocity.Y,
		s.Rotation, s.Drag,
		s.Acceleration.X, s.Acceleration.Y,
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Input is the per-tick snapshot of held keys and an optional click.
type Input struct {
	Forward bool
	Reverse bool
	Left    bool
	Right   bool

	// Click is the world point clicked this tick, if any.
	Click *r2.Vec
}

// ClickAt returns an input carrying only a click at (x, y).
func ClickAt(x, y float64) Input {
	return Input{Click: &r2.Vec{X: x, Y: y}}
}

// Steer returns -1, 0 or +1. Holding both directions cancels out.
func (in Input) Steer() float64 {
	s := 0.0
	if in.Right {
		s++
	}
	if in.Left {
		s--
	}
	return s
}

// Thrust returns +1 for forward, -1 for reverse and 0 for none.
// Forward wins when both are held.
func (in Input) Thrust() float64 {
	switch {
	case in.Forward:
		return 1
	case in.Reverse:
		return -1
	}
	return 0
}
