package control

import (
	"math"

	"github.com/mverhelle/folio/internal/steer"
)

// PID is a scalar feedback loop on an error signal.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd, first: true}
}

// Compute returns the control output for err observed at time t.
func (p *PID) Compute(err, t float64) float64 {
	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t
		return u
	}
	return p.Kp * err
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// Autopilot drives through waypoints with the steering keys only. A PID on
// the heading error picks left or right; forward is held while the error is
// below Cone.
type Autopilot struct {
	Waypoints []Point
	Radius    float64 // waypoint reached
	Cone      float64 // radians
	Deadband  float64

	pid  *PID
	next int
}

func NewAutopilot(waypoints []Point, radius float64) *Autopilot {
	return &Autopilot{
		Waypoints: append([]Point(nil), waypoints...),
		Radius:    radius,
		Cone:      steer.Radians(30),
		Deadband:  0.05,
		pid:       NewPID(2.0, 0, 0.1),
	}
}

func (a *Autopilot) Input(s steer.State, t float64) steer.Input {
	for a.next < len(a.Waypoints) {
		w := a.Waypoints[a.next].Vec()
		dx, dy := w.X-s.Position.X, w.Y-s.Position.Y
		if math.Hypot(dx, dy) > a.Radius {
			break
		}
		a.next++
		a.pid.Reset()
	}
	if a.next >= len(a.Waypoints) {
		return steer.Input{}
	}

	w := a.Waypoints[a.next].Vec()
	errAngle := steer.ShortestBetween(s.Rotation, steer.Bearing(s.Position, w, s.Rotation))
	u := a.pid.Compute(errAngle, t)

	var in steer.Input
	switch {
	case u > a.Deadband:
		in.Right = true
	case u < -a.Deadband:
		in.Left = true
	}
	in.Forward = math.Abs(errAngle) < a.Cone
	return in
}

// Reached returns how many waypoints have been passed.
func (a *Autopilot) Reached() int { return a.next }

func (a *Autopilot) Done(t float64) bool { return a.next >= len(a.Waypoints) }

func (a *Autopilot) Reset() {
	a.next = 0
	a.pid.Reset()
}
