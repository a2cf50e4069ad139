package steer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Step advances the entity by one tick of dt seconds.
//
// Order within a tick: click capture, steering (keys or click target),
// thrust and drag selection, lateral grip, integration with world clamping,
// and finally the arrival check. A non-positive or non-finite dt returns the
// state unchanged.
func Step(p Params, s State, in Input, dt float64) State {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return s
	}

	if in.Click != nil {
		pt := reachable(p, *in.Click)
		s.Target = Target{
			Active:  true,
			Point:   pt,
			Heading: Bearing(s.Position, pt, s.Rotation),
		}
	}

	speed := s.Speed()
	turnCap := TurnCap(p, speed)

	steer := in.Steer()
	cruising := false
	switch {
	case steer != 0:
		s.Target = Target{}
		s.Rotation = WrapAngle(s.Rotation + steer*turnCap*dt)
	case s.Target.Active:
		s.Rotation = RotateTowards(s.Rotation, s.Target.Heading, turnCap*dt)
		if math.Abs(ShortestBetween(s.Rotation, s.Target.Heading)) <= p.AlignTolerance {
			s.Velocity = approach(s.Position, s.Target.Point, p.CruiseSpeed, dt)
			cruising = true
		}
	}

	heading := s.Heading()
	thrust := in.Thrust()
	if thrust != 0 {
		s.Drag = p.ActiveDrag
		s.Target = Target{}
		cruising = false
		accel := p.Accel
		if thrust < 0 {
			accel = p.BrakeAccel
		}
		s.Acceleration = r2.Scale(thrust*accel, heading)
	} else {
		s.Drag = p.CoastDrag
		s.Acceleration = r2.Vec{}
		if steer != 0 && speed > moving {
			slow := math.Max(0, 1-p.TurnSlow*dt)
			s.Velocity = r2.Scale(slow, s.Velocity)
		}
	}

	s.Velocity = applyGrip(s.Velocity, heading, p.Grip, dt)
	s = integrate(p, s, heading, cruising, dt)

	if s.Target.Active && r2.Norm(r2.Sub(s.Position, s.Target.Point)) < p.ArrivalRadius {
		s.Target = Target{}
		s.Acceleration = r2.Vec{}
		s.Velocity = r2.Vec{}
	}
	return s
}

// reachable pulls q inside the area the body center can occupy.
func reachable(p Params, q r2.Vec) r2.Vec {
	lo, hi := p.BodySize/2, p.WorldSize-p.BodySize/2
	return r2.Vec{X: clamp(q.X, lo, hi), Y: clamp(q.Y, lo, hi)}
}

// approach returns the velocity that moves from p toward q at speed without
// passing q within one tick.
func approach(p, q r2.Vec, speed, dt float64) r2.Vec {
	d := r2.Sub(q, p)
	dist := r2.Norm(d)
	if dist < 1e-9 {
		return r2.Vec{}
	}
	if speed*dt > dist {
		speed = dist / dt
	}
	return r2.Scale(speed/dist, d)
}

// decompose splits v into the part along the unit vector dir and the rest.
func decompose(v, dir r2.Vec) (long, lat r2.Vec) {
	long = r2.Scale(r2.Dot(v, dir), dir)
	return long, r2.Sub(v, long)
}

// applyGrip attenuates the sideways component of v, keeping the part along
// heading.
func applyGrip(v, heading r2.Vec, grip, dt float64) r2.Vec {
	if r2.Norm(v) <= moving {
		return v
	}
	long, lat := decompose(v, heading)
	return r2.Add(long, r2.Scale(math.Exp(-grip*dt), lat))
}

// integrate applies acceleration, drag and the speed cap, then moves and
// clamps the position. Drag only acts on axes without thrust: the whole
// vector while coasting, the part perpendicular to the thrust otherwise.
// A cruising entity holds its navigation speed.
func integrate(p Params, s State, heading r2.Vec, cruising bool, dt float64) State {
	v := r2.Add(s.Velocity, r2.Scale(dt, s.Acceleration))

	loss := s.Drag * dt
	switch {
	case cruising:
	case r2.Norm2(s.Acceleration) == 0:
		v = shrink(v, loss)
	default:
		long, lat := decompose(v, heading)
		v = r2.Add(long, shrink(lat, loss))
	}

	if speed := r2.Norm(v); speed > p.MaxSpeed {
		v = r2.Scale(p.MaxSpeed/speed, v)
	}

	pos := r2.Add(s.Position, r2.Scale(dt, v))
	lo := p.BodySize / 2
	hi := p.WorldSize - p.BodySize/2
	if pos.X < lo || pos.X > hi {
		pos.X = clamp(pos.X, lo, hi)
		v.X = 0
	}
	if pos.Y < lo || pos.Y > hi {
		pos.Y = clamp(pos.Y, lo, hi)
		v.Y = 0
	}

	s.Velocity = v
	s.Position = pos
	return s
}

// shrink reduces the magnitude of v by amount, stopping at zero.
func shrink(v r2.Vec, amount float64) r2.Vec {
	n := r2.Norm(v)
	if n <= amount || n == 0 {
		return r2.Vec{}
	}
	return r2.Scale((n-amount)/n, v)
}
