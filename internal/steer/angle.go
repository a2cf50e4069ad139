package steer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// ShortestBetween returns the signed smallest rotation taking from to to.
func ShortestBetween(from, to float64) float64 {
	return WrapAngle(to - from)
}

// RotateTowards turns current toward target by at most step along the
// shortest direction, landing exactly on target when within reach.
func RotateTowards(current, target, step float64) float64 {
	diff := ShortestBetween(current, target)
	if math.Abs(diff) <= step {
		return WrapAngle(target)
	}
	return WrapAngle(current + math.Copysign(step, diff))
}

// Bearing returns the angle of the ray from p to q. When the points coincide
// the fallback angle is returned.
func Bearing(p, q r2.Vec, fallback float64) float64 {
	d := r2.Sub(q, p)
	if r2.Norm2(d) < 1e-12 {
		return fallback
	}
	return math.Atan2(d.Y, d.X)
}

// TurnCap returns the maximum angular velocity at the given speed. Turning is
// sharpest at rest and eases toward TurnRateAtSpeed quadratically.
func TurnCap(p Params, speed float64) float64 {
	r := clamp(speed/p.MaxSpeed, 0, 1)
	if math.IsNaN(r) {
		r = 0
	}
	k := (1 - r) * (1 - r)
	return p.TurnRateAtSpeed + (p.TurnRateAtRest-p.TurnRateAtSpeed)*k
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
