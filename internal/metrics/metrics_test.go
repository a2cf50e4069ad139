package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/steer"
)

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	m.Observe(steer.State{Velocity: r2.Vec{X: 3, Y: 4}}, steer.Input{}, 0)
	m.Observe(steer.State{Velocity: r2.Vec{X: 1}}, steer.Input{}, 0.1)

	if m.Value() != 5 {
		t.Errorf("expected 5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDistance(t *testing.T) {
	d := NewDistance()
	for _, p := range []r2.Vec{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}} {
		d.Observe(steer.State{Position: p}, steer.Input{}, 0)
	}
	if d.Value() != 11 {
		t.Errorf("expected 11, got %f", d.Value())
	}

	d.Reset()
	d.Observe(steer.State{Position: r2.Vec{X: 100}}, steer.Input{}, 0)
	if d.Value() != 0 {
		t.Error("first observation after reset must not count a jump")
	}
}

func TestPeakLateral(t *testing.T) {
	p := NewPeakLateral()
	// Facing +x, moving diagonally: lateral part is the y component.
	p.Observe(steer.State{Velocity: r2.Vec{X: 10, Y: 6}}, steer.Input{}, 0)
	p.Observe(steer.State{Velocity: r2.Vec{X: 10, Y: -2}}, steer.Input{}, 0)

	if math.Abs(p.Value()-6) > 1e-12 {
		t.Errorf("expected 6, got %f", p.Value())
	}
}

func TestArrivalTime(t *testing.T) {
	a := NewArrivalTime()
	if a.Value() != -1 {
		t.Fatal("expected -1 before any target")
	}

	click := r2.Vec{X: 5}
	a.Observe(steer.State{}, steer.Input{Click: &click}, 0)
	a.Observe(steer.State{Target: steer.Target{Active: true}}, steer.Input{}, 0.5)
	if a.Value() != -1 {
		t.Error("expected -1 while pending")
	}

	a.Observe(steer.State{}, steer.Input{}, 1.25)
	if a.Value() != 1.25 {
		t.Errorf("expected arrival at 1.25, got %f", a.Value())
	}
	a.Observe(steer.State{}, steer.Input{}, 2)
	if a.Value() != 1.25 {
		t.Error("arrival time must stick once recorded")
	}
}
