package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/steer"
)

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s steer.State, in steer.Input, t float64) {
	m.max = math.Max(m.max, s.Speed())
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Distance is the path length travelled.
type Distance struct {
	name  string
	total float64
	last  r2.Vec
	seen  bool
}

func NewDistance() *Distance {
	return &Distance{name: "distance"}
}

func (d *Distance) Name() string { return d.name }

func (d *Distance) Observe(s steer.State, in steer.Input, t float64) {
	if d.seen {
		d.total += r2.Norm(r2.Sub(s.Position, d.last))
	}
	d.last = s.Position
	d.seen = true
}

func (d *Distance) Value() float64 { return d.total }

func (d *Distance) Reset() {
	d.total = 0
	d.seen = false
}

// PeakLateral is the largest sideways speed seen, a measure of drift.
type PeakLateral struct {
	name string
	max  float64
}

func NewPeakLateral() *PeakLateral {
	return &PeakLateral{name: "peak_lateral"}
}

func (p *PeakLateral) Name() string { return p.name }

func (p *PeakLateral) Observe(s steer.State, in steer.Input, t float64) {
	p.max = math.Max(p.max, r2.Norm(s.Lateral()))
}

func (p *PeakLateral) Value() float64 { return p.max }
func (p *PeakLateral) Reset()         { p.max = 0 }
