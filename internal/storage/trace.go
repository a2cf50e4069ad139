package storage

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/sim"
	"github.com/mverhelle/folio/internal/steer"
)

// Row is one line of trace.csv.
type Row struct {
	T        float64 `csv:"t" json:"t"`
	X        float64 `csv:"x" json:"x"`
	Y        float64 `csv:"y" json:"y"`
	VX       float64 `csv:"vx" json:"vx"`
	VY       float64 `csv:"vy" json:"vy"`
	Rotation float64 `csv:"rotation" json:"rotation"`
	Speed    float64 `csv:"speed" json:"speed"`
	Lateral  float64 `csv:"lateral" json:"lateral"`
	Drag     float64 `csv:"drag" json:"drag"`

	Forward bool `csv:"forward" json:"forward"`
	Reverse bool `csv:"reverse" json:"reverse"`
	Left    bool `csv:"left" json:"left"`
	Right   bool `csv:"right" json:"right"`
	Click   bool `csv:"click" json:"click"`

	TargetActive bool    `csv:"target_active" json:"target_active"`
	TargetX      float64 `csv:"target_x" json:"target_x"`
	TargetY      float64 `csv:"target_y" json:"target_y"`
}

func NewRow(t float64, s steer.State, in steer.Input) Row {
	return Row{
		T:            t,
		X:            s.Position.X,
		Y:            s.Position.Y,
		VX:           s.Velocity.X,
		VY:           s.Velocity.Y,
		Rotation:     s.Rotation,
		Speed:        s.Speed(),
		Lateral:      r2.Norm(s.Lateral()),
		Drag:         s.Drag,
		Forward:      in.Forward,
		Reverse:      in.Reverse,
		Left:         in.Left,
		Right:        in.Right,
		Click:        in.Click != nil,
		TargetActive: s.Target.Active,
		TargetX:      s.Target.Point.X,
		TargetY:      s.Target.Point.Y,
	}
}

// Position returns the row's position as a vector.
func (r Row) Position() r2.Vec { return r2.Vec{X: r.X, Y: r.Y} }

func RowsFromResult(res *sim.Result) []Row {
	rows := make([]Row, len(res.Samples))
	for i, smp := range res.Samples {
		rows[i] = NewRow(smp.T, smp.State, smp.Input)
	}
	return rows
}

// Series extracts one column for plotting.
func Series(rows []Row, field string) ([]float64, bool) {
	var get func(Row) float64
	switch field {
	case "speed":
		get = func(r Row) float64 { return r.Speed }
	case "lateral":
		get = func(r Row) float64 { return r.Lateral }
	case "rotation", "heading":
		get = func(r Row) float64 { return steer.Degrees(r.Rotation) }
	case "x":
		get = func(r Row) float64 { return r.X }
	case "y":
		get = func(r Row) float64 { return r.Y }
	default:
		return nil, false
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out, true
}
