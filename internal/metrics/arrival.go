package metrics

import "github.com/mverhelle/folio/internal/steer"

// ArrivalTime records when the last click target was reached. Value is -1
// while a target is pending or none was ever set.
type ArrivalTime struct {
	name    string
	pending bool
	arrived float64
}

func NewArrivalTime() *ArrivalTime {
	return &ArrivalTime{name: "arrival_time", arrived: -1}
}

func (a *ArrivalTime) Name() string { return a.name }

func (a *ArrivalTime) Observe(s steer.State, in steer.Input, t float64) {
	switch {
	case in.Click != nil || s.Target.Active:
		if !a.pending {
			a.arrived = -1
		}
		a.pending = true
	case a.pending:
		a.pending = false
		a.arrived = t
	}
}

func (a *ArrivalTime) Value() float64 { return a.arrived }

func (a *ArrivalTime) Reset() {
	a.pending = false
	a.arrived = -1
}
