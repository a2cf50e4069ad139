package sim

import "github.com/mverhelle/folio/internal/steer"

// Source produces the input for each tick.
type Source interface {
	Input(s steer.State, t float64) steer.Input
}

type Metric interface {
	Name() string
	Observe(s steer.State, in steer.Input, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s steer.State, in steer.Input, t float64)
}

type Config struct {
	Dt       float64
	Duration float64

	// ValidateState aborts the run when a non-finite state appears.
	ValidateState bool
	// StopWhenIdle ends the run early once the entity is at rest with no
	// pending target and the source has nothing left to do.
	StopWhenIdle bool
}

// Sample is one recorded tick.
type Sample struct {
	T     float64
	State steer.State
	Input steer.Input
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
}

// Final returns the last recorded state.
func (r *Result) Final() steer.State {
	if len(r.Samples) == 0 {
		return steer.State{}
	}
	return r.Samples[len(r.Samples)-1].State
}

// Finisher is implemented by sources that know when their script is over.
type Finisher interface {
	Done(t float64) bool
}
