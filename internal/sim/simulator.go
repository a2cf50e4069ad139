package sim

import (
	"context"
	"fmt"

	"github.com/mverhelle/folio/internal/steer"
)

const idleSpeed = 1e-3

type Simulator struct {
	params    steer.Params
	source    Source
	metrics   []Metric
	observers []Observer
}

func New(params steer.Params, source Source) *Simulator {
	return &Simulator{
		params:    params,
		source:    source,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps the model from x0 for cfg.Duration. On cancellation the partial
// result is returned alongside the context error.
func (s *Simulator) Run(ctx context.Context, x0 steer.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0
	t := 0.0
	result.Samples = append(result.Samples, Sample{T: t, State: x})

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		in := s.source.Input(x, t)

		for _, m := range s.metrics {
			m.Observe(x, in, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, in, t)
		}
		if cfg.StopWhenIdle && in == (steer.Input{}) && s.idle(x, t) {
			break
		}

		next := steer.Step(s.params, x, in, cfg.Dt)
		if cfg.ValidateState && !next.IsValid() {
			s.collect(result)
			return result, &StepError{Step: i, Time: t, State: next, Wrapped: ErrInvalidState}
		}

		x = next
		t += cfg.Dt
		result.StepsTaken++
		result.Samples = append(result.Samples, Sample{T: t, State: x, Input: in})
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, ErrInvalidConfig)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f: %w", cfg.Duration, ErrInvalidConfig)
	}
	if err := s.params.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *Simulator) idle(x steer.State, t float64) bool {
	if x.Target.Active || x.Speed() > idleSpeed {
		return false
	}
	f, ok := s.source.(Finisher)
	return ok && f.Done(t)
}

func (s *Simulator) collect(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
