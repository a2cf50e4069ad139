package main

import (
	"go.uber.org/zap"

	"github.com/mverhelle/folio/internal/sim"
	"github.com/mverhelle/folio/internal/steer"
)

// targetLog reports click targets as they are captured and cleared.
type targetLog struct {
	log    *zap.Logger
	active bool
}

func (o *targetLog) OnStep(s steer.State, in steer.Input, t float64) {
	switch {
	case s.Target.Active && !o.active:
		o.log.Debug("target set",
			zap.Float64("t", t),
			zap.Float64("x", s.Target.Point.X),
			zap.Float64("y", s.Target.Point.Y),
		)
	case !s.Target.Active && o.active:
		o.log.Debug("target cleared",
			zap.Float64("t", t),
			zap.Float64("x", s.Position.X),
			zap.Float64("y", s.Position.Y),
		)
	}
	o.active = s.Target.Active
}

func targetEvents(log *zap.Logger) func() []sim.Observer {
	return func() []sim.Observer {
		return []sim.Observer{&targetLog{log: log}}
	}
}
