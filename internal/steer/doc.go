// Package steer implements the top-down vehicle steering model used by the
// play demo.
//
// The model is a pure function of the previous state, the held-key snapshot
// and the tick duration:
//
//	next := steer.Step(params, state, input, dt)
//
// It covers:
//
//   - [TurnCap]: speed-dependent turn-rate cap
//   - discrete left/right steering and click-to-navigate steering
//   - forward thrust and braking with coast/active drag
//   - lateral grip (exponential decay of sideways velocity)
//   - hard-stop clamping to the world rectangle
//
// Nothing in this package depends on a renderer or an ECS; hosts convert
// their own components to [State] and back.
package steer
