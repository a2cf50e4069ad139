// Package control provides input sources that drive the steering model
// without a human at the keyboard.
//
// Sources implement the [sim.Source] interface and return one
// [steer.Input] per tick:
//
//   - [None]: no keys, no clicks
//   - [Script]: timed segments of held keys and one-shot clicks
//   - [Autopilot]: PID heading control through a list of waypoints
//
// # Usage
//
//	src := control.NewScript([]control.Segment{
//	    {At: 0, Until: 2, Keys: []control.Key{control.KeyForward}},
//	    {At: 3, Click: &control.Point{X: 1400, Y: 1000}},
//	})
//	s := sim.New(params, src)
//
// Sources are stateful; use one per run.
package control
