package control

import "github.com/mverhelle/folio/internal/steer"

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Input(s steer.State, t float64) steer.Input {
	return steer.Input{}
}

func (n *None) Done(t float64) bool { return true }
