package steer

import "errors"

// Domain errors for steering parameters.
var (
	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("steer: parameter out of valid bounds")

	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("steer: invalid state (NaN or Inf detected)")
)
