package sim

import (
	"errors"
	"fmt"

	"github.com/mverhelle/folio/internal/steer"
)

var (
	ErrInvalidConfig = errors.New("sim: invalid run configuration")
	ErrInvalidState  = errors.New("sim: invalid state (NaN or Inf detected)")
)

// StepError wraps an error with the tick it occurred on.
type StepError struct {
	Step    int
	Time    float64
	State   steer.State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
