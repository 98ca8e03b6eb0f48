package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation setup and run loops.
var (
	// ErrInvalidState indicates a NaN or Inf value in a position or parameter.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrGridSize indicates a non-positive lattice size.
	ErrGridSize = errors.New("dynamo: grid size must be positive")

	// ErrCoreRadius indicates a non-positive skyrmion radius.
	ErrCoreRadius = errors.New("dynamo: core radius must be positive")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownName indicates a direction, pulse type or preset name not in its set.
	ErrUnknownName = errors.New("dynamo: unknown name")
)

// StepError wraps an error with the tick at which a run loop hit it.
type StepError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
