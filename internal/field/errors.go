package field

import (
	"errors"
	"fmt"
)

// Domain errors for field construction and simulation.
var (
	// ErrInvalidParameter indicates a grid or step parameter outside its valid range.
	ErrInvalidParameter = errors.New("field: invalid parameter")

	// ErrShapeMismatch indicates an input of unusable shape (empty, wrong length, zero norm).
	ErrShapeMismatch = errors.New("field: shape mismatch")

	// ErrZeroVector indicates an attempt to normalize a zero-magnitude vector.
	ErrZeroVector = fmt.Errorf("%w: cannot normalize zero vector", ErrShapeMismatch)

	// ErrInvalidState indicates a field containing NaN or Inf samples.
	ErrInvalidState = errors.New("field: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the explicit scheme diverged for the chosen step size.
	ErrUnstable = errors.New("field: simulation unstable (state diverged)")
)

// SimulationError wraps an error with the step at which it was detected.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
