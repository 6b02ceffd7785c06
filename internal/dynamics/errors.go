package dynamics

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamics: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamics: simulation unstable (state diverged)")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamics: run canceled by context")
)

// StepError wraps an error with the tick it occurred on.
type StepError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
