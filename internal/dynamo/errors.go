package dynamo

import (
	"errors"
	"fmt"
)

// ErrPrecondition is the single error kind raised by the core. It marks a
// programming or configuration mistake; no retry applies.
var ErrPrecondition = errors.New("dynamo: precondition violated")

var (
	// ErrNonFinite indicates NaN or Inf in a time, step size, state or parameter.
	ErrNonFinite = fmt.Errorf("%w: non-finite value", ErrPrecondition)

	// ErrNonPositiveStep indicates a step size h <= 0.
	ErrNonPositiveStep = fmt.Errorf("%w: step size must be positive", ErrPrecondition)

	// ErrNonPositiveMass indicates m1 or m2 <= 0.
	ErrNonPositiveMass = fmt.Errorf("%w: mass must be positive", ErrPrecondition)

	// ErrNegativeCoefficient indicates a negative stiffness or damping.
	ErrNegativeCoefficient = fmt.Errorf("%w: stiffness and damping must be non-negative", ErrPrecondition)

	// ErrDimensionMismatch indicates a vector that is not 4-dimensional.
	ErrDimensionMismatch = fmt.Errorf("%w: state must have 4 components", ErrPrecondition)
)

func NonPositiveStep(h float64) error {
	return fmt.Errorf("%w (h=%g)", ErrNonPositiveStep, h)
}

func NonFinite(what string) error {
	return fmt.Errorf("%w in %s", ErrNonFinite, what)
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
