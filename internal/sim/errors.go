package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/raysim/internal/physics"
)

var (
	// ErrInvalidRun indicates a non-positive step or duration.
	ErrInvalidRun = errors.New("sim: dt and duration must be positive")

	// ErrUnstable indicates a particle state became NaN or infinite.
	ErrUnstable = errors.New("sim: simulation unstable (state diverged)")
)

// StepError wraps an error with the step at which it happened.
type StepError struct {
	Step     int
	Time     float64
	Particle physics.ID
	Wrapped  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, particle %v): %v", e.Step, e.Time, e.Particle, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
