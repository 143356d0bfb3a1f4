package physics

import "errors"

var (
	// ErrNonPositiveMass indicates a particle constructed with m <= 0.
	ErrNonPositiveMass = errors.New("physics: particle mass must be strictly positive")

	// ErrNonFiniteState indicates a particle constructed with NaN or Inf values.
	ErrNonFiniteState = errors.New("physics: particle state must be finite")
)
