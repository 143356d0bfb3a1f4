package world

import (
	"log/slog"

	"github.com/san-kum/raysim/internal/optics"
)

// Option configures a World during creation.
type Option func(*options)

type options struct {
	boundary  Boundary
	rayCount  int
	maxPoints int
	workers   int
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		boundary:  BoundaryRemove,
		rayCount:  optics.DefaultRayCount,
		maxPoints: optics.DefaultMaxPoints,
		workers:   1,
	}
}

func WithBoundary(b Boundary) Option {
	return func(o *options) { o.boundary = b }
}

// WithRayCount sets the number of rays each particle emits. Zero disables
// ray tracing.
func WithRayCount(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.rayCount = n
		}
	}
}

// WithMaxRayPoints caps the number of points of a single ray.
func WithMaxRayPoints(n int) Option {
	return func(o *options) {
		if n >= 2 {
			o.maxPoints = n
		}
	}
}

// WithWorkers spreads ray emission over n goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger for particle removal and scene changes.
// By default the world logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
