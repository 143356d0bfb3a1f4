package sim

import (
	"github.com/san-kum/raysim/internal/optics"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/world"
)

// Metric accumulates a scalar over the observed world states of a run.
type Metric interface {
	Name() string
	Observe(w *world.World)
	Value() float64
	Reset()
}

// Observer is called with the world after every completed step, and once
// before the first step.
type Observer interface {
	OnStep(w *world.World)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(w *world.World)

func (f ObserverFunc) OnStep(w *world.World) { f(w) }

type Config struct {
	Dt       float64
	Duration float64
}

type Result struct {
	Steps     int
	Time      float64
	Metrics   map[string]float64
	Particles []physics.Particle
	Rays      []optics.Ray
	Removed   int
}
