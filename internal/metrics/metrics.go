package metrics

import "github.com/san-kum/raysim/internal/sim"

// All returns one fresh instance of every metric.
func All() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewSurvival(),
		NewRayBounces(),
	}
}
