package metrics

import (
	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/world"
)

// TotalMomentum sums mv over the live particles of w.
func TotalMomentum(w *world.World) geom.Vector {
	var p geom.Vector
	for _, pt := range w.Particles() {
		p = p.Add(pt.Momentum())
	}
	return p
}

// Momentum reports the magnitude of the total momentum at the last sample.
type Momentum struct {
	name string
	last geom.Vector
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(w *world.World) {
	m.last = TotalMomentum(w)
}

func (m *Momentum) Value() float64 { return m.last.Length() }

func (m *Momentum) Reset() { m.last = geom.Vector{} }
