package metrics

import "github.com/san-kum/raysim/internal/world"

// Survival is the fraction of the particles of the first sample that are
// still in the world at the last one.
type Survival struct {
	name    string
	initial int
	current int
	samples int
}

func NewSurvival() *Survival {
	return &Survival{name: "survival"}
}

func (s *Survival) Name() string { return s.name }

func (s *Survival) Observe(w *world.World) {
	if s.samples == 0 {
		s.initial = w.Len()
	}
	s.current = w.Len()
	s.samples++
}

func (s *Survival) Value() float64 {
	if s.samples == 0 || s.initial == 0 {
		return 1.0
	}
	return float64(s.current) / float64(s.initial)
}

func (s *Survival) Reset() {
	s.initial = 0
	s.current = 0
	s.samples = 0
}
