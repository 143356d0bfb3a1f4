package telemetry

import (
	"fmt"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/world"
)

type Kind int

const (
	KindWorld Kind = iota
	KindParticle
)

func (k Kind) String() string {
	if k == KindWorld {
		return "World"
	}
	return "Particle"
}

// Entity is the kinematic state of a world or particle at one instant.
type Entity struct {
	ID   physics.ID
	Kind Kind
	T    float64
	Mass float64
	R    geom.Vector
	V    geom.Vector
	A    geom.Vector
}

func (e Entity) String() string {
	if e.Kind == KindWorld {
		return "World"
	}
	return fmt.Sprintf("Particle %v", e.ID)
}

// Entities lists the world entity followed by every live particle.
func Entities(w *world.World) []Entity {
	ps := w.Particles()
	out := make([]Entity, 0, len(ps)+1)
	out = append(out, Entity{ID: w.ID(), Kind: KindWorld, T: w.Time(), R: w.Center()})
	for _, p := range ps {
		out = append(out, Entity{
			ID:   p.ID(),
			Kind: KindParticle,
			T:    p.Age(),
			Mass: p.Mass(),
			R:    p.Position(),
			V:    p.Velocity(),
			A:    p.Acceleration(),
		})
	}
	return out
}

// Find returns the entity with the given id.
func Find(entities []Entity, id physics.ID) (Entity, bool) {
	for _, e := range entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Cycle returns the id dir positions away from id in entities, wrapping
// around. An id not in entities counts as the first entity.
func Cycle(entities []Entity, id physics.ID, dir int) physics.ID {
	if len(entities) == 0 {
		return id
	}
	idx := 0
	for i, e := range entities {
		if e.ID == id {
			idx = i
			break
		}
	}
	n := len(entities)
	idx = ((idx+dir)%n + n) % n
	return entities[idx].ID
}
