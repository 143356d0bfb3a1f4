package world

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/optics"
	"github.com/san-kum/raysim/internal/physics"
)

// minEmitChunk is the smallest number of particles handed to one emission
// worker.
const minEmitChunk = 2

type World struct {
	id       physics.ID
	t        float64
	width    float64
	height   float64
	boundary Boundary
	workers  int
	removed  int

	particles []*physics.Particle
	forces    []physics.Force
	mirrors   []optics.PlaneMirror

	emitter   *optics.Emitter
	rays      []optics.Ray
	rayOwners []physics.ID

	logger *slog.Logger
}

func New(width, height float64, opts ...Option) (*World, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	emitter := optics.NewEmitter(width, height)
	emitter.Count = o.rayCount
	emitter.MaxPoints = o.maxPoints

	return &World{
		id:       physics.NewID(),
		width:    width,
		height:   height,
		boundary: o.boundary,
		workers:  o.workers,
		emitter:  emitter,
		logger:   logging.OrNop(o.logger),
	}, nil
}

func (w *World) ID() physics.ID         { return w.id }
func (w *World) Time() float64          { return w.t }
func (w *World) Width() float64         { return w.width }
func (w *World) Height() float64        { return w.height }
func (w *World) Boundary() Boundary     { return w.boundary }
func (w *World) SetBoundary(b Boundary) { w.boundary = b }

// Removed returns how many particles the remove policy has dropped so far.
func (w *World) Removed() int { return w.removed }

// Center returns the middle of the rectangle.
func (w *World) Center() geom.Vector {
	return geom.Vec(w.width/2, w.height/2)
}

func (w *World) AddParticle(p *physics.Particle) {
	w.particles = append(w.particles, p)
	w.logger.Debug("particle added", "id", p.ID(), "r", p.Position(), "v", p.Velocity())
}

func (w *World) AddForce(f physics.Force) {
	w.forces = append(w.forces, f)
}

func (w *World) AddMirror(m optics.PlaneMirror) {
	w.mirrors = append(w.mirrors, m)
}

// Len returns the number of live particles.
func (w *World) Len() int { return len(w.particles) }

// Particles returns a copy of every live particle in insertion order.
func (w *World) Particles() []physics.Particle {
	out := make([]physics.Particle, len(w.particles))
	for i, p := range w.particles {
		out[i] = *p
	}
	return out
}

// Particle returns a copy of the live particle with the given id.
func (w *World) Particle(id physics.ID) (physics.Particle, bool) {
	for _, p := range w.particles {
		if p.ID() == id {
			return *p, true
		}
	}
	return physics.Particle{}, false
}

func (w *World) Forces() []physics.Force {
	out := make([]physics.Force, len(w.forces))
	copy(out, w.forces)
	return out
}

func (w *World) Mirrors() []optics.PlaneMirror {
	out := make([]optics.PlaneMirror, len(w.mirrors))
	copy(out, w.mirrors)
	return out
}

// Rays returns the rays emitted during the last Update, grouped by
// particle in particle order.
func (w *World) Rays() []optics.Ray {
	out := make([]optics.Ray, len(w.rays))
	copy(out, w.rays)
	return out
}

// RaysFrom returns the rays emitted by one particle during the last Update.
func (w *World) RaysFrom(id physics.ID) []optics.Ray {
	var out []optics.Ray
	for i, owner := range w.rayOwners {
		if owner == id {
			out = append(out, w.rays[i])
		}
	}
	return out
}

// Update advances the world by dt.
func (w *World) Update(dt float64) {
	w.t += dt

	net := make([]geom.Vector, len(w.particles))
	for i, p := range w.particles {
		net[i] = physics.NetForce(w.forces, p)
	}

	kept := w.particles[:0]
	for i, p := range w.particles {
		p.Update(dt, net[i])
		if w.applyBoundary(p) {
			kept = append(kept, p)
			continue
		}
		w.removed++
		w.logger.Debug("particle left the world", "id", p.ID(), "r", p.Position(), "t", w.t)
	}
	clear(w.particles[len(kept):])
	w.particles = kept

	w.Refresh()
}

// applyBoundary reports whether p stays in the world.
func (w *World) applyBoundary(p *physics.Particle) bool {
	switch w.boundary {
	case BoundaryWrap:
		p.SetPosition(wrap(p.Position(), w.width, w.height))
		return true
	default:
		return contains(p.Position(), w.width, w.height)
	}
}

// Refresh re-emits every particle's rays without advancing time, for
// scenes that are displayed before their first Update.
func (w *World) Refresh() {
	perParticle := make([][]optics.Ray, len(w.particles))
	ParallelFor(len(w.particles), w.workers, minEmitChunk, func(start, end int) {
		for i := start; i < end; i++ {
			perParticle[i] = w.emitter.Emit(w.particles[i].Position(), w.mirrors)
		}
	})

	total := 0
	for _, rs := range perParticle {
		total += len(rs)
	}
	w.rays = make([]optics.Ray, 0, total)
	w.rayOwners = make([]physics.ID, 0, total)
	for i, rs := range perParticle {
		w.rays = append(w.rays, rs...)
		for range rs {
			w.rayOwners = append(w.rayOwners, w.particles[i].ID())
		}
	}
}
