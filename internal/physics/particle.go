package physics

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/san-kum/raysim/internal/geom"
)

// ID identifies an entity for the lifetime of the process. Zero is never
// handed out.
type ID uint64

var lastID atomic.Uint64

// NewID returns the next identifier of a process-wide increasing counter.
func NewID() ID {
	return ID(lastID.Add(1))
}

func (id ID) String() string {
	return fmt.Sprintf("#%d", uint64(id))
}

// Particle is a punctual mass with position r, velocity v and the last
// computed acceleration a.
type Particle struct {
	id ID
	t  float64
	m  float64
	r  geom.Vector
	v  geom.Vector
	a  geom.Vector
}

// NewParticle creates a particle of age zero with the given kinematics.
// It fails with ErrNonPositiveMass when m <= 0 so that Update never
// divides by a non-positive mass.
func NewParticle(r, v geom.Vector, m float64) (*Particle, error) {
	if !(m > 0) || math.IsInf(m, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveMass, m)
	}
	if !r.IsFinite() || !v.IsFinite() {
		return nil, fmt.Errorf("%w: r=%v v=%v", ErrNonFiniteState, r, v)
	}
	return &Particle{
		id: NewID(),
		m:  m,
		r:  r,
		v:  v,
	}, nil
}

// Update advances the particle by dt under the net force f.
func (p *Particle) Update(dt float64, f geom.Vector) {
	p.t += dt

	p.a = f.Div(p.m)
	p.v = p.v.Add(p.a.Scale(dt))
	p.r = p.r.Add(p.v.Scale(dt))
}

func (p *Particle) ID() ID                    { return p.id }
func (p *Particle) Age() float64              { return p.t }
func (p *Particle) Mass() float64             { return p.m }
func (p *Particle) Position() geom.Vector     { return p.r }
func (p *Particle) Velocity() geom.Vector     { return p.v }
func (p *Particle) Acceleration() geom.Vector { return p.a }
func (p *Particle) SetPosition(r geom.Vector) { p.r = r }

// IsFinite reports whether position and velocity are free of NaN and Inf.
func (p *Particle) IsFinite() bool {
	return p.r.IsFinite() && p.v.IsFinite()
}

func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.m * p.v.Dot(p.v)
}

func (p *Particle) Momentum() geom.Vector {
	return p.v.Scale(p.m)
}
