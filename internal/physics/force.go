package physics

import "github.com/san-kum/raysim/internal/geom"

// Force computes the contribution of one force field to a particle's net
// force from the particle's current state.
type Force interface {
	ApplyOn(p *Particle) geom.Vector
	Name() string
}

// CentralForce attracts particles towards Center with magnitude
// Magnitude/distance. This is an inverse-distance law, not gravity's
// inverse square.
type CentralForce struct {
	Center    geom.Vector
	Magnitude float64
}

func NewCentralForce(center geom.Vector, magnitude float64) *CentralForce {
	return &CentralForce{Center: center, Magnitude: magnitude}
}

func (c *CentralForce) Name() string { return "central" }

// ApplyOn returns the zero vector for a particle exactly at the center,
// where the direction is undefined.
func (c *CentralForce) ApplyOn(p *Particle) geom.Vector {
	d := c.Center.Sub(p.Position())
	if d.IsZero() {
		return geom.Vector{}
	}
	return d.ScaleTo(c.Magnitude / d.Length())
}

// ConstantForce applies F regardless of the particle state.
type ConstantForce struct {
	F geom.Vector
}

func NewConstantForce(f geom.Vector) *ConstantForce {
	return &ConstantForce{F: f}
}

func (c *ConstantForce) Name() string { return "constant" }

func (c *ConstantForce) ApplyOn(p *Particle) geom.Vector {
	return c.F
}

// NetForce sums every force's contribution on p in slice order.
func NetForce(forces []Force, p *Particle) geom.Vector {
	var f geom.Vector
	for _, force := range forces {
		f = f.Add(force.ApplyOn(p))
	}
	return f
}
