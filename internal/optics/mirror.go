package optics

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/raysim/internal/geom"
)

// ErrDegenerateMirror indicates a mirror whose endpoints coincide.
var ErrDegenerateMirror = errors.New("optics: mirror endpoints must differ")

// PlaneMirror is a straight, two-sided reflective segment.
type PlaneMirror struct {
	segment geom.Segment
}

func NewPlaneMirror(p0, p1 geom.Vector) (PlaneMirror, error) {
	s := geom.NewSegment(p0, p1)
	if s.IsDegenerate() {
		return PlaneMirror{}, fmt.Errorf("%w: %v", ErrDegenerateMirror, p0)
	}
	if !p0.IsFinite() || !p1.IsFinite() {
		return PlaneMirror{}, fmt.Errorf("%w: non-finite endpoint %v %v", ErrDegenerateMirror, p0, p1)
	}
	return PlaneMirror{segment: s}, nil
}

func (m PlaneMirror) Segment() geom.Segment { return m.segment }
func (m PlaneMirror) P0() geom.Vector       { return m.segment.P0 }
func (m PlaneMirror) P1() geom.Vector       { return m.segment.P1 }

// IncidenceAngle returns the signed angle between the incident vector
// (pointing back along the travel direction) and whichever orientation of
// the mirror normal is closer to it. The angle is positive when
// incident x normal > 0.
func (m PlaneMirror) IncidenceAngle(incident geom.Vector) float64 {
	n := m.segment.NormalVector()
	inv := n.Invert()

	normal, angle := n, incident.Angle(n)
	if invAngle := incident.Angle(inv); !(math.Abs(angle) < math.Abs(invAngle)) {
		normal, angle = inv, invAngle
	}

	if incident.Cross(normal) > 0 {
		return angle
	}
	return -angle
}

// Reflect returns the unit direction leaving the mirror for a ray arriving
// along incoming. The incident vector is rotated by twice the incidence
// angle.
func (m PlaneMirror) Reflect(incoming geom.DirectedSegment) geom.Vector {
	incident := incoming.ColinearVector().Invert()
	return incident.Rotate(2 * m.IncidenceAngle(incident))
}
