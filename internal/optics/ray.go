package optics

import (
	"iter"

	"github.com/san-kum/raysim/internal/geom"
)

// Ray is a polyline starting at the emitter position. Interior points are
// mirror hits; the last point is where the ray left the world or stopped.
type Ray struct {
	points []geom.Vector
}

func NewRay(points ...geom.Vector) Ray {
	return Ray{points: points}
}

// Points returns a copy of the polyline.
func (r Ray) Points() []geom.Vector {
	out := make([]geom.Vector, len(r.points))
	copy(out, r.points)
	return out
}

func (r Ray) Len() int { return len(r.points) }

func (r Ray) Point(i int) geom.Vector { return r.points[i] }

func (r Ray) Origin() geom.Vector { return r.points[0] }

func (r Ray) End() geom.Vector { return r.points[len(r.points)-1] }

// Bounces returns the number of interior points.
func (r Ray) Bounces() int {
	if len(r.points) < 2 {
		return 0
	}
	return len(r.points) - 2
}

// Segments yields the consecutive directed segments of the ray.
func (r Ray) Segments() iter.Seq[geom.DirectedSegment] {
	return func(yield func(geom.DirectedSegment) bool) {
		for i := 1; i < len(r.points); i++ {
			if !yield(geom.NewDirectedSegment(r.points[i-1], r.points[i])) {
				return
			}
		}
	}
}
