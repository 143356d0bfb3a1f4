package geom

import "math"

// overlapTolerance widens the x-overlap test of IntersectionPoint so that
// near-vertical segments, whose x extent is close to rounding error, can
// still report a hit.
const overlapTolerance = 1e-9

// Segment is an undirected line segment normalized so that P0.X <= P1.X.
type Segment struct {
	P0 Vector
	P1 Vector
}

func NewSegment(p0, p1 Vector) Segment {
	if p1.X < p0.X {
		p0, p1 = p1, p0
	}
	return Segment{P0: p0, P1: p1}
}

// IsDegenerate reports whether both endpoints coincide.
func (s Segment) IsDegenerate() bool {
	return s.P0 == s.P1
}

func (s Segment) Length() float64 {
	return s.P0.DistanceTo(s.P1)
}

func (s Segment) IsVertical() bool {
	return s.P0.X == s.P1.X
}

// Coefficients returns slope a and intercept b of the line y = a*x + b.
// A vertical segment reports a = +Inf and b = the line's x coordinate.
func (s Segment) Coefficients() (a, b float64) {
	if s.IsVertical() {
		return math.Inf(1), s.P0.X
	}
	a = (s.P1.Y - s.P0.Y) / (s.P1.X - s.P0.X)
	b = s.P1.Y - a*s.P1.X
	return a, b
}

// IntersectionPoint returns the crossing point of s and other.
//
// Segments with equal slopes are reported as not intersecting, overlapping
// collinear ones included. The solved point is kept only when its x lies in
// the overlap of both x projections. Its y must also lie in both y ranges:
// for steep segments the x extent is within rounding error, and the x test
// alone would accept points beyond the ends. The result does not depend on
// argument order.
func (s Segment) IntersectionPoint(other Segment) (Vector, bool) {
	a1, b1 := s.Coefficients()
	a2, b2 := other.Coefficients()

	if a1 == a2 {
		return Vector{}, false
	}

	var x, y float64
	switch {
	case math.IsInf(a1, 1):
		x, y = b1, a2*b1+b2
	case math.IsInf(a2, 1):
		x, y = b2, a1*b2+b1
	default:
		x = (b2 - b1) / (a1 - a2)
		y = (a2*b1 - a1*b2) / (a2 - a1)
	}

	minX := math.Max(s.P0.X, other.P0.X)
	maxX := math.Min(s.P1.X, other.P1.X)
	if x < minX-overlapTolerance || x > maxX+overlapTolerance {
		return Vector{}, false
	}
	if !s.spansY(y) || !other.spansY(y) {
		return Vector{}, false
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return Vector{}, false
	}

	return Vector{X: x, Y: y}, true
}

func (s Segment) spansY(y float64) bool {
	lo, hi := s.P0.Y, s.P1.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	return y >= lo-overlapTolerance && y <= hi+overlapTolerance
}

// ColinearVector returns the unit vector from P0 to P1.
func (s Segment) ColinearVector() Vector {
	return s.P1.Sub(s.P0).Unit()
}

// NormalVector returns a unit normal, (y0-y1, x1-x0) normalized.
func (s Segment) NormalVector() Vector {
	return Vector{X: s.P0.Y - s.P1.Y, Y: s.P1.X - s.P0.X}.Unit()
}

// DirectedSegment is a Segment that keeps its endpoints in construction
// order, so that its colinear vector points the way it was traversed.
type DirectedSegment struct {
	Segment
	First  Vector
	Second Vector
}

func NewDirectedSegment(first, second Vector) DirectedSegment {
	return DirectedSegment{
		Segment: NewSegment(first, second),
		First:   first,
		Second:  second,
	}
}

// ColinearVector returns the unit vector from First to Second.
func (d DirectedSegment) ColinearVector() Vector {
	return d.Second.Sub(d.First).Unit()
}
