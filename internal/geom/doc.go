// Package geom provides the 2D vector and segment algebra used by the
// mechanics and optics packages.
//
//   - [Vector]: immutable (x, y) value type
//   - [Segment]: undirected segment normalized so that P0.X <= P1.X
//   - [DirectedSegment]: segment remembering its construction order
//
// # Preconditions
//
// [Vector.Unit] and [Vector.ScaleTo] are undefined for the zero vector and
// panic with [ErrZeroVector]. Callers check [Vector.IsZero] first when the
// input may be degenerate.
//
// # Intersections
//
// [Segment.IntersectionPoint] solves the two line equations and keeps the
// point only when it lies in the overlap of both segments' x projections:
//
//	a := geom.NewSegment(geom.Vec(0, 0), geom.Vec(10, 10))
//	b := geom.NewSegment(geom.Vec(0, 10), geom.Vec(10, 0))
//	p, ok := a.IntersectionPoint(b) // (5, 5), true
//
// Segments with equal slopes, including two vertical ones, never intersect,
// even when they overlap.
package geom
