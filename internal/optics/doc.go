// Package optics traces light-like rays from point emitters through a
// rectangular world containing plane mirrors.
//
// An [Emitter] sends [Emitter.Count] rays at evenly spaced angles over
// [0, 2π). Each ray is propagated to the rectangle boundary, tested against
// every [PlaneMirror], and on a hit the unreflected tail is replaced by the
// hit point and propagation restarts in the reflected direction:
//
//	e := optics.NewEmitter(800, 600)
//	m, _ := optics.NewPlaneMirror(geom.Vec(0, 100), geom.Vec(100, 0))
//	rays := e.Emit(geom.Vec(400, 300), []optics.PlaneMirror{m})
//
// # Termination
//
// A ray ends when its last segment hits no mirror or when it holds
// [Emitter.MaxPoints] points. A ray whose first segment has zero length
// (origin on the boundary, pointing outwards) is dropped.
//
// Tracing reads only the origin, the mirrors and the rectangle size, so
// rays from different origins can be traced concurrently.
package optics
