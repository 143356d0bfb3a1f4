package optics

import (
	"math"

	"github.com/san-kum/raysim/internal/geom"
)

const (
	DefaultRayCount  = 128
	DefaultMaxPoints = 100

	// pointTolerance is the distance under which two ray points are
	// considered the same point.
	pointTolerance = 1e-6
)

// Emitter traces rays inside the rectangle [0, Width] x [0, Height].
type Emitter struct {
	Width     float64
	Height    float64
	Count     int
	MaxPoints int
}

func NewEmitter(width, height float64) *Emitter {
	return &Emitter{
		Width:     width,
		Height:    height,
		Count:     DefaultRayCount,
		MaxPoints: DefaultMaxPoints,
	}
}

// Emit traces Count rays from origin at angles 2πi/Count. Dropped rays are
// omitted, so the result may hold fewer than Count rays. The origin must lie
// inside the rectangle.
func (e *Emitter) Emit(origin geom.Vector, mirrors []PlaneMirror) []Ray {
	rays := make([]Ray, 0, e.Count)
	for i := 0; i < e.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(e.Count)
		if ray, ok := e.Trace(origin, angle, mirrors); ok {
			rays = append(rays, ray)
		}
	}
	return rays
}

// Trace follows a single ray leaving origin at angle. It reports false when
// the ray is dropped: its first segment has zero length, or no boundary
// exit could be found.
func (e *Emitter) Trace(origin geom.Vector, angle float64, mirrors []PlaneMirror) (Ray, bool) {
	maxPoints := e.maxPoints()
	points := make([]geom.Vector, 1, 8)
	points[0] = origin
	angle = geom.NormalizeAngle(angle)

	for {
		start := points[len(points)-1]
		exit, ok := e.exit(start, angle)
		if !ok {
			return Ray{}, false
		}
		if exit.ApproxEqual(start, pointTolerance) {
			if len(points) == 1 {
				return Ray{}, false
			}
			break
		}

		points = append(points, exit)
		if len(points) >= maxPoints {
			break
		}

		active := geom.NewDirectedSegment(start, exit)
		mirror, hit, found := closestHit(active, mirrors)
		if !found {
			break
		}

		points[len(points)-1] = hit
		reflected := mirror.Reflect(active)
		angle = geom.NormalizeAngle(reflected.DirectionAngle())
	}

	return Ray{points: points}, true
}

func (e *Emitter) maxPoints() int {
	if e.MaxPoints < 2 {
		return DefaultMaxPoints
	}
	return e.MaxPoints
}

// closestHit returns the mirror hit nearest to the start of active. Hits at
// the start itself are the mirror the ray just left and are skipped.
func closestHit(active geom.DirectedSegment, mirrors []PlaneMirror) (PlaneMirror, geom.Vector, bool) {
	var (
		best     PlaneMirror
		bestHit  geom.Vector
		bestDist = math.Inf(1)
	)
	for _, m := range mirrors {
		p, ok := active.IntersectionPoint(m.segment)
		if !ok || p.ApproxEqual(active.First, pointTolerance) {
			continue
		}
		if d := p.DistanceTo(active.First); d < bestDist {
			best, bestHit, bestDist = m, p, d
		}
	}
	return best, bestHit, !math.IsInf(bestDist, 1)
}

// exit returns where the half-line leaving pos at angle meets the
// rectangle boundary. angle must be in [0, 2π). The quadrant of angle
// decides which two edges can be reached; the nearer one is tried first.
func (e *Emitter) exit(pos geom.Vector, angle float64) (geom.Vector, bool) {
	a := math.Tan(angle)
	b := pos.Y - a*pos.X

	// For a horizontal ray the x intercepts do not exist and y is constant.
	yAtLeft, yAtRight := pos.Y, pos.Y
	xAtBottom, xAtTop := math.NaN(), math.NaN()
	if a != 0 {
		yAtLeft = b
		yAtRight = a*e.Width + b
		xAtBottom = -b / a
		xAtTop = (e.Height - b) / a
	}

	right := func() (geom.Vector, bool) { return e.onVertical(e.Width, yAtRight) }
	left := func() (geom.Vector, bool) { return e.onVertical(0, yAtLeft) }
	top := func() (geom.Vector, bool) { return e.onHorizontal(xAtTop, e.Height) }
	bottom := func() (geom.Vector, bool) { return e.onHorizontal(xAtBottom, 0) }

	var first, second func() (geom.Vector, bool)
	switch {
	case angle < math.Pi/2:
		first, second = right, top
	case angle < math.Pi:
		first, second = top, left
	case angle < 3*math.Pi/2:
		first, second = bottom, left
	default:
		first, second = bottom, right
	}

	if p, ok := first(); ok {
		return p, true
	}
	return second()
}

func (e *Emitter) onVertical(x, y float64) (geom.Vector, bool) {
	y, ok := clampTo(y, e.Height)
	return geom.Vec(x, y), ok
}

func (e *Emitter) onHorizontal(x, y float64) (geom.Vector, bool) {
	x, ok := clampTo(x, e.Width)
	return geom.Vec(x, y), ok
}

// clampTo accepts v when it lies in [0, limit] up to rounding and clamps
// it into the interval.
func clampTo(v, limit float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	tol := 1e-9 * math.Max(1, limit)
	if v < -tol || v > limit+tol {
		return 0, false
	}
	return math.Min(math.Max(v, 0), limit), true
}
