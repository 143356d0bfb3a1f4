package metrics

import "github.com/san-kum/raysim/internal/world"

// RayBounces averages the number of mirror reflections per ray over every
// ray of every sample.
type RayBounces struct {
	name    string
	bounces int
	rays    int
}

func NewRayBounces() *RayBounces {
	return &RayBounces{name: "ray_bounces"}
}

func (r *RayBounces) Name() string { return r.name }

func (r *RayBounces) Observe(w *world.World) {
	for _, ray := range w.Rays() {
		r.bounces += ray.Bounces()
		r.rays++
	}
}

func (r *RayBounces) Value() float64 {
	if r.rays == 0 {
		return 0
	}
	return float64(r.bounces) / float64(r.rays)
}

func (r *RayBounces) Reset() {
	r.bounces = 0
	r.rays = 0
}
