package optics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/optics"
)

func mustMirror(p0, p1 geom.Vector) optics.PlaneMirror {
	m, err := optics.NewPlaneMirror(p0, p1)
	Expect(err).NotTo(HaveOccurred())
	return m
}

func onBoundary(p geom.Vector, w, h float64) bool {
	const tol = 1e-6
	return math.Abs(p.X) < tol || math.Abs(p.X-w) < tol ||
		math.Abs(p.Y) < tol || math.Abs(p.Y-h) < tol
}

var _ = Describe("Emitter", func() {
	var e *optics.Emitter

	BeforeEach(func() {
		e = optics.NewEmitter(800, 600)
	})

	It("defaults to 128 rays of at most 100 points", func() {
		Expect(e.Count).To(Equal(128))
		Expect(e.MaxPoints).To(Equal(100))
	})

	Context("without mirrors", func() {
		It("sends every ray straight to the boundary", func() {
			e.Count = 16
			rays := e.Emit(geom.Vec(400, 300), nil)

			Expect(rays).To(HaveLen(16))
			for i, r := range rays {
				Expect(r.Len()).To(Equal(2))
				Expect(r.Bounces()).To(Equal(0))
				Expect(r.Origin()).To(Equal(geom.Vec(400, 300)))
				Expect(onBoundary(r.End(), 800, 600)).To(BeTrue(), "ray %d ends at %v", i, r.End())

				want := 2 * math.Pi * float64(i) / 16
				dir := r.End().Sub(r.Origin()).DirectionAngle()
				Expect(geom.NormalizeAngle(dir)).To(BeNumerically("~", want, 1e-9))
			}
		})

		It("hits the expected edges on the axes", func() {
			origin := geom.Vec(200, 100)
			cases := map[float64]geom.Vector{
				0:               geom.Vec(800, 100),
				math.Pi / 2:     geom.Vec(200, 600),
				math.Pi:         geom.Vec(0, 100),
				3 * math.Pi / 2: geom.Vec(200, 0),
			}
			for angle, want := range cases {
				r, ok := e.Trace(origin, angle, nil)
				Expect(ok).To(BeTrue())
				Expect(r.End().ApproxEqual(want, 1e-9)).To(BeTrue(), "angle %v ended at %v", angle, r.End())
			}
		})

		It("drops rays that start on the boundary pointing out", func() {
			e.Count = 8
			rays := e.Emit(geom.Vec(0, 0), nil)

			// Only angles 0, π/4 and π/2 point into the world.
			Expect(rays).To(HaveLen(3))
			for _, r := range rays {
				Expect(r.Len()).To(BeNumerically(">=", 2))
			}

			_, ok := e.Trace(geom.Vec(0, 0), math.Pi, nil)
			Expect(ok).To(BeFalse())
		})
	})

	Context("with a diagonal mirror", func() {
		It("bounces back towards the source", func() {
			m := mustMirror(geom.Vec(0, 100), geom.Vec(100, 0))
			r, ok := e.Trace(geom.Vec(0, 0), math.Pi/4, []optics.PlaneMirror{m})
			Expect(ok).To(BeTrue())

			pts := r.Points()
			Expect(pts).To(HaveLen(3))
			Expect(pts[0]).To(Equal(geom.Vec(0, 0)))
			Expect(pts[1].ApproxEqual(geom.Vec(50, 50), 1e-9)).To(BeTrue(), "hit at %v", pts[1])
			Expect(pts[2].ApproxEqual(geom.Vec(0, 0), 1e-4)).To(BeTrue(), "end at %v", pts[2])
			Expect(r.Bounces()).To(Equal(1))

			var segs []geom.DirectedSegment
			for s := range r.Segments() {
				segs = append(segs, s)
			}
			Expect(segs).To(HaveLen(2))
			Expect(segs[1].ColinearVector().DirectionAngle()).To(BeNumerically("~", -3*math.Pi/4, 1e-5))
		})
	})

	It("reflects off the nearest mirror only", func() {
		near := mustMirror(geom.Vec(300, 0), geom.Vec(300, 600))
		far := mustMirror(geom.Vec(500, 0), geom.Vec(500, 600))

		for _, mirrors := range [][]optics.PlaneMirror{{near, far}, {far, near}} {
			r, ok := e.Trace(geom.Vec(100, 300), 0, mirrors)
			Expect(ok).To(BeTrue())
			Expect(r.Point(1).ApproxEqual(geom.Vec(300, 300), 1e-9)).To(BeTrue())
			Expect(r.End().ApproxEqual(geom.Vec(0, 300), 1e-6)).To(BeTrue(), "end at %v", r.End())
		}
	})

	It("stops at the point cap between parallel mirrors", func() {
		e.MaxPoints = 10
		mirrors := []optics.PlaneMirror{
			mustMirror(geom.Vec(0, 100), geom.Vec(800, 100)),
			mustMirror(geom.Vec(0, 500), geom.Vec(800, 500)),
		}

		r, ok := e.Trace(geom.Vec(400, 300), math.Pi/2, mirrors)
		Expect(ok).To(BeTrue())
		Expect(r.Len()).To(Equal(10))
		for i := 1; i < r.Len()-1; i++ {
			y := r.Point(i).Y
			Expect(math.Min(math.Abs(y-100), math.Abs(y-500))).To(BeNumerically("<", 1e-6))
		}
	})

	It("always terminates within the point cap", func() {
		rng := rand.New(rand.NewSource(42))
		point := func() geom.Vector {
			return geom.Vec(rng.Float64()*800, rng.Float64()*600)
		}

		for round := 0; round < 10; round++ {
			var mirrors []optics.PlaneMirror
			for i := 0; i < 6; i++ {
				if m, err := optics.NewPlaneMirror(point(), point()); err == nil {
					mirrors = append(mirrors, m)
				}
			}
			origin := point()

			for i := 0; i < 1024; i++ {
				angle := 2 * math.Pi * float64(i) / 1024
				r, ok := e.Trace(origin, angle, mirrors)
				if !ok {
					continue
				}
				Expect(r.Len()).To(BeNumerically(">=", 2))
				Expect(r.Len()).To(BeNumerically("<=", optics.DefaultMaxPoints))
				for _, p := range r.Points() {
					Expect(p.X).To(BeNumerically(">=", -1e-6))
					Expect(p.X).To(BeNumerically("<=", 800+1e-6))
					Expect(p.Y).To(BeNumerically(">=", -1e-6))
					Expect(p.Y).To(BeNumerically("<=", 600+1e-6))
				}
			}
		}
	})
})
