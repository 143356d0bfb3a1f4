package world_test

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/optics"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/world"
)

func particle(r, v geom.Vector) *physics.Particle {
	p, err := physics.NewParticle(r, v, 1)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("World", func() {
	Describe("New", func() {
		DescribeTable("rejects invalid dimensions",
			func(w, h float64) {
				_, err := world.New(w, h)
				Expect(err).To(MatchError(world.ErrInvalidDimensions))
			},
			Entry("zero width", 0.0, 600.0),
			Entry("negative height", 800.0, -1.0),
			Entry("NaN", math.NaN(), 600.0),
			Entry("infinite", 800.0, math.Inf(1)),
		)

		It("starts empty at time zero", func() {
			w, err := world.New(800, 600)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Time()).To(BeZero())
			Expect(w.Particles()).To(BeEmpty())
			Expect(w.Rays()).To(BeEmpty())
			Expect(w.Boundary()).To(Equal(world.BoundaryRemove))
			Expect(w.Center()).To(Equal(geom.Vec(400, 300)))
		})
	})

	Describe("Update", func() {
		var w *world.World

		BeforeEach(func() {
			var err error
			w, err = world.New(800, 600, world.WithRayCount(8))
			Expect(err).NotTo(HaveOccurred())
		})

		It("integrates a particle under constant gravity", func() {
			p := particle(geom.Vec(400, 300), geom.Vec(0, 0))
			w.AddParticle(p)
			w.AddForce(physics.NewConstantForce(geom.Vec(0, -10)))

			w.Update(1)

			Expect(w.Time()).To(Equal(1.0))
			got, ok := w.Particle(p.ID())
			Expect(ok).To(BeTrue())
			Expect(got.Velocity()).To(Equal(geom.Vec(0, -10)))
			Expect(got.Position()).To(Equal(geom.Vec(400, 290)))
			Expect(got.Acceleration()).To(Equal(geom.Vec(0, -10)))
			Expect(got.Age()).To(Equal(1.0))
		})

		It("pulls particles towards a central force", func() {
			p := particle(geom.Vec(500, 300), geom.Vec(0, 0))
			w.AddParticle(p)
			w.AddForce(physics.NewCentralForce(w.Center(), 1000))

			w.Update(0.1)

			got, _ := w.Particle(p.ID())
			Expect(got.Velocity().X).To(BeNumerically("<", 0))
			Expect(got.Velocity().Y).To(BeNumerically("~", 0, 1e-12))
			Expect(got.Position().X).To(BeNumerically("<", 500))
		})

		It("computes all forces before moving anything", func() {
			a := particle(geom.Vec(100, 300), geom.Vec(0, 0))
			b := particle(geom.Vec(700, 300), geom.Vec(0, 0))
			w.AddParticle(a)
			w.AddParticle(b)
			w.AddForce(physics.NewCentralForce(w.Center(), 300))

			w.Update(1)

			pa, _ := w.Particle(a.ID())
			pb, _ := w.Particle(b.ID())
			Expect(pa.Velocity().X).To(BeNumerically("~", 1, 1e-12))
			Expect(pb.Velocity().X).To(BeNumerically("~", -1, 1e-12))
		})

		It("removes particles that leave the rectangle and logs them", func() {
			var buf bytes.Buffer
			w, _ = world.New(800, 600, world.WithRayCount(0),
				world.WithLogger(logging.New(&buf, slog.LevelDebug)))

			leaving := particle(geom.Vec(795, 300), geom.Vec(10, 0))
			staying := particle(geom.Vec(400, 300), geom.Vec(10, 0))
			w.AddParticle(leaving)
			w.AddParticle(staying)

			w.Update(1)

			Expect(w.Particles()).To(HaveLen(1))
			Expect(w.Particles()[0].ID()).To(Equal(staying.ID()))
			Expect(w.Removed()).To(Equal(1))
			_, ok := w.Particle(leaving.ID())
			Expect(ok).To(BeFalse())
			Expect(buf.String()).To(ContainSubstring("particle left the world"))
		})

		It("keeps particles that land exactly on an edge", func() {
			p := particle(geom.Vec(790, 0), geom.Vec(10, 0))
			w.AddParticle(p)

			w.Update(1)

			got, ok := w.Particle(p.ID())
			Expect(ok).To(BeTrue())
			Expect(got.Position()).To(Equal(geom.Vec(800, 0)))
		})

		It("preserves insertion order of survivors", func() {
			var ids []physics.ID
			for i := 0; i < 6; i++ {
				v := geom.Vec(0, 0)
				if i%2 == 0 {
					v = geom.Vec(-1000, 0)
				}
				p := particle(geom.Vec(100+float64(i)*50, 300), v)
				w.AddParticle(p)
				if i%2 == 1 {
					ids = append(ids, p.ID())
				}
			}

			w.Update(1)

			ps := w.Particles()
			Expect(ps).To(HaveLen(3))
			for i, p := range ps {
				Expect(p.ID()).To(Equal(ids[i]))
			}
		})

		It("returns snapshots that do not alias the world", func() {
			p := particle(geom.Vec(400, 300), geom.Vec(0, 0))
			w.AddParticle(p)

			snap := w.Particles()
			snap[0].SetPosition(geom.Vec(1, 1))

			got, _ := w.Particle(p.ID())
			Expect(got.Position()).To(Equal(geom.Vec(400, 300)))
		})
	})

	Describe("wrap boundary", func() {
		var w *world.World

		BeforeEach(func() {
			w, _ = world.New(800, 600, world.WithBoundary(world.BoundaryWrap), world.WithRayCount(0))
		})

		DescribeTable("maps positions back into the rectangle",
			func(r, v, want geom.Vector) {
				p := particle(r, v)
				w.AddParticle(p)
				w.Update(1)

				got, ok := w.Particle(p.ID())
				Expect(ok).To(BeTrue())
				Expect(got.Position().ApproxEqual(want, 1e-9)).To(BeTrue(), "got %v", got.Position())
			},
			Entry("past the right edge", geom.Vec(790, 300), geom.Vec(20, 0), geom.Vec(10, 300)),
			Entry("below and left", geom.Vec(5, 5), geom.Vec(-10, -10), geom.Vec(795, 595)),
			Entry("several widths away", geom.Vec(400, 300), geom.Vec(2000, -1300), geom.Vec(0, 200)),
		)

		It("never removes particles and leaves inside positions alone", func() {
			rng := rand.New(rand.NewSource(3))
			for i := 0; i < 50; i++ {
				v := geom.Vec(rng.Float64()*4000-2000, rng.Float64()*4000-2000)
				w.AddParticle(particle(geom.Vec(rng.Float64()*800, rng.Float64()*600), v))
			}

			w.Update(1)
			Expect(w.Particles()).To(HaveLen(50))

			before := w.Particles()
			for _, p := range before {
				r := p.Position()
				Expect(r.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 800)))
				Expect(r.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", 600)))
			}

			// A zero step moves nothing, so wrapping again must be a no-op.
			w.Update(0)
			for i, p := range w.Particles() {
				Expect(p.Position()).To(Equal(before[i].Position()))
			}
		})
	})

	Describe("rays", func() {
		It("emits rays from every particle in particle order", func() {
			w, _ := world.New(800, 600, world.WithRayCount(16))
			a := particle(geom.Vec(200, 200), geom.Vec(0, 0))
			b := particle(geom.Vec(600, 400), geom.Vec(0, 0))
			w.AddParticle(a)
			w.AddParticle(b)

			w.Update(0.1)

			rays := w.Rays()
			Expect(rays).To(HaveLen(32))
			for i, r := range rays {
				want := geom.Vec(200, 200)
				if i >= 16 {
					want = geom.Vec(600, 400)
				}
				Expect(r.Origin()).To(Equal(want))
			}
			Expect(w.RaysFrom(b.ID())).To(HaveLen(16))
		})

		It("bounces rays off mirrors", func() {
			w, _ := world.New(800, 600, world.WithRayCount(8))
			m, err := optics.NewPlaneMirror(geom.Vec(0, 100), geom.Vec(100, 0))
			Expect(err).NotTo(HaveOccurred())
			w.AddMirror(m)
			w.AddParticle(particle(geom.Vec(10, 10), geom.Vec(0, 0)))

			w.Refresh()

			bounced := 0
			for _, r := range w.Rays() {
				if r.Bounces() > 0 {
					bounced++
					hit := r.Point(1)
					Expect(hit.X + hit.Y).To(BeNumerically("~", 100, 1e-6))
				}
			}
			Expect(bounced).To(BeNumerically(">", 0))
		})

		It("gives the same rays with parallel emission", func() {
			build := func(workers int) *world.World {
				w, _ := world.New(800, 600, world.WithWorkers(workers), world.WithRayCount(32))
				for _, ends := range [][2]geom.Vector{
					{geom.Vec(0, 100), geom.Vec(100, 0)},
					{geom.Vec(300, 500), geom.Vec(700, 450)},
					{geom.Vec(650, 50), geom.Vec(780, 300)},
				} {
					m, _ := optics.NewPlaneMirror(ends[0], ends[1])
					w.AddMirror(m)
				}
				rng := rand.New(rand.NewSource(11))
				for i := 0; i < 20; i++ {
					w.AddParticle(particle(geom.Vec(rng.Float64()*800, rng.Float64()*600), geom.Vec(0, 0)))
				}
				return w
			}

			seq, par := build(1), build(4)
			seq.Update(0.01)
			par.Update(0.01)

			a, b := seq.Rays(), par.Rays()
			Expect(b).To(HaveLen(len(a)))
			for i := range a {
				Expect(b[i].Points()).To(Equal(a[i].Points()))
			}
		})

		It("emits nothing when rays are disabled", func() {
			w, _ := world.New(800, 600, world.WithRayCount(0))
			w.AddParticle(particle(geom.Vec(400, 300), geom.Vec(0, 0)))
			w.Update(1)
			Expect(w.Rays()).To(BeEmpty())
		})
	})
})

var _ = Describe("ParseBoundary", func() {
	DescribeTable("parses policy names",
		func(in string, want world.Boundary) {
			got, err := world.ParseBoundary(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
			Expect(world.ParseBoundary(got.String())).To(Equal(want))
		},
		Entry("remove", "remove", world.BoundaryRemove),
		Entry("empty defaults to remove", "", world.BoundaryRemove),
		Entry("wrap", "wrap", world.BoundaryWrap),
		Entry("case insensitive", "WRAP", world.BoundaryWrap),
	)

	It("rejects unknown names", func() {
		_, err := world.ParseBoundary("bounce")
		Expect(err).To(MatchError(world.ErrUnknownBoundary))
	})
})

var _ = Describe("ParallelFor", func() {
	It("visits every index exactly once", func() {
		for _, workers := range []int{1, 2, 3, 8} {
			seen := make([]int, 101)
			world.ParallelFor(len(seen), workers, 4, func(start, end int) {
				for i := start; i < end; i++ {
					seen[i]++
				}
			})
			for i, n := range seen {
				Expect(n).To(Equal(1), "workers %d index %d", workers, i)
			}
		}
	})
})
