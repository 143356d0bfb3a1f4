package optics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/optics"
)

var _ = Describe("PlaneMirror", func() {
	It("rejects coincident endpoints", func() {
		_, err := optics.NewPlaneMirror(geom.Vec(3, 3), geom.Vec(3, 3))
		Expect(err).To(MatchError(optics.ErrDegenerateMirror))
	})

	It("normalizes its endpoints", func() {
		m, err := optics.NewPlaneMirror(geom.Vec(100, 0), geom.Vec(0, 100))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.P0()).To(Equal(geom.Vec(0, 100)))
		Expect(m.P1()).To(Equal(geom.Vec(100, 0)))
	})

	DescribeTable("obeys the law of reflection on a horizontal mirror",
		func(degrees float64) {
			theta := degrees * math.Pi / 180
			m, err := optics.NewPlaneMirror(geom.Vec(-100, 0), geom.Vec(100, 0))
			Expect(err).NotTo(HaveOccurred())

			// Travelling down and to the right, hitting the origin.
			dir := geom.Vec(math.Cos(theta), -math.Sin(theta))
			incoming := geom.NewDirectedSegment(dir.Scale(-10), geom.Vec(0, 0))

			out := m.Reflect(incoming)
			Expect(out.X).To(BeNumerically("~", math.Cos(theta), 1e-9))
			Expect(out.Y).To(BeNumerically("~", math.Sin(theta), 1e-9))
			Expect(out.Length()).To(BeNumerically("~", 1, 1e-12))
		},
		Entry("15 degrees", 15.0),
		Entry("45 degrees", 45.0),
		Entry("75 degrees", 75.0),
	)

	It("reflects a head-on ray straight back", func() {
		m, _ := optics.NewPlaneMirror(geom.Vec(0, 100), geom.Vec(100, 0))
		out := m.Reflect(geom.NewDirectedSegment(geom.Vec(0, 0), geom.Vec(50, 50)))

		Expect(out.ApproxEqual(geom.Vec(-1, -1).Unit(), 1e-7)).To(BeTrue())
		Expect(out.DirectionAngle()).To(BeNumerically("~", -3*math.Pi/4, 1e-7))
	})

	It("reflects the same way from either side", func() {
		m, _ := optics.NewPlaneMirror(geom.Vec(0, 0), geom.Vec(0, 10))

		fromLeft := m.Reflect(geom.NewDirectedSegment(geom.Vec(-1, 4), geom.Vec(0, 5)))
		Expect(fromLeft.ApproxEqual(geom.Vec(-1, 1).Unit(), 1e-9)).To(BeTrue())

		fromRight := m.Reflect(geom.NewDirectedSegment(geom.Vec(1, 4), geom.Vec(0, 5)))
		Expect(fromRight.ApproxEqual(geom.Vec(1, 1).Unit(), 1e-9)).To(BeTrue())
	})

	It("reports a smaller incidence angle than a right angle", func() {
		m, _ := optics.NewPlaneMirror(geom.Vec(0, 100), geom.Vec(100, 0))
		for _, deg := range []float64{1, 30, 60, 89, 135, 200, 300} {
			incident := geom.FromAngle(deg*math.Pi/180, 1)
			Expect(math.Abs(m.IncidenceAngle(incident))).To(BeNumerically("<=", math.Pi/2+1e-12))
		}
	})
})
