package skyrmion_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

const tol = 1e-9

func newField(n int) *skyrmion.Field {
	f, err := skyrmion.New(skyrmion.Config{
		GridSize:   n,
		CoreRadius: 6,
		Center:     dynamo.Vec2{X: float64(n) / 2, Y: float64(n) / 2},
		DMI:        0.8,
	})
	Expect(err).NotTo(HaveOccurred())
	return f
}

func expectUnitNorm(s skyrmion.SpinField) {
	n := s.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			Expect(s.Magnitude(x, y)).To(BeNumerically("~", 1.0, tol), "at (%d,%d)", x, y)
		}
	}
}

func expectSameField(a, b skyrmion.SpinField) {
	n := a.Size()
	Expect(b.Size()).To(Equal(n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			ax, ay, az := a.At(x, y)
			bx, by, bz := b.At(x, y)
			Expect(bx).To(Equal(ax))
			Expect(by).To(Equal(ay))
			Expect(bz).To(Equal(az))
		}
	}
}

var _ = Describe("Field", func() {
	Describe("construction", func() {
		It("rejects non-positive grid sizes", func() {
			_, err := skyrmion.New(skyrmion.Config{GridSize: 0, CoreRadius: 6})
			Expect(err).To(MatchError(dynamo.ErrGridSize))
		})

		It("rejects non-positive radii", func() {
			_, err := skyrmion.New(skyrmion.Config{GridSize: 10, CoreRadius: 0})
			Expect(err).To(MatchError(dynamo.ErrCoreRadius))
		})

		It("rejects a NaN center", func() {
			_, err := skyrmion.New(skyrmion.Config{GridSize: 10, CoreRadius: 2, Center: dynamo.Vec2{X: math.NaN()}})
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})

		It("spans the lattice from 0 to N-1", func() {
			f := newField(11)
			axis := f.Axis()
			Expect(axis).To(HaveLen(11))
			Expect(axis[0]).To(Equal(0.0))
			Expect(axis[10]).To(Equal(10.0))
		})

		It("starts with the configured center as the only trajectory point", func() {
			f, err := skyrmion.New(skyrmion.Config{GridSize: 20, CoreRadius: 3, Center: dynamo.Vec2{X: 4, Y: 7}})
			Expect(err).NotTo(HaveOccurred())
			d := f.Dynamics()
			Expect(d.Center).To(Equal(dynamo.Vec2{X: 4, Y: 7}))
			Expect(d.Trajectory).To(Equal([]dynamo.Vec2{{X: 4, Y: 7}}))
			Expect(d.Time).To(Equal(0.0))
		})
	})

	Describe("Step", func() {
		var (
			f    *skyrmion.Field
			ctrl *efield.Controller
		)

		BeforeEach(func() {
			f = newField(40)
			ctrl = efield.NewController()
		})

		It("advances time by a fixed step", func() {
			f.Step(ctrl.Snapshot())
			f.Step(ctrl.Snapshot())
			Expect(f.Dynamics().Time).To(BeNumerically("~", 2*skyrmion.Dt, 1e-15))
		})

		DescribeTable("keeps every spin at unit length",
			func(pulse string, strength float64, direction string) {
				ctrl.SetPulseType(pulse)
				ctrl.SetStrength(strength)
				ctrl.SetDirection(direction)
				for i := 0; i < 5; i++ {
					expectUnitNorm(f.Step(ctrl.Snapshot()))
				}
			},
			Entry("dc", "dc", 0.3, "x+"),
			Entry("sin", "sin", 1.2, "y-"),
			Entry("square", "square", 0.8, "xy+"),
			Entry("zero drive", "sin", 0.0, "x-"),
		)

		It("holds a dc field fixed across ticks", func() {
			ctrl.SetPulseType("dc")
			ctrl.SetStrength(0.1)
			ctrl.SetDirection("xy-")

			first := f.Step(ctrl.Snapshot()).Clone()
			d1 := f.Dynamics()
			second := f.Step(ctrl.Snapshot())
			d2 := f.Dynamics()

			expectSameField(first, second)
			Expect(d2.Center).To(Equal(d1.Center))
			Expect(d2.Velocity).To(Equal(d1.Velocity))
			Expect(d2.RotationFreq).To(Equal(d1.RotationFreq))
			Expect(d2.Time).To(BeNumerically(">", d1.Time))
		})

		It("places the core by the direct displacement formula", func() {
			ctrl.SetPulseType("dc")
			ctrl.SetStrength(0.1)
			ctrl.SetDirection("xy+")
			f.Step(ctrl.Snapshot())

			d := f.Dynamics()
			Expect(d.Center.X).To(BeNumerically("~", 20+0.1*30, 1e-12))
			Expect(d.Center.Y).To(BeNumerically("~", 20+0.1*30, 1e-12))
			Expect(d.Velocity.X).To(BeNumerically("~", 0.1*30*0.8, 1e-12))
			Expect(d.RotationFreq).To(BeNumerically("~", 0.1*0.8*20, 1e-12))
		})

		It("does not accumulate displacement under a zero-mean pulse", func() {
			ctrl.SetPulseType("sin")
			ctrl.SetStrength(0.2)
			ctrl.SetPulseFreq(2 * math.Pi)
			for i := 0; i < 100; i++ {
				f.Step(ctrl.Snapshot())
			}
			// t = 1.0, sin(2π·1) ≈ 0: back at the origin.
			Expect(f.Dynamics().Center.X).To(BeNumerically("~", 20, 1e-9))
		})

		It("yields the canonical Néel profile at zero drive", func() {
			for _, p := range []efield.Params{
				{Strength: 0, Pulse: efield.Sin, Freq: 2, Amp: 1, Direction: dynamo.Vec2{X: 1}},
				{Strength: 1, Pulse: efield.Sin, Freq: 2, Amp: 0, Direction: dynamo.Vec2{X: 1}},
			} {
				g := newField(30)
				s := g.Step(p)
				Expect(g.Dynamics().Center).To(Equal(dynamo.Vec2{X: 15, Y: 15}))
				Expect(g.Dynamics().RotationFreq).To(Equal(0.0))

				for _, pt := range [][2]int{{0, 0}, {15, 15}, {18, 15}, {15, 21}, {10, 3}, {29, 29}} {
					x, y := pt[0], pt[1]
					dx, dy := float64(x)-15, float64(y)-15
					r := math.Hypot(dx, dy)
					theta := math.Atan2(dy, dx)
					sz := -math.Tanh(r - 6)
					inPlane := math.Sqrt(1 - sz*sz)

					gx, gy, gz := s.At(x, y)
					Expect(gz).To(BeNumerically("~", sz, tol))
					Expect(gx).To(BeNumerically("~", math.Sin(theta)*inPlane, tol))
					Expect(gy).To(BeNumerically("~", -math.Cos(theta)*inPlane, tol))
				}
			}
		})

		It("points the core up and the far field down", func() {
			s := f.Step(ctrl.Snapshot())
			_, _, core := s.At(20, 20)
			_, _, far := s.At(0, 0)
			Expect(core).To(BeNumerically(">", 0.99))
			Expect(far).To(BeNumerically("<", -0.99))
		})

		It("bounds the trajectory to the most recent 50 centers", func() {
			ctrl.SetPulseType("sin")
			ctrl.SetStrength(0.5)
			ctrl.SetPulseFreq(3)

			var centers []dynamo.Vec2
			for i := 0; i < 120; i++ {
				f.Step(ctrl.Snapshot())
				centers = append(centers, f.Dynamics().Center)
				Expect(len(f.Dynamics().Trajectory)).To(BeNumerically("<=", skyrmion.MaxTrajectory))
			}

			traj := f.Dynamics().Trajectory
			Expect(traj).To(HaveLen(skyrmion.MaxTrajectory))
			Expect(traj[0]).To(Equal(centers[len(centers)-skyrmion.MaxTrajectory]))
			Expect(traj[len(traj)-1]).To(Equal(centers[len(centers)-1]))
		})

		It("is deterministic for identical inputs", func() {
			a, b := newField(24), newField(24)
			ctrl.SetPulseType("square")
			ctrl.SetStrength(0.3)
			ctrl.SetPulseFreq(5)
			for i := 0; i < 10; i++ {
				p := ctrl.Snapshot()
				expectSameField(a.Step(p), b.Step(p))
				Expect(a.Dynamics()).To(Equal(b.Dynamics()))
			}
		})
	})

	Describe("ResetTime", func() {
		It("zeroes time and keeps one trajectory point at the current center", func() {
			f := newField(32)
			ctrl := efield.NewController()
			ctrl.SetStrength(0.4)
			for i := 0; i < 10; i++ {
				f.Step(ctrl.Snapshot())
			}
			center := f.Dynamics().Center

			f.ResetTime()
			f.ResetTime()

			d := f.Dynamics()
			Expect(d.Time).To(Equal(0.0))
			Expect(d.Trajectory).To(Equal([]dynamo.Vec2{center}))
			Expect(d.Center).To(Equal(center))
			Expect(f.GridSize()).To(Equal(32))
			Expect(f.CoreRadius()).To(Equal(6.0))
			Expect(f.DMI()).To(Equal(0.8))
		})
	})

	Describe("Dynamics", func() {
		It("returns a trajectory copy", func() {
			f := newField(16)
			f.Step(efield.NewController().Snapshot())
			d := f.Dynamics()
			d.Trajectory[0] = dynamo.Vec2{X: -1, Y: -1}
			Expect(f.Dynamics().Trajectory[0]).NotTo(Equal(dynamo.Vec2{X: -1, Y: -1}))
		})
	})
})
