package skyrmion

import (
	"math"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"gonum.org/v1/gonum/floats"
)

// rows per worker below which a step runs on the calling goroutine
const minRowChunk = 16

// Dynamics is the last-computed core state.
type Dynamics struct {
	Center       dynamo.Vec2
	Velocity     dynamo.Vec2
	RotationFreq float64
	Trajectory   []dynamo.Vec2
	Time         float64
}

// Field is a single skyrmion on a fixed lattice. It is owned by one caller
// and not safe for concurrent use.
type Field struct {
	n      int
	r0     float64
	dmi    float64
	axis   []float64
	origin dynamo.Vec2

	center       dynamo.Vec2
	velocity     dynamo.Vec2
	rotationFreq float64
	drive        float64
	time         float64
	trajectory   *Trajectory
}

// New builds a Field whose lattice spans [0, N-1] on both axes.
func New(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.GridSize
	axis := make([]float64, n)
	if n == 1 {
		axis[0] = 0
	} else {
		floats.Span(axis, 0, float64(n-1))
	}

	f := &Field{
		n:          n,
		r0:         cfg.CoreRadius,
		dmi:        cfg.DMI,
		axis:       axis,
		origin:     cfg.Origin(),
		center:     cfg.Center,
		trajectory: NewTrajectory(MaxTrajectory),
	}
	f.trajectory.Push(f.center)
	return f, nil
}

func (f *Field) GridSize() int       { return f.n }
func (f *Field) CoreRadius() float64 { return f.r0 }
func (f *Field) DMI() float64        { return f.dmi }
func (f *Field) Origin() dynamo.Vec2 { return f.origin }
func (f *Field) Center() dynamo.Vec2 { return f.center }
func (f *Field) Time() float64       { return f.time }
func (f *Field) LastDrive() float64  { return f.drive }

// Axis returns a copy of the lattice coordinates shared by x and y.
func (f *Field) Axis() []float64 {
	out := make([]float64, len(f.axis))
	copy(out, f.axis)
	return out
}

// Step advances time by Dt, moves the core for the drive at the new time and
// returns the recomputed, unit-normalised spin field.
func (f *Field) Step(p efield.Params) SpinField {
	f.time += Dt
	e := p.Drive(f.time)
	f.drive = e

	shift := p.Direction.Scale(e * DisplacementGain)
	f.center = f.origin.Add(shift)
	f.trajectory.Push(f.center)

	f.velocity = shift.Scale(VelocityGain)
	f.rotationFreq = e * f.dmi * PrecessionGain

	return f.compute(e)
}

// Spins evaluates the spin field for the current center and last drive
// without advancing time.
func (f *Field) Spins() SpinField {
	return f.compute(f.drive)
}

func (f *Field) compute(e float64) SpinField {
	out := newSpinField(f.n)
	sx, sy, sz := out.Sx.RawMatrix(), out.Sy.RawMatrix(), out.Sz.RawMatrix()

	rot := e * RotationGain
	warp := e * DeformGain
	cx, cy := f.center.X, f.center.Y

	dynamo.ParallelFor(f.n, minRowChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dy := f.axis[i] - cy
			row := i * sx.Stride
			for j := 0; j < f.n; j++ {
				dx := f.axis[j] - cx
				r := math.Sqrt(dx*dx + dy*dy)
				theta := math.Atan2(dy, dx)

				rd := r * (1 + warp*math.Cos(theta))
				z := -math.Tanh((rd - f.r0) / WallWidth)
				inPlane := math.Sqrt(1 - z*z)
				x := math.Sin(theta+rot) * inPlane
				y := -math.Cos(theta+rot) * inPlane

				// |S| is 0 only if tanh saturates and the in-plane term
				// vanishes together, which tanh∈(-1,1) rules out for finite
				// input; keep the zero vector rather than divide.
				norm := math.Sqrt(x*x + y*y + z*z)
				if norm > 0 {
					x, y, z = x/norm, y/norm, z/norm
				}
				sx.Data[row+j] = x
				sy.Data[i*sy.Stride+j] = y
				sz.Data[i*sz.Stride+j] = z
			}
		}
	})

	return out
}

// Dynamics reports the state computed by the last Step. It does not
// recompute anything.
func (f *Field) Dynamics() Dynamics {
	return Dynamics{
		Center:       f.center,
		Velocity:     f.velocity,
		RotationFreq: f.rotationFreq,
		Trajectory:   f.trajectory.Points(),
		Time:         f.time,
	}
}

// ResetTime restarts the pulse clock and collapses the trajectory to the
// current center. The center itself is kept.
func (f *Field) ResetTime() {
	f.time = 0
	f.trajectory.Reset(f.center)
}
