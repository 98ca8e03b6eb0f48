package viz

import (
	"math"
	"sort"

	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera projects world points onto the canvas with a fixed eye distance.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera looks at the lattice tilted back so Sz reads as height.
func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, RotX: -1.0, RotZ: math.Pi / 4, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint applies the Z, then X, then Y rotation.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project converts world coordinates to dot coordinates on a sw x sh
// surface. Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe         { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()            { w.Edges = w.Edges[:0] }
func (w *Wireframe) Len() int          { return len(w.Edges) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe back to front.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.DotWidth(), c.DotHeight()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// SpinWireframe places one arrow per step-th lattice site. The lattice is
// mapped to [-1, 1] on x and y and each spin is drawn with length arrow in
// the same units, so Sz becomes height.
func SpinWireframe(w *Wireframe, s skyrmion.SpinField, step int, arrow float64) {
	w.Clear()
	n := s.Size()
	if n == 0 {
		return
	}
	if step < 1 {
		step = 1
	}
	half := float64(n-1) / 2
	if half == 0 {
		half = 1
	}
	for y := 0; y < n; y += step {
		for x := 0; x < n; x += step {
			sx, sy, sz := s.At(x, y)
			base := Vec3{(float64(x) - half) / half, (half - float64(y)) / half, 0}
			w.AddEdge(base, base.Add(Vec3{sx, -sy, sz}.Scale(arrow)))
		}
	}
}

// AddAxes adds the x, y and z axes of length l.
func (w *Wireframe) AddAxes(l float64) {
	o := Vec3{}
	w.AddEdge(o, Vec3{l, 0, 0})
	w.AddEdge(o, Vec3{0, l, 0})
	w.AddEdge(o, Vec3{0, 0, l})
}
