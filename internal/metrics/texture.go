package metrics

import (
	"math"

	"github.com/san-kum/skyrmsim/internal/analysis"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// TopologicalCharge reports the skyrmion number of the last observed field.
type TopologicalCharge struct {
	name string
	q    float64
}

func NewTopologicalCharge() *TopologicalCharge {
	return &TopologicalCharge{name: "topological_charge"}
}

func (t *TopologicalCharge) Name() string { return t.name }

func (t *TopologicalCharge) Observe(s skyrmion.SpinField, _ skyrmion.Dynamics, _ float64) {
	t.q = analysis.TopologicalCharge(s)
}

func (t *TopologicalCharge) Value() float64 { return t.q }
func (t *TopologicalCharge) Reset()         { t.q = 0 }

// CoreZ reports Sz at the lattice point nearest the core on the last tick.
type CoreZ struct {
	name string
	sz   float64
}

func NewCoreZ() *CoreZ {
	return &CoreZ{name: "core_sz"}
}

func (c *CoreZ) Name() string { return c.name }

func (c *CoreZ) Observe(s skyrmion.SpinField, d skyrmion.Dynamics, _ float64) {
	n := s.Size()
	if n == 0 {
		return
	}
	x := clampIndex(int(math.Round(d.Center.X)), n)
	y := clampIndex(int(math.Round(d.Center.Y)), n)
	_, _, c.sz = s.At(x, y)
}

func (c *CoreZ) Value() float64 { return c.sz }
func (c *CoreZ) Reset()         { c.sz = 0 }

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
