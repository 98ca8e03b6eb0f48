package metrics

import (
	"math"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// MaxDisplacement tracks the largest distance of the core from the grid
// center over a run.
type MaxDisplacement struct {
	name   string
	origin dynamo.Vec2
	max    float64
}

func NewMaxDisplacement(origin dynamo.Vec2) *MaxDisplacement {
	return &MaxDisplacement{
		name:   "max_displacement",
		origin: origin,
	}
}

func (m *MaxDisplacement) Name() string { return m.name }

func (m *MaxDisplacement) Observe(_ skyrmion.SpinField, d skyrmion.Dynamics, _ float64) {
	m.max = math.Max(m.max, d.Center.Dist(m.origin))
}

func (m *MaxDisplacement) Value() float64 { return m.max }

func (m *MaxDisplacement) Reset() { m.max = 0 }
