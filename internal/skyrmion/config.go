package skyrmion

import (
	"math"

	"github.com/san-kum/skyrmsim/internal/dynamo"
)

// Model constants. DisplacementGain and the other gains are chosen for
// visible excursions at small field values; they are not derived from
// material parameters.
const (
	Dt               = 0.01
	DisplacementGain = 30.0
	DeformGain       = 0.5
	RotationGain     = 4 * math.Pi
	VelocityGain     = 0.8
	PrecessionGain   = 20.0
	WallWidth        = 1.0
	MaxTrajectory    = 50
)

const (
	DefaultGridSize   = 100
	DefaultCoreRadius = 6.0
	DefaultDMI        = 0.8
)

// Config fixes the lattice and texture parameters for a Field's lifetime.
type Config struct {
	GridSize   int
	CoreRadius float64
	Center     dynamo.Vec2
	DMI        float64
}

func DefaultConfig() Config {
	return Config{
		GridSize:   DefaultGridSize,
		CoreRadius: DefaultCoreRadius,
		Center:     dynamo.Vec2{X: 50, Y: 50},
		DMI:        DefaultDMI,
	}
}

// Origin is the lattice point the driven core is displaced from.
func (c Config) Origin() dynamo.Vec2 {
	return dynamo.Vec2{X: float64(c.GridSize) / 2, Y: float64(c.GridSize) / 2}
}

// Validate rejects configurations the spin formula cannot be evaluated on.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return dynamo.ErrGridSize
	}
	if !(c.CoreRadius > 0) || math.IsInf(c.CoreRadius, 0) {
		return dynamo.ErrCoreRadius
	}
	if !c.Center.IsValid() || math.IsNaN(c.DMI) || math.IsInf(c.DMI, 0) {
		return dynamo.ErrInvalidState
	}
	return nil
}
