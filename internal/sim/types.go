package sim

import (
	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(s skyrmion.SpinField, d skyrmion.Dynamics, drive float64)
	Value() float64
	Reset()
}

// Observer sees every tick after the field has been stepped.
type Observer interface {
	OnStep(tick int, s skyrmion.SpinField, d skyrmion.Dynamics)
}

// Event changes the field configuration, or restarts the pulse clock, before
// the step with index Tick.
type Event struct {
	Tick      int
	Label     string
	Apply     func(c *efield.Controller)
	ResetTime bool
}

type Config struct {
	Ticks         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         500,
		ValidateState: true,
	}
}

// Record is one row of a run's dynamics log.
type Record struct {
	Tick         int
	Time         float64
	Center       dynamo.Vec2
	Velocity     dynamo.Vec2
	RotationFreq float64
	Drive        float64
}

type Result struct {
	Records    []Record
	Metrics    map[string]float64
	Final      skyrmion.SpinField
	Trajectory []dynamo.Vec2
	StepsTaken int
	Errors     []error
}
