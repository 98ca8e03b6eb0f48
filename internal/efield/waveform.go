package efield

import (
	"math"

	"github.com/san-kum/skyrmsim/internal/dynamo"
)

// Params is an immutable snapshot of the field configuration. Any producer of
// these five values can drive a skyrmion.Field; it need not come from a
// Controller.
type Params struct {
	Strength  float64
	Direction dynamo.Vec2
	Pulse     PulseType
	Freq      float64
	Amp       float64
}

// Drive evaluates the scalar drive e(t) for the configured waveform.
// Unrecognised pulse types fall back to the DC value.
func (p Params) Drive(t float64) float64 {
	switch p.Pulse {
	case Square:
		return p.Strength * p.Amp * dynamo.Sign(math.Sin(p.Freq*t))
	case Sin:
		return p.Strength * p.Amp * math.Sin(p.Freq*t)
	default:
		return p.Strength
	}
}
