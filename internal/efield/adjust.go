package efield

import "math"

// Interactive control ranges and key steps.
const (
	MaxStrength = 2.0
	MaxFreq     = 5.0
	MaxAmp      = 2.0

	StrengthStep = 0.05
	FreqStep     = 0.1
	AmpStep      = 0.1
)

// NudgeStrength adds d and clamps the result to [0, MaxStrength].
func (c *Controller) NudgeStrength(d float64) float64 {
	c.strength = clamp(c.strength+d, 0, MaxStrength)
	return c.strength
}

func (c *Controller) NudgeFreq(d float64) float64 {
	c.freq = clamp(c.freq+d, 0, MaxFreq)
	return c.freq
}

func (c *Controller) NudgeAmp(d float64) float64 {
	c.amp = clamp(c.amp+d, 0, MaxAmp)
	return c.amp
}

func clamp(v, lo, hi float64) float64 {
	// round away float drift from repeated steps
	v = math.Round(v*1e9) / 1e9
	return math.Max(lo, math.Min(hi, v))
}
