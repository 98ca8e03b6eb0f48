package efield

const (
	DefaultStrength  = 0.0
	DefaultDirection = XPlus
	DefaultPulse     = Sin
	DefaultFreq      = 2.0
	DefaultAmp       = 1.0
)

// Controller owns the current field configuration. It is not safe for
// concurrent use; the owning UI or run loop mutates it between ticks.
type Controller struct {
	strength  float64
	direction Direction
	pulse     PulseType
	freq      float64
	amp       float64
}

// NewController returns a controller with zero strength along x+, sin pulse,
// freq 2 and amplitude 1.
func NewController() *Controller {
	return &Controller{
		strength:  DefaultStrength,
		direction: DefaultDirection,
		pulse:     DefaultPulse,
		freq:      DefaultFreq,
		amp:       DefaultAmp,
	}
}

func (c *Controller) SetStrength(v float64)  { c.strength = v }
func (c *Controller) SetPulseFreq(v float64) { c.freq = v }
func (c *Controller) SetPulseAmp(v float64)  { c.amp = v }

// SetDirection switches to the named direction. Unknown names are ignored and
// reported as false.
func (c *Controller) SetDirection(name string) bool {
	d, ok := ParseDirection(name)
	if !ok {
		return false
	}
	c.direction = d
	return true
}

// SetPulseType switches the waveform. Unknown names are ignored and reported
// as false.
func (c *Controller) SetPulseType(name string) bool {
	p, ok := ParsePulseType(name)
	if !ok {
		return false
	}
	c.pulse = p
	return true
}

func (c *Controller) Strength() float64    { return c.strength }
func (c *Controller) PulseFreq() float64   { return c.freq }
func (c *Controller) PulseAmp() float64    { return c.amp }
func (c *Controller) Direction() Direction { return c.direction }
func (c *Controller) PulseType() PulseType { return c.pulse }

// CycleDirection advances to the next direction in menu order.
func (c *Controller) CycleDirection() Direction {
	names := DirectionNames()
	c.SetDirection(names[(int(c.direction)+1)%len(names)])
	return c.direction
}

// CyclePulseType advances to the next waveform in menu order.
func (c *Controller) CyclePulseType() PulseType {
	names := PulseTypeNames()
	for i, n := range names {
		if n == string(c.pulse) {
			c.SetPulseType(names[(i+1)%len(names)])
			break
		}
	}
	return c.pulse
}

// Snapshot returns the configuration by value.
func (c *Controller) Snapshot() Params {
	return Params{
		Strength:  c.strength,
		Direction: c.direction.Vector(),
		Pulse:     c.pulse,
		Freq:      c.freq,
		Amp:       c.amp,
	}
}

// Apply overwrites every field from p. Direction is matched back to its
// named value; a vector outside the fixed set leaves direction unchanged.
func (c *Controller) Apply(p Params) {
	c.strength = p.Strength
	c.freq = p.Freq
	c.amp = p.Amp
	c.SetPulseType(string(p.Pulse))
	for i, v := range directionVectors {
		if v == p.Direction {
			c.direction = Direction(i)
			return
		}
	}
}
