package metrics

import (
	"math"

	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

type MeanPrecession struct {
	name    string
	samples int
	total   float64
}

func NewMeanPrecession() *MeanPrecession {
	return &MeanPrecession{name: "mean_precession"}
}

func (p *MeanPrecession) Name() string { return p.name }

func (p *MeanPrecession) Observe(_ skyrmion.SpinField, d skyrmion.Dynamics, _ float64) {
	p.total += math.Abs(d.RotationFreq)
	p.samples++
}

func (p *MeanPrecession) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *MeanPrecession) Reset() {
	p.total = 0
	p.samples = 0
}

// RMSSpeed is the root-mean-square of the reported core velocity.
type RMSSpeed struct {
	name    string
	samples int
	sumSq   float64
}

func NewRMSSpeed() *RMSSpeed {
	return &RMSSpeed{name: "rms_speed"}
}

func (r *RMSSpeed) Name() string { return r.name }

func (r *RMSSpeed) Observe(_ skyrmion.SpinField, d skyrmion.Dynamics, _ float64) {
	v := d.Velocity.Norm()
	r.sumSq += v * v
	r.samples++
}

func (r *RMSSpeed) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSSpeed) Reset() {
	r.sumSq = 0
	r.samples = 0
}
