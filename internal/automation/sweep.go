package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/metrics"
	"github.com/san-kum/skyrmsim/internal/sim"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// ParameterSweep varies one field parameter over an even range.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	Steps    int
	Ticks    int
	Field    skyrmion.Config
	Base     efield.Params
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// SweepParams lists the parameter names a sweep or search may vary.
var SweepParams = []string{"strength", "freq", "amp"}

// WithParam returns p with one named parameter replaced.
func WithParam(p efield.Params, name string, v float64) (efield.Params, error) {
	switch name {
	case "strength":
		p.Strength = v
	case "freq":
		p.Freq = v
	case "amp":
		p.Amp = v
	default:
		return p, fmt.Errorf("unknown sweep parameter %q", name)
	}
	return p, nil
}

func (ps *ParameterSweep) Values() []float64 {
	if ps.Steps <= 1 {
		return []float64{ps.Min}
	}
	step := (ps.Max - ps.Min) / float64(ps.Steps-1)
	vals := make([]float64, ps.Steps)
	for i := range vals {
		vals[i] = ps.Min + float64(i)*step
	}
	return vals
}

// RunSweep runs all sweep points in parallel and reports the default metrics
// for each.
func RunSweep(ctx context.Context, ps *ParameterSweep) ([]SweepResult, error) {
	if ps.Ticks <= 0 {
		return nil, fmt.Errorf("sweep ticks must be positive, got %d", ps.Ticks)
	}

	origin := ps.Field.Origin()
	values := ps.Values()
	jobs := make([]sim.Job, len(values))
	for i, v := range values {
		params, err := WithParam(ps.Base, ps.Param, v)
		if err != nil {
			return nil, err
		}
		jobs[i] = sim.Job{
			Name:    fmt.Sprintf("%s=%.4f", ps.Param, v),
			Field:   ps.Field,
			Params:  params,
			Metrics: func() []sim.Metric { return metrics.Default(origin) },
		}
	}

	cfg := sim.DefaultConfig()
	cfg.Ticks = ps.Ticks
	results, err := sim.Sweep(ctx, jobs, cfg)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(results))
	for i, r := range results {
		out[i] = SweepResult{ParamValue: values[i], Metrics: r.Metrics}
	}
	return out, nil
}
