package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/sim"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

func TestMaxDisplacement(t *testing.T) {
	m := NewMaxDisplacement(dynamo.Vec2{X: 10, Y: 10})
	m.Observe(skyrmion.SpinField{}, skyrmion.Dynamics{Center: dynamo.Vec2{X: 13, Y: 14}}, 0)
	m.Observe(skyrmion.SpinField{}, skyrmion.Dynamics{Center: dynamo.Vec2{X: 11, Y: 10}}, 0)

	if m.Value() != 5 {
		t.Errorf("expected 5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear value")
	}
}

func TestMeanPrecession(t *testing.T) {
	p := NewMeanPrecession()
	if p.Value() != 0 {
		t.Error("empty metric should be 0")
	}
	p.Observe(skyrmion.SpinField{}, skyrmion.Dynamics{RotationFreq: 2}, 0)
	p.Observe(skyrmion.SpinField{}, skyrmion.Dynamics{RotationFreq: -4}, 0)
	if p.Value() != 3 {
		t.Errorf("expected 3, got %f", p.Value())
	}
}

func TestRMSSpeed(t *testing.T) {
	r := NewRMSSpeed()
	r.Observe(skyrmion.SpinField{}, skyrmion.Dynamics{Velocity: dynamo.Vec2{X: 3, Y: 4}}, 0)
	r.Observe(skyrmion.SpinField{}, skyrmion.Dynamics{}, 0)
	if math.Abs(r.Value()-math.Sqrt(12.5)) > 1e-12 {
		t.Errorf("expected sqrt(12.5), got %f", r.Value())
	}
}

func TestDefaultMetricsOnRun(t *testing.T) {
	field, err := skyrmion.New(skyrmion.Config{GridSize: 40, CoreRadius: 5, Center: dynamo.Vec2{X: 20, Y: 20}, DMI: 0.8})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	ctrl := efield.NewController()
	ctrl.SetPulseType("dc")
	ctrl.SetStrength(0.1)

	s := sim.New(ctrl, field)
	for _, m := range Default(field.Origin()) {
		s.AddMetric(m)
	}

	result, err := s.Run(context.Background(), sim.Config{Ticks: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := result.Metrics["max_displacement"]; math.Abs(got-3) > 1e-9 {
		t.Errorf("max_displacement = %f, want 3", got)
	}
	if got := result.Metrics["mean_precession"]; math.Abs(got-1.6) > 1e-9 {
		t.Errorf("mean_precession = %f, want 1.6", got)
	}
	if got := math.Abs(result.Metrics["topological_charge"]); math.Abs(got-1) > 1e-3 {
		t.Errorf("|topological_charge| = %f, want 1", got)
	}
	if got := result.Metrics["core_sz"]; got < 0.99 {
		t.Errorf("core_sz = %f, want ~1", got)
	}
}
