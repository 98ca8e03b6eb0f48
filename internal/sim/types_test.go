package sim

import (
	"context"
	"testing"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Ticks <= 0 {
		t.Error("DefaultConfig has invalid Ticks")
	}
	if !cfg.ValidateState {
		t.Error("DefaultConfig should validate state")
	}
}

func TestSweepKeepsOrderAndIsolation(t *testing.T) {
	base := skyrmion.Config{GridSize: 16, CoreRadius: 3, Center: dynamo.Vec2{X: 8, Y: 8}, DMI: 0.8}
	strengths := []float64{0, 0.05, 0.1}

	jobs := make([]Job, len(strengths))
	for i, e := range strengths {
		jobs[i] = Job{
			Field:   base,
			Params:  efield.Params{Strength: e, Direction: dynamo.Vec2{X: 1}, Pulse: efield.DC},
			Metrics: func() []Metric { return []Metric{&countMetric{}} },
		}
	}

	results, err := Sweep(context.Background(), jobs, Config{Ticks: 5})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	for i, e := range strengths {
		got := results[i].Records[0].Center.X
		want := 8 + e*skyrmion.DisplacementGain
		if got != want {
			t.Errorf("job %d: center x = %f, want %f", i, got, want)
		}
		if results[i].Metrics["count"] != 5 {
			t.Errorf("job %d: metric = %f, want 5", i, results[i].Metrics["count"])
		}
	}
}

func TestSweepPropagatesErrors(t *testing.T) {
	jobs := []Job{{Field: skyrmion.Config{GridSize: 0, CoreRadius: 1}}}
	if _, err := Sweep(context.Background(), jobs, Config{Ticks: 1}); err == nil {
		t.Error("expected error for invalid field config")
	}
}
