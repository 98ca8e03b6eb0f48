package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/sim"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

func TestDominantFrequency(t *testing.T) {
	const (
		n  = 1000
		dt = 0.01
	)
	omega := 2 * math.Pi * 5 / (n * dt)

	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(omega*float64(i)*dt)
	}

	got := DominantFrequency(data, dt)
	if math.Abs(got-omega) > 1e-9 {
		t.Errorf("dominant frequency = %f, want %f", got, omega)
	}
}

func TestDominantFrequency_Flat(t *testing.T) {
	data := []float64{2, 2, 2, 2, 2, 2, 2, 2}
	if got := DominantFrequency(data, 0.01); got != 0 {
		t.Errorf("flat series frequency = %f, want 0", got)
	}
	if got := DominantFrequency(nil, 0.01); got != 0 {
		t.Errorf("empty series frequency = %f, want 0", got)
	}
}

func TestTopologicalCharge(t *testing.T) {
	field, err := skyrmion.New(skyrmion.Config{GridSize: 48, CoreRadius: 6, Center: dynamo.Vec2{X: 24, Y: 24}, DMI: 0.8})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	spins := field.Step(efield.NewController().Snapshot())

	q := TopologicalCharge(spins)
	if math.Abs(math.Abs(q)-1) > 1e-3 {
		t.Errorf("|Q| = %f, want 1", math.Abs(q))
	}
}

func TestTopologicalCharge_Empty(t *testing.T) {
	if q := TopologicalCharge(skyrmion.SpinField{}); q != 0 {
		t.Errorf("empty field Q = %f", q)
	}
}

func TestTrajectoryStats(t *testing.T) {
	pts := []dynamo.Vec2{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 6, Y: 8}}
	st := TrajectoryStats(pts)

	if st.Samples != 3 {
		t.Errorf("samples = %d", st.Samples)
	}
	if math.Abs(st.PathLength-10) > 1e-12 {
		t.Errorf("path length = %f, want 10", st.PathLength)
	}
	if st.Mean != (dynamo.Vec2{X: 3, Y: 4}) {
		t.Errorf("mean = %v", st.Mean)
	}
	if st.Min != (dynamo.Vec2{}) || st.Max != (dynamo.Vec2{X: 6, Y: 8}) {
		t.Errorf("bounds = %v %v", st.Min, st.Max)
	}
	if math.Abs(st.StdDev.X-3) > 1e-12 {
		t.Errorf("std x = %f, want 3", st.StdDev.X)
	}
}

func runRecords(t *testing.T, ticks int) []sim.Record {
	t.Helper()
	field, err := skyrmion.New(skyrmion.Config{GridSize: 16, CoreRadius: 3, Center: dynamo.Vec2{X: 8, Y: 8}, DMI: 0.8})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	ctrl := efield.NewController()
	ctrl.SetStrength(0.1)
	s := sim.New(ctrl, field)
	res, err := s.Run(context.Background(), sim.Config{Ticks: ticks})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res.Records
}

func TestDriveResponseIsLinear(t *testing.T) {
	portrait := DriveResponse(runRecords(t, 200), 0)
	for _, p := range portrait.Points {
		want := 8 + p.X*skyrmion.DisplacementGain
		if math.Abs(p.Y-want) > 1e-9 {
			t.Fatalf("center x %f for drive %f, want %f", p.Y, p.X, want)
		}
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	out := PhasePortraitToASCII(CenterPath(runRecords(t, 100)), 40, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "•") {
		t.Error("no points plotted")
	}
	if PhasePortraitToASCII(nil, 40, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}

func TestStroboscopicSection(t *testing.T) {
	records := runRecords(t, 400)
	section := StroboscopicSection(records, 2.0)
	// period π over t in [0.01, 4.00]: samples near t=0.01 and t≈3.15
	if len(section.Points) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(section.Points))
	}
	if math.Abs(section.Points[0].X-section.Points[1].X) > 0.2 {
		t.Errorf("stroboscopic samples differ: %v", section.Points)
	}
}
