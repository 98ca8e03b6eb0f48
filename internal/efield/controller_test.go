package efield

import (
	"math"
	"testing"

	"github.com/san-kum/skyrmsim/internal/dynamo"
)

func TestNewControllerDefaults(t *testing.T) {
	c := NewController()
	p := c.Snapshot()

	if p.Strength != 0 {
		t.Errorf("expected strength 0, got %f", p.Strength)
	}
	if p.Direction != (dynamo.Vec2{X: 1, Y: 0}) {
		t.Errorf("expected direction (1,0), got %v", p.Direction)
	}
	if p.Pulse != Sin {
		t.Errorf("expected pulse sin, got %s", p.Pulse)
	}
	if p.Freq != 2.0 || p.Amp != 1.0 {
		t.Errorf("expected freq 2 amp 1, got %f %f", p.Freq, p.Amp)
	}
}

func TestSetDirection(t *testing.T) {
	tests := []struct {
		name string
		want dynamo.Vec2
	}{
		{"x+", dynamo.Vec2{X: 1, Y: 0}},
		{"x-", dynamo.Vec2{X: -1, Y: 0}},
		{"y+", dynamo.Vec2{X: 0, Y: 1}},
		{"y-", dynamo.Vec2{X: 0, Y: -1}},
		{"xy+", dynamo.Vec2{X: 1, Y: 1}},
		{"xy-", dynamo.Vec2{X: -1, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			if !c.SetDirection(tt.name) {
				t.Fatalf("SetDirection(%q) rejected a known name", tt.name)
			}
			if got := c.Snapshot().Direction; got != tt.want {
				t.Errorf("direction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetDirection_UnknownIsNoop(t *testing.T) {
	c := NewController()
	c.SetDirection("y-")

	for _, name := range []string{"z+", "", "X+", "xy"} {
		if c.SetDirection(name) {
			t.Errorf("SetDirection(%q) accepted an unknown name", name)
		}
		if got := c.Snapshot().Direction; got != (dynamo.Vec2{X: 0, Y: -1}) {
			t.Errorf("after %q direction changed to %v", name, got)
		}
	}
}

func TestDiagonalDirectionsNotNormalized(t *testing.T) {
	for _, name := range []string{"xy+", "xy-"} {
		d, ok := ParseDirection(name)
		if !ok {
			t.Fatalf("ParseDirection(%q) failed", name)
		}
		if n := d.Vector().Norm(); math.Abs(n-math.Sqrt2) > 1e-12 {
			t.Errorf("%s magnitude = %f, want sqrt(2)", name, n)
		}
	}
}

func TestSetPulseType(t *testing.T) {
	c := NewController()

	if !c.SetPulseType("square") {
		t.Fatal("square rejected")
	}
	if c.PulseType() != Square {
		t.Errorf("expected square, got %s", c.PulseType())
	}

	if c.SetPulseType("triangle") {
		t.Error("triangle accepted")
	}
	if c.PulseType() != Square {
		t.Errorf("unknown pulse type changed state to %s", c.PulseType())
	}
}

func TestSettersOverwrite(t *testing.T) {
	c := NewController()
	c.SetStrength(-1.5)
	c.SetPulseFreq(7)
	c.SetPulseAmp(0)

	p := c.Snapshot()
	if p.Strength != -1.5 || p.Freq != 7 || p.Amp != 0 {
		t.Errorf("unexpected snapshot %+v", p)
	}
}

func TestSnapshotIsValue(t *testing.T) {
	c := NewController()
	p := c.Snapshot()
	p.Strength = 99
	p.Direction = dynamo.Vec2{X: 5, Y: 5}

	if c.Strength() != 0 {
		t.Error("mutating snapshot changed controller strength")
	}
	if c.Snapshot().Direction != (dynamo.Vec2{X: 1, Y: 0}) {
		t.Error("mutating snapshot changed controller direction")
	}
}

func TestCycleDirection(t *testing.T) {
	c := NewController()
	seen := []string{c.Direction().String()}
	for i := 0; i < len(DirectionNames()); i++ {
		seen = append(seen, c.CycleDirection().String())
	}
	want := []string{"x+", "x-", "y+", "y-", "xy+", "xy-", "x+"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}

func TestCyclePulseType(t *testing.T) {
	c := NewController()
	if got := c.CyclePulseType(); got != Square {
		t.Errorf("sin -> %s, want square", got)
	}
	if got := c.CyclePulseType(); got != DC {
		t.Errorf("square -> %s, want dc", got)
	}
}

func TestApply(t *testing.T) {
	c := NewController()
	c.Apply(Params{Strength: 0.3, Direction: dynamo.Vec2{X: -1, Y: -1}, Pulse: DC, Freq: 4, Amp: 2})

	if c.Direction() != XYMinus {
		t.Errorf("direction = %s, want xy-", c.Direction())
	}
	if c.PulseType() != DC || c.Strength() != 0.3 || c.PulseFreq() != 4 || c.PulseAmp() != 2 {
		t.Errorf("unexpected state %+v", c.Snapshot())
	}

	c.Apply(Params{Direction: dynamo.Vec2{X: 0.5, Y: 0}, Pulse: "bogus"})
	if c.Direction() != XYMinus || c.PulseType() != DC {
		t.Error("Apply with unknown direction/pulse changed them")
	}
}
