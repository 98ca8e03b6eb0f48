package efield

import (
	"math"
	"testing"

	"github.com/san-kum/skyrmsim/internal/dynamo"
)

func TestDrive_DC(t *testing.T) {
	p := Params{Strength: 0.7, Pulse: DC, Freq: 3, Amp: 5}
	for _, tm := range []float64{0, 0.01, 1, 123.4} {
		if got := p.Drive(tm); got != 0.7 {
			t.Errorf("Drive(%v) = %v, want 0.7", tm, got)
		}
	}
}

func TestDrive_UnknownFallsBackToDC(t *testing.T) {
	p := Params{Strength: 0.4, Pulse: "triangle", Freq: 3, Amp: 5}
	if got := p.Drive(1.0); got != 0.4 {
		t.Errorf("Drive = %v, want 0.4", got)
	}
}

func TestDrive_Sin(t *testing.T) {
	p := Params{Strength: 0.5, Pulse: Sin, Freq: 2, Amp: 1.5}
	for _, tm := range []float64{0.1, 0.5, 2.0} {
		want := 0.5 * 1.5 * math.Sin(2*tm)
		if got := p.Drive(tm); math.Abs(got-want) > 1e-12 {
			t.Errorf("Drive(%v) = %v, want %v", tm, got, want)
		}
	}
}

func TestDrive_SinZeroStrengthOrAmp(t *testing.T) {
	for _, p := range []Params{
		{Strength: 0, Pulse: Sin, Freq: 2, Amp: 1},
		{Strength: 1, Pulse: Sin, Freq: 2, Amp: 0},
	} {
		for _, tm := range []float64{0.01, 0.7, 3.3} {
			if got := p.Drive(tm); got != 0 {
				t.Errorf("Drive(%v) with %+v = %v, want 0", tm, p, got)
			}
		}
	}
}

func TestDrive_SquareMatchesSignOfSin(t *testing.T) {
	p := Params{Strength: 1, Pulse: Square, Freq: 1, Amp: 1, Direction: dynamo.Vec2{X: 1}}
	samples := []float64{0.5, 1.5, 3.0, 3.5, 4.5, 6.0, 6.5, 9.0, 10.0}
	for _, tm := range samples {
		want := 1.0
		if math.Sin(tm) < 0 {
			want = -1
		}
		if got := p.Drive(tm); got != want {
			t.Errorf("Drive(%v) = %v, want %v", tm, got, want)
		}
	}
}

func TestDrive_SquareAtZeroCrossing(t *testing.T) {
	p := Params{Strength: 1, Pulse: Square, Freq: 1, Amp: 1}
	if got := p.Drive(0); got != 0 {
		t.Errorf("Drive(0) = %v, want 0", got)
	}
}
