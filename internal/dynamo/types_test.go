package dynamo

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", Vec2{1.5, -2.0}, true},
		{"with NaN", Vec2{math.NaN(), 0}, false},
		{"with +Inf", Vec2{0, math.Inf(1)}, false},
		{"with -Inf", Vec2{math.Inf(-1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if got := a.Add(b); got != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dist(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist = %v, want 5", got)
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.5, 1},
		{-0.1, -1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Sign(tt.in); got != tt.want {
			t.Errorf("Sign(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 1001} {
		hits := make([]int32, n)
		ParallelFor(n, 4, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, h)
			}
		}
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Tick: 150, Time: 1.5, Wrapped: ErrInvalidState}
	expected := "tick 150 (t=1.5000): dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("StepError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("StepError does not unwrap to ErrInvalidState")
	}
}
