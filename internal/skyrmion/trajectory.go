package skyrmion

import "github.com/san-kum/skyrmsim/internal/dynamo"

// Trajectory is a fixed-capacity ring of core positions. Pushing onto a full
// ring evicts the oldest point.
type Trajectory struct {
	buf  []dynamo.Vec2
	head int
	size int
}

func NewTrajectory(capacity int) *Trajectory {
	if capacity < 1 {
		capacity = 1
	}
	return &Trajectory{buf: make([]dynamo.Vec2, capacity)}
}

func (t *Trajectory) Len() int { return t.size }
func (t *Trajectory) Cap() int { return len(t.buf) }

func (t *Trajectory) Push(p dynamo.Vec2) {
	idx := (t.head + t.size) % len(t.buf)
	t.buf[idx] = p
	if t.size < len(t.buf) {
		t.size++
		return
	}
	t.head = (t.head + 1) % len(t.buf)
}

// Reset collapses the ring to the single point p.
func (t *Trajectory) Reset(p dynamo.Vec2) {
	t.head = 0
	t.size = 0
	t.Push(p)
}

// Points returns a copy ordered oldest first.
func (t *Trajectory) Points() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, t.size)
	for i := 0; i < t.size; i++ {
		out[i] = t.buf[(t.head+i)%len(t.buf)]
	}
	return out
}

// Last returns the most recent point, or false when empty.
func (t *Trajectory) Last() (dynamo.Vec2, bool) {
	if t.size == 0 {
		return dynamo.Vec2{}, false
	}
	return t.buf[(t.head+t.size-1)%len(t.buf)], true
}
