package efield

import "github.com/san-kum/skyrmsim/internal/dynamo"

// Direction selects one of the fixed in-plane field directions.
type Direction int

const (
	XPlus Direction = iota
	XMinus
	YPlus
	YMinus
	XYPlus
	XYMinus
)

var directionNames = [...]string{"x+", "x-", "y+", "y-", "xy+", "xy-"}

// Diagonals are (±1, ±1), not unit vectors. Displacement along xy± is √2
// larger than along an axis for the same drive.
var directionVectors = [...]dynamo.Vec2{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 1},
	{X: -1, Y: -1},
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Vector returns the direction's planar vector.
func (d Direction) Vector() dynamo.Vec2 {
	if d < 0 || int(d) >= len(directionVectors) {
		return dynamo.Vec2{}
	}
	return directionVectors[d]
}

// ParseDirection maps a name such as "xy-" to its Direction.
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return 0, false
}

// DirectionNames lists the direction names in menu order.
func DirectionNames() []string {
	out := make([]string, len(directionNames))
	copy(out, directionNames[:])
	return out
}

// PulseType is the time-domain waveform applied to the field strength.
type PulseType string

const (
	DC     PulseType = "dc"
	Sin    PulseType = "sin"
	Square PulseType = "square"
)

var pulseTypes = [...]PulseType{DC, Sin, Square}

// ParsePulseType accepts "dc", "sin" or "square".
func ParsePulseType(name string) (PulseType, bool) {
	for _, p := range pulseTypes {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// PulseTypeNames lists the waveform names in menu order.
func PulseTypeNames() []string {
	out := make([]string, len(pulseTypes))
	for i, p := range pulseTypes {
		out[i] = string(p)
	}
	return out
}
