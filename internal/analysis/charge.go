package analysis

import (
	"math"

	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

type vec3 struct{ x, y, z float64 }

func (a vec3) dot(b vec3) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }
func (a vec3) cross(b vec3) vec3 {
	return vec3{a.y*b.z - a.z*b.y, a.z*b.x - a.x*b.z, a.x*b.y - a.y*b.x}
}

// TopologicalCharge computes the skyrmion number by summing the signed solid
// angles of two triangles per lattice plaquette. The sum is an exact integer
// when the boundary is uniform, so an isolated skyrmion far from the edges
// gives ±1.
func TopologicalCharge(s skyrmion.SpinField) float64 {
	n := s.Size()
	if n < 2 {
		return 0
	}

	at := func(x, y int) vec3 {
		sx, sy, sz := s.At(x, y)
		return vec3{sx, sy, sz}
	}

	total := 0.0
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			m1, m2, m3, m4 := at(x, y), at(x+1, y), at(x+1, y+1), at(x, y+1)
			total += solidAngle(m1, m2, m3) + solidAngle(m1, m3, m4)
		}
	}

	return total / (4 * math.Pi)
}

func solidAngle(a, b, c vec3) float64 {
	num := a.dot(b.cross(c))
	den := 1 + a.dot(b) + b.dot(c) + c.dot(a)
	return 2 * math.Atan2(num, den)
}
