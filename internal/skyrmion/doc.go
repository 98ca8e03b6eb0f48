// Package skyrmion generates the spin texture of a Néel skyrmion on a square
// lattice and tracks how its core responds to an electric-field drive.
//
// The spin profile is a closed-form approximation, not a relaxed
// micromagnetic state. For a drive e the core sits at
//
//	center = (N/2, N/2) + e·dir·DisplacementGain
//
// and every lattice point at polar position (r, θ) relative to it carries
//
//	r'  = r·(1 + e·DeformGain·cos θ)
//	Sz  = -tanh((r' - r0) / WallWidth)
//	Sx  =  sin(θ + e·RotationGain)·√(1 - Sz²)
//	Sy  = -cos(θ + e·RotationGain)·√(1 - Sz²)
//
// The core position is recomputed from the current drive on every step. It is
// never integrated from velocity, so a zero-mean pulse makes the core wobble
// around the grid center instead of drifting.
package skyrmion
