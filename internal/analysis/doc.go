// Package analysis provides post-run tools for skyrmion simulations.
//
// The package works on recorded runs and spin fields:
//
//   - [PowerSpectrum], [DominantFrequency]: spectral content of a core
//     coordinate or drive series
//   - [TopologicalCharge]: lattice skyrmion number of a spin field
//   - [Stats]: trajectory mean, spread, extent and path length
//   - [PhasePortrait2D], [PhasePortraitToASCII]: drive/response portraits
//   - [StroboscopicSection]: one sample per pulse period
//
// # Charge
//
// A well-resolved isolated skyrmion has |Q| close to 1:
//
//	q := analysis.TopologicalCharge(spins)
//	if math.Abs(math.Abs(q)-1) < 0.05 {
//	    // texture is intact
//	}
package analysis
