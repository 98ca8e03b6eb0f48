// Package dynamo provides the shared primitives of the skyrmion simulator.
//
// The package defines small value types and helpers used by both halves of
// the physics core:
//
//   - [Vec2]: planar vector for core position, velocity and field direction
//   - [ParallelFor]: row-chunked fan-out for grid sweeps
//   - domain errors returned at construction and run-loop boundaries
//
// # Example
//
//	ctrl := efield.NewController()
//	field, _ := skyrmion.New(skyrmion.DefaultConfig())
//	spins := field.Step(ctrl.Snapshot())
//
// # Thread Safety
//
// Nothing in the physics core is thread-safe. Run independent simulations
// side by side with sim.Sweep, which gives every run its own instances.
package dynamo
