// Package dynamo provides the shared numeric primitives for the shear
// building simulator.
//
// The package defines the fundamental types used by every other package:
//
//   - [State]: fixed 4-vector (x1, x2, v1, v2)
//   - [System]: interface for ODE systems (dy/dt = f(t, y))
//   - [Hamiltonian]: energy diagnostic
//   - [Metric], [Observer]: consumers of per-step [Sample] values
//   - [Config]: fixed-step run configuration
//
// # Example
//
//	b, _ := physics.NewShearBuilding(physics.ReferenceParams())
//	s := sim.New(b, integrators.NewRK4())
//	result, _ := s.Run(ctx, dynamo.State{}, dynamo.DefaultConfig())
//
// # Errors
//
// Every precondition violation wraps [ErrPrecondition], so callers can
// classify with errors.Is regardless of the detailed cause.
package dynamo
