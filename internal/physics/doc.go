// Package physics provides the two-story shear building model.
//
// [ShearBuilding] implements [dynamo.System] and [dynamo.Hamiltonian]:
// floor 1 is tied to the base through (k1, c1) and to floor 2 through
// (k2, c2), and a harmonic force F0*sin(omega*t) drives floor 1.
//
// # Energy
//
// Total mechanical energy is an observation only and never feeds back
// into integration:
//
//	b, _ := physics.NewShearBuilding(physics.ReferenceParams())
//	energy := b.Energy(state)
//
// The package-level [Derivative], [Step] and [TotalEnergy] functions
// expose the same operations for callers that hold only a [Params]. They
// validate the params on every call.
package physics
