// Package analysis provides post-processing tools for building responses.
//
//   - [PowerSpectrum]: Hann-windowed magnitude spectrum of a sampled signal
//   - [DominantFrequency]: frequency of the largest spectral peak, in rad/s
//   - [ParameterSweep]: steady-state peak response over a parameter range
//
// # Resonance
//
// Sweeping the excitation frequency across the first natural frequency
// shows the resonance peak:
//
//	modes, _ := physics.NaturalFrequencies(p)
//	pts, _ := analysis.ParameterSweep(ctx, p, "omega", omegas, x0, cfg, 5.0)
package analysis
