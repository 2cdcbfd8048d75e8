package dynamo

import (
	"fmt"
	"math"
)

// Component indices of a State.
const (
	X1 = iota
	X2
	V1
	V2
	Dim
)

// State is (x1, x2, v1, v2): floor displacements in m and velocities in m/s.
type State [Dim]float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Add(other State) State {
	var result State
	for i := range s {
		result[i] = s[i] + other[i]
	}
	return result
}

func (s State) Scale(factor float64) State {
	var result State
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// AddScaled returns s + factor*other.
func (s State) AddScaled(factor float64, other State) State {
	var result State
	for i := range s {
		result[i] = s[i] + factor*other[i]
	}
	return result
}

func (s State) Slice() []float64 {
	return []float64{s[X1], s[X2], s[V1], s[V2]}
}

// StateFromSlice copies the first four values of v into a State.
func StateFromSlice(v []float64) (State, error) {
	var s State
	if len(v) != Dim {
		return s, fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, len(v), Dim)
	}
	copy(s[:], v)
	return s, nil
}

func (s State) String() string {
	return fmt.Sprintf("[x1=%.6g x2=%.6g v1=%.6g v2=%.6g]", s[X1], s[X2], s[V1], s[V2])
}

type System interface {
	Derive(t float64, y State) State
}

type Hamiltonian interface {
	Energy(y State) float64
}

// Integrator advances y by one step of size h. A non-finite result is
// reported as ErrNonFinite rather than returned.
type Integrator interface {
	Step(sys System, t float64, y State, h float64) (State, error)
}

// Sample is the pre-step view of one loop iteration.
type Sample struct {
	Step   int
	Time   float64
	State  State
	Energy float64
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s Sample)
}

type Config struct {
	Dt         float64
	Duration   float64
	Decimation int
}

func DefaultConfig() Config {
	return Config{
		Dt:         0.001,
		Duration:   20.0,
		Decimation: 10,
	}
}

// MaxSteps bounds Config.Steps so the step count and sample buffer fit.
const MaxSteps = math.MaxInt32

// Steps is the number of integration steps, round(Duration/Dt).
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return NonPositiveStep(c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrPrecondition, c.Duration)
	}
	if c.Decimation < 1 {
		return fmt.Errorf("%w: decimation must be >= 1, got %d", ErrPrecondition, c.Decimation)
	}
	if n := math.Round(c.Duration / c.Dt); math.IsInf(n, 0) || n > MaxSteps {
		return fmt.Errorf("%w: duration/dt gives too many steps (%g > %d)", ErrPrecondition, n, MaxSteps)
	}
	return nil
}

type Result struct {
	Samples     []Sample
	Final       State
	FinalTime   float64
	FinalEnergy float64
	StepsTaken  int
	Metrics     map[string]float64
	EnergyDrift float64
}

// Series extracts component idx from every recorded sample.
func (r *Result) Series(idx int) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.State[idx]
	}
	return out
}

func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}

func (r *Result) Energies() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Energy
	}
	return out
}
