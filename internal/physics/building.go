package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/integrators"
)

// Reference building: two floors, harmonic excitation on floor 1.
const (
	DefaultM1    = 1000.0 // kg
	DefaultM2    = 800.0  // kg
	DefaultK1    = 2.0e6  // N/m
	DefaultK2    = 1.5e6  // N/m
	DefaultC1    = 2000.0 // N·s/m
	DefaultC2    = 1500.0 // N·s/m
	DefaultF0    = 5000.0 // N
	DefaultOmega = 10.0   // rad/s
)

// Params holds the constants of one simulation run.
type Params struct {
	M1    float64 `yaml:"m1" json:"m1"`
	M2    float64 `yaml:"m2" json:"m2"`
	K1    float64 `yaml:"k1" json:"k1"`
	K2    float64 `yaml:"k2" json:"k2"`
	C1    float64 `yaml:"c1" json:"c1"`
	C2    float64 `yaml:"c2" json:"c2"`
	F0    float64 `yaml:"f0" json:"f0"`
	Omega float64 `yaml:"omega" json:"omega"`
}

func ReferenceParams() Params {
	return Params{
		M1:    DefaultM1,
		M2:    DefaultM2,
		K1:    DefaultK1,
		K2:    DefaultK2,
		C1:    DefaultC1,
		C2:    DefaultC2,
		F0:    DefaultF0,
		Omega: DefaultOmega,
	}
}

func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"m1", p.M1}, {"m2", p.M2},
		{"k1", p.K1}, {"k2", p.K2},
		{"c1", p.C1}, {"c2", p.C2},
		{"f0", p.F0}, {"omega", p.Omega},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return dynamo.NonFinite("parameter " + f.name)
		}
	}
	if p.M1 <= 0 || p.M2 <= 0 {
		return fmt.Errorf("%w (m1=%g, m2=%g)", dynamo.ErrNonPositiveMass, p.M1, p.M2)
	}
	for _, f := range fields[2:6] {
		if f.value < 0 {
			return fmt.Errorf("%w (%s=%g)", dynamo.ErrNegativeCoefficient, f.name, f.value)
		}
	}
	return nil
}

// GetParams returns the parameters keyed by their YAML names.
func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": p.M1, "m2": p.M2,
		"k1": p.K1, "k2": p.K2,
		"c1": p.C1, "c2": p.C2,
		"f0": p.F0, "omega": p.Omega,
	}
}

// With returns a copy of p with one named parameter replaced.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case "m1":
		p.M1 = value
	case "m2":
		p.M2 = value
	case "k1":
		p.K1 = value
	case "k2":
		p.K2 = value
	case "c1":
		p.C1 = value
	case "c2":
		p.C2 = value
	case "f0":
		p.F0 = value
	case "omega":
		p.Omega = value
	default:
		return p, fmt.Errorf("unknown parameter: %s", name)
	}
	return p, nil
}

// ShearBuilding is an immutable 2-DOF lumped-mass model. Construct it with
// NewShearBuilding so the parameters are validated once.
type ShearBuilding struct {
	p Params
}

func NewShearBuilding(p Params) (*ShearBuilding, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &ShearBuilding{p: p}, nil
}

func (b *ShearBuilding) Params() Params { return b.p }

// Excitation is the force on floor 1 at time t, F0*sin(omega*t).
func (b *ShearBuilding) Excitation(t float64) float64 {
	return b.p.F0 * math.Sin(b.p.Omega*t)
}

func (b *ShearBuilding) Derive(t float64, y dynamo.State) dynamo.State {
	p := b.p
	x1, x2, v1, v2 := y[dynamo.X1], y[dynamo.X2], y[dynamo.V1], y[dynamo.V2]

	// inter-story drift and relative velocity
	drift := x2 - x1
	rel := v2 - v1

	f1 := b.Excitation(t)

	return dynamo.State{
		v1,
		v2,
		(f1 - p.C1*v1 - p.K1*x1 + p.C2*rel + p.K2*drift) / p.M1,
		(-p.C2*rel - p.K2*drift) / p.M2,
	}
}

func (b *ShearBuilding) KineticEnergy(y dynamo.State) float64 {
	v1, v2 := y[dynamo.V1], y[dynamo.V2]
	return 0.5*b.p.M1*v1*v1 + 0.5*b.p.M2*v2*v2
}

func (b *ShearBuilding) PotentialEnergy(y dynamo.State) float64 {
	x1 := y[dynamo.X1]
	drift := y[dynamo.X2] - x1
	return 0.5*b.p.K1*x1*x1 + 0.5*b.p.K2*drift*drift
}

func (b *ShearBuilding) Energy(y dynamo.State) float64 {
	return b.KineticEnergy(y) + b.PotentialEnergy(y)
}

// Derivative evaluates dy/dt for params p. Invalid params are reported as
// ErrPrecondition. Hold a ShearBuilding to skip the per-call validation.
func Derivative(t float64, y dynamo.State, p Params) (dynamo.State, error) {
	b, err := NewShearBuilding(p)
	if err != nil {
		return dynamo.State{}, err
	}
	return b.Derive(t, y), nil
}

// Step advances y by one RK4 step of size h.
func Step(t float64, y dynamo.State, h float64, p Params) (dynamo.State, error) {
	b, err := NewShearBuilding(p)
	if err != nil {
		return y, err
	}
	return integrators.NewRK4().Step(b, t, y, h)
}

// TotalEnergy is the mechanical energy of y for params p.
func TotalEnergy(y dynamo.State, p Params) (float64, error) {
	b, err := NewShearBuilding(p)
	if err != nil {
		return 0, err
	}
	return b.Energy(y), nil
}
