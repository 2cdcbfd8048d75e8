package metrics

import (
	"math"

	"github.com/san-kum/shearsim/internal/dynamo"
)

// EnergyDrift tracks the largest relative deviation of the sampled energy
// from the first non-zero sample.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.Sample) {
	e.currentEnergy = s.Energy
	e.samples++

	if e.initialEnergy == 0 {
		e.initialEnergy = s.Energy
		return
	}

	drift := math.Abs(s.Energy-e.initialEnergy) / math.Abs(e.initialEnergy)
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

type PeakEnergy struct {
	peak float64
}

func NewPeakEnergy() *PeakEnergy { return &PeakEnergy{} }

func (p *PeakEnergy) Name() string { return "peak_energy" }

func (p *PeakEnergy) Observe(s dynamo.Sample) {
	p.peak = math.Max(p.peak, s.Energy)
}

func (p *PeakEnergy) Value() float64 { return p.peak }
func (p *PeakEnergy) Reset()         { p.peak = 0 }
