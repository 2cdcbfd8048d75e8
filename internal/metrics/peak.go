package metrics

import (
	"math"

	"github.com/san-kum/shearsim/internal/dynamo"
)

var componentNames = [dynamo.Dim]string{"x1", "x2", "v1", "v2"}

// PeakResponse is the largest absolute value of one state component.
type PeakResponse struct {
	idx    int
	peak   float64
	atTime float64
}

func NewPeakResponse(idx int) *PeakResponse {
	return &PeakResponse{idx: idx}
}

func (p *PeakResponse) Name() string { return "peak_" + componentNames[p.idx] }

func (p *PeakResponse) Observe(s dynamo.Sample) {
	if v := math.Abs(s.State[p.idx]); v > p.peak {
		p.peak = v
		p.atTime = s.Time
	}
}

func (p *PeakResponse) Value() float64 { return p.peak }

// Time is when the peak occurred.
func (p *PeakResponse) Time() float64 { return p.atTime }

func (p *PeakResponse) Reset() {
	p.peak = 0
	p.atTime = 0
}

// Default returns a fresh set of the standard run metrics.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(),
		NewPeakEnergy(),
		NewPeakResponse(dynamo.X1),
		NewPeakResponse(dynamo.X2),
		NewPeakResponse(dynamo.V1),
		NewPeakResponse(dynamo.V2),
	}
}
