package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/physics"
	"github.com/san-kum/shearsim/internal/sim"
)

// ResponsePoint is the steady-state peak response for one parameter value.
type ResponsePoint struct {
	Param  float64
	PeakX1 float64
	PeakX2 float64
}

// steadyPeak ignores samples before the transient has passed.
type steadyPeak struct {
	idx       int
	transient float64
	peak      float64
}

func (s *steadyPeak) Name() string {
	if s.idx == dynamo.X1 {
		return "steady_peak_x1"
	}
	return "steady_peak_x2"
}

func (s *steadyPeak) Observe(smp dynamo.Sample) {
	if smp.Time < s.transient {
		return
	}
	s.peak = math.Max(s.peak, math.Abs(smp.State[s.idx]))
}

func (s *steadyPeak) Value() float64 { return s.peak }
func (s *steadyPeak) Reset()         { s.peak = 0 }

// Sweep varies one physics.Params field and measures the steady-state peak
// floor displacements for each value.
type Sweep struct {
	Param     string
	Values    []float64
	Transient float64 // seconds ignored before peaks are tracked
	Workers   int     // parallel runs, 0 for GOMAXPROCS
}

// Run executes one simulation per value. Runs are independent and execute
// in parallel; points come back in value order. Transient must leave part
// of the run to measure.
func (sw Sweep) Run(ctx context.Context, base physics.Params, x0 dynamo.State, cfg dynamo.Config) ([]ResponsePoint, error) {
	if !(sw.Transient >= 0 && sw.Transient < cfg.Duration) {
		return nil, fmt.Errorf("%w: transient %g outside [0, %g)", dynamo.ErrPrecondition, sw.Transient, cfg.Duration)
	}
	params := make([]physics.Params, len(sw.Values))
	for i, v := range sw.Values {
		p, err := base.With(sw.Param, v)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}

	ens := sim.NewEnsemble(func() []dynamo.Metric {
		return []dynamo.Metric{
			&steadyPeak{idx: dynamo.X1, transient: sw.Transient},
			&steadyPeak{idx: dynamo.X2, transient: sw.Transient},
		}
	})
	ens.SetWorkers(sw.Workers)

	results, err := ens.Run(ctx, params, x0, cfg)
	if err != nil {
		return nil, err
	}

	points := make([]ResponsePoint, len(sw.Values))
	for i, res := range results {
		points[i] = ResponsePoint{
			Param:  sw.Values[i],
			PeakX1: res.Metrics["steady_peak_x1"],
			PeakX2: res.Metrics["steady_peak_x2"],
		}
	}
	return points, nil
}

// ParameterSweep is Sweep.Run with the default worker count.
func ParameterSweep(ctx context.Context, base physics.Params, name string, values []float64, x0 dynamo.State, cfg dynamo.Config, transient float64) ([]ResponsePoint, error) {
	return Sweep{Param: name, Values: values, Transient: transient}.Run(ctx, base, x0, cfg)
}

// Peak returns the point with the largest PeakX2.
func Peak(points []ResponsePoint) (ResponsePoint, bool) {
	if len(points) == 0 {
		return ResponsePoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.PeakX2 > best.PeakX2 {
			best = p
		}
	}
	return best, true
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
