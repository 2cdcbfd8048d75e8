package sim

import (
	"context"
	"math"

	"github.com/san-kum/shearsim/internal/dynamo"
)

// Simulator drives the fixed-step loop. It is not safe for concurrent use;
// use Ensemble for independent runs in parallel.
type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 at t=0 for cfg.Steps() steps. Loop index i runs
// 0..steps inclusive; energy is evaluated on the state before it is
// advanced, so the last sample carries the post-loop state. Samples are
// recorded every cfg.Decimation steps.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !x0.IsValid() {
		return nil, dynamo.NonFinite("initial state")
	}

	steps := cfg.Steps()
	result := &dynamo.Result{
		Samples: make([]dynamo.Sample, 0, steps/cfg.Decimation+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0
	t := 0.0
	dt := cfg.Dt
	initialEnergy := s.computeEnergy(x)

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, x, t, initialEnergy)
			return result, ctx.Err()
		default:
		}

		sample := dynamo.Sample{Step: i, Time: t, State: x, Energy: s.computeEnergy(x)}

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnSample(sample)
		}
		if i%cfg.Decimation == 0 {
			result.Samples = append(result.Samples, sample)
		}

		if i == steps {
			break
		}

		newX, err := s.integrator.Step(s.dyn, t, x, dt)
		if err != nil {
			s.finish(result, x, t, initialEnergy)
			return result, &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: err}
		}

		x = newX
		t += dt
		result.StepsTaken++
	}

	s.finish(result, x, t, initialEnergy)
	return result, nil
}

func (s *Simulator) finish(result *dynamo.Result, x dynamo.State, t, initialEnergy float64) {
	result.Final = x
	result.FinalTime = t
	result.FinalEnergy = s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(result.FinalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) computeEnergy(x dynamo.State) float64 {
	if h, ok := s.dyn.(dynamo.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// RunWithCallback streams every loop sample to callback without recording
// them. Returning false from callback stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 dynamo.State, cfg dynamo.Config, callback func(dynamo.Sample) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	x := x0
	t := 0.0
	steps := cfg.Steps()

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(dynamo.Sample{Step: i, Time: t, State: x, Energy: s.computeEnergy(x)}) {
			return nil
		}
		if i == steps {
			break
		}

		next, err := s.integrator.Step(s.dyn, t, x, cfg.Dt)
		if err != nil {
			return &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: err}
		}
		x = next
		t += cfg.Dt
	}

	return nil
}
