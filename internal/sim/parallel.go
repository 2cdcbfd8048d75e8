package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/integrators"
	"github.com/san-kum/shearsim/internal/physics"
)

// Ensemble runs independent parameter sets concurrently. Each run keeps
// its own strictly ordered step sequence.
type Ensemble struct {
	metrics func() []dynamo.Metric
	workers int
}

// NewEnsemble creates an ensemble. metrics, if non-nil, is called once per
// run so that stateful metrics are never shared between goroutines.
func NewEnsemble(metrics func() []dynamo.Metric) *Ensemble {
	return &Ensemble{metrics: metrics, workers: runtime.GOMAXPROCS(0)}
}

func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

// Run returns one result per parameter set, in input order. The first error
// cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, params []physics.Params, x0 dynamo.State, cfg dynamo.Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(params))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, p := range params {
		i, p := i, p
		g.Go(func() error {
			b, err := physics.NewShearBuilding(p)
			if err != nil {
				return err
			}

			s := New(b, integrators.NewRK4())
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, x0, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
