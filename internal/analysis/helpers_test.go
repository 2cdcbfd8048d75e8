package analysis

import (
	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/integrators"
)

func rk4Step(sys dynamo.System, t float64, y dynamo.State, h float64) (dynamo.State, error) {
	return integrators.NewRK4().Step(sys, t, y, h)
}
