package integrators

import (
	"math"

	"github.com/san-kum/shearsim/internal/dynamo"
)

// RK4 is the classical fixed-step fourth-order Runge-Kutta scheme. It has no
// error estimate and never adapts h.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, t float64, x dynamo.State, dt float64) (dynamo.State, error) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return x, dynamo.NonFinite("step size")
	}
	if dt <= 0 {
		return x, dynamo.NonPositiveStep(dt)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return x, dynamo.NonFinite("time")
	}
	if !x.IsValid() {
		return x, dynamo.NonFinite("state")
	}

	half := 0.5 * dt

	k1 := dyn.Derive(t, x)
	k2 := dyn.Derive(t+half, x.AddScaled(half, k1))
	k3 := dyn.Derive(t+half, x.AddScaled(half, k2))
	k4 := dyn.Derive(t+dt, x.AddScaled(dt, k3))

	result := x.Add(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(dt / 6.0))

	if !result.IsValid() {
		return result, dynamo.NonFinite("integrated state")
	}
	return result, nil
}
