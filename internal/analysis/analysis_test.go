package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/physics"
)

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	data := make([]float64, 2000)
	for i := range data {
		tm := float64(i) * dt
		data[i] = 0.3 + math.Sin(10*tm) + 0.2*math.Sin(40*tm)
	}

	w, err := DominantFrequency(data, dt)
	if err != nil {
		t.Fatal(err)
	}
	resolution := 2 * math.Pi / (2048 * dt)
	if math.Abs(w-10) > resolution {
		t.Errorf("dominant frequency %f rad/s, want 10 ± %f", w, resolution)
	}
}

func TestDominantFrequencyErrors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2}, 0.1); !errors.Is(err, ErrShortSignal) {
		t.Errorf("expected short signal error, got %v", err)
	}
	if _, err := DominantFrequency(make([]float64, 16), 0); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	if ps := PowerSpectrum(make([]float64, 1000)); len(ps) != 512 {
		t.Errorf("expected 512 bins, got %d", len(ps))
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
}

func TestFreeVibrationShowsFirstMode(t *testing.T) {
	p := physics.ReferenceParams()
	p.F0 = 0
	b, err := physics.NewShearBuilding(p)
	if err != nil {
		t.Fatal(err)
	}
	modes, _ := physics.NaturalFrequencies(p)

	// start in the first mode shape
	y := dynamo.State{0.01 * modes[0].Shape[0], 0.01, 0, 0}
	dt := 0.002
	data := make([]float64, 4096)
	for i := range data {
		data[i] = y[dynamo.X2]
		y, err = rk4Step(b, float64(i)*dt, y, dt)
		if err != nil {
			t.Fatal(err)
		}
	}

	w, err := DominantFrequency(data, dt)
	if err != nil {
		t.Fatal(err)
	}
	resolution := 2 * math.Pi / (4096 * dt)
	if math.Abs(w-modes[0].Omega) > resolution {
		t.Errorf("spectral peak %f rad/s, first mode %f", w, modes[0].Omega)
	}
}

func TestParameterSweepFindsResonance(t *testing.T) {
	p := physics.ReferenceParams()
	modes, err := physics.NaturalFrequencies(p)
	if err != nil {
		t.Fatal(err)
	}

	omegas := []float64{10, modes[0].Omega}
	cfg := dynamo.Config{Dt: 0.001, Duration: 10, Decimation: 5}
	pts, err := ParameterSweep(context.Background(), p, "omega", omegas, dynamo.State{}, cfg, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(pts) != 2 || pts[1].Param != modes[0].Omega {
		t.Fatalf("unexpected points %+v", pts)
	}
	if pts[1].PeakX1 < 5*pts[0].PeakX1 {
		t.Errorf("expected resonance amplification: off=%g on=%g", pts[0].PeakX1, pts[1].PeakX1)
	}
	if pts[1].PeakX2 <= pts[1].PeakX1 {
		t.Errorf("first mode should move floor 2 more than floor 1: %+v", pts[1])
	}
}

func TestParameterSweepUnknownParam(t *testing.T) {
	_, err := ParameterSweep(context.Background(), physics.ReferenceParams(), "zeta", []float64{1}, dynamo.State{}, dynamo.DefaultConfig(), 0)
	if err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSweepRejectsTransientBeyondRun(t *testing.T) {
	cfg := dynamo.Config{Dt: 0.01, Duration: 2, Decimation: 1}
	for _, transient := range []float64{2, 3, -1, math.NaN()} {
		sw := Sweep{Param: "omega", Values: []float64{10}, Transient: transient}
		pts, err := sw.Run(context.Background(), physics.ReferenceParams(), dynamo.State{}, cfg)
		if !errors.Is(err, dynamo.ErrPrecondition) {
			t.Errorf("transient %g: expected precondition error, got %v", transient, err)
		}
		if pts != nil {
			t.Errorf("transient %g: expected no points, got %+v", transient, pts)
		}
	}

	sw := Sweep{Param: "omega", Values: []float64{10}, Transient: 1.99}
	if _, err := sw.Run(context.Background(), physics.ReferenceParams(), dynamo.State{}, cfg); err != nil {
		t.Errorf("transient inside the run rejected: %v", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Errorf("Linspace[%d] = %f", i, got[i])
		}
	}
	if len(Linspace(3, 4, 1)) != 1 {
		t.Error("expected single value")
	}
}

func TestSweepLocatesFirstMode(t *testing.T) {
	p := physics.ReferenceParams()
	modes, err := physics.NaturalFrequencies(p)
	if err != nil {
		t.Fatal(err)
	}

	sw := Sweep{
		Param:     "omega",
		Values:    Linspace(10, 50, 9),
		Transient: 5,
		Workers:   2,
	}
	cfg := dynamo.Config{Dt: 0.001, Duration: 10, Decimation: 5}
	pts, err := sw.Run(context.Background(), p, dynamo.State{}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	best, ok := Peak(pts)
	if !ok {
		t.Fatal("no points")
	}
	// grid spacing is 5 rad/s
	if math.Abs(best.Param-modes[0].Omega) > 5 {
		t.Errorf("peak at %f rad/s, first mode %f", best.Param, modes[0].Omega)
	}
	if _, ok := Peak(nil); ok {
		t.Error("expected no peak for empty sweep")
	}
}
