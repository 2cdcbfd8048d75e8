package physics

import (
	"math"
	"testing"
)

func TestStoryFrequencies(t *testing.T) {
	w1, w2 := StoryFrequencies(ReferenceParams())
	if math.Abs(w1-math.Sqrt(3.5e3)) > 1e-9 {
		t.Errorf("omega1 = %f", w1)
	}
	if math.Abs(w2-math.Sqrt(1.875e3)) > 1e-9 {
		t.Errorf("omega2 = %f", w2)
	}
}

func TestNaturalFrequencies_EqualFloors(t *testing.T) {
	p := Params{M1: 1, M2: 1, K1: 1, K2: 1}
	modes, err := NaturalFrequencies(p)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{math.Sqrt((3 - math.Sqrt(5)) / 2), math.Sqrt((3 + math.Sqrt(5)) / 2)}
	for i, w := range want {
		if math.Abs(modes[i].Omega-w) > 1e-12 {
			t.Errorf("mode %d omega = %.12f, want %.12f", i+1, modes[i].Omega, w)
		}
	}

	golden := (math.Sqrt(5) - 1) / 2
	if math.Abs(modes[0].Shape[0]-golden) > 1e-12 || modes[0].Shape[1] != 1 {
		t.Errorf("mode 1 shape = %v, want [%f 1]", modes[0].Shape, golden)
	}
	if modes[1].Shape[0] > 0 {
		t.Errorf("mode 2 floors should move in opposition, got %v", modes[1].Shape)
	}
}

func TestNaturalFrequencies_Reference(t *testing.T) {
	p := ReferenceParams()
	modes, err := NaturalFrequencies(p)
	if err != nil {
		t.Fatal(err)
	}
	if modes[0].Omega >= modes[1].Omega {
		t.Errorf("modes not ascending: %v", modes)
	}

	// characteristic polynomial of M^-1 K
	a := (p.K1 + p.K2) / p.M1
	d := p.K2 / p.M2
	tr := a + d
	det := a*d - (p.K2/p.M1)*(p.K2/p.M2)
	disc := math.Sqrt(tr*tr - 4*det)
	want := []float64{math.Sqrt((tr - disc) / 2), math.Sqrt((tr + disc) / 2)}

	for i := range want {
		if math.Abs(modes[i].Omega-want[i]) > 1e-9*want[i] {
			t.Errorf("mode %d omega = %f, want %f", i+1, modes[i].Omega, want[i])
		}
		if math.Abs(modes[i].Period*modes[i].Freq-1) > 1e-12 {
			t.Errorf("mode %d period/frequency inconsistent", i+1)
		}
	}
}

func TestNaturalFrequencies_Invalid(t *testing.T) {
	p := ReferenceParams()
	p.M2 = 0
	if _, err := NaturalFrequencies(p); err == nil {
		t.Error("expected error for zero mass")
	}
}
