package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// StoryFrequencies returns the per-story estimates sqrt((k1+k2)/m1) and
// sqrt(k2/m2). They ignore coupling and are not the modal frequencies.
func StoryFrequencies(p Params) (omega1, omega2 float64) {
	return math.Sqrt((p.K1 + p.K2) / p.M1), math.Sqrt(p.K2 / p.M2)
}

// Mode is one undamped vibration mode.
type Mode struct {
	Omega  float64    // rad/s
	Freq   float64    // Hz
	Period float64    // s
	Shape  [2]float64 // floor amplitudes, floor 2 normalised to 1
}

// NaturalFrequencies solves K*phi = w^2*M*phi through the symmetric form
// M^-1/2 K M^-1/2. Modes are returned in ascending frequency.
func NaturalFrequencies(p Params) ([2]Mode, error) {
	var modes [2]Mode
	if err := p.Validate(); err != nil {
		return modes, err
	}

	s1 := 1 / math.Sqrt(p.M1)
	s2 := 1 / math.Sqrt(p.M2)
	a := mat.NewSymDense(2, []float64{
		(p.K1 + p.K2) * s1 * s1, -p.K2 * s1 * s2,
		-p.K2 * s1 * s2, p.K2 * s2 * s2,
	})

	var eig mat.EigenSym
	if ok := eig.Factorize(a, true); !ok {
		return modes, fmt.Errorf("physics: eigen decomposition failed")
	}
	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	for i := range modes {
		w2 := math.Max(values[i], 0)
		omega := math.Sqrt(w2)
		modes[i].Omega = omega
		modes[i].Freq = omega / (2 * math.Pi)
		if omega > 0 {
			modes[i].Period = 1 / modes[i].Freq
		} else {
			modes[i].Period = math.Inf(1)
		}

		// back to physical coordinates: phi = M^-1/2 * q
		phi1 := vecs.At(0, i) * s1
		phi2 := vecs.At(1, i) * s2
		if phi2 != 0 {
			phi1, phi2 = phi1/phi2, 1
		}
		modes[i].Shape = [2]float64{phi1, phi2}
	}

	return modes, nil
}
