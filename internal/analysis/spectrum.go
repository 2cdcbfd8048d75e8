package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSignal = errors.New("analysis: signal needs at least 4 samples")

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns the one-sided magnitude spectrum of data after a
// Hann window and zero padding to a power of two. Bin k corresponds to
// k/(len*dt) Hz where len is twice the returned length.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	padded := make([]float64, nextPow2(n))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(max(n-1, 1))))
		padded[i] = (v - mean) * window
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the angular frequency (rad/s) of the strongest
// non-DC component of a signal sampled every dt seconds.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrShortSignal
	}
	if !(dt > 0) {
		return 0, errors.New("analysis: sample interval must be positive")
	}

	ps := PowerSpectrum(data)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	n := 2 * len(ps)
	return 2 * math.Pi * float64(peak) / (float64(n) * dt), nil
}
