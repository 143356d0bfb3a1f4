package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ErrShortSeries is returned when a series is too short to analyze.
var ErrShortSeries = errors.New("analysis: series too short")

// minSamples is the shortest series DominantFrequency accepts.
const minSamples = 4

// nextPow2 returns the smallest power of two >= n, and 1 for n <= 1.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns the magnitude of the first half of the discrete
// Fourier transform of data, zero-padded to a power of two. Bin k stands
// for k / (len * dt) Hz where len is the padded length, 2*len(result).
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	padded := make([]float64, nextPow2(len(data)))
	copy(padded, data)

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, max(1, len(spectrum)/2))
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// component of a series sampled every dt. The mean is removed first.
func DominantFrequency(series []float64, dt float64) (float64, error) {
	if len(series) < minSamples {
		return 0, fmt.Errorf("%w: %d samples, need %d", ErrShortSeries, len(series), minSamples)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("analysis: invalid sample interval %v", dt)
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	n := 2 * len(ps)
	return float64(best) / (float64(n) * dt), nil
}
