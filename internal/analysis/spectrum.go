package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum computes the one-sided power spectrum of a uniformly
// sampled channel. Bin i sits at freqs[i] Hz; the DC bin is included.
func Spectrum(samples []float64, sampleRate float64) (freqs, power []float64) {
	n := len(samples)
	if n < 2 {
		return nil, nil
	}

	// Remove the mean so a large DC offset does not swamp the bins
	// next to it.
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range samples {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)

	half := n / 2
	freqs = make([]float64, half)
	power = make([]float64, half)
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) * sampleRate / float64(n)
		power[i] = cmplx.Abs(spectrum[i]) / float64(n)
	}
	return freqs, power
}

// DominantFrequency returns the bin with the most power, skipping DC.
func DominantFrequency(freqs, power []float64) (freq, peak float64) {
	for i := 1; i < len(power) && i < len(freqs); i++ {
		if power[i] > peak {
			peak = power[i]
			freq = freqs[i]
		}
	}
	return freq, peak
}

// HighFrequencyFraction reports how much of the signal's power sits
// above cutoff Hz. Chattering controllers push this toward one.
func HighFrequencyFraction(freqs, power []float64, cutoff float64) float64 {
	var total, high float64
	for i := 1; i < len(power) && i < len(freqs); i++ {
		total += power[i]
		if freqs[i] >= cutoff {
			high += power[i]
		}
	}
	if total == 0 {
		return 0
	}
	return high / total
}
