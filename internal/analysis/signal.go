package analysis

import "math"

// TotalVariation sums |x_k - x_{k-1}| over a channel. Smooth commands
// score low; sign-switching ones grow linearly with time.
func TotalVariation(samples []float64) float64 {
	var tv float64
	for i := 1; i < len(samples); i++ {
		tv += math.Abs(samples[i] - samples[i-1])
	}
	return tv
}

// SettlingTime finds when the channel last left the tolerance band
// around target. It returns the corresponding time, or 0 when the
// channel was inside the band throughout, and -1 when it never
// settled.
func SettlingTime(times, values []float64, target, tol float64) float64 {
	n := len(values)
	if n == 0 || len(times) != n {
		return -1
	}

	last := -1
	for i, v := range values {
		if math.Abs(v-target) > tol {
			last = i
		}
	}
	if last == -1 {
		return 0
	}
	if last == n-1 {
		return -1
	}
	return times[last+1]
}

// MeanAbs is the average magnitude of a channel.
func MeanAbs(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += math.Abs(v)
	}
	return sum / float64(len(samples))
}
