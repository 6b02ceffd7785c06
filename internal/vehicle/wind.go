package vehicle

import (
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
)

// Wind produces the world-frame acceleration disturbance. The gust
// field is a fixed sum of sines of simulation time, so runs with equal
// intensity are bit-for-bit reproducible; there is no entropy source.
type Wind struct {
	Intensity float64
}

func (w Wind) Sample(t float64) dynamics.Vec3 {
	if w.Intensity == 0 {
		return dynamics.Vec3{}
	}
	return dynamics.Vec3{
		X: w.Intensity * (0.5*math.Sin(1.7*t) + 0.5*math.Sin(0.3*t)),
		Y: w.Intensity * 0.3 * math.Sin(0.8*t),
		Z: w.Intensity * (0.4*math.Cos(1.2*t) + 0.3*math.Sin(2.1*t)),
	}
}
