package metrics

import (
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// TrackingError accumulates the RMS distance between the vehicle
// position and its setpoint. MaxError keeps the worst single sample.
type TrackingError struct {
	name    string
	sumSq   float64
	maxErr  float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{
		name: "tracking_error",
	}
}

func (m *TrackingError) Name() string {
	return m.name
}

func (m *TrackingError) Observe(x dynamics.State, u vehicle.Input, sp traj.Setpoint, t float64) {
	if len(x) < vehicle.StateDim {
		return
	}
	pos := dynamics.Vec3{X: x[vehicle.IX], Y: x[vehicle.IY], Z: x[vehicle.IZ]}
	d := pos.Dist(sp.Pos)
	m.sumSq += d * d
	if d > m.maxErr {
		m.maxErr = d
	}
	m.samples++
}

func (m *TrackingError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *TrackingError) MaxError() float64 {
	return m.maxErr
}

func (m *TrackingError) Reset() {
	m.sumSq = 0
	m.maxErr = 0
	m.samples = 0
}
