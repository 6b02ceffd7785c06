package metrics

import (
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Saturation reports the fraction of ticks on which the mixer clamped
// at least one motor speed, the same per-tick flag the plant raises to
// telemetry. A wrench can exceed the rotors on torque alone, so this
// trips on demands well inside the total thrust envelope. A healthy
// run stays near zero; values above a few percent mean the gains are
// fighting the airframe.
type Saturation struct {
	name    string
	par     vehicle.Params
	clamped int
	samples int
}

func NewSaturation(par vehicle.Params) *Saturation {
	return &Saturation{name: "saturation", par: par}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(x dynamics.State, u vehicle.Input, sp traj.Setpoint, t float64) {
	s.samples++
	if _, clamped := vehicle.Allocate(s.par, u); clamped {
		s.clamped++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.clamped) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.clamped = 0
	s.samples = 0
}
