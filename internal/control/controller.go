package control

import (
	"fmt"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Controller is one control law with its internal state. Controllers
// are owned values: the loop constructs one, calls Compute once per
// tick, and reconstructs it to reset. There is no in-place reset; an
// algorithm switch always builds a fresh variant.
//
// SetGains swaps the gain set between ticks without disturbing
// integrators or sliding accumulators.
type Controller interface {
	Algorithm() Algorithm
	Compute(x dynamics.State, sp traj.Setpoint, look traj.Lookahead, t, dt float64) vehicle.Input
	SetGains(g Gains) error
	Telemetry() Telemetry
}

// New builds the controller variant for the gain set. Params are fixed
// at construction; controllers never reach into the plant.
func New(g Gains, par vehicle.Params) (Controller, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	switch gg := g.(type) {
	case PIDGains:
		return NewPID(gg, par), nil
	case SMCGains:
		return NewSMC(gg, par), nil
	case STSGains:
		return NewSTS(gg, par), nil
	case MPCGains:
		return NewMPC(gg, par), nil
	default:
		return nil, fmt.Errorf("unknown gains variant %T", g)
	}
}

func gainsMismatch(want Algorithm, got Gains) error {
	return fmt.Errorf("%s gains applied to %s controller", got.Algorithm(), want)
}
