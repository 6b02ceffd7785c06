package metrics

import (
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// ControlEffort averages the magnitude of the commanded wrench. Torques
// are scaled by 1/armlength so they land in the same unit as thrust and
// a single number stays comparable across controllers.
type ControlEffort struct {
	name    string
	arm     float64
	sum     float64
	samples int
}

func NewControlEffort(arm float64) *ControlEffort {
	if arm <= 0 {
		arm = 1
	}
	return &ControlEffort{
		name: "control_effort",
		arm:  arm,
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(x dynamics.State, u vehicle.Input, sp traj.Setpoint, t float64) {
	c.sum += math.Abs(u.Thrust)
	c.sum += (math.Abs(u.TauPhi) + math.Abs(u.TauTheta) + math.Abs(u.TauPsi)) / c.arm
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
