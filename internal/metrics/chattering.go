package metrics

import (
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Chattering measures the total variation of the thrust command, the
// sum of |T_k - T_{k-1}| over the run. Sliding-mode laws with a thin
// boundary layer show up here an order of magnitude above smooth ones.
type Chattering struct {
	name    string
	prev    float64
	total   float64
	samples int
}

func NewChattering() *Chattering {
	return &Chattering{
		name: "chattering",
	}
}

func (c *Chattering) Name() string {
	return c.name
}

func (c *Chattering) Observe(x dynamics.State, u vehicle.Input, sp traj.Setpoint, t float64) {
	if c.samples > 0 {
		c.total += math.Abs(u.Thrust - c.prev)
	}
	c.prev = u.Thrust
	c.samples++
}

func (c *Chattering) Value() float64 {
	return c.total
}

func (c *Chattering) Reset() {
	c.prev = 0
	c.total = 0
	c.samples = 0
}
