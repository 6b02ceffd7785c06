package metrics

import (
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Default is the standard pack attached to headless runs.
func Default(par vehicle.Params) []sim.Metric {
	return []sim.Metric{
		NewTrackingError(),
		NewControlEffort(par.ArmLength),
		NewSaturation(par),
		NewChattering(),
	}
}
