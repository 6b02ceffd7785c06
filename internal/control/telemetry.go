package control

import "github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"

// Telemetry is the record a controller publishes each tick and the
// collaborators (TUI, CSV writer) read back. The controller owns and
// rewrites it; readers must not hold references across ticks.
type Telemetry struct {
	// Realized input.
	Thrust   float64
	TauPhi   float64
	TauTheta float64
	TauPsi   float64

	// Sliding surfaces s_x, s_y, s_z. Zero for the non-sliding laws.
	Surfaces dynamics.Vec3

	// Desired attitude out of the thrust-vector inversion:
	// X=roll, Y=pitch, Z=yaw.
	Desired dynamics.Vec3

	// Predicted positions of the constant-acceleration rollout,
	// N+1 samples starting at the current position. Nil except under
	// the predictive law.
	Horizon []dynamics.Vec3
}
