package integrators

import "github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"

// Euler is the explicit first-order scheme. It exists for accuracy
// comparisons against RK4; the flight loop itself always runs RK4.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamics.System, x dynamics.State, u dynamics.Control, t float64, dt float64) dynamics.State {
	dx := dyn.Derive(x, u, t)
	result := make(dynamics.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
