package integrators

import "github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"

// RK4 is the classical 4-stage Runge-Kutta scheme with weights
// (1, 2, 2, 1)/6. Intermediate states are value copies held in scratch
// buffers so repeated steps do not allocate.
type RK4 struct {
	k1, k2, k3, k4 dynamics.State
	scratch        dynamics.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamics.State, n)
		r.k2 = make(dynamics.State, n)
		r.k3 = make(dynamics.State, n)
		r.k4 = make(dynamics.State, n)
		r.scratch = make(dynamics.State, n)
	}
}

func (r *RK4) Step(dyn dynamics.System, x dynamics.State, u dynamics.Control, t, dt float64) dynamics.State {
	n := len(x)
	r.ensureScratch(n)

	k1 := dyn.Derive(x, u, t)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2 := dyn.Derive(r.scratch, u, t+dt*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3 := dyn.Derive(r.scratch, u, t+dt*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4 := dyn.Derive(r.scratch, u, t+dt)
	copy(r.k4, k4)

	result := make(dynamics.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
