// Package dynamics provides the core numerical primitives for the
// flight simulator.
//
// The package defines the fundamental types shared by the plant, the
// integrators and the control loop:
//
//   - [State]: flat vector representing the vehicle state
//   - [Control]: input vector (thrust and body torques)
//   - [System]: interface for ODE right-hand sides (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Vec3]: world-frame vector (y-up)
//
// # Example
//
//	quad := vehicle.New(vehicle.DefaultParams())
//	integ := integrators.NewRK4()
//	x1 := integ.Step(quad, x0, u, t, dt)
//
// # Thread Safety
//
// None of the types in this package are safe for concurrent mutation.
// Callers that run several simulations at once must give each one its
// own integrator and system instance.
package dynamics
