// Package control implements the four selectable control laws.
//
// Every law shares the cascaded decomposition: an outer block maps
// position error to a desired world-frame acceleration, the common
// thrust-vector inversion turns that into total thrust plus desired
// roll/pitch, and an inner block computes body torques:
//
//   - [PID]: cascaded PID with clamped integrators
//   - [SMC]: first-order sliding mode with boundary-layer saturation
//   - [STS]: super-twisting second-order sliding mode
//   - [MPC]: closed-form receding-horizon weighted heuristic
//
// # Lifecycle
//
// Controllers are reset by reconstruction: build a fresh variant with
// [New] (or the per-law constructors) and drop the old one. Gain
// updates via SetGains are atomic between ticks and deliberately do
// not touch integrators or sliding accumulators.
//
//	ctrl, _ := control.New(control.DefaultSMCGains(), par)
//	u := ctrl.Compute(x, sp, look, t, dt)
//	telem := ctrl.Telemetry()
//
// Gains are a tagged variant ([Gains]); there is no string-keyed gain
// map anywhere in the tick path.
package control
