// Package vehicle implements the quadrotor plant.
//
// The model is a 6-DOF rigid body with ZYX Euler kinematics in a y-up
// world frame, translational drag, deterministic summed-sine wind and
// an X-configuration motor mixer:
//
//   - [Quad]: the plant; implements [dynamics.System] and owns Step
//   - [Params]: immutable physical constants
//   - [Allocate] / [Mix]: inverse and forward motor mixing
//   - [Wind]: reproducible gust field
//
// State advances by classical RK4 at a fixed timestep. After each step
// the ground clamp holds y >= 0 and motor speeds are recomputed for
// telemetry. Motor saturation is reported but does not feed back into
// the dynamics: the controllers see a perfect actuator.
//
// The Euler kinematics have the usual singularity at |theta| = pi/2.
// Nothing in the plant guards it; the controllers cap desired roll and
// pitch at 0.6 rad, which keeps flight far from the degenerate cone.
package vehicle
