// Package sim couples a quadrotor plant, a reference generator and a
// control law into a single deterministic bench.
//
// The central type is [Bench]. Each call to [Bench.Step] advances the
// closed loop by exactly one fixed tick of 1/120 s in a strict order:
// the reference is sampled first, the controller computes its wrench
// against that fresh setpoint, and the plant integrates last. Two
// benches built from the same options therefore produce bit-identical
// trajectories, which the headless tools rely on.
//
// [Run] drives a bench for a fixed duration under a context, recording
// every tick into a [Result] and feeding any attached [Metric] values.
// [Registry] maps the string ids used by the CLI and config files onto
// integrators and controllers, rejecting unknown names at the boundary.
package sim
