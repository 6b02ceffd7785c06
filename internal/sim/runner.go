package sim

import (
	"context"
	"fmt"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Metric accumulates a scalar over a run. Observe sees the pre-step
// state, the commanded input and the setpoint of each tick.
type Metric interface {
	Name() string
	Observe(x dynamics.State, u vehicle.Input, sp traj.Setpoint, t float64)
	Value() float64
	Reset()
}

// Result is one recorded run. Row i captures tick i: the state the
// controller saw, the setpoint it chased, the input it commanded and
// the motor speeds that realized it.
type Result struct {
	Algorithm control.Algorithm
	Pattern   traj.Pattern
	Wind      float64

	Times     []float64
	States    []dynamics.State
	Setpoints []traj.Setpoint
	Inputs    []vehicle.Input
	Surfaces  []dynamics.Vec3
	Motors    [][4]float64

	Metrics map[string]float64
	Steps   int
}

var stateChannels = map[string]int{
	"x": vehicle.IX, "y": vehicle.IY, "z": vehicle.IZ,
	"vx": vehicle.IVX, "vy": vehicle.IVY, "vz": vehicle.IVZ,
	"phi": vehicle.IPhi, "theta": vehicle.ITheta, "psi": vehicle.IPsi,
	"p": vehicle.IP, "q": vehicle.IQ, "r": vehicle.IR,
}

// Channel extracts a named scalar column from the result, the same
// columns the CSV schema exports.
func (r *Result) Channel(name string) ([]float64, error) {
	out := make([]float64, len(r.Times))

	if idx, ok := stateChannels[name]; ok {
		for i := range out {
			out[i] = r.States[i][idx]
		}
		return out, nil
	}

	var pick func(i int) float64
	switch name {
	case "time":
		pick = func(i int) float64 { return r.Times[i] }
	case "x_ref":
		pick = func(i int) float64 { return r.Setpoints[i].Pos.X }
	case "y_ref":
		pick = func(i int) float64 { return r.Setpoints[i].Pos.Y }
	case "z_ref":
		pick = func(i int) float64 { return r.Setpoints[i].Pos.Z }
	case "T":
		pick = func(i int) float64 { return r.Inputs[i].Thrust }
	case "tau_phi":
		pick = func(i int) float64 { return r.Inputs[i].TauPhi }
	case "tau_theta":
		pick = func(i int) float64 { return r.Inputs[i].TauTheta }
	case "tau_psi":
		pick = func(i int) float64 { return r.Inputs[i].TauPsi }
	case "s_x":
		pick = func(i int) float64 { return r.Surfaces[i].X }
	case "s_y":
		pick = func(i int) float64 { return r.Surfaces[i].Y }
	case "s_z":
		pick = func(i int) float64 { return r.Surfaces[i].Z }
	case "m1", "m2", "m3", "m4":
		j := int(name[1] - '1')
		pick = func(i int) float64 { return r.Motors[i][j] }
	default:
		return nil, fmt.Errorf("unknown channel: %s", name)
	}

	for i := range out {
		out[i] = pick(i)
	}
	return out, nil
}

// divergenceLimit bounds the state norm. Past it the flight is graded
// unstable even while every component is still finite.
const divergenceLimit = 1e6

// Run drives the bench for the given duration at the fixed tick,
// recording every tick and feeding the metrics. The context is checked
// each tick; a cancelled or diverged run returns what it recorded so
// far.
func Run(ctx context.Context, b *Bench, duration float64, metrics []Metric) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %g", duration)
	}

	steps := int(duration / Dt)
	res := &Result{
		Algorithm: b.Algorithm(),
		Pattern:   b.Pattern(),
		Wind:      b.WindIntensity(),
		Times:     make([]float64, 0, steps),
		States:    make([]dynamics.State, 0, steps),
		Setpoints: make([]traj.Setpoint, 0, steps),
		Inputs:    make([]vehicle.Input, 0, steps),
		Surfaces:  make([]dynamics.Vec3, 0, steps),
		Motors:    make([][4]float64, 0, steps),
		Metrics:   make(map[string]float64),
	}

	for _, m := range metrics {
		m.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return res, dynamics.ErrContextCanceled
		default:
		}

		t := b.Time()
		pre := b.RawState()

		b.Step()

		tl := b.Telemetry()
		u := vehicle.Input{Thrust: tl.Thrust, TauPhi: tl.TauPhi, TauTheta: tl.TauTheta, TauPsi: tl.TauPsi}
		sp := b.Setpoint()

		for _, m := range metrics {
			m.Observe(pre, u, sp, t)
		}

		res.Times = append(res.Times, t)
		res.States = append(res.States, pre)
		res.Setpoints = append(res.Setpoints, sp)
		res.Inputs = append(res.Inputs, u)
		res.Surfaces = append(res.Surfaces, tl.Surfaces)
		res.Motors = append(res.Motors, b.State().Motors)
		res.Steps++

		post := b.RawState()
		if !post.IsValid() {
			return res, &dynamics.StepError{
				Step: i, Time: b.Time(), State: post,
				Wrapped: dynamics.ErrInvalidState,
			}
		}
		if post.Norm() > divergenceLimit {
			return res, &dynamics.StepError{
				Step: i, Time: b.Time(), State: post,
				Wrapped: dynamics.ErrUnstable,
			}
		}
	}

	for _, m := range metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
