package sim

import (
	"fmt"
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Dt is the fixed physics tick. Simulation time advances by exactly Dt
// per substep regardless of wall clock; determinism depends on it.
const Dt = 1.0 / 120

// baseStepsPerFrame is the substep count per 60 FPS host frame at
// time scale 1.
const baseStepsPerFrame = 2

// Options configure a bench at construction.
type Options struct {
	Params        vehicle.Params
	TrajParams    traj.Params
	Algorithm     control.Algorithm
	Gains         control.GainSet
	Pattern       traj.Pattern
	Wind          float64
	TimeScale     float64
	Init          dynamics.Vec3
	Waypoints     []dynamics.Vec3
	WaypointSpeed float64
}

func DefaultOptions() Options {
	return Options{
		Params:     vehicle.DefaultParams(),
		TrajParams: traj.DefaultParams(),
		Algorithm:  control.PIDControl,
		Gains:      control.DefaultGainSet(),
		Pattern:    traj.Hover,
		TimeScale:  1,
	}
}

// Bench owns one simulation: the plant, the reference generator, the
// active controller and the clock. It is single-threaded; every
// operation runs between ticks, so configuration changes are atomic
// with respect to the loop.
type Bench struct {
	quad *vehicle.Quad
	gen  *traj.Generator
	ctrl control.Controller
	wind vehicle.Wind

	gains control.GainSet

	x    dynamics.State
	init dynamics.State
	t    float64
	tick int

	sp traj.Setpoint

	paused    bool
	timeScale float64
}

// NewBench validates the options and builds the bench at its initial
// state. The initial setpoint is the pattern sampled at t=0.
func NewBench(o Options) (*Bench, error) {
	if o.Params.Mass <= 0 || o.Params.Ixx <= 0 || o.Params.Iyy <= 0 || o.Params.Izz <= 0 {
		return nil, fmt.Errorf("bench: mass and inertias must be positive")
	}
	if o.Params.KThrust <= 0 || o.Params.MotorMax <= 0 {
		return nil, fmt.Errorf("bench: thrust coefficient and motor limit must be positive")
	}
	if o.Wind < 0 || math.IsNaN(o.Wind) || math.IsInf(o.Wind, 0) {
		return nil, fmt.Errorf("bench: wind intensity must be finite and non-negative")
	}
	if o.TimeScale == 0 {
		o.TimeScale = 1
	}

	b := &Bench{
		quad:      vehicle.New(o.Params),
		gen:       traj.NewGenerator(o.TrajParams),
		wind:      vehicle.Wind{Intensity: o.Wind},
		gains:     o.Gains,
		init:      vehicle.HoverState(o.Init),
		timeScale: o.TimeScale,
	}

	if len(o.Waypoints) > 0 {
		if err := b.gen.SetWaypoints(o.Waypoints, o.WaypointSpeed); err != nil {
			return nil, err
		}
	}
	if err := b.gen.SetPattern(o.Pattern); err != nil {
		return nil, err
	}

	ctrl, err := control.New(b.gains.For(o.Algorithm), o.Params)
	if err != nil {
		return nil, err
	}
	b.ctrl = ctrl

	b.x = b.init.Clone()
	b.snapKeyboard()
	b.sp = b.gen.At(0)
	return b, nil
}

// Reset rewinds to the initial state: plant state, clock, reference
// sources, and a freshly constructed controller. Pattern, algorithm,
// gains and wind selection survive.
func (b *Bench) Reset() {
	b.x = b.init.Clone()
	b.t = 0
	b.tick = 0
	b.gen.Reset()
	b.snapKeyboard()
	// Reset by reconstruction; gains are already validated.
	b.ctrl, _ = control.New(b.gains.For(b.ctrl.Algorithm()), b.quad.Params)
	b.sp = b.gen.At(0)
}

func (b *Bench) snapKeyboard() {
	if b.gen.Pattern() == traj.Keyboard {
		b.gen.Keys().SnapTo(
			dynamics.Vec3{X: b.x[vehicle.IX], Y: b.x[vehicle.IY], Z: b.x[vehicle.IZ]},
			b.x[vehicle.IPsi],
		)
	}
}

// Step advances exactly one tick and returns the new snapshot. Tick
// order is strict: reference query, controller compute, plant step.
func (b *Bench) Step() vehicle.Snapshot {
	b.sp = b.gen.Evaluate(b.t, Dt)
	u := b.ctrl.Compute(b.x, b.sp, b.gen, b.t, Dt)
	w := b.wind.Sample(b.t)
	b.quad.Step(b.x, u, w, b.t, Dt)
	b.t += Dt
	b.tick++
	return b.quad.Snapshot(b.x)
}

// Advance issues n ticks.
func (b *Bench) Advance(n int) {
	for i := 0; i < n; i++ {
		b.Step()
	}
}

// Frame advances the simulation for one host frame: round(2*timeScale)
// substeps, none while paused. Returns the substep count issued.
func (b *Bench) Frame() int {
	if b.paused {
		return 0
	}
	k := int(math.Round(baseStepsPerFrame * b.timeScale))
	if k < 1 {
		k = 1
	}
	b.Advance(k)
	return k
}

// SetAlgorithm switches the active law, reconstructing controller
// state. The plant state is untouched; the vehicle keeps flying.
func (b *Bench) SetAlgorithm(a control.Algorithm) error {
	ctrl, err := control.New(b.gains.For(a), b.quad.Params)
	if err != nil {
		return err
	}
	b.ctrl = ctrl
	return nil
}

// SetGains installs a gain set for the algorithm its variant names.
// When that algorithm is active the update is applied in place, which
// keeps integrators and sliding accumulators intact. Invalid gains are
// rejected and the previous set persists.
func (b *Bench) SetGains(g control.Gains) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.Algorithm() == b.ctrl.Algorithm() {
		if err := b.ctrl.SetGains(g); err != nil {
			return err
		}
	}
	b.gains.Put(g)
	return nil
}

// SetPattern switches the reference pattern. Selecting the keyboard
// channel rebases its target onto the vehicle.
func (b *Bench) SetPattern(p traj.Pattern) error {
	if err := b.gen.SetPattern(p); err != nil {
		return err
	}
	b.snapKeyboard()
	b.sp = b.gen.At(b.t)
	return nil
}

func (b *Bench) SetWindIntensity(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("wind intensity must be finite and non-negative, got %g", v)
	}
	b.wind.Intensity = v
	return nil
}

func (b *Bench) SetKeyboardAxes(a traj.Axes) {
	b.gen.Keys().SetAxes(a)
}

// SetIntegrator swaps the plant's stepping scheme. Flight commands
// always run RK4; the timing command uses this to compare schemes.
func (b *Bench) SetIntegrator(integ dynamics.Integrator) {
	b.quad.SetIntegrator(integ)
}

func (b *Bench) SetCustomWaypoints(points []dynamics.Vec3, speed float64) error {
	return b.gen.SetWaypoints(points, speed)
}

func (b *Bench) SetTimeScale(v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("time scale must be finite and positive, got %g", v)
	}
	b.timeScale = v
	return nil
}

func (b *Bench) SetPaused(p bool) { b.paused = p }
func (b *Bench) TogglePause()     { b.paused = !b.paused }

// Telemetry pull. All getters are cheap reads of the last tick.

func (b *Bench) State() vehicle.Snapshot      { return b.quad.Snapshot(b.x) }
func (b *Bench) RawState() dynamics.State     { return b.x.Clone() }
func (b *Bench) Setpoint() traj.Setpoint      { return b.sp }
func (b *Bench) Telemetry() control.Telemetry { return b.ctrl.Telemetry() }

func (b *Bench) ControlOutput() vehicle.Input {
	tl := b.ctrl.Telemetry()
	return vehicle.Input{Thrust: tl.Thrust, TauPhi: tl.TauPhi, TauTheta: tl.TauTheta, TauPsi: tl.TauPsi}
}

func (b *Bench) SlidingSurfaces() dynamics.Vec3 {
	return b.ctrl.Telemetry().Surfaces
}

// MPCHorizon returns the published prediction, empty under the other
// laws.
func (b *Bench) MPCHorizon() []dynamics.Vec3 {
	return b.ctrl.Telemetry().Horizon
}

func (b *Bench) PreviewPattern(p traj.Pattern, n int, horizonSeconds float64) []dynamics.Vec3 {
	return b.gen.Preview(p, n, horizonSeconds)
}

func (b *Bench) Time() float64                { return b.t }
func (b *Bench) Tick() int                    { return b.tick }
func (b *Bench) Paused() bool                 { return b.paused }
func (b *Bench) TimeScale() float64           { return b.timeScale }
func (b *Bench) WindIntensity() float64       { return b.wind.Intensity }
func (b *Bench) Algorithm() control.Algorithm { return b.ctrl.Algorithm() }
func (b *Bench) Pattern() traj.Pattern        { return b.gen.Pattern() }
func (b *Bench) Params() vehicle.Params       { return b.quad.Params }
func (b *Bench) Gains() control.GainSet       { return b.gains }
func (b *Bench) Energy() float64              { return b.quad.Energy(b.x) }
func (b *Bench) Saturated() bool              { return b.quad.Saturated() }
