package sim

import (
	"math"
	"testing"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/integrators"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
)

func hoverBench(t *testing.T) *Bench {
	t.Helper()
	o := DefaultOptions()
	o.Init = dynamics.Vec3{Y: 3}
	b, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}
	return b
}

func TestNewBenchValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero mass", func(o *Options) { o.Params.Mass = 0 }},
		{"negative inertia", func(o *Options) { o.Params.Ixx = -1 }},
		{"zero thrust coefficient", func(o *Options) { o.Params.KThrust = 0 }},
		{"negative wind", func(o *Options) { o.Wind = -1 }},
		{"NaN wind", func(o *Options) { o.Wind = math.NaN() }},
		{"custom without waypoints", func(o *Options) { o.Pattern = traj.Custom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			if _, err := NewBench(o); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBenchDeterminism(t *testing.T) {
	o := DefaultOptions()
	o.Pattern = traj.Circle
	o.Wind = 1.5
	o.Init = dynamics.Vec3{X: 4, Y: 3}

	a, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}
	b, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}

	a.Advance(600)
	b.Advance(600)

	xa, xb := a.RawState(), b.RawState()
	for i := range xa {
		if xa[i] != xb[i] {
			t.Fatalf("state %d diverged: %v vs %v", i, xa[i], xb[i])
		}
	}
}

func TestBenchTickClock(t *testing.T) {
	b := hoverBench(t)

	b.Advance(120)

	if b.Tick() != 120 {
		t.Errorf("expected tick 120, got %d", b.Tick())
	}
	if math.Abs(b.Time()-1.0) > 1e-9 {
		t.Errorf("expected t=1s after 120 ticks, got %f", b.Time())
	}
}

func TestBenchFramePaused(t *testing.T) {
	b := hoverBench(t)
	b.SetPaused(true)

	if n := b.Frame(); n != 0 {
		t.Errorf("paused frame should issue 0 substeps, got %d", n)
	}
	if b.Tick() != 0 {
		t.Errorf("paused frame advanced the clock to tick %d", b.Tick())
	}

	b.TogglePause()
	if n := b.Frame(); n != 2 {
		t.Errorf("frame at scale 1 should issue 2 substeps, got %d", n)
	}
	if b.Tick() != 2 {
		t.Errorf("Frame should advance the clock itself, got tick %d", b.Tick())
	}
}

func TestBenchFrameTimeScale(t *testing.T) {
	b := hoverBench(t)

	tests := []struct {
		scale float64
		steps int
	}{
		{1, 2},
		{2, 4},
		{2.5, 5},
		{0.5, 1},
		{0.1, 1}, // rounds to zero but a running frame issues at least one
	}

	for _, tt := range tests {
		if err := b.SetTimeScale(tt.scale); err != nil {
			t.Fatalf("set time scale %g failed: %v", tt.scale, err)
		}
		if n := b.Frame(); n != tt.steps {
			t.Errorf("scale %g: expected %d substeps, got %d", tt.scale, tt.steps, n)
		}
	}
}

func TestBenchSetTimeScaleRejectsBad(t *testing.T) {
	b := hoverBench(t)

	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := b.SetTimeScale(v); err == nil {
			t.Errorf("time scale %g should be rejected", v)
		}
	}
	if b.TimeScale() != 1 {
		t.Errorf("rejected updates must keep the previous scale, got %g", b.TimeScale())
	}
}

func TestBenchSetWindRejectsBad(t *testing.T) {
	b := hoverBench(t)

	for _, v := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		if err := b.SetWindIntensity(v); err == nil {
			t.Errorf("wind %g should be rejected", v)
		}
	}
	if b.WindIntensity() != 0 {
		t.Errorf("rejected updates must keep the previous wind, got %g", b.WindIntensity())
	}
	if err := b.SetWindIntensity(2.0); err != nil {
		t.Errorf("valid wind rejected: %v", err)
	}
}

func TestBenchReset(t *testing.T) {
	o := DefaultOptions()
	o.Pattern = traj.Circle
	o.Init = dynamics.Vec3{X: 4, Y: 3}
	b, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}

	b.Advance(300)
	b.Reset()

	if b.Tick() != 0 || b.Time() != 0 {
		t.Errorf("reset should rewind the clock, got tick %d t %f", b.Tick(), b.Time())
	}

	x := b.RawState()
	if x[0] != 4 || x[1] != 3 {
		t.Errorf("reset should restore the initial state, got (%f, %f)", x[0], x[1])
	}
	if b.Pattern() != traj.Circle {
		t.Errorf("reset should keep the pattern, got %s", b.Pattern())
	}

	// A reset bench replays the identical flight.
	fresh, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}
	b.Advance(300)
	fresh.Advance(300)
	xa, xb := b.RawState(), fresh.RawState()
	for i := range xa {
		if xa[i] != xb[i] {
			t.Fatalf("reset flight diverged at state %d: %v vs %v", i, xa[i], xb[i])
		}
	}
}

func TestBenchSetAlgorithm(t *testing.T) {
	b := hoverBench(t)
	b.Advance(60)

	before := b.RawState()
	if err := b.SetAlgorithm(control.SMCControl); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	if b.Algorithm() != control.SMCControl {
		t.Errorf("expected smc, got %s", b.Algorithm())
	}
	after := b.RawState()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("algorithm switch must not touch the plant state")
		}
	}
	if b.Tick() != 60 {
		t.Errorf("algorithm switch must not touch the clock, got tick %d", b.Tick())
	}
}

func TestBenchSetGains(t *testing.T) {
	b := hoverBench(t)

	bad := control.DefaultPIDGains()
	bad.IMax = 0
	if err := b.SetGains(bad); err == nil {
		t.Error("invalid gains should be rejected")
	}

	// Inactive algorithm: stored for the next switch.
	g := control.DefaultSMCGains()
	g.EtaZ = 12
	if err := b.SetGains(g); err != nil {
		t.Fatalf("set gains failed: %v", err)
	}
	if got := b.Gains().For(control.SMCControl).(control.SMCGains).EtaZ; got != 12 {
		t.Errorf("stored gains not updated, EtaZ=%g", got)
	}
	if b.Algorithm() != control.PIDControl {
		t.Errorf("setting inactive gains must not switch the law, got %s", b.Algorithm())
	}
}

func TestBenchSetPattern(t *testing.T) {
	b := hoverBench(t)

	if err := b.SetPattern(traj.Custom); err == nil {
		t.Error("custom without waypoints should fail")
	}
	if b.Pattern() != traj.Hover {
		t.Errorf("failed switch should keep the pattern, got %s", b.Pattern())
	}

	if err := b.SetCustomWaypoints([]dynamics.Vec3{{Y: 2}, {X: 3, Y: 2}}, 1.5); err != nil {
		t.Fatalf("set waypoints failed: %v", err)
	}
	if err := b.SetPattern(traj.Custom); err != nil {
		t.Fatalf("switch to custom failed: %v", err)
	}
	if b.Pattern() != traj.Custom {
		t.Errorf("expected custom, got %s", b.Pattern())
	}
}

func TestBenchKeyboardSnap(t *testing.T) {
	o := DefaultOptions()
	o.Init = dynamics.Vec3{X: 2, Y: 4, Z: -1}
	b, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}

	if err := b.SetPattern(traj.Keyboard); err != nil {
		t.Fatalf("switch to keyboard failed: %v", err)
	}

	sp := b.Setpoint()
	if sp.Pos != (dynamics.Vec3{X: 2, Y: 4, Z: -1}) {
		t.Errorf("keyboard target should snap to the vehicle, got %v", sp.Pos)
	}
}

func TestBenchKeyboardFlight(t *testing.T) {
	o := DefaultOptions()
	o.Pattern = traj.Keyboard
	o.Init = dynamics.Vec3{Y: 3}
	b, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}

	b.SetKeyboardAxes(traj.Axes{X: 1})
	b.Advance(240)

	if x := b.RawState(); x[0] <= 0.1 {
		t.Errorf("two seconds of full stick should move the vehicle, x=%f", x[0])
	}
}

func TestBenchHoverHoldsAltitude(t *testing.T) {
	b := hoverBench(t)

	b.Advance(10 * 120)

	snap := b.State()
	if math.Abs(snap.Position.Y-3) > 0.05 {
		t.Errorf("hover should hold 3 m, got %f", snap.Position.Y)
	}
	if snap.Velocity.Norm() > 0.05 {
		t.Errorf("hover should settle, velocity %f", snap.Velocity.Norm())
	}
}

func TestBenchPreviewPattern(t *testing.T) {
	b := hoverBench(t)
	b.Advance(60)

	tickBefore := b.Tick()
	pts := b.PreviewPattern(traj.Circle, 100, 12.0)
	if len(pts) != 100 {
		t.Errorf("expected 100 preview points, got %d", len(pts))
	}
	if b.Tick() != tickBefore {
		t.Error("preview must not advance the simulation")
	}
}

func TestBenchSetIntegrator(t *testing.T) {
	o := DefaultOptions()
	o.Pattern = traj.Circle
	o.Init = dynamics.Vec3{X: 4, Y: 3}

	rk4, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}
	eul, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}
	eul.SetIntegrator(integrators.NewEuler())

	rk4.Advance(600)
	eul.Advance(600)

	// Both remain finite; the schemes differ measurably over 5 s.
	xa, xb := rk4.RawState(), eul.RawState()
	if !xa.IsValid() || !xb.IsValid() {
		t.Fatal("states must stay finite")
	}
	same := true
	for i := range xa {
		if xa[i] != xb[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("rk4 and euler flights should not be bit-identical")
	}
}

func TestBenchEnergySaturated(t *testing.T) {
	b := hoverBench(t)
	b.Advance(10)

	if b.Energy() <= 0 {
		t.Errorf("airborne vehicle should carry energy, got %f", b.Energy())
	}
	if b.Saturated() {
		t.Error("gentle hover should not saturate the motors")
	}
}

func TestBenchMPCHorizonExposed(t *testing.T) {
	o := DefaultOptions()
	o.Algorithm = control.MPCControl
	o.Init = dynamics.Vec3{Y: 3}
	b, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}

	b.Advance(1)
	h := b.MPCHorizon()
	if len(h) != 11 {
		t.Errorf("default horizon should expose 11 samples, got %d", len(h))
	}

	// The other laws expose none.
	if err := b.SetAlgorithm(control.PIDControl); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	b.Advance(1)
	if h := b.MPCHorizon(); h != nil {
		t.Errorf("pid should expose no horizon, got %d samples", len(h))
	}
}
