package control

import (
	"math"
	"testing"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

func TestMPCHoverEquilibrium(t *testing.T) {
	par := vehicle.DefaultParams()
	c := NewMPC(DefaultMPCGains(), par)

	x := vehicle.HoverState(vec(0, 3, 0))
	sp := traj.Setpoint{Pos: vec(0, 3, 0)}

	u := c.Compute(x, sp, holdRef{sp}, 0, 1.0/120)

	if math.Abs(u.Thrust-par.HoverThrust()) > 1e-9 {
		t.Errorf("tracking a constant reference at rest should hover, got %f", u.Thrust)
	}
	if u.TauPhi != 0 || u.TauTheta != 0 || u.TauPsi != 0 {
		t.Errorf("torques should vanish at the reference, got %f %f %f", u.TauPhi, u.TauTheta, u.TauPsi)
	}
}

func TestMPCPullsTowardReference(t *testing.T) {
	par := vehicle.DefaultParams()
	c := NewMPC(DefaultMPCGains(), par)

	x := vehicle.HoverState(vec(0, 2, 0))
	sp := traj.Setpoint{Pos: vec(0, 3, 0)}

	u := c.Compute(x, sp, holdRef{sp}, 0, 1.0/120)

	if u.Thrust <= par.HoverThrust() {
		t.Errorf("vehicle below the reference should thrust above hover, got %f", u.Thrust)
	}
}

func TestMPCHorizonShape(t *testing.T) {
	par := vehicle.DefaultParams()
	g := DefaultMPCGains()
	c := NewMPC(g, par)

	x := vehicle.HoverState(vec(1, 3, -2))
	sp := traj.Setpoint{Pos: vec(0, 3, 0)}

	c.Compute(x, sp, holdRef{sp}, 0, 1.0/120)
	h := c.Telemetry().Horizon

	if len(h) != g.N+1 {
		t.Fatalf("horizon should hold N+1 samples, got %d", len(h))
	}
	if h[0] != vec(1, 3, -2) {
		t.Errorf("horizon must start at the current position, got %v", h[0])
	}
}

func TestMPCHorizonRollout(t *testing.T) {
	par := vehicle.DefaultParams()
	c := NewMPC(DefaultMPCGains(), par)

	// Moving vehicle, reference at its own position: the rollout must
	// carry the velocity forward.
	x := vehicle.HoverState(vec(0, 3, 0))
	x[vehicle.IVX] = 1.0
	sp := traj.Setpoint{Pos: vec(0, 3, 0)}

	c.Compute(x, sp, holdRef{sp}, 0, 1.0/120)
	h := c.Telemetry().Horizon

	if h[1].X <= h[0].X {
		t.Errorf("rollout should drift with velocity: %v then %v", h[0], h[1])
	}
}

func TestMPCUsesLookahead(t *testing.T) {
	par := vehicle.DefaultParams()
	c := NewMPC(DefaultMPCGains(), par)

	x := vehicle.HoverState(vec(0, 3, 0))

	// The tick setpoint says hover here, but the future reference runs
	// away along +x; the law must respond to the future.
	sp := traj.Setpoint{Pos: vec(0, 3, 0)}
	future := holdRef{traj.Setpoint{Pos: vec(5, 3, 0)}}

	u := c.Compute(x, sp, future, 0, 1.0/120)

	if c.Telemetry().Desired.Y <= 0 {
		t.Errorf("future reference ahead should pitch the nose over, desired %v", c.Telemetry().Desired)
	}
	if u.TauTheta <= 0 {
		t.Errorf("pitch torque should chase the future reference, got %f", u.TauTheta)
	}
}

func TestMPCSetGainsResizesHorizon(t *testing.T) {
	par := vehicle.DefaultParams()
	c := NewMPC(DefaultMPCGains(), par)

	x := vehicle.HoverState(vec(0, 3, 0))
	sp := traj.Setpoint{Pos: vec(0, 3, 0)}
	c.Compute(x, sp, holdRef{sp}, 0, 1.0/120)

	g := DefaultMPCGains()
	g.N = 4
	if err := c.SetGains(g); err != nil {
		t.Fatalf("set gains failed: %v", err)
	}

	c.Compute(x, sp, holdRef{sp}, 0, 1.0/120)
	if got := len(c.Telemetry().Horizon); got != 5 {
		t.Errorf("horizon should track N+1 after a gain change, got %d", got)
	}
}

func TestMPCSetGainsMismatch(t *testing.T) {
	c := NewMPC(DefaultMPCGains(), vehicle.DefaultParams())

	if err := c.SetGains(DefaultSTSGains()); err == nil {
		t.Error("sts gains on an mpc controller should be rejected")
	}
}
