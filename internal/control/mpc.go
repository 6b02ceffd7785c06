package control

import (
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// MPC is the receding-horizon law: a closed-form weighted sum over a
// zero-acceleration rollout, not a QP. Per translational axis, with
// prediction step dt_pred = 2*dt and k = 1..N:
//
//	e_k = ref(t + k dt_pred) - (pos + vel k dt_pred)
//	w_k = 1 - 0.3 (k-1)/N
//	a   = sum(w_k (Qpos e_k - Qvel vel)) / (sum(w_k) (1 + R))
//
// The published horizon is the constant-acceleration rollout under the
// computed command, N+1 samples starting at the current position. It
// feeds the renderer only and never loops back into the control.
type MPC struct {
	par vehicle.Params
	g   MPCGains

	horizon []dynamics.Vec3
	telem   Telemetry
}

func NewMPC(g MPCGains, par vehicle.Params) *MPC {
	return &MPC{par: par, g: g}
}

func (c *MPC) Algorithm() Algorithm { return MPCControl }

func (c *MPC) SetGains(g Gains) error {
	gg, ok := g.(MPCGains)
	if !ok {
		return gainsMismatch(MPCControl, g)
	}
	if err := gg.Validate(); err != nil {
		return err
	}
	c.g = gg
	return nil
}

func (c *MPC) Telemetry() Telemetry { return c.telem }

func (c *MPC) Compute(x dynamics.State, sp traj.Setpoint, look traj.Lookahead, t, dt float64) vehicle.Input {
	g := c.g
	dtp := 2 * dt

	px, py, pz := x[vehicle.IX], x[vehicle.IY], x[vehicle.IZ]
	vx, vy, vz := x[vehicle.IVX], x[vehicle.IVY], x[vehicle.IVZ]

	var sumX, sumY, sumZ, sumW float64
	for k := 1; k <= g.N; k++ {
		h := float64(k) * dtp
		ref := look.At(t + h)
		w := 1 - 0.3*float64(k-1)/float64(g.N)
		sumW += w

		sumX += w * (g.QPos*(ref.Pos.X-(px+vx*h)) - g.QVel*vx)
		sumY += w * (g.QPos*(ref.Pos.Y-(py+vy*h)) - g.QVel*vy)
		sumZ += w * (g.QPos*(ref.Pos.Z-(pz+vz*h)) - g.QVel*vz)
	}

	den := sumW * (1 + g.R)
	ax := sumX / den
	ay := sumY / den
	az := sumZ / den

	phi, theta, psi := x[vehicle.IPhi], x[vehicle.ITheta], x[vehicle.IPsi]
	thrust, phiD, thetaD, psiD := thrustVector(c.par, ax, ay, az, phi, theta, psi, sp.Yaw)

	u := vehicle.Input{
		Thrust:   thrust,
		TauPhi:   g.KpAtt*(phiD-phi) - g.KdAtt*x[vehicle.IP],
		TauTheta: g.KpAtt*(thetaD-theta) - g.KdAtt*x[vehicle.IQ],
		TauPsi:   g.KpAtt*(psiD-psi) - g.KdAtt*x[vehicle.IR],
	}

	if len(c.horizon) != g.N+1 {
		c.horizon = make([]dynamics.Vec3, g.N+1)
	}
	for k := 0; k <= g.N; k++ {
		h := float64(k) * dtp
		c.horizon[k] = dynamics.Vec3{
			X: px + vx*h + 0.5*ax*h*h,
			Y: py + vy*h + 0.5*ay*h*h,
			Z: pz + vz*h + 0.5*az*h*h,
		}
	}

	c.telem = Telemetry{
		Thrust:   u.Thrust,
		TauPhi:   u.TauPhi,
		TauTheta: u.TauTheta,
		TauPsi:   u.TauPsi,
		Desired:  dynamics.Vec3{X: phiD, Y: thetaD, Z: psiD},
		Horizon:  c.horizon,
	}
	return u
}
