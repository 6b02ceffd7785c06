package control

import (
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// PID is the cascaded baseline: per-axis PID on position feeding the
// thrust-vector inversion, PD on attitude. The three integrators clamp
// at +-iMax (anti-windup).
type PID struct {
	par vehicle.Params
	g   PIDGains

	integ dynamics.Vec3
	telem Telemetry
}

func NewPID(g PIDGains, par vehicle.Params) *PID {
	return &PID{par: par, g: g}
}

func (c *PID) Algorithm() Algorithm { return PIDControl }

func (c *PID) SetGains(g Gains) error {
	gg, ok := g.(PIDGains)
	if !ok {
		return gainsMismatch(PIDControl, g)
	}
	if err := gg.Validate(); err != nil {
		return err
	}
	c.g = gg
	return nil
}

func (c *PID) Telemetry() Telemetry { return c.telem }

func (c *PID) Compute(x dynamics.State, sp traj.Setpoint, look traj.Lookahead, t, dt float64) vehicle.Input {
	g := c.g

	ex := sp.Pos.X - x[vehicle.IX]
	ey := sp.Pos.Y - x[vehicle.IY]
	ez := sp.Pos.Z - x[vehicle.IZ]
	evx := sp.Vel.X - x[vehicle.IVX]
	evy := sp.Vel.Y - x[vehicle.IVY]
	evz := sp.Vel.Z - x[vehicle.IVZ]

	c.integ.X = clamp(c.integ.X+ex*dt, -g.IMax, g.IMax)
	c.integ.Y = clamp(c.integ.Y+ey*dt, -g.IMax, g.IMax)
	c.integ.Z = clamp(c.integ.Z+ez*dt, -g.IMax, g.IMax)

	ax := g.KpXY*ex + g.KiXY*c.integ.X + g.KdXY*evx
	ay := g.KpZ*ey + g.KiZ*c.integ.Y + g.KdZ*evy
	az := g.KpXY*ez + g.KiXY*c.integ.Z + g.KdXY*evz

	phi, theta, psi := x[vehicle.IPhi], x[vehicle.ITheta], x[vehicle.IPsi]
	thrust, phiD, thetaD, psiD := thrustVector(c.par, ax, ay, az, phi, theta, psi, sp.Yaw)

	u := vehicle.Input{
		Thrust:   thrust,
		TauPhi:   g.KpAtt*(phiD-phi) - g.KdAtt*x[vehicle.IP],
		TauTheta: g.KpAtt*(thetaD-theta) - g.KdAtt*x[vehicle.IQ],
		TauPsi:   g.KpYaw*(psiD-psi) - g.KdYaw*x[vehicle.IR],
	}

	c.telem = Telemetry{
		Thrust:   u.Thrust,
		TauPhi:   u.TauPhi,
		TauTheta: u.TauTheta,
		TauPsi:   u.TauPsi,
		Desired:  dynamics.Vec3{X: phiD, Y: thetaD, Z: psiD},
	}
	return u
}
