package control

import (
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// SMC is first-order sliding mode on both loops. The surface per
// translational axis is s = (vref - v) + lambda (xref - x); the
// reaching term eta*sat(s, phi) chatters at the tick rate when the
// boundary layer is zero. No state persists between ticks beyond the
// published surfaces.
type SMC struct {
	par vehicle.Params
	g   SMCGains

	telem Telemetry
}

func NewSMC(g SMCGains, par vehicle.Params) *SMC {
	return &SMC{par: par, g: g}
}

func (c *SMC) Algorithm() Algorithm { return SMCControl }

func (c *SMC) SetGains(g Gains) error {
	gg, ok := g.(SMCGains)
	if !ok {
		return gainsMismatch(SMCControl, g)
	}
	if err := gg.Validate(); err != nil {
		return err
	}
	c.g = gg
	return nil
}

func (c *SMC) Telemetry() Telemetry { return c.telem }

func (c *SMC) Compute(x dynamics.State, sp traj.Setpoint, look traj.Lookahead, t, dt float64) vehicle.Input {
	g := c.g

	evx := sp.Vel.X - x[vehicle.IVX]
	evy := sp.Vel.Y - x[vehicle.IVY]
	evz := sp.Vel.Z - x[vehicle.IVZ]

	sx := evx + g.LambdaXY*(sp.Pos.X-x[vehicle.IX])
	sy := evy + g.LambdaZ*(sp.Pos.Y-x[vehicle.IY])
	sz := evz + g.LambdaXY*(sp.Pos.Z-x[vehicle.IZ])

	ax := g.LambdaXY*evx + g.EtaXY*sat(sx, g.PhiXY)
	ay := g.LambdaZ*evy + g.EtaZ*sat(sy, g.PhiZ)
	az := g.LambdaXY*evz + g.EtaXY*sat(sz, g.PhiXY)

	phi, theta, psi := x[vehicle.IPhi], x[vehicle.ITheta], x[vehicle.IPsi]
	thrust, phiD, thetaD, psiD := thrustVector(c.par, ax, ay, az, phi, theta, psi, sp.Yaw)

	p, q, r := x[vehicle.IP], x[vehicle.IQ], x[vehicle.IR]
	sPhi := -p + g.LambdaAtt*(phiD-phi)
	sTheta := -q + g.LambdaAtt*(thetaD-theta)
	sPsi := -r + g.LambdaAtt*(psiD-psi)

	u := vehicle.Input{
		Thrust:   thrust,
		TauPhi:   c.par.Ixx * (g.LambdaAtt*(-p) + g.EtaAtt*sat(sPhi, g.PhiAtt)),
		TauTheta: c.par.Iyy * (g.LambdaAtt*(-q) + g.EtaAtt*sat(sTheta, g.PhiAtt)),
		TauPsi:   c.par.Izz * (g.LambdaAtt*(-r) + g.EtaAtt*sat(sPsi, g.PhiAtt)),
	}

	c.telem = Telemetry{
		Thrust:   u.Thrust,
		TauPhi:   u.TauPhi,
		TauTheta: u.TauTheta,
		TauPsi:   u.TauPsi,
		Surfaces: dynamics.Vec3{X: sx, Y: sy, Z: sz},
		Desired:  dynamics.Vec3{X: phiD, Y: thetaD, Z: psiD},
	}
	return u
}
