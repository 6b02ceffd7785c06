package control

import (
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// STS is the super-twisting second-order sliding mode: per axis
//
//	vdot = alpha2 sign(s)
//	u    = alpha1 sqrt(|s|) sign(s) + v
//
// which keeps the control continuous while still reaching the surface
// in finite time. The surfaces are written in error convention, so a
// positive s demands positive acceleration and both terms carry the
// sign of s. The six accumulators are the only persistent state;
// reconstruction zeroes them.
type STS struct {
	par vehicle.Params
	g   STSGains

	vx, vy, vz         float64
	vPhi, vTheta, vPsi float64

	telem Telemetry
}

func NewSTS(g STSGains, par vehicle.Params) *STS {
	return &STS{par: par, g: g}
}

func (c *STS) Algorithm() Algorithm { return STSControl }

func (c *STS) SetGains(g Gains) error {
	gg, ok := g.(STSGains)
	if !ok {
		return gainsMismatch(STSControl, g)
	}
	if err := gg.Validate(); err != nil {
		return err
	}
	c.g = gg
	return nil
}

func (c *STS) Telemetry() Telemetry { return c.telem }

// Accumulators exposes the six integrator states for inspection.
func (c *STS) Accumulators() [6]float64 {
	return [6]float64{c.vx, c.vy, c.vz, c.vPhi, c.vTheta, c.vPsi}
}

func (c *STS) Compute(x dynamics.State, sp traj.Setpoint, look traj.Lookahead, t, dt float64) vehicle.Input {
	g := c.g

	evx := sp.Vel.X - x[vehicle.IVX]
	evy := sp.Vel.Y - x[vehicle.IVY]
	evz := sp.Vel.Z - x[vehicle.IVZ]

	sx := evx + g.LambdaXY*(sp.Pos.X-x[vehicle.IX])
	sy := evy + g.LambdaZ*(sp.Pos.Y-x[vehicle.IY])
	sz := evz + g.LambdaXY*(sp.Pos.Z-x[vehicle.IZ])

	c.vx += g.Alpha2XY * sign(sx) * dt
	c.vy += g.Alpha2Z * sign(sy) * dt
	c.vz += g.Alpha2XY * sign(sz) * dt

	ax := g.Alpha1XY*math.Sqrt(math.Abs(sx))*sign(sx) + c.vx
	ay := g.Alpha1Z*math.Sqrt(math.Abs(sy))*sign(sy) + c.vy
	az := g.Alpha1XY*math.Sqrt(math.Abs(sz))*sign(sz) + c.vz

	phi, theta, psi := x[vehicle.IPhi], x[vehicle.ITheta], x[vehicle.IPsi]
	thrust, phiD, thetaD, psiD := thrustVector(c.par, ax, ay, az, phi, theta, psi, sp.Yaw)

	p, q, r := x[vehicle.IP], x[vehicle.IQ], x[vehicle.IR]
	sPhi := -p + g.LambdaAtt*(phiD-phi)
	sTheta := -q + g.LambdaAtt*(thetaD-theta)
	sPsi := -r + g.LambdaAtt*(psiD-psi)

	c.vPhi += g.Alpha2Att * sign(sPhi) * dt
	c.vTheta += g.Alpha2Att * sign(sTheta) * dt
	c.vPsi += g.Alpha2Att * sign(sPsi) * dt

	u := vehicle.Input{
		Thrust:   thrust,
		TauPhi:   c.par.Ixx * (g.Alpha1Att*math.Sqrt(math.Abs(sPhi))*sign(sPhi) + c.vPhi),
		TauTheta: c.par.Iyy * (g.Alpha1Att*math.Sqrt(math.Abs(sTheta))*sign(sTheta) + c.vTheta),
		TauPsi:   c.par.Izz * (g.Alpha1Att*math.Sqrt(math.Abs(sPsi))*sign(sPsi) + c.vPsi),
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
