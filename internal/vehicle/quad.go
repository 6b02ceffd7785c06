package vehicle

import (
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/integrators"
)

// State vector layout. World frame is y-up; angles are ZYX intrinsic
// Euler (roll phi, pitch theta, yaw psi); p, q, r are body rates.
const (
	IX = iota
	IY
	IZ
	IVX
	IVY
	IVZ
	IPhi
	ITheta
	IPsi
	IP
	IQ
	IR
	StateDim
)

// Control vector layout: total thrust and the three body torques.
const (
	UT = iota
	UTauPhi
	UTauTheta
	UTauPsi
	ControlDim
)

// Input is the typed view of the control vector produced by a
// controller each tick.
type Input struct {
	Thrust   float64
	TauPhi   float64
	TauTheta float64
	TauPsi   float64
}

func (u Input) Control() dynamics.Control {
	return dynamics.Control{u.Thrust, u.TauPhi, u.TauTheta, u.TauPsi}
}

// Quad is the 6-DOF rigid-body plant. It owns the parameter block, the
// per-tick wind sample and the telemetry motor speeds; the state vector
// itself is owned by the caller and advanced in place by Step.
type Quad struct {
	Params Params

	integ dynamics.Integrator

	// wind is the world-frame acceleration disturbance for the tick in
	// flight. It is held constant across the RK4 stages.
	wind dynamics.Vec3

	motors    [4]float64
	saturated bool
}

func New(p Params) *Quad {
	return &Quad{Params: p, integ: integrators.NewRK4()}
}

// SetIntegrator swaps the stepping scheme. Used by the integrator
// comparison command; flight presets always run RK4.
func (q *Quad) SetIntegrator(integ dynamics.Integrator) {
	q.integ = integ
}

func (q *Quad) StateDim() int   { return StateDim }
func (q *Quad) ControlDim() int { return ControlDim }

// HoverState returns a state at rest at pos with level attitude.
func HoverState(pos dynamics.Vec3) dynamics.State {
	x := make(dynamics.State, StateDim)
	x[IX], x[IY], x[IZ] = pos.X, pos.Y, pos.Z
	return x
}

// Derive returns the 12 time-derivatives of the rigid-body state.
func (q *Quad) Derive(x dynamics.State, u dynamics.Control, t float64) dynamics.State {
	p := q.Params

	vx, vy, vz := x[IVX], x[IVY], x[IVZ]
	phi, theta, psi := x[IPhi], x[ITheta], x[IPsi]
	wp, wq, wr := x[IP], x[IQ], x[IR]

	thrust, tauPhi, tauTheta, tauPsi := u[UT], u[UTauPhi], u[UTauTheta], u[UTauPsi]

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
	sinPsi, cosPsi := math.Sin(psi), math.Cos(psi)

	// Thrust direction: body +y rotated into the world frame (ZYX).
	tx := thrust * (cosPsi*sinTheta*cosPhi + sinPsi*sinPhi)
	ty := thrust * (cosTheta * cosPhi)
	tz := thrust * (sinPsi*sinTheta*cosPhi - cosPsi*sinPhi)

	ax := tx/p.Mass - p.LinDrag*vx + q.wind.X
	ay := ty/p.Mass - p.Gravity - p.LinDrag*vy + q.wind.Y
	az := tz/p.Mass - p.LinDrag*vz + q.wind.Z

	// Euler kinematics. cosTheta is unguarded: the attitude clamps in
	// the controllers keep |theta| well below pi/2.
	tanTheta := sinTheta / cosTheta
	dphi := wp + tanTheta*(sinPhi*wq+cosPhi*wr)
	dtheta := cosPhi*wq - sinPhi*wr
	dpsi := (sinPhi*wq + cosPhi*wr) / cosTheta

	// Euler's rotational equations in the body frame.
	dp := (tauPhi - (p.Izz-p.Iyy)*wq*wr) / p.Ixx
	dq := (tauTheta - (p.Ixx-p.Izz)*wp*wr) / p.Iyy
	dr := (tauPsi - (p.Iyy-p.Ixx)*wp*wq) / p.Izz

	return dynamics.State{
		vx, vy, vz,
		ax, ay, az,
		dphi, dtheta, dpsi,
		dp, dq, dr,
	}
}

// Step advances x in place by one RK4 step of dt seconds under input u
// and the given wind sample, then applies ground contact and refreshes
// the telemetry motor speeds.
func (q *Quad) Step(x dynamics.State, u Input, wind dynamics.Vec3, t, dt float64) {
	q.wind = wind

	next := q.integ.Step(q, x, u.Control(), t, dt)
	copy(x, next)

	// Soft ground contact: clamp altitude, kill downward velocity,
	// leave attitude alone.
	if x[IY] < 0 {
		x[IY] = 0
		if x[IVY] < 0 {
			x[IVY] = 0
		}
	}

	q.motors, q.saturated = Allocate(q.Params, u)
}

// Motors returns the speeds allocated on the last Step.
func (q *Quad) Motors() [4]float64 {
	return q.motors
}

// Saturated reports whether any motor clamped on the last Step.
func (q *Quad) Saturated() bool {
	return q.saturated
}

// Energy is the total mechanical energy of the state, shown in the
// telemetry panel.
func (q *Quad) Energy(x dynamics.State) float64 {
	p := q.Params
	ke := 0.5 * p.Mass * (x[IVX]*x[IVX] + x[IVY]*x[IVY] + x[IVZ]*x[IVZ])
	keRot := 0.5 * (p.Ixx*x[IP]*x[IP] + p.Iyy*x[IQ]*x[IQ] + p.Izz*x[IR]*x[IR])
	pe := p.Mass * p.Gravity * x[IY]
	return ke + keRot + pe
}

// Snapshot is the telemetry view of a state vector.
type Snapshot struct {
	Position dynamics.Vec3
	Velocity dynamics.Vec3
	Attitude dynamics.Vec3 // X=roll, Y=pitch, Z=yaw
	Rates    dynamics.Vec3 // X=p, Y=q, Z=r
	Motors   [4]float64
}

func (q *Quad) Snapshot(x dynamics.State) Snapshot {
	return Snapshot{
		Position: dynamics.Vec3{X: x[IX], Y: x[IY], Z: x[IZ]},
		Velocity: dynamics.Vec3{X: x[IVX], Y: x[IVY], Z: x[IVZ]},
		Attitude: dynamics.Vec3{X: x[IPhi], Y: x[ITheta], Z: x[IPsi]},
		Rates:    dynamics.Vec3{X: x[IP], Y: x[IQ], Z: x[IR]},
		Motors:   q.motors,
	}
}
