package control

import (
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Attitude command bounds shared by every law.
const (
	maxTilt     = 0.6 // rad, cap on desired roll/pitch
	tiltAsinCap = 0.8 // cap on the asin argument before the angle clamp
	cosGuard    = 0.1 // floor on cos(phi)cos(theta) in the thrust solve
	thrustGuard = 0.1 // floor on T in the roll solve
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(s float64) float64 {
	if s > 0 {
		return 1
	}
	if s < 0 {
		return -1
	}
	return 0
}

// sat is the boundary-layer function: linear slope 1/phi inside the
// layer, saturated to +-1 outside. A zero layer degenerates to sign.
func sat(s, phi float64) float64 {
	if phi <= 0 {
		return sign(s)
	}
	return clamp(s/phi, -1, 1)
}

// thrustVector inverts the desired world acceleration into total
// thrust and desired roll/pitch. Thrust is clamped to [0, 4mg] and the
// tilt commands to +-0.6 rad, which keeps the attitude loop inside its
// small-angle region and away from the Euler singularity.
func thrustVector(p vehicle.Params, ax, ay, az, phi, theta, psi, yawSP float64) (thrust, phiD, thetaD, psiD float64) {
	cc := math.Cos(phi) * math.Cos(theta)
	if cc < cosGuard {
		cc = cosGuard
	}
	thrust = clamp(p.Mass*(p.Gravity+ay)/cc, 0, p.MaxThrust())

	tGuard := thrust
	if tGuard < thrustGuard {
		tGuard = thrustGuard
	}
	sinPsi, cosPsi := math.Sin(psi), math.Cos(psi)

	arg := clamp(p.Mass*(ax*sinPsi-az*cosPsi)/tGuard, -tiltAsinCap, tiltAsinCap)
	phiD = clamp(math.Asin(arg), -maxTilt, maxTilt)
	thetaD = clamp(math.Atan2(ax*cosPsi+az*sinPsi, p.Gravity+ay), -maxTilt, maxTilt)
	psiD = yawSP
	return thrust, phiD, thetaD, psiD
}
