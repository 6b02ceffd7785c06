package vehicle

import "math"

// X-configuration motor order: 1 front-right (CW), 2 front-left (CCW),
// 3 rear-left (CW), 4 rear-right (CCW). The forward axis bisects
// motors 1 and 2, so roll and pitch torques split across all four
// motors with a sqrt(2)/2 arm projection.

// Allocate inverts the mixing matrix: given the commanded input it
// returns the four motor speeds, clamping each squared speed to
// [0, MotorMax^2] before the square root. saturated reports whether any
// clamp engaged; saturation feeds telemetry only, never the dynamics.
func Allocate(p Params, u Input) (motors [4]float64, saturated bool) {
	a := u.Thrust / (4 * p.KThrust)
	b := u.TauPhi * math.Sqrt2 / (4 * p.KThrust * p.ArmLength)
	c := u.TauTheta * math.Sqrt2 / (4 * p.KThrust * p.ArmLength)
	d := u.TauPsi / (4 * p.KDrag)

	sq := [4]float64{
		a - b - c - d,
		a - b + c + d,
		a + b + c - d,
		a + b - c + d,
	}

	maxSq := p.MotorMax * p.MotorMax
	for i, w2 := range sq {
		if w2 < 0 {
			w2 = 0
			saturated = true
		} else if w2 > maxSq {
			w2 = maxSq
			saturated = true
		}
		motors[i] = math.Sqrt(w2)
	}
	return motors, saturated
}

// Mix is the forward map from motor speeds back to thrust and torques.
// Allocate followed by Mix is the identity whenever no speed clamps.
func Mix(p Params, motors [4]float64) Input {
	var sq [4]float64
	for i, w := range motors {
		sq[i] = w * w
	}

	arm := math.Sqrt2 / 2 * p.KThrust * p.ArmLength
	return Input{
		Thrust:   p.KThrust * (sq[0] + sq[1] + sq[2] + sq[3]),
		TauPhi:   arm * (-sq[0] - sq[1] + sq[2] + sq[3]),
		TauTheta: arm * (-sq[0] + sq[1] + sq[2] - sq[3]),
		TauPsi:   p.KDrag * (-sq[0] + sq[1] - sq[2] + sq[3]),
	}
}
