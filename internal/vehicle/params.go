package vehicle

// Params holds the physical constants of the airframe. A Params value
// is fixed for the lifetime of a run; controllers receive a copy at
// construction and never reach back into the plant.
type Params struct {
	Mass      float64 // kg
	Gravity   float64 // m/s^2
	Ixx       float64 // kg m^2, roll inertia
	Iyy       float64 // kg m^2, pitch inertia
	Izz       float64 // kg m^2, yaw inertia
	ArmLength float64 // m, hub to motor
	KThrust   float64 // thrust coefficient, N/(rad/s)^2
	KDrag     float64 // rotor drag coefficient, Nm/(rad/s)^2
	LinDrag   float64 // translational drag, 1/s
	MotorMax  float64 // rad/s, speed saturation
}

// DefaultParams matches the 500 g X-frame the bench was tuned around.
func DefaultParams() Params {
	return Params{
		Mass:      0.5,
		Gravity:   9.81,
		Ixx:       0.0023,
		Iyy:       0.0023,
		Izz:       0.004,
		ArmLength: 0.17,
		KThrust:   2.98e-6,
		KDrag:     1.14e-7,
		LinDrag:   0.04,
		MotorMax:  2200,
	}
}

// HoverThrust is the total thrust balancing gravity.
func (p Params) HoverThrust() float64 {
	return p.Mass * p.Gravity
}

// MaxThrust is the commanded-thrust ceiling (4x hover).
func (p Params) MaxThrust() float64 {
	return 4 * p.Mass * p.Gravity
}

func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"mass":       p.Mass,
		"gravity":    p.Gravity,
		"ixx":        p.Ixx,
		"iyy":        p.Iyy,
		"izz":        p.Izz,
		"arm_length": p.ArmLength,
		"k_thrust":   p.KThrust,
		"k_drag":     p.KDrag,
		"lin_drag":   p.LinDrag,
		"motor_max":  p.MotorMax,
	}
}
