package control

import (
	"fmt"
	"math"
)

// Algorithm identifies a control law.
type Algorithm int

const (
	PIDControl Algorithm = iota
	SMCControl
	STSControl
	MPCControl
)

var algorithmNames = map[Algorithm]string{
	PIDControl: "pid",
	SMCControl: "smc",
	STSControl: "sts",
	MPCControl: "mpc",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

func ParseAlgorithm(name string) (Algorithm, error) {
	for a, s := range algorithmNames {
		if s == name {
			return a, nil
		}
	}
	return PIDControl, fmt.Errorf("unknown algorithm: %s", name)
}

// Algorithms lists the recognised ids in bench order.
func Algorithms() []string {
	return []string{"pid", "smc", "sts", "mpc"}
}

// Gains is the tagged per-algorithm gain variant. Each shape carries
// exactly the keys its law recognises; there is no generic key-value
// bag anywhere in the loop.
type Gains interface {
	Algorithm() Algorithm
	Validate() error
}

// PIDGains drive the cascaded PID law. The xy triple serves the
// horizontal plane (x and z axes), the z triple serves altitude (the
// world y axis).
type PIDGains struct {
	KpXY, KiXY, KdXY float64
	KpZ, KiZ, KdZ    float64
	KpAtt, KdAtt     float64
	KpYaw, KdYaw     float64
	IMax             float64
}

func (PIDGains) Algorithm() Algorithm { return PIDControl }

func (g PIDGains) Validate() error {
	if err := finiteNonNeg("pid",
		g.KpXY, g.KiXY, g.KdXY, g.KpZ, g.KiZ, g.KdZ,
		g.KpAtt, g.KdAtt, g.KpYaw, g.KdYaw, g.IMax); err != nil {
		return err
	}
	if g.IMax <= 0 {
		return fmt.Errorf("pid gains: iMax must be positive, got %g", g.IMax)
	}
	return nil
}

// SMCGains drive the first-order sliding mode law.
type SMCGains struct {
	LambdaXY, LambdaZ float64
	EtaXY, EtaZ       float64
	PhiXY, PhiZ       float64
	LambdaAtt, EtaAtt float64
	PhiAtt            float64
}

func (SMCGains) Algorithm() Algorithm { return SMCControl }

func (g SMCGains) Validate() error {
	return finiteNonNeg("smc",
		g.LambdaXY, g.LambdaZ, g.EtaXY, g.EtaZ, g.PhiXY, g.PhiZ,
		g.LambdaAtt, g.EtaAtt, g.PhiAtt)
}

// STSGains drive the super-twisting law. Finite-time convergence wants
// alpha1^2 >= 4*alpha2 against Lipschitz disturbances; the bench
// documents the precondition but deliberately does not enforce it.
type STSGains struct {
	LambdaXY, LambdaZ    float64
	Alpha1XY, Alpha2XY   float64
	Alpha1Z, Alpha2Z     float64
	LambdaAtt            float64
	Alpha1Att, Alpha2Att float64
}

func (STSGains) Algorithm() Algorithm { return STSControl }

func (g STSGains) Validate() error {
	return finiteNonNeg("sts",
		g.LambdaXY, g.LambdaZ, g.Alpha1XY, g.Alpha2XY, g.Alpha1Z,
		g.Alpha2Z, g.LambdaAtt, g.Alpha1Att, g.Alpha2Att)
}

// MPCGains drive the receding-horizon law. The attitude PD pair serves
// all three attitude axes; the schema has no separate yaw gains.
type MPCGains struct {
	N            int
	QPos, QVel   float64
	R            float64
	KpAtt, KdAtt float64
}

func (MPCGains) Algorithm() Algorithm { return MPCControl }

func (g MPCGains) Validate() error {
	if g.N < 1 {
		return fmt.Errorf("mpc gains: horizon N must be at least 1, got %d", g.N)
	}
	return finiteNonNeg("mpc", g.QPos, g.QVel, g.R, g.KpAtt, g.KdAtt)
}

func finiteNonNeg(algo string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s gains: non-finite value", algo)
		}
		if v < 0 {
			return fmt.Errorf("%s gains: negative value %g", algo, v)
		}
	}
	return nil
}

// Bench defaults, tuned on the stock airframe at the 120 Hz tick.

func DefaultPIDGains() PIDGains {
	return PIDGains{
		KpXY: 3.0, KiXY: 0.4, KdXY: 3.5,
		KpZ: 8.0, KiZ: 0.5, KdZ: 5.5,
		KpAtt: 1.2, KdAtt: 0.09,
		KpYaw: 0.5, KdYaw: 0.08,
		IMax: 0.25,
	}
}

func DefaultSMCGains() SMCGains {
	return SMCGains{
		LambdaXY: 2.0, LambdaZ: 3.0,
		EtaXY: 6.0, EtaZ: 10.0,
		PhiXY: 0.4, PhiZ: 0.1,
		LambdaAtt: 12, EtaAtt: 40, PhiAtt: 0.3,
	}
}

func DefaultSTSGains() STSGains {
	return STSGains{
		LambdaXY: 2.0, LambdaZ: 3.0,
		Alpha1XY: 4.0, Alpha2XY: 4.0,
		Alpha1Z: 5.0, Alpha2Z: 5.0,
		LambdaAtt: 12, Alpha1Att: 30, Alpha2Att: 80,
	}
}

func DefaultMPCGains() MPCGains {
	return MPCGains{
		N: 10, QPos: 12.0, QVel: 2.0, R: 0.1,
		KpAtt: 1.2, KdAtt: 0.09,
	}
}

// DefaultGains returns the bench defaults for an algorithm.
func DefaultGains(a Algorithm) Gains {
	switch a {
	case SMCControl:
		return DefaultSMCGains()
	case STSControl:
		return DefaultSTSGains()
	case MPCControl:
		return DefaultMPCGains()
	default:
		return DefaultPIDGains()
	}
}
