package traj

import (
	"fmt"
	"math"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
)

// Pattern identifies a reference trajectory. Analytic patterns are pure
// functions of time; Custom and Keyboard carry state in the Generator.
type Pattern int

const (
	Hover Pattern = iota
	Circle
	Helix
	Figure8
	Square
	Step
	Custom
	Keyboard
)

var patternNames = map[Pattern]string{
	Hover:    "hover",
	Circle:   "circle",
	Helix:    "helix",
	Figure8:  "figure8",
	Square:   "square",
	Step:     "step",
	Custom:   "custom",
	Keyboard: "keyboard",
}

func (p Pattern) String() string {
	if s, ok := patternNames[p]; ok {
		return s
	}
	return fmt.Sprintf("pattern(%d)", int(p))
}

// Analytic reports whether the pattern is a pure function of time.
func (p Pattern) Analytic() bool {
	return p != Custom && p != Keyboard
}

func ParsePattern(name string) (Pattern, error) {
	for p, s := range patternNames {
		if s == name {
			return p, nil
		}
	}
	return Hover, fmt.Errorf("unknown pattern: %s", name)
}

// Names lists the recognised pattern ids in catalogue order.
func Names() []string {
	out := make([]string, 0, len(patternNames))
	for p := Hover; p <= Keyboard; p++ {
		out = append(out, patternNames[p])
	}
	return out
}

// Setpoint is what the controllers consume each tick: a position, an
// optional feed-forward velocity and a desired yaw.
type Setpoint struct {
	Pos dynamics.Vec3
	Vel dynamics.Vec3
	Yaw float64
}

// Params are the free constants of the analytic patterns.
type Params struct {
	Radius   float64 // circle/helix radius
	Altitude float64 // circle/square/figure8 altitude
	Omega    float64 // angular rate, rad/s
	Climb    float64 // helix climb rate, m/s
	Fig8X    float64 // figure-8 x span
	Fig8Z    float64 // figure-8 z span
	Half     float64 // square half side
	Dwell    float64 // square corner dwell, s
	Travel   float64 // square edge transit, s
	StepY0   float64 // step initial altitude
	StepY1   float64 // step final altitude
	StepAt   float64 // step time, s
}

func DefaultParams() Params {
	return Params{
		Radius:   4,
		Altitude: 3,
		Omega:    0.5,
		Climb:    0.3,
		Fig8X:    4,
		Fig8Z:    4,
		Half:     3,
		Dwell:    1,
		Travel:   2,
		StepY0:   1,
		StepY1:   4,
		StepAt:   3,
	}
}

// smoothstep is the cubic ease 3s^2 - 2s^3 on [0, 1].
func smoothstep(s float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= 1 {
		return 1
	}
	return s * s * (3 - 2*s)
}

// Eval evaluates an analytic pattern at time t. Custom and Keyboard are
// not analytic and evaluate to the hover setpoint here; the Generator
// routes them to their stateful sources.
func Eval(p Pattern, par Params, t float64) Setpoint {
	switch p {
	case Circle:
		wt := par.Omega * t
		return Setpoint{
			Pos: dynamics.Vec3{
				X: par.Radius * math.Cos(wt),
				Y: par.Altitude,
				Z: par.Radius * math.Sin(wt),
			},
			Vel: dynamics.Vec3{
				X: -par.Radius * par.Omega * math.Sin(wt),
				Z: par.Radius * par.Omega * math.Cos(wt),
			},
		}

	case Helix:
		wt := par.Omega * t
		return Setpoint{
			Pos: dynamics.Vec3{
				X: par.Radius * math.Cos(wt),
				Y: 1 + par.Climb*t,
				Z: par.Radius * math.Sin(wt),
			},
			Vel: dynamics.Vec3{
				X: -par.Radius * par.Omega * math.Sin(wt),
				Y: par.Climb,
				Z: par.Radius * par.Omega * math.Cos(wt),
			},
		}

	case Figure8:
		wt := par.Omega * t
		return Setpoint{
			Pos: dynamics.Vec3{
				X: par.Fig8X * math.Cos(wt),
				Y: par.Altitude + 0.5*math.Sin(0.5*wt),
				Z: par.Fig8Z * math.Sin(2*wt) / 2,
			},
			Vel: dynamics.Vec3{
				X: -par.Fig8X * par.Omega * math.Sin(wt),
				Y: 0.25 * par.Omega * math.Cos(0.5*wt),
				Z: par.Fig8Z * par.Omega * math.Cos(2*wt),
			},
		}

	case Square:
		return squareAt(par, t)

	case Step:
		y := par.StepY0
		if t >= par.StepAt {
			y = par.StepY1
		}
		return Setpoint{Pos: dynamics.Vec3{Y: y}}

	default:
		// Hover, and the stateful ids when sampled analytically.
		return Setpoint{Pos: dynamics.Vec3{Y: 3}}
	}
}

// squareAt walks the four corners cyclically: dwell at each corner,
// then a smoothstep transit along the edge. Feed-forward velocity is
// zero; the acceleration discontinuity at segment joins is part of the
// pattern's character.
func squareAt(par Params, t float64) Setpoint {
	h, alt := par.Half, par.Altitude
	corners := [4]dynamics.Vec3{
		{X: h, Y: alt, Z: h},
		{X: -h, Y: alt, Z: h},
		{X: -h, Y: alt, Z: -h},
		{X: h, Y: alt, Z: -h},
	}

	leg := par.Dwell + par.Travel
	period := 4 * leg
	tau := math.Mod(t, period)
	if tau < 0 {
		tau += period
	}

	i := int(tau / leg)
	if i > 3 {
		i = 3
	}
	local := tau - float64(i)*leg
	from, to := corners[i], corners[(i+1)%4]

	if local < par.Dwell {
		return Setpoint{Pos: from}
	}
	s := smoothstep((local - par.Dwell) / par.Travel)
	return Setpoint{Pos: from.Lerp(to, s)}
}
