package traj

import "github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"

// Commanded rates for the keyboard channel.
const (
	LateralSpeed    = 3.0 // m/s, horizontal and vertical translation
	KeyboardYawRate = 1.5 // rad/s
)

// Axes are normalized key-command axes, each in [-1, 1]. X and Z move
// in the horizontal world plane, Y climbs, Yaw spins. The key-capture
// collaborator (TUI) owns the mapping from keys to axes.
type Axes struct {
	X, Y, Z float64
	Yaw     float64
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// KeyChannel integrates axis commands into a target setpoint. It is the
// only reference source whose position depends on history.
type KeyChannel struct {
	pos  dynamics.Vec3
	yaw  float64
	axes Axes
}

func NewKeyChannel() *KeyChannel {
	return &KeyChannel{pos: dynamics.Vec3{Y: 3}}
}

func (k *KeyChannel) SetAxes(a Axes) {
	k.axes = Axes{
		X:   clampAxis(a.X),
		Y:   clampAxis(a.Y),
		Z:   clampAxis(a.Z),
		Yaw: clampAxis(a.Yaw),
	}
}

// SnapTo rebases the integrated target, used when the keyboard pattern
// is selected so the target starts at the vehicle instead of jumping.
func (k *KeyChannel) SnapTo(pos dynamics.Vec3, yaw float64) {
	k.pos = pos
	if k.pos.Y < 0 {
		k.pos.Y = 0
	}
	k.yaw = yaw
	k.axes = Axes{}
}

// Integrate advances the target by dt under the current axes and
// returns it together with the commanded velocity as feed-forward.
func (k *KeyChannel) Integrate(dt float64) Setpoint {
	vel := dynamics.Vec3{
		X: k.axes.X * LateralSpeed,
		Y: k.axes.Y * LateralSpeed,
		Z: k.axes.Z * LateralSpeed,
	}
	k.pos = k.pos.Add(vel.Scale(dt))
	if k.pos.Y < 0 {
		k.pos.Y = 0
	}
	k.yaw += k.axes.Yaw * KeyboardYawRate * dt

	return Setpoint{Pos: k.pos, Vel: vel, Yaw: k.yaw}
}

// Target returns the current integrated setpoint without advancing it.
func (k *KeyChannel) Target() Setpoint {
	return Setpoint{Pos: k.pos, Yaw: k.yaw}
}
