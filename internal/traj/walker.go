package traj

import "github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"

// NominalTick is the walker's per-call advance. The walker is driven by
// evaluate calls, not wall clock, so a paused simulation freezes it.
const NominalTick = 1.0 / 120

// Walker traverses user waypoints cyclically at constant speed with
// smoothstep easing along each segment. State is the current segment
// index plus the segment-local time tau.
type Walker struct {
	points []dynamics.Vec3
	speed  float64

	seg int
	tau float64
}

// NewWalker requires at least two waypoints; speed must be positive.
func NewWalker(points []dynamics.Vec3, speed float64) *Walker {
	w := &Walker{speed: speed}
	w.points = make([]dynamics.Vec3, len(points))
	copy(w.points, points)
	return w
}

func (w *Walker) Reset() {
	w.seg = 0
	w.tau = 0
}

func (w *Walker) segDuration(i int) float64 {
	n := len(w.points)
	d := w.points[i%n].Dist(w.points[(i+1)%n]) / w.speed
	if d < NominalTick {
		// Coincident waypoints would stall the walk.
		d = NominalTick
	}
	return d
}

func (w *Walker) at(seg int, tau float64) Setpoint {
	n := len(w.points)
	from := w.points[seg%n]
	to := w.points[(seg+1)%n]
	s := smoothstep(tau / w.segDuration(seg))
	return Setpoint{Pos: from.Lerp(to, s)}
}

// Next advances tau by the nominal tick and returns the interpolated
// setpoint, rolling to the next segment (cyclic) when tau passes the
// segment duration.
func (w *Walker) Next() Setpoint {
	w.tau += NominalTick
	for w.tau >= w.segDuration(w.seg) {
		w.tau -= w.segDuration(w.seg)
		w.seg = (w.seg + 1) % len(w.points)
	}
	return w.at(w.seg, w.tau)
}

// Peek samples the walk dt seconds ahead of the current state without
// mutating it. Used for horizon lookahead and preview.
func (w *Walker) Peek(dt float64) Setpoint {
	seg, tau := w.seg, w.tau+dt
	for tau >= w.segDuration(seg) {
		tau -= w.segDuration(seg)
		seg = (seg + 1) % len(w.points)
	}
	return w.at(seg, tau)
}
