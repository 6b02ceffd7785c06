package traj

import (
	"fmt"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
)

// Lookahead samples the reference at an absolute simulation time with
// no side effects. The predictive controller calls it across its
// horizon; implementations must tolerate arbitrary future times.
type Lookahead interface {
	At(t float64) Setpoint
}

// Generator owns the active pattern and the two stateful sources. One
// generator serves one simulation; it is not safe for concurrent use.
type Generator struct {
	pattern Pattern
	par     Params
	walker  *Walker
	keys    *KeyChannel

	// now anchors lookahead offsets for the stateful sources. Updated
	// by Evaluate each tick.
	now float64
}

func NewGenerator(par Params) *Generator {
	return &Generator{
		pattern: Hover,
		par:     par,
		keys:    NewKeyChannel(),
	}
}

func (g *Generator) Pattern() Pattern { return g.pattern }
func (g *Generator) Par() Params      { return g.par }
func (g *Generator) Keys() *KeyChannel {
	return g.keys
}

// SetPattern switches the active pattern. Switching to Custom requires
// waypoints to have been supplied; the walker restarts from its first
// segment. On failure the previous pattern stays active.
func (g *Generator) SetPattern(p Pattern) error {
	if p == Custom && g.walker == nil {
		return fmt.Errorf("custom pattern requires waypoints")
	}
	g.pattern = p
	if p == Custom {
		g.walker.Reset()
	}
	return nil
}

// SetWaypoints installs the custom walk. At least two waypoints and a
// positive speed are required; on failure the previous walk persists.
func (g *Generator) SetWaypoints(points []dynamics.Vec3, speed float64) error {
	if len(points) < 2 {
		return fmt.Errorf("custom pattern needs at least 2 waypoints, got %d", len(points))
	}
	if speed <= 0 {
		return fmt.Errorf("waypoint speed must be positive, got %g", speed)
	}
	g.walker = NewWalker(points, speed)
	return nil
}

// Evaluate produces the setpoint for the tick at simulation time t.
// Analytic patterns are pure in t; Custom advances the walker by its
// nominal tick and Keyboard integrates axis commands by dt.
func (g *Generator) Evaluate(t, dt float64) Setpoint {
	g.now = t
	switch g.pattern {
	case Custom:
		return g.walker.Next()
	case Keyboard:
		return g.keys.Integrate(dt)
	default:
		return Eval(g.pattern, g.par, t)
	}
}

// At implements Lookahead for the active pattern. For Custom it peeks
// along a value copy of the walker state; for Keyboard it holds the
// current integrated target.
func (g *Generator) At(t float64) Setpoint {
	switch g.pattern {
	case Custom:
		if g.walker == nil {
			return Setpoint{}
		}
		dt := t - g.now
		if dt < 0 {
			dt = 0
		}
		return g.walker.Peek(dt)
	case Keyboard:
		return g.keys.Target()
	default:
		return Eval(g.pattern, g.par, t)
	}
}

// Reset rewinds the stateful sources. Pattern selection and waypoints
// survive a reset; the walker restarts and the keyboard target returns
// to its spawn point.
func (g *Generator) Reset() {
	g.now = 0
	if g.walker != nil {
		g.walker.Reset()
	}
	g.keys = NewKeyChannel()
}

// Preview uniformly samples a pattern over a horizon window for path
// drawing. Analytic patterns sample the pure evaluator, Custom peeks
// the walker ahead of its current state, Keyboard collapses to the
// current target.
func (g *Generator) Preview(p Pattern, n int, horizon float64) []dynamics.Vec3 {
	if n <= 0 {
		return nil
	}

	switch p {
	case Keyboard:
		return []dynamics.Vec3{g.keys.Target().Pos}
	case Custom:
		if g.walker == nil {
			return nil
		}
		out := make([]dynamics.Vec3, n)
		for i := range out {
			out[i] = g.walker.Peek(horizon * float64(i) / float64(max(n-1, 1))).Pos
		}
		return out
	default:
		out := make([]dynamics.Vec3, n)
		for i := range out {
			out[i] = Eval(p, g.par, horizon*float64(i)/float64(max(n-1, 1))).Pos
		}
		return out
	}
}
