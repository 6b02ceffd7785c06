package traj

import (
	"math"
	"testing"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
)

func TestGeneratorDefaultsToHover(t *testing.T) {
	g := NewGenerator(DefaultParams())
	if g.Pattern() != Hover {
		t.Errorf("expected hover, got %s", g.Pattern())
	}

	sp := g.Evaluate(0, 1.0/120)
	if sp.Pos != (dynamics.Vec3{Y: 3}) {
		t.Errorf("expected hover setpoint, got %v", sp.Pos)
	}
}

func TestGeneratorAnalyticPure(t *testing.T) {
	g := NewGenerator(DefaultParams())
	if err := g.SetPattern(Circle); err != nil {
		t.Fatalf("set pattern failed: %v", err)
	}

	// Evaluate and At agree for analytic patterns at any time.
	for _, tt := range []float64{0, 1.25, 9} {
		ev := g.Evaluate(tt, 1.0/120)
		at := g.At(tt)
		if ev.Pos != at.Pos {
			t.Errorf("t=%g: Evaluate %v and At %v disagree", tt, ev.Pos, at.Pos)
		}
	}
}

func TestGeneratorCustomRequiresWaypoints(t *testing.T) {
	g := NewGenerator(DefaultParams())

	if err := g.SetPattern(Custom); err == nil {
		t.Error("custom without waypoints should fail")
	}
	if g.Pattern() != Hover {
		t.Errorf("failed switch should keep the previous pattern, got %s", g.Pattern())
	}
}

func TestGeneratorWaypointValidation(t *testing.T) {
	g := NewGenerator(DefaultParams())

	if err := g.SetWaypoints([]dynamics.Vec3{{Y: 1}}, 1.0); err == nil {
		t.Error("one waypoint should be rejected")
	}
	if err := g.SetWaypoints([]dynamics.Vec3{{Y: 1}, {X: 2, Y: 1}}, 0); err == nil {
		t.Error("zero speed should be rejected")
	}
	if err := g.SetWaypoints([]dynamics.Vec3{{Y: 1}, {X: 2, Y: 1}}, 1.0); err != nil {
		t.Errorf("valid waypoints rejected: %v", err)
	}
}

func TestGeneratorCustomWalk(t *testing.T) {
	g := NewGenerator(DefaultParams())
	pts := []dynamics.Vec3{{Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 2, Z: 4}}
	if err := g.SetWaypoints(pts, 2.0); err != nil {
		t.Fatalf("set waypoints failed: %v", err)
	}
	if err := g.SetPattern(Custom); err != nil {
		t.Fatalf("set pattern failed: %v", err)
	}

	first := g.Evaluate(0, 1.0/120)
	second := g.Evaluate(1.0/120, 1.0/120)
	if second.Pos.X <= first.Pos.X {
		t.Errorf("walk should advance: %v then %v", first.Pos, second.Pos)
	}

	// Lookahead peeks the same walk without consuming it.
	peek := g.At(1.0)
	if peek.Pos.X <= second.Pos.X {
		t.Errorf("future lookahead should sit ahead of the walk: %v vs %v", peek.Pos, second.Pos)
	}
	resume := g.Evaluate(2.0/120, 1.0/120)
	if resume.Pos.X <= second.Pos.X {
		t.Errorf("lookahead must not consume the walk, tick landed at %v", resume.Pos)
	}
}

func TestGeneratorKeyboardTarget(t *testing.T) {
	g := NewGenerator(DefaultParams())
	if err := g.SetPattern(Keyboard); err != nil {
		t.Fatalf("set pattern failed: %v", err)
	}

	g.Keys().SetAxes(Axes{X: 1})
	sp := g.Evaluate(0, 1.0)
	if sp.Pos.X <= 0 {
		t.Errorf("keyboard target should move with the stick, got %v", sp.Pos)
	}

	// Lookahead holds the current target rather than extrapolating.
	at := g.At(100)
	if at.Pos != sp.Pos {
		t.Errorf("keyboard lookahead should hold the target: %v vs %v", at.Pos, sp.Pos)
	}
}

func TestGeneratorReset(t *testing.T) {
	g := NewGenerator(DefaultParams())
	pts := []dynamics.Vec3{{Y: 2}, {X: 4, Y: 2}}
	if err := g.SetWaypoints(pts, 2.0); err != nil {
		t.Fatalf("set waypoints failed: %v", err)
	}
	if err := g.SetPattern(Custom); err != nil {
		t.Fatalf("set pattern failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		g.Evaluate(float64(i)/120, 1.0/120)
	}
	g.Reset()

	if g.Pattern() != Custom {
		t.Errorf("reset should keep the pattern, got %s", g.Pattern())
	}
	sp := g.Evaluate(0, 1.0/120)
	fresh := NewWalker(pts, 2.0).Next()
	if sp.Pos.Dist(fresh.Pos) > 1e-9 {
		t.Errorf("reset should restart the walk: %v vs %v", sp.Pos, fresh.Pos)
	}
}

func TestGeneratorPreview(t *testing.T) {
	g := NewGenerator(DefaultParams())

	pts := g.Preview(Circle, 5, 4.0)
	if len(pts) != 5 {
		t.Fatalf("expected 5 preview points, got %d", len(pts))
	}
	for i, p := range pts {
		want := Eval(Circle, g.Par(), 4.0*float64(i)/4.0)
		if p.Dist(want.Pos) > 1e-9 {
			t.Errorf("preview point %d: got %v, want %v", i, p, want.Pos)
		}
	}

	if got := g.Preview(Circle, 0, 4.0); got != nil {
		t.Errorf("zero samples should preview nil, got %v", got)
	}

	// Keyboard collapses to the single current target.
	kb := g.Preview(Keyboard, 10, 4.0)
	if len(kb) != 1 {
		t.Errorf("keyboard preview should hold one point, got %d", len(kb))
	}

	// Custom without waypoints has nothing to draw.
	if got := g.Preview(Custom, 10, 4.0); got != nil {
		t.Errorf("custom preview without waypoints should be nil, got %v", got)
	}
}

func TestGeneratorPreviewDoesNotAdvance(t *testing.T) {
	g := NewGenerator(DefaultParams())
	pts := []dynamics.Vec3{{Y: 2}, {X: 4, Y: 2}}
	if err := g.SetWaypoints(pts, 2.0); err != nil {
		t.Fatalf("set waypoints failed: %v", err)
	}
	if err := g.SetPattern(Custom); err != nil {
		t.Fatalf("set pattern failed: %v", err)
	}

	a := g.Evaluate(0, 1.0/120)
	g.Preview(Custom, 50, 10.0)
	b := g.Evaluate(1.0/120, 1.0/120)

	step := b.Pos.X - a.Pos.X
	if step <= 0 || step > 0.1 {
		t.Errorf("preview must not advance the walk, tick moved %f", step)
	}
}

func TestGeneratorCustomLookaheadOrigin(t *testing.T) {
	g := NewGenerator(DefaultParams())
	pts := []dynamics.Vec3{{Y: 2}, {X: 4, Y: 2}}
	if err := g.SetWaypoints(pts, 2.0); err != nil {
		t.Fatalf("set waypoints failed: %v", err)
	}
	if err := g.SetPattern(Custom); err != nil {
		t.Fatalf("set pattern failed: %v", err)
	}

	var anchor float64
	for i := 0; i < 120; i++ {
		anchor = float64(i) / 120
		g.Evaluate(anchor, 1.0/120)
	}

	// Times at or before the anchor clamp to the walker's current state.
	past := g.At(anchor - 0.5)
	cur := g.At(anchor)
	if math.Abs(past.Pos.X-cur.Pos.X) > 1e-12 {
		t.Errorf("past lookahead should clamp to the current state: %v vs %v", past.Pos, cur.Pos)
	}
}
