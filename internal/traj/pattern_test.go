package traj

import (
	"math"
	"testing"
)

func TestParsePattern(t *testing.T) {
	for _, name := range Names() {
		p, err := ParsePattern(name)
		if err != nil {
			t.Fatalf("parse %q failed: %v", name, err)
		}
		if p.String() != name {
			t.Errorf("round trip %q: got %q", name, p.String())
		}
	}
}

func TestParsePattern_Unknown(t *testing.T) {
	_, err := ParsePattern("zigzag")
	if err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestNamesOrder(t *testing.T) {
	names := Names()
	expected := []string{"hover", "circle", "helix", "figure8", "square", "step", "custom", "keyboard"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i, n := range expected {
		if names[i] != n {
			t.Errorf("name %d: expected %q, got %q", i, n, names[i])
		}
	}
}

func TestAnalytic(t *testing.T) {
	for p := Hover; p <= Keyboard; p++ {
		want := p != Custom && p != Keyboard
		if p.Analytic() != want {
			t.Errorf("%s: Analytic() = %v, want %v", p, p.Analytic(), want)
		}
	}
}

func TestHoverSetpoint(t *testing.T) {
	sp := Eval(Hover, DefaultParams(), 7.3)
	if sp.Pos.X != 0 || sp.Pos.Y != 3 || sp.Pos.Z != 0 {
		t.Errorf("hover should hold (0, 3, 0), got %v", sp.Pos)
	}
	if sp.Vel.Norm() != 0 {
		t.Errorf("hover feed-forward should be zero, got %v", sp.Vel)
	}
}

func TestCircleRadius(t *testing.T) {
	par := DefaultParams()

	for _, tt := range []float64{0, 1, 5, 13.7} {
		sp := Eval(Circle, par, tt)
		r := math.Hypot(sp.Pos.X, sp.Pos.Z)
		if math.Abs(r-par.Radius) > 1e-9 {
			t.Errorf("t=%g: radius %f, want %f", tt, r, par.Radius)
		}
		if math.Abs(sp.Pos.Y-par.Altitude) > 1e-9 {
			t.Errorf("t=%g: altitude %f, want %f", tt, sp.Pos.Y, par.Altitude)
		}
	}
}

func TestCircleVelocity(t *testing.T) {
	par := DefaultParams()
	h := 1e-5

	for _, tt := range []float64{0.5, 4.2} {
		sp := Eval(Circle, par, tt)
		plus := Eval(Circle, par, tt+h)
		minus := Eval(Circle, par, tt-h)

		vx := (plus.Pos.X - minus.Pos.X) / (2 * h)
		vz := (plus.Pos.Z - minus.Pos.Z) / (2 * h)

		if math.Abs(sp.Vel.X-vx) > 1e-6 || math.Abs(sp.Vel.Z-vz) > 1e-6 {
			t.Errorf("t=%g: feed-forward (%f, %f) disagrees with derivative (%f, %f)",
				tt, sp.Vel.X, sp.Vel.Z, vx, vz)
		}
	}
}

func TestHelixClimb(t *testing.T) {
	par := DefaultParams()

	sp0 := Eval(Helix, par, 0)
	if math.Abs(sp0.Pos.Y-1) > 1e-9 {
		t.Errorf("helix should start at 1 m, got %f", sp0.Pos.Y)
	}

	sp10 := Eval(Helix, par, 10)
	if math.Abs(sp10.Pos.Y-(1+10*par.Climb)) > 1e-9 {
		t.Errorf("helix altitude at t=10: got %f, want %f", sp10.Pos.Y, 1+10*par.Climb)
	}
	if math.Abs(sp10.Vel.Y-par.Climb) > 1e-9 {
		t.Errorf("helix climb feed-forward: got %f, want %f", sp10.Vel.Y, par.Climb)
	}
}

func TestFigure8(t *testing.T) {
	par := DefaultParams()

	sp := Eval(Figure8, par, 0)
	if math.Abs(sp.Pos.X-par.Fig8X) > 1e-9 || math.Abs(sp.Pos.Z) > 1e-9 {
		t.Errorf("figure-8 should start at (%g, 0) in plan, got (%f, %f)", par.Fig8X, sp.Pos.X, sp.Pos.Z)
	}

	// Half a lobe later the x excursion flips and z recrosses zero.
	half := math.Pi / par.Omega
	sp = Eval(Figure8, par, half)
	if math.Abs(sp.Pos.X+par.Fig8X) > 1e-9 {
		t.Errorf("expected x = %g at the crossing, got %f", -par.Fig8X, sp.Pos.X)
	}
	if math.Abs(sp.Pos.Z) > 1e-9 {
		t.Errorf("expected z = 0 at the crossing, got %f", sp.Pos.Z)
	}
}

func TestSquareCorners(t *testing.T) {
	par := DefaultParams()
	h := par.Half
	leg := par.Dwell + par.Travel

	// Dwelling at the first corner.
	for _, tt := range []float64{0, par.Dwell / 2} {
		sp := Eval(Square, par, tt)
		if sp.Pos.X != h || sp.Pos.Z != h {
			t.Errorf("t=%g: expected corner (%g, %g), got (%f, %f)", tt, h, h, sp.Pos.X, sp.Pos.Z)
		}
	}

	// One leg later the walk dwells at the second corner.
	sp := Eval(Square, par, leg)
	if sp.Pos.X != -h || sp.Pos.Z != h {
		t.Errorf("expected corner (%g, %g), got (%f, %f)", -h, h, sp.Pos.X, sp.Pos.Z)
	}

	// Mid-transit sits between the corners.
	sp = Eval(Square, par, par.Dwell+par.Travel/2)
	if math.Abs(sp.Pos.X) > 1e-9 || math.Abs(sp.Pos.Z-h) > 1e-9 {
		t.Errorf("mid-transit should sit at (0, %g), got (%f, %f)", h, sp.Pos.X, sp.Pos.Z)
	}
}

func TestSquarePeriodic(t *testing.T) {
	par := DefaultParams()
	period := 4 * (par.Dwell + par.Travel)

	for _, tt := range []float64{0.4, 2.9, 7.1} {
		a := Eval(Square, par, tt)
		b := Eval(Square, par, tt+period)
		if a.Pos.Dist(b.Pos) > 1e-9 {
			t.Errorf("t=%g: square should repeat with period %g, got %v vs %v", tt, period, a.Pos, b.Pos)
		}
	}
}

func TestStepPattern(t *testing.T) {
	par := DefaultParams()

	before := Eval(Step, par, par.StepAt-0.01)
	if before.Pos.Y != par.StepY0 {
		t.Errorf("before the step: expected %g, got %f", par.StepY0, before.Pos.Y)
	}

	after := Eval(Step, par, par.StepAt)
	if after.Pos.Y != par.StepY1 {
		t.Errorf("at the step: expected %g, got %f", par.StepY1, after.Pos.Y)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := smoothstep(tt.in); math.Abs(got-tt.out) > 1e-12 {
			t.Errorf("smoothstep(%g) = %f, want %g", tt.in, got, tt.out)
		}
	}

	// Monotone on the open interval.
	prev := 0.0
	for s := 0.05; s < 1; s += 0.05 {
		v := smoothstep(s)
		if v <= prev {
			t.Errorf("smoothstep not increasing at %g", s)
		}
		prev = v
	}
}
