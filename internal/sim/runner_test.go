package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// countMetric counts Observe calls and remembers the last tick time.
type countMetric struct {
	name  string
	calls int
	lastT float64
}

func (m *countMetric) Name() string { return m.name }
func (m *countMetric) Observe(x dynamics.State, u vehicle.Input, sp traj.Setpoint, t float64) {
	m.calls++
	m.lastT = t
}
func (m *countMetric) Value() float64 { return float64(m.calls) }
func (m *countMetric) Reset()         { m.calls = 0; m.lastT = 0 }

func TestRunRejectsDuration(t *testing.T) {
	b := hoverBench(t)

	for _, d := range []float64{0, -2.5} {
		if _, err := Run(context.Background(), b, d, nil); err == nil {
			t.Errorf("duration %g should be rejected", d)
		}
	}
}

func TestRunRecordsEveryTick(t *testing.T) {
	b := hoverBench(t)

	res, err := Run(context.Background(), b, 1.0, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Steps != 120 {
		t.Errorf("expected 120 steps, got %d", res.Steps)
	}
	for _, n := range []int{
		len(res.Times), len(res.States), len(res.Setpoints),
		len(res.Inputs), len(res.Surfaces), len(res.Motors),
	} {
		if n != 120 {
			t.Errorf("expected 120 rows, got %d", n)
		}
	}

	if res.Times[0] != 0 {
		t.Errorf("first row should carry t=0, got %f", res.Times[0])
	}
	if math.Abs(res.Times[119]-119.0/120) > 1e-9 {
		t.Errorf("last row should carry t=119/120, got %f", res.Times[119])
	}

	// Row i holds the state the controller saw, so row 0 is the spawn.
	if res.States[0][vehicle.IY] != 3 {
		t.Errorf("first state should be the spawn, y=%f", res.States[0][vehicle.IY])
	}

	if res.Algorithm != control.PIDControl {
		t.Errorf("expected pid, got %s", res.Algorithm)
	}
	if res.Pattern != traj.Hover {
		t.Errorf("expected hover, got %s", res.Pattern)
	}
}

func TestRunChannels(t *testing.T) {
	b := hoverBench(t)
	res, err := Run(context.Background(), b, 0.5, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	y, err := res.Channel("y")
	if err != nil {
		t.Fatalf("channel y failed: %v", err)
	}
	for i, v := range y {
		if math.Abs(v-3) > 0.1 {
			t.Fatalf("hover altitude drifted at row %d: %f", i, v)
		}
	}

	thrust, err := res.Channel("T")
	if err != nil {
		t.Fatalf("channel T failed: %v", err)
	}
	if thrust[0] <= 0 {
		t.Errorf("hover thrust should be positive, got %f", thrust[0])
	}

	yref, err := res.Channel("y_ref")
	if err != nil {
		t.Fatalf("channel y_ref failed: %v", err)
	}
	if yref[0] != 3 {
		t.Errorf("hover reference should sit at 3 m, got %f", yref[0])
	}

	m1, err := res.Channel("m1")
	if err != nil {
		t.Fatalf("channel m1 failed: %v", err)
	}
	if m1[0] <= 0 {
		t.Errorf("motor speed should be positive, got %f", m1[0])
	}

	times, err := res.Channel("time")
	if err != nil {
		t.Fatalf("channel time failed: %v", err)
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Fatalf("time must be monotone, rows %d..%d", i-1, i)
		}
	}

	if _, err := res.Channel("altitude"); err == nil {
		t.Error("unknown channel should fail")
	}
}

func TestRunFeedsMetrics(t *testing.T) {
	b := hoverBench(t)

	m := &countMetric{name: "ticks"}
	m.calls = 99 // Run must reset before observing

	res, err := Run(context.Background(), b, 1.0, []Metric{m})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if m.calls != 120 {
		t.Errorf("expected 120 observations, got %d", m.calls)
	}
	if got, ok := res.Metrics["ticks"]; !ok || got != 120 {
		t.Errorf("expected metric ticks=120, got %f (present %v)", got, ok)
	}
	if math.Abs(m.lastT-119.0/120) > 1e-9 {
		t.Errorf("metrics should see pre-step time, got %f", m.lastT)
	}
}

func TestRunContextCanceled(t *testing.T) {
	b := hoverBench(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, b, 10, nil)
	if !errors.Is(err, dynamics.ErrContextCanceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if res == nil {
		t.Fatal("cancelled run should return the partial result")
	}
	if res.Steps != 0 {
		t.Errorf("cancellation before the first tick should record nothing, got %d", res.Steps)
	}
}

func TestRunSurfacesUnderSMC(t *testing.T) {
	o := DefaultOptions()
	o.Algorithm = control.SMCControl
	o.Init = dynamics.Vec3{Y: 2} // 1 m below the hover target
	b, err := NewBench(o)
	if err != nil {
		t.Fatalf("bench construction failed: %v", err)
	}

	res, err := Run(context.Background(), b, 0.25, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sy, err := res.Channel("s_y")
	if err != nil {
		t.Fatalf("channel s_y failed: %v", err)
	}
	if sy[0] == 0 {
		t.Error("offset spawn should open a vertical sliding surface")
	}
}
