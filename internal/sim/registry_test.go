package sim

import (
	"testing"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

func TestRegistryGetIntegrator(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"euler", "rk4"} {
		integ, err := reg.GetIntegrator(name)
		if err != nil {
			t.Errorf("GetIntegrator(%q) failed: %v", name, err)
		}
		if integ == nil {
			t.Errorf("GetIntegrator(%q) returned nil", name)
		}
	}

	if _, err := reg.GetIntegrator("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestRegistryListIntegrators(t *testing.T) {
	names := NewRegistry().ListIntegrators()

	want := []string{"euler", "rk4"}
	if len(names) != len(want) {
		t.Fatalf("expected %d integrators, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("integrator %d: expected %s, got %s", i, name, names[i])
		}
	}
}

func TestRegistryNewController(t *testing.T) {
	reg := NewRegistry()
	gains := control.DefaultGainSet()
	par := vehicle.DefaultParams()

	for _, name := range control.Algorithms() {
		c, err := reg.NewController(name, gains, par)
		if err != nil {
			t.Errorf("NewController(%q) failed: %v", name, err)
			continue
		}
		if got := c.Algorithm().String(); got != name {
			t.Errorf("expected algorithm %s, got %s", name, got)
		}
	}

	if _, err := reg.NewController("lqr", gains, par); err == nil {
		t.Error("expected error for unknown controller")
	}
}
