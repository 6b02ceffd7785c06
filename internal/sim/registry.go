package sim

import (
	"fmt"
	"sort"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/integrators"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Registry resolves the string ids the CLI and config files use into
// concrete integrators and controllers. Unknown ids are rejected here,
// at the boundary, so a live bench never sees them.
type Registry struct {
	integrators map[string]func() dynamics.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamics.Integrator),
	}

	r.integrators["euler"] = func() dynamics.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamics.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamics.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewController builds the named law from the gain set.
func (r *Registry) NewController(name string, gains control.GainSet, par vehicle.Params) (control.Controller, error) {
	algo, err := control.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return control.New(gains.For(algo), par)
}
