package config

import "sort"

// Preset is a named bench setup: the fields it lists override
// DefaultConfig, everything else (vehicle, trajectory shape, gains)
// keeps its stock value.
type Preset struct {
	Pattern  string
	Duration float64
	Wind     float64
	Init     InitConfig
	Note     string
}

var Presets = map[string]map[string]Preset{
	"pid": {
		"hover": {
			Pattern: "hover", Duration: 20, Init: InitConfig{Y: 3},
			Note: "steady hover at altitude",
		},
		"step": {
			Pattern: "step", Duration: 12, Init: InitConfig{Y: 1},
			Note: "altitude step response",
		},
		"windy": {
			Pattern: "hover", Duration: 30, Wind: 1.5, Init: InitConfig{Y: 3},
			Note: "hover against gusts, shows integrator limits",
		},
	},
	"smc": {
		"circle": {
			Pattern: "circle", Duration: 30, Init: InitConfig{X: 4, Y: 3},
			Note: "constant-speed circle",
		},
		"windy": {
			Pattern: "hover", Duration: 30, Wind: 1.5, Init: InitConfig{Y: 3},
			Note: "gust rejection inside the boundary layer",
		},
		"figure8": {
			Pattern: "figure8", Duration: 40, Init: InitConfig{X: 4, Y: 3},
			Note: "crossing pattern, stresses both axes",
		},
	},
	"sts": {
		"circle": {
			Pattern: "circle", Duration: 30, Init: InitConfig{X: 4, Y: 3},
			Note: "smooth sliding mode on the circle",
		},
		"square": {
			Pattern: "square", Duration: 30, Init: InitConfig{X: 3, Y: 3, Z: 3},
			Note: "corner dwell and dash",
		},
	},
	"mpc": {
		"helix": {
			Pattern: "helix", Duration: 40, Init: InitConfig{X: 4, Y: 1},
			Note: "climbing spiral, lookahead pays off",
		},
		"figure8": {
			Pattern: "figure8", Duration: 40, Init: InitConfig{X: 4, Y: 3},
			Note: "preview tracking through the crossover",
		},
	},
}

// GetPreset returns a full config for the named setup, or nil when
// either id is unknown.
func GetPreset(algo, name string) *Config {
	group, ok := Presets[algo]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Algorithm = algo
	cfg.Pattern = p.Pattern
	cfg.Duration = p.Duration
	cfg.Wind = p.Wind
	cfg.Init = p.Init
	return cfg
}

func ListPresets(algo string) []string {
	group, ok := Presets[algo]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
