package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/config"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/metrics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/store"
)

// Scenario is a scripted sequence of flights.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one flight in a scenario. Gains lists overrides for
// the step's algorithm by schema key; unset fields keep the stock
// config values.
type ScenarioStep struct {
	Algorithm string             `yaml:"algorithm"`
	Pattern   string             `yaml:"pattern"`
	Duration  float64            `yaml:"duration"`
	Wind      float64            `yaml:"wind"`
	Init      *config.InitConfig `yaml:"init"`
	Gains     map[string]float64 `yaml:"gains"`
	SaveAs    string             `yaml:"save_as"`
}

// StepOutcome pairs a step with its recorded run.
type StepOutcome struct {
	Step   ScenarioStep
	Result *sim.Result
	RunID  string
}

// LoadScenario reads a scenario script from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario executes all steps in order. Steps with a save_as label
// are recorded to st under that id; pass nil to skip recording.
func RunScenario(ctx context.Context, scenario *Scenario, st *store.Store) ([]StepOutcome, error) {
	outcomes := make([]StepOutcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("Running step %d/%d: %s on %s\n", i+1, len(scenario.Steps), step.Algorithm, step.Pattern)

		cfg := config.DefaultConfig()
		cfg.Algorithm = step.Algorithm
		cfg.Pattern = step.Pattern
		cfg.Wind = step.Wind
		if step.Duration > 0 {
			cfg.Duration = step.Duration
		}
		if step.Init != nil {
			cfg.Init = *step.Init
		}
		for key, val := range step.Gains {
			if err := cfg.Gains.Set(step.Algorithm, key, val); err != nil {
				return outcomes, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		opts, err := cfg.Options()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		bench, err := sim.NewBench(opts)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := sim.Run(ctx, bench, cfg.Duration, metrics.Default(opts.Params))
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		outcome := StepOutcome{Step: step, Result: result}
		if step.SaveAs != "" && st != nil {
			runID, err := st.SaveAs(step.SaveAs, result)
			if err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
			outcome.RunID = runID
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
