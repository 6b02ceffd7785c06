package automation

import (
	"context"
	"fmt"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/config"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/metrics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
)

// GainSweep runs the same flight across a range of one tuning key.
type GainSweep struct {
	Algorithm string
	Pattern   string
	Key       string
	Min       float64
	Max       float64
	NumSteps  int
	Duration  float64
	Wind      float64
}

// SweepPoint holds the metric pack measured at one gain value.
type SweepPoint struct {
	Value   float64
	Metrics map[string]float64
}

// RunSweep executes a gain sweep. Every point flies the identical
// deterministic scenario, so metric differences are attributable to
// the swept key alone.
func RunSweep(ctx context.Context, sweep *GainSweep, cfg *config.Config) ([]SweepPoint, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	cfg.Algorithm = sweep.Algorithm
	cfg.Pattern = sweep.Pattern
	cfg.Wind = sweep.Wind
	if sweep.Duration > 0 {
		cfg.Duration = sweep.Duration
	}

	points := make([]SweepPoint, 0, sweep.NumSteps)
	delta := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.Min + float64(i)*delta
		if err := cfg.Gains.Set(sweep.Algorithm, sweep.Key, val); err != nil {
			return nil, err
		}

		opts, err := cfg.Options()
		if err != nil {
			return nil, err
		}

		bench, err := sim.NewBench(opts)
		if err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.Key, val, err)
		}

		result, err := sim.Run(ctx, bench, cfg.Duration, metrics.Default(opts.Params))
		if err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.Key, val, err)
		}

		points = append(points, SweepPoint{Value: val, Metrics: result.Metrics})
		fmt.Printf("Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.Key, val)
	}

	return points, nil
}
