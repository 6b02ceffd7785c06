package automation

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/config"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/metrics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/optim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
)

// TuneRequest names the gain keys to search jointly and the candidate
// values for each. Every combination flies the identical deterministic
// scenario.
type TuneRequest struct {
	Algorithm string
	Pattern   string
	Keys      []string
	Ranges    [][]float64
	Duration  float64
	Wind      float64
	Cost      string
}

// Tune grid-searches the requested keys and returns the assignment
// with the lowest cost metric, tracking error unless the request says
// otherwise.
func Tune(ctx context.Context, req *TuneRequest, cfg *config.Config) (map[string]float64, float64, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cost := req.Cost
	if cost == "" {
		cost = "tracking_error"
	}

	cfg.Algorithm = req.Algorithm
	cfg.Pattern = req.Pattern
	cfg.Wind = req.Wind
	if req.Duration > 0 {
		cfg.Duration = req.Duration
	}

	search, err := optim.NewGridSearch(req.Keys, req.Ranges)
	if err != nil {
		return nil, 0, err
	}

	total := search.Size()
	point := 0

	eval := func(ctx context.Context, gains map[string]float64) (map[string]float64, error) {
		for key, val := range gains {
			if err := cfg.Gains.Set(req.Algorithm, key, val); err != nil {
				return nil, err
			}
		}

		opts, err := cfg.Options()
		if err != nil {
			return nil, err
		}
		b, err := sim.NewBench(opts)
		if err != nil {
			return nil, err
		}

		res, err := sim.Run(ctx, b, cfg.Duration, metrics.Default(b.Params()))
		if err != nil {
			return nil, err
		}

		point++
		parts := make([]string, 0, len(req.Keys))
		for _, key := range req.Keys {
			parts = append(parts, fmt.Sprintf("%s=%.4f", key, gains[key]))
		}
		fmt.Printf("Tune %d/%d: %s -> %s %.6f\n", point, total, strings.Join(parts, " "), cost, res.Metrics[cost])

		return res.Metrics, nil
	}

	return search.Search(ctx, eval, cost)
}
