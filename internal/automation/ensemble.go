package automation

import (
	"context"
	"fmt"
	"sync"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/config"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
)

// RunEnsemble flies the same batch as RunPerturbation with one
// goroutine per trial. Spawns are drawn up front from a single
// source, so a fixed seed yields the same batch either way; only the
// completion order differs.
func RunEnsemble(ctx context.Context, pc *PerturbConfig, cfg *config.Config) ([]TrialResult, error) {
	if pc.NumTrials < 1 {
		return nil, fmt.Errorf("need at least 1 trial, got %d", pc.NumTrials)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	cfg.Algorithm = pc.Algorithm
	cfg.Pattern = pc.Pattern
	cfg.Wind = pc.Wind
	if pc.Duration > 0 {
		cfg.Duration = pc.Duration
	}

	rng := newTrialRand(pc.Seed)
	spawns := make([]dynamics.Vec3, pc.NumTrials)
	for i := range spawns {
		spawns[i] = jitterSpawn(rng, pc.Base, pc.Perturbation)
	}

	results := make([]TrialResult, pc.NumTrials)
	errs := make([]error, pc.NumTrials)

	var wg sync.WaitGroup
	for i := 0; i < pc.NumTrials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = flyTrial(ctx, *cfg, idx, spawns[idx])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
