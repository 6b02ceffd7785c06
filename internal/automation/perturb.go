package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/config"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/metrics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// PerturbConfig describes a batch of trials with randomized spawn
// positions around a base point. A non-zero seed makes the whole batch
// reproducible.
type PerturbConfig struct {
	Algorithm    string
	Pattern      string
	Base         config.InitConfig
	Perturbation float64
	NumTrials    int
	Duration     float64
	Wind         float64
	Seed         int64
}

// TrialResult records one perturbed flight.
type TrialResult struct {
	TrialID int
	Init    dynamics.Vec3
	Final   dynamics.Vec3
	RMS     float64
	Stable  bool
}

// RunPerturbation flies NumTrials randomized spawns and reports how
// each settled. A trial counts as stable when its state stayed finite
// and the vehicle ended within bounds.
func RunPerturbation(ctx context.Context, pc *PerturbConfig, cfg *config.Config) ([]TrialResult, error) {
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
	results := make([]TrialResult, 0, pc.NumTrials)

	for trial := 0; trial < pc.NumTrials; trial++ {
		spawn := jitterSpawn(rng, pc.Base, pc.Perturbation)

		tr, err := flyTrial(ctx, *cfg, trial, spawn)
		if err != nil {
			return results, err
		}
		results = append(results, tr)

		if (trial+1)%10 == 0 {
			fmt.Printf("Perturbation: %d/%d trials complete\n", trial+1, pc.NumTrials)
		}
	}

	return results, nil
}

func newTrialRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// jitterSpawn draws a spawn around base, clamped above ground.
func jitterSpawn(rng *rand.Rand, base config.InitConfig, radius float64) dynamics.Vec3 {
	j := func() float64 { return (rng.Float64() - 0.5) * 2 * radius }
	s := dynamics.Vec3{X: base.X + j(), Y: base.Y + j(), Z: base.Z + j()}
	if s.Y < 0 {
		s.Y = 0
	}
	return s
}

// flyTrial runs one spawn to completion and grades it. cfg arrives by
// value so concurrent trials never share the Init field. A diverged
// plant is an unstable trial, not an error; only unusable setups and
// cancellation abort the batch.
func flyTrial(ctx context.Context, cfg config.Config, trial int, spawn dynamics.Vec3) (TrialResult, error) {
	cfg.Init = config.InitConfig{X: spawn.X, Y: spawn.Y, Z: spawn.Z}

	opts, err := cfg.Options()
	if err != nil {
		return TrialResult{}, fmt.Errorf("trial %d: %w", trial, err)
	}

	bench, err := sim.NewBench(opts)
	if err != nil {
		return TrialResult{}, fmt.Errorf("trial %d: %w", trial, err)
	}

	tracker := metrics.NewTrackingError()
	result, runErr := sim.Run(ctx, bench, cfg.Duration, []sim.Metric{tracker})
	if runErr != nil {
		if result == nil || errors.Is(runErr, dynamics.ErrContextCanceled) {
			return TrialResult{}, fmt.Errorf("trial %d: %w", trial, runErr)
		}
	}

	tr := TrialResult{
		TrialID: trial,
		Init:    opts.Init,
		Stable:  runErr == nil,
		RMS:     tracker.Value(),
	}
	if n := len(result.States); n > 0 {
		last := result.States[n-1]
		tr.Final = dynamics.Vec3{X: last[vehicle.IX], Y: last[vehicle.IY], Z: last[vehicle.IZ]}
		if tr.Final.Norm() > 1e6 {
			tr.Stable = false
		}
	}
	return tr, nil
}

// Stats counts stable and unstable trials.
func Stats(results []TrialResult) (stable int, unstable int) {
	for _, r := range results {
		if r.Stable {
			stable++
		} else {
			unstable++
		}
	}
	return
}
