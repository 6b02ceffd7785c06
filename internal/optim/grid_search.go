// Package optim holds gain search routines layered over the bench.
// The search itself is bench-agnostic; the automation package supplies
// the evaluation closure.
package optim

import (
	"context"
	"fmt"
	"math"
)

// Evaluate flies one candidate gain assignment and reports its metric
// pack.
type Evaluate func(ctx context.Context, gains map[string]float64) (map[string]float64, error)

// GridSearch exhaustively tries every combination of the listed gain
// keys and keeps the assignment with the lowest cost metric.
type GridSearch struct {
	keys   []string
	ranges [][]float64
}

// NewGridSearch pairs each key with the candidate values to try for
// it.
func NewGridSearch(keys []string, ranges [][]float64) (*GridSearch, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("optim: no keys to search")
	}
	if len(keys) != len(ranges) {
		return nil, fmt.Errorf("optim: %d keys but %d ranges", len(keys), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", keys[i])
		}
	}
	return &GridSearch{keys: keys, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search walks the grid in key order and returns the best assignment
// and its cost. Evaluation errors abort the search.
func (g *GridSearch) Search(ctx context.Context, eval Evaluate, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestGains map[string]float64

	err := g.walk(ctx, 0, make(map[string]float64, len(g.keys)), func(current map[string]float64) error {
		pack, err := eval(ctx, current)
		if err != nil {
			return err
		}
		val, ok := pack[metricName]
		if !ok {
			return fmt.Errorf("optim: metric %s not reported", metricName)
		}
		if val < best {
			best = val
			bestGains = make(map[string]float64, len(current))
			for k, v := range current {
				bestGains[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return bestGains, best, nil
}

func (g *GridSearch) walk(ctx context.Context, depth int, current map[string]float64, leaf func(map[string]float64) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.keys) {
		return leaf(current)
	}
	for _, val := range g.ranges[depth] {
		current[g.keys[depth]] = val
		if err := g.walk(ctx, depth+1, current, leaf); err != nil {
			return err
		}
	}
	return nil
}

// Linspace spreads n values evenly across [min, max].
func Linspace(min, max float64, n int) []float64 {
	if n <= 1 {
		return []float64{min}
	}
	out := make([]float64, n)
	delta := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*delta
	}
	return out
}
