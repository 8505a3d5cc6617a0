package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/swayrig/internal/dynamo"
)

// Factory builds an independent simulator for one ensemble member.
type Factory func(seed int64) (*Simulator, error)

// Ensemble runs the same setup under several seeds concurrently. Each member
// owns its own scene, so nothing is shared between goroutines.
type Ensemble struct {
	build     Factory
	numRuns   int
	seedStart int64
}

func NewEnsemble(build Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

// Run executes every member. The first failure cancels the context the
// remaining members run under and is returned.
func (e *Ensemble) Run(ctx context.Context, cfg dynamo.Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			member := cfg
			member.Seed = e.seedStart + int64(i)

			s, err := e.build(member.Seed)
			if err != nil {
				return fmt.Errorf("member %d: %w", i, err)
			}
			results[i], err = s.Run(ctx, member)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MeanMetrics averages each metric across results.
func MeanMetrics(results []*dynamo.Result) map[string]float64 {
	mean := make(map[string]float64)
	if len(results) == 0 {
		return mean
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			mean[k] += v
		}
	}
	for k := range mean {
		mean[k] /= float64(len(results))
	}
	return mean
}
