package optim

import (
	"context"
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/experiment"
)

// Objective scores a finished run's metrics; lower is better.
type Objective func(metrics map[string]float64) float64

// Minimize scores runs by a single metric.
func Minimize(metric string) Objective {
	return func(m map[string]float64) float64 {
		v, ok := m[metric]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

// Target scores runs by distance of a metric from a wanted value.
func Target(metric string, want float64) Objective {
	return func(m map[string]float64) float64 {
		v, ok := m[metric]
		if !ok {
			return math.Inf(1)
		}
		return math.Abs(v - want)
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Points enumerates every parameter combination in row-major order.
func (g *GridSearch) Points() []map[string]float64 {
	points := []map[string]float64{{}}
	for d, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(points)*len(g.ranges[d]))
		for _, p := range points {
			for _, val := range g.ranges[d] {
				np := make(map[string]float64, len(p)+1)
				for k, v := range p {
					np[k] = v
				}
				np[name] = val
				next = append(next, np)
			}
		}
		points = next
	}
	return points
}

// Search evaluates every combination concurrently and returns the best one.
// Each point builds its own experiment, so nothing is shared across workers.
// Points that fail to build or run are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	objective Objective,
) (map[string]float64, float64, error) {
	points := g.Points()
	scores := make([]float64, len(points))

	dynamo.ParallelFor(len(points), 1, func(start, end int) {
		for i := start; i < end; i++ {
			scores[i] = math.Inf(1)
			if ctx.Err() != nil {
				continue
			}
			exp, err := buildExperiment(points[i])
			if err != nil {
				continue
			}
			result, err := exp.Run(ctx)
			if err != nil {
				continue
			}
			scores[i] = objective(result.Metrics)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, math.Inf(1), err
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	for i, s := range scores {
		if s < best {
			best = s
			bestParams = points[i]
		}
	}
	return bestParams, best, nil
}
