package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/skyrmsim/internal/automation"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/metrics"
	"github.com/san-kum/skyrmsim/internal/sim"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// Goal selects whether the search minimises or maximises the metric.
type Goal int

const (
	Minimize Goal = iota
	Maximize
)

func ParseGoal(s string) (Goal, error) {
	switch s {
	case "min", "minimize":
		return Minimize, nil
	case "max", "maximize":
		return Maximize, nil
	}
	return Minimize, fmt.Errorf("unknown goal %q (want min or max)", s)
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	goal       Goal
}

func NewGridSearch(params []string, ranges [][]float64, goal Goal) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, goal: goal}
}

// Search evaluates every point of the cartesian grid over base with the
// default metric set and returns the best point for metricName. All points
// run concurrently through sim.Sweep.
func (g *GridSearch) Search(
	ctx context.Context,
	fieldCfg skyrmion.Config,
	base efield.Params,
	ticks int,
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	points := make([]map[string]float64, 0)
	g.searchRecursive(0, make(map[string]float64), &points)
	if len(points) == 0 {
		return nil, 0, fmt.Errorf("empty search grid")
	}

	origin := fieldCfg.Origin()
	jobs := make([]sim.Job, len(points))
	for i, pt := range points {
		params := base
		for name, v := range pt {
			var err error
			if params, err = automation.WithParam(params, name, v); err != nil {
				return nil, 0, err
			}
		}
		jobs[i] = sim.Job{
			Field:   fieldCfg,
			Params:  params,
			Metrics: func() []sim.Metric { return metrics.Default(origin) },
		}
	}

	cfg := sim.DefaultConfig()
	cfg.Ticks = ticks
	results, err := sim.Sweep(ctx, jobs, cfg)
	if err != nil {
		return nil, 0, err
	}

	values := make([]float64, len(results))
	for i, r := range results {
		val, ok := r.Metrics[metricName]
		if !ok {
			return nil, 0, fmt.Errorf("unknown metric %q", metricName)
		}
		values[i] = val
	}

	return g.pick(points, values, metricName)
}

// pick returns the best point. NaN values never win, so a grid where every
// value is NaN is an error.
func (g *GridSearch) pick(points []map[string]float64, values []float64, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	if g.goal == Maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	for i, val := range values {
		if math.IsNaN(val) {
			continue
		}
		if bestParams == nil || g.better(val, best) {
			best = val
			bestParams = points[i]
		}
	}

	if bestParams == nil {
		return nil, 0, fmt.Errorf("every grid point gave NaN for %s", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) better(v, best float64) bool {
	if g.goal == Maximize {
		return v > best
	}
	return v < best
}

func (g *GridSearch) searchRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(depth+1, newParams, out)
	}
}
