package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/experiment"
)

var ErrNoResult = errors.New("optim: no configuration produced the metric")

// GridSearch tries every combination of parameter values and keeps the one
// with the smallest metric value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Candidate is one evaluated grid point.
type Candidate struct {
	Params map[string]float64
	Value  float64
}

// Search runs base once per grid point. Points whose config is invalid or
// whose run fails are skipped; it fails only if none produced the metric.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (*Candidate, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := &Candidate{Value: math.Inf(1)}
	g.searchRecursive(ctx, 0, map[string]float64{}, base, metricName, best)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if best.Params == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoResult, metricName)
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, base *config.Config, metricName string, best *Candidate) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		cfg, err := experiment.Apply(base, current)
		if err != nil {
			return
		}
		out, err := experiment.New(cfg, nil).Run(ctx)
		if err != nil {
			return
		}

		val, ok := out.Result.Metrics[metricName]
		if !ok || math.IsNaN(val) {
			return
		}
		if val < best.Value {
			best.Value = val
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, base, metricName, best)
	}
}
