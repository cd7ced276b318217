// Package optim sweeps experiment parameters over a grid and picks
// the combination that optimizes a reported metric.
package optim

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/experiment"
)

// Axis is one swept parameter and the values to try for it.
type Axis struct {
	Param  string
	Values []float64
}

// Range builds an axis of n evenly spaced values between lo and hi.
func Range(param string, lo, hi float64, n int) Axis {
	return Axis{Param: param, Values: floats.Span(make([]float64, n), lo, hi)}
}

// GridSearch exhaustively evaluates an experiment on the cartesian
// product of its axes and keeps the best-scoring point.
type GridSearch struct {
	exp      experiment.Experiment
	metric   string
	maximize bool
	axes     []Axis
}

// NewGridSearch minimizes metric over the given axes; call Maximize
// to flip the objective.
func NewGridSearch(exp experiment.Experiment, metric string, axes ...Axis) *GridSearch {
	return &GridSearch{exp: exp, metric: metric, axes: axes}
}

func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Result is the winning grid point.
type Result struct {
	Params map[string]float64
	Score  float64
	Runs   int
}

// Search walks the grid starting from base, returning the best point
// found. Every evaluation applies the candidate parameters on top of
// the experiment's effective parameters under base, so axes only need
// to name what they vary.
func (g *GridSearch) Search(ctx context.Context, base *config.Config) (*Result, error) {
	if len(g.axes) == 0 {
		return nil, fmt.Errorf("optim: no axes to search")
	}
	for _, ax := range g.axes {
		if len(ax.Values) == 0 {
			return nil, fmt.Errorf("optim: axis %s has no values", ax.Param)
		}
	}

	res := &Result{Score: math.Inf(1)}
	if g.maximize {
		res.Score = math.Inf(-1)
	}

	if err := g.walk(ctx, base, 0, map[string]float64{}, res); err != nil {
		return nil, err
	}
	if res.Params == nil {
		return nil, fmt.Errorf("optim: no run reported metric %s", g.metric)
	}
	return res, nil
}

func (g *GridSearch) walk(ctx context.Context, base *config.Config, depth int, point map[string]float64, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.axes) {
		return g.evaluate(ctx, base, point, res)
	}

	ax := g.axes[depth]
	for _, v := range ax.Values {
		point[ax.Param] = v
		if err := g.walk(ctx, base, depth+1, point, res); err != nil {
			return err
		}
	}
	delete(point, ax.Param)
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, base *config.Config, point map[string]float64, res *Result) error {
	cfg := *base
	params := g.exp.Params(&cfg)
	for k, v := range point {
		params[k] = v
	}
	g.exp.Apply(params, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("optim: %v: %w", point, err)
	}

	out, err := g.exp.Run(ctx, &cfg, "")
	if err != nil {
		return fmt.Errorf("optim: %v: %w", point, err)
	}
	res.Runs++

	score, ok := out.Metrics[g.metric]
	if !ok {
		return nil
	}

	better := score < res.Score
	if g.maximize {
		better = score > res.Score
	}
	if better {
		res.Score = score
		res.Params = make(map[string]float64, len(point))
		for k, v := range point {
			res.Params[k] = v
		}
	}
	return nil
}
