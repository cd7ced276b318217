package experiment

import (
	"context"
	"math"
	"path/filepath"
	"sort"

	"github.com/numlab/physlab/internal/calc"
	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/figures"
	"github.com/numlab/physlab/internal/storage"
)

// test function for both convergence studies
func arctanCubed(x float64) float64 { return math.Atan(x * x * x) }

func arctanCubedPrime(x float64) float64 {
	x2 := x * x
	return 3 * x2 / (x2*x2*x2 + 1)
}

func cosh2x(x float64) float64 { return math.Cosh(2 * x) }

// DerivExperiment sweeps the step width of three finite-difference
// rules against the analytic derivative of arctan(x^3).
type DerivExperiment struct{}

func (DerivExperiment) Name() string { return "deriv" }
func (DerivExperiment) Description() string {
	return "finite-difference error scaling for arctan(x^3)"
}

func (DerivExperiment) Params(cfg *config.Config) map[string]float64 { return map[string]float64{} }

func (DerivExperiment) Apply(params map[string]float64, cfg *config.Config) {}

func (e DerivExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	const x0 = 1.0 / 3.0
	sweep := calc.DiffSweep(arctanCubed, arctanCubedPrime(x0), x0, 1e-10, 1, 60)
	return sweepOutcome(e.Name(), "derivative error scaling", "deriv_convergence.png", sweep, figDir)
}

// QuadExperiment sweeps the stripe count of three quadrature rules
// against the analytic integral of cosh(2x).
type QuadExperiment struct{}

func (QuadExperiment) Name() string { return "quad" }
func (QuadExperiment) Description() string {
	return "quadrature error scaling for cosh(2x)"
}

func (QuadExperiment) Params(cfg *config.Config) map[string]float64 { return map[string]float64{} }

func (QuadExperiment) Apply(params map[string]float64, cfg *config.Config) {}

func (e QuadExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	a, b := -math.Pi/2, math.Pi/3
	exact := (math.Sinh(2*b) - math.Sinh(2*a)) / 2
	sweep := calc.QuadSweep(cosh2x, exact, a, b, 1, 100000, 40)
	return sweepOutcome(e.Name(), "quadrature error scaling", "quad_convergence.png", sweep, figDir)
}

func sweepOutcome(name, title, figName string, sweep *calc.Sweep, figDir string) (*Outcome, error) {
	methods := make([]string, 0, len(sweep.Errors))
	for m := range sweep.Errors {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	table := &storage.Table{Columns: append([]string{"h"}, methods...)}
	for i, h := range sweep.H {
		row := make([]float64, 0, len(methods)+1)
		row = append(row, h)
		for _, m := range methods {
			row = append(row, sweep.Errors[m][i])
		}
		table.Rows = append(table.Rows, row)
	}

	metrics := make(map[string]float64, len(methods))
	for _, m := range methods {
		metrics["order_"+m] = float64(sweep.Orders[m])
	}

	out := &Outcome{
		Experiment: name,
		Params:     map[string]float64{},
		Metrics:    metrics,
		Tables:     map[string]*storage.Table{"errors": table},
	}

	if figDir != "" {
		path := filepath.Join(figDir, figName)
		if err := figures.Convergence(sweep, title, path); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, path)
	}

	return out, nil
}
