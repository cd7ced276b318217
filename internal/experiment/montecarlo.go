package experiment

import (
	"context"
	"path/filepath"

	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/figures"
	"github.com/numlab/physlab/internal/stochastic"
	"github.com/numlab/physlab/internal/storage"
)

const histogramBins = 30

// GasExperiment estimates the wall pressure of a hard-wall ideal gas.
type GasExperiment struct{}

func (GasExperiment) Name() string { return "gas" }
func (GasExperiment) Description() string {
	return "Monte Carlo wall-pressure distribution of an ideal gas"
}

func (GasExperiment) Params(cfg *config.Config) map[string]float64 {
	return map[string]float64{
		"particles": float64(cfg.Gas.Particles),
		"trials":    float64(cfg.Gas.Trials),
		"window":    cfg.Gas.Window,
		"seed":      float64(cfg.Seed),
	}
}

func (GasExperiment) Apply(params map[string]float64, cfg *config.Config) {
	cfg.Gas.Particles = int(params["particles"])
	cfg.Gas.Trials = int(params["trials"])
	cfg.Gas.Window = params["window"]
	if seed := params["seed"]; seed > 0 {
		cfg.Seed = uint64(seed)
	}
}

func (e GasExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	par := stochastic.GasParams{
		Particles: cfg.Gas.Particles,
		Trials:    cfg.Gas.Trials,
		Window:    cfg.Gas.Window,
		Seed:      cfg.Seed,
	}
	res := stochastic.RunGas(par)

	centers, density := stochastic.Histogram(res.Samples, histogramBins)
	histTable := &storage.Table{Columns: []string{"p", "density", "gaussian"}}
	overlay := stochastic.GaussianPDF(centers, res.Mean, res.Std)
	for i := range centers {
		histTable.Rows = append(histTable.Rows, []float64{centers[i], density[i], overlay[i]})
	}

	sampleTable := &storage.Table{Columns: []string{"trial", "p"}}
	for i, s := range res.Samples {
		sampleTable.Rows = append(sampleTable.Rows, []float64{float64(i), s})
	}

	out := &Outcome{
		Experiment: e.Name(),
		Params:     e.Params(cfg),
		Metrics: map[string]float64{
			"pressure_mean": res.Mean,
			"pressure_std":  res.Std,
		},
		Tables: map[string]*storage.Table{
			"histogram": histTable,
			"samples":   sampleTable,
		},
	}

	if figDir != "" {
		path := filepath.Join(figDir, "gas_pressure.png")
		if err := figures.PressureHistogram(res, histogramBins, path); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, path)
	}

	return out, nil
}

// WalkExperiment propagates drift-diffusion walkers toward an
// absorbing wall.
type WalkExperiment struct{}

func (WalkExperiment) Name() string { return "walk" }
func (WalkExperiment) Description() string {
	return "drift-diffusion ensemble with an absorbing boundary"
}

func (WalkExperiment) Params(cfg *config.Config) map[string]float64 {
	return map[string]float64{
		"walkers":   float64(cfg.Walk.Walkers),
		"v_drift":   cfg.Walk.VDrift,
		"diffusion": cfg.Walk.D,
		"x_abs":     cfg.Walk.XAbs,
		"t_max":     cfg.Walk.TMax,
		"seed":      float64(cfg.Seed),
	}
}

func (WalkExperiment) Apply(params map[string]float64, cfg *config.Config) {
	cfg.Walk.Walkers = int(params["walkers"])
	cfg.Walk.VDrift = params["v_drift"]
	cfg.Walk.D = params["diffusion"]
	cfg.Walk.XAbs = params["x_abs"]
	cfg.Walk.TMax = params["t_max"]
	if seed := params["seed"]; seed > 0 {
		cfg.Seed = uint64(seed)
	}
}

func (e WalkExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	par := stochastic.WalkParams{
		Walkers: cfg.Walk.Walkers,
		X0:      0,
		VDrift:  cfg.Walk.VDrift,
		D:       cfg.Walk.D,
		Dt:      cfg.Dt,
		XAbs:    cfg.Walk.XAbs,
		TMax:    cfg.Walk.TMax,
		Seed:    cfg.Seed,
	}
	res := stochastic.RunWalk(par)

	seriesTable := &storage.Table{Columns: []string{"t", "survive", "mean", "variance"}}
	for _, s := range res.Snapshots {
		seriesTable.Rows = append(seriesTable.Rows, []float64{s.T, s.Survive, s.Mean, s.Variance})
	}

	last := res.Snapshots[len(res.Snapshots)-1]

	out := &Outcome{
		Experiment: e.Name(),
		Params:     e.Params(cfg),
		Metrics: map[string]float64{
			"final_survival": last.Survive,
			"final_mean":     last.Mean,
			"final_variance": last.Variance,
		},
		Tables: map[string]*storage.Table{"snapshots": seriesTable},
	}

	if figDir != "" {
		quarter := int(par.TMax / 4)
		if quarter < 1 {
			quarter = 1
		}
		panels := filepath.Join(figDir, "walk_panels.png")
		times := []int{quarter, 2 * quarter, 3 * quarter, 4 * quarter}
		if err := figures.WalkPanels(res, times, histogramBins, panels); err != nil {
			return nil, err
		}

		series := filepath.Join(figDir, "walk_series.png")
		if err := figures.SurvivalSeries(res, series); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, panels, series)
	}

	return out, nil
}
