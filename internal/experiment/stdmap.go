package experiment

import (
	"context"
	"path/filepath"

	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/figures"
	"github.com/numlab/physlab/internal/stdmap"
	"github.com/numlab/physlab/internal/storage"
)

// kick-strength scan window for the chaos-onset curve
const (
	scanKMin   = 0.2
	scanKMax   = 10.0
	scanPoints = 50
	scanIters  = 2000
)

// MapExperiment iterates the kicked rotor from a grid of seeds and
// scans the kick strength for the chaos transition.
type MapExperiment struct{}

func (MapExperiment) Name() string { return "stdmap" }
func (MapExperiment) Description() string {
	return "kicked rotor phase portraits and Lyapunov scan"
}

func (MapExperiment) Params(cfg *config.Config) map[string]float64 {
	return map[string]float64{
		"k":         cfg.Map.K,
		"iters":     float64(cfg.Map.Iters),
		"seed_rows": float64(cfg.Map.Rows),
		"seed_cols": float64(cfg.Map.Cols),
	}
}

func (MapExperiment) Apply(params map[string]float64, cfg *config.Config) {
	cfg.Map.K = params["k"]
	cfg.Map.Iters = int(params["iters"])
	cfg.Map.Rows = int(params["seed_rows"])
	cfg.Map.Cols = int(params["seed_cols"])
}

func (e MapExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	m := stdmap.New(cfg.Map.K)
	seeds := stdmap.SeedGrid(cfg.Map.Rows, cfg.Map.Cols)

	orbits := make([][]stdmap.Point, len(seeds))
	orbitTable := &storage.Table{Columns: []string{"seed", "theta", "p"}}
	lambdaSum := 0.0
	for i, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		orbits[i] = m.Orbit(seed.Theta, seed.P, cfg.Map.Iters)
		lambdaSum += m.Lyapunov(seed.Theta, seed.P, cfg.Map.Iters)
		for _, pt := range orbits[i] {
			orbitTable.Rows = append(orbitTable.Rows, []float64{float64(i), pt.Theta, pt.P})
		}
	}

	scan := stdmap.ScanK(scanKMin, scanKMax, scanPoints, scanIters)
	scanTable := &storage.Table{Columns: []string{"k", "lambda"}}
	for _, pt := range scan {
		scanTable.Rows = append(scanTable.Rows, []float64{pt.K, pt.Lambda})
	}

	out := &Outcome{
		Experiment: e.Name(),
		Params:     e.Params(cfg),
		Metrics: map[string]float64{
			"lyapunov_mean": lambdaSum / float64(len(seeds)),
		},
		Tables: map[string]*storage.Table{
			"orbits": orbitTable,
			"kscan":  scanTable,
		},
	}

	if figDir != "" {
		portrait := filepath.Join(figDir, "stdmap_portrait.png")
		if err := figures.MapPortrait(cfg.Map.K, orbits, portrait); err != nil {
			return nil, err
		}
		scanFig := filepath.Join(figDir, "stdmap_kscan.png")
		if err := figures.LyapunovScan(scan, scanFig); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, portrait, scanFig)
	}

	return out, nil
}
