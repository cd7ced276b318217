package experiment

import (
	"context"
	"path/filepath"

	"github.com/numlab/physlab/internal/analysis"
	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/dynamo"
	"github.com/numlab/physlab/internal/figures"
	"github.com/numlab/physlab/internal/metrics"
	"github.com/numlab/physlab/internal/physics"
	"github.com/numlab/physlab/internal/storage"
)

// WellExperiment integrates a particle in the driven double well and
// samples the trajectory stroboscopically at the drive period.
type WellExperiment struct{}

func (WellExperiment) Name() string { return "well" }
func (WellExperiment) Description() string {
	return "driven double-well phase portrait with stroboscopic section"
}

func (WellExperiment) Params(cfg *config.Config) map[string]float64 {
	return map[string]float64{
		"tilt":      cfg.Well.Tilt,
		"amplitude": cfg.Well.Amplitude,
		"omega":     cfg.Well.Omega,
		"x0":        cfg.Well.X0,
		"p0":        cfg.Well.P0,
		"dt":        cfg.Dt,
		"duration":  cfg.Duration,
	}
}

func (WellExperiment) Apply(params map[string]float64, cfg *config.Config) {
	cfg.Well.Tilt = params["tilt"]
	cfg.Well.Amplitude = params["amplitude"]
	cfg.Well.Omega = params["omega"]
	cfg.Well.X0 = params["x0"]
	cfg.Well.P0 = params["p0"]
	if dt := params["dt"]; dt > 0 {
		cfg.Dt = dt
	}
	if dur := params["duration"]; dur > 0 {
		cfg.Duration = dur
	}
}

func (e WellExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	well := physics.NewDrivenDoubleWell()
	well.A = cfg.Well.Tilt
	well.B = cfg.Well.Amplitude
	if cfg.Well.Omega != 0 {
		well.Omega = cfg.Well.Omega
	}

	integ, err := pickIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	sim := dynamo.New(well, integ, well.Drive())
	sim.AddMetric(metrics.NewEnergyDrift(well))
	sim.AddMetric(metrics.NewDriveWork(cfg.Dt))
	sim.AddMetric(metrics.NewStability(50))

	x0 := dynamo.State{cfg.Well.X0, cfg.Well.P0}
	runCfg := dynamo.DefaultConfig()
	runCfg.Dt = cfg.Dt
	runCfg.Duration = cfg.Duration

	result, err := sim.Run(ctx, x0, runCfg)
	if err != nil {
		return nil, err
	}

	traj := analysis.PhasePortrait(result, 0, 1)
	strobe := analysis.Strobe(result, 0, 1, well.Period())

	// the final state has no force sample, so iterate the forces
	trajTable := &storage.Table{Columns: []string{"t", "x", "p", "f"}}
	for i := range result.Forces {
		trajTable.Rows = append(trajTable.Rows, []float64{
			result.Times[i], result.States[i][0], result.States[i][1], result.Forces[i],
		})
	}

	strobeTable := &storage.Table{Columns: []string{"x", "p"}}
	for _, pt := range strobe {
		strobeTable.Rows = append(strobeTable.Rows, []float64{pt.X, pt.Y})
	}

	metricsOut := make(map[string]float64, len(result.Metrics))
	for k, v := range result.Metrics {
		metricsOut[k] = v
	}
	metricsOut["strobe_points"] = float64(len(strobe))

	out := &Outcome{
		Experiment: e.Name(),
		Params:     e.Params(cfg),
		Metrics:    metricsOut,
		Tables: map[string]*storage.Table{
			"trajectory": trajTable,
			"strobe":     strobeTable,
		},
	}

	if figDir != "" {
		path := filepath.Join(figDir, "well_portrait.png")
		if err := figures.WellPortrait(well, traj, strobe, path); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, path)
	}

	return out, nil
}
