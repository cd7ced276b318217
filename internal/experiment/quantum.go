package experiment

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/figures"
	"github.com/numlab/physlab/internal/quantum"
	"github.com/numlab/physlab/internal/storage"
)

// boundLevels picks the level indices to report: everything below the
// energy cut, or the lowest six when no cut is set.
func boundLevels(energies []float64, eMax float64) []int {
	if eMax != 0 {
		var idx []int
		for i, e := range energies {
			if e < eMax {
				idx = append(idx, i)
			}
		}
		return idx
	}
	n := 6
	if n > len(energies) {
		n = len(energies)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func gridParams(cfg *config.Config) map[string]float64 {
	return map[string]float64{
		"x_min":  cfg.Grid.XMin,
		"x_max":  cfg.Grid.XMax,
		"points": float64(cfg.Grid.Points),
		"h_eff":  cfg.Grid.HEff,
		"tilt":   cfg.Grid.Tilt,
		"e_max":  cfg.Grid.EMax,
	}
}

func applyGridParams(params map[string]float64, cfg *config.Config) {
	cfg.Grid.XMin = params["x_min"]
	cfg.Grid.XMax = params["x_max"]
	cfg.Grid.Points = int(params["points"])
	cfg.Grid.HEff = params["h_eff"]
	cfg.Grid.Tilt = params["tilt"]
	cfg.Grid.EMax = params["e_max"]
}

// EigenExperiment diagonalizes the hard-walled double well and
// reports its bound spectrum.
type EigenExperiment struct{}

func (EigenExperiment) Name() string { return "eigen" }
func (EigenExperiment) Description() string {
	return "stationary states of the asymmetric double well"
}

func (EigenExperiment) Params(cfg *config.Config) map[string]float64 {
	return gridParams(cfg)
}

func (EigenExperiment) Apply(params map[string]float64, cfg *config.Config) {
	applyGridParams(params, cfg)
}

func (e EigenExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	x, _ := quantum.Discretize(cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.Points)
	v := quantum.AsymmetricDoubleWell(cfg.Grid.Tilt)

	spec, err := quantum.Solve(cfg.Grid.HEff, x, v)
	if err != nil {
		return nil, err
	}

	levels := boundLevels(spec.Energies, cfg.Grid.EMax)

	levelTable := &storage.Table{Columns: []string{"n", "E"}}
	for _, idx := range levels {
		levelTable.Rows = append(levelTable.Rows, []float64{float64(idx), spec.Energies[idx]})
	}

	waveCols := []string{"x"}
	for _, idx := range levels {
		waveCols = append(waveCols, fmt.Sprintf("psi%d", idx))
	}
	waveTable := &storage.Table{Columns: waveCols}
	waves := make([][]float64, len(levels))
	for i, idx := range levels {
		waves[i] = spec.Wave(idx)
	}
	for i, xi := range spec.X {
		row := []float64{xi}
		for _, w := range waves {
			row = append(row, w[i])
		}
		waveTable.Rows = append(waveTable.Rows, row)
	}

	out := &Outcome{
		Experiment: e.Name(),
		Params:     e.Params(cfg),
		Metrics: map[string]float64{
			"ground_energy": spec.Energies[0],
			"splitting":     spec.Energies[1] - spec.Energies[0],
			"bound_levels":  float64(len(levels)),
		},
		Tables: map[string]*storage.Table{
			"levels": levelTable,
			"waves":  waveTable,
		},
	}

	if figDir != "" {
		eMax := cfg.Grid.EMax
		if eMax == 0 {
			eMax = spec.Energies[levels[len(levels)-1]] + 1e-12
		}
		path := filepath.Join(figDir, "eigen_ladder.png")
		if err := figures.EigenLadder(spec, v, eMax, cfg.Grid.HEff, path); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, path)
	}

	return out, nil
}

// EvolveExperiment expands a Gaussian packet in the double-well
// eigenbasis and propagates it spectrally.
type EvolveExperiment struct{}

func (EvolveExperiment) Name() string { return "evolve" }
func (EvolveExperiment) Description() string {
	return "spectral time evolution of a Gaussian wave packet"
}

func (EvolveExperiment) Params(cfg *config.Config) map[string]float64 {
	params := gridParams(cfg)
	params["packet_x0"] = cfg.Packet.X0
	params["packet_sigma"] = cfg.Packet.Sigma
	params["packet_p0"] = cfg.Packet.P0
	return params
}

func (EvolveExperiment) Apply(params map[string]float64, cfg *config.Config) {
	applyGridParams(params, cfg)
	cfg.Packet.X0 = params["packet_x0"]
	cfg.Packet.Sigma = params["packet_sigma"]
	cfg.Packet.P0 = params["packet_p0"]
}

func (e EvolveExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	x, dx := quantum.Discretize(cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.Points)
	v := quantum.AsymmetricDoubleWell(cfg.Grid.Tilt)

	spec, err := quantum.Solve(cfg.Grid.HEff, x, v)
	if err != nil {
		return nil, err
	}

	phi := quantum.Gaussian(x, cfg.Packet.X0, cfg.Packet.Sigma, cfg.Packet.P0, cfg.Grid.HEff)
	ev := quantum.NewEvolution(spec, phi)

	times := cfg.Packet.Times
	if len(times) == 0 {
		times = []float64{0, 5, 10, 20}
	}

	densityCols := []string{"x"}
	for _, t := range times {
		densityCols = append(densityCols, fmt.Sprintf("rho_t%g", t))
	}
	densityTable := &storage.Table{Columns: densityCols}
	snapshots := make([][]float64, len(times))
	norms := make([]float64, len(times))
	for i, t := range times {
		phiT := ev.At(t)
		snapshots[i] = quantum.Density(phiT)
		norms[i] = quantum.Norm(phiT, dx)
	}
	for i, xi := range spec.X {
		row := []float64{xi}
		for _, snap := range snapshots {
			row = append(row, snap[i])
		}
		densityTable.Rows = append(densityTable.Rows, row)
	}

	normTable := &storage.Table{Columns: []string{"t", "norm"}}
	for i, t := range times {
		normTable.Rows = append(normTable.Rows, []float64{t, norms[i]})
	}

	out := &Outcome{
		Experiment: e.Name(),
		Params:     e.Params(cfg),
		Metrics: map[string]float64{
			"energy":   ev.Energy,
			"residual": ev.Residual,
		},
		Tables: map[string]*storage.Table{
			"density": densityTable,
			"norms":   normTable,
		},
	}

	if figDir != "" {
		path := filepath.Join(figDir, "packet_evolution.png")
		if err := figures.PacketEvolution(ev, spec, times, path); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, path)
	}

	return out, nil
}

// BlochExperiment diagonalizes the periodic cosine potential across
// the Brillouin zone.
type BlochExperiment struct{}

func (BlochExperiment) Name() string { return "bloch" }
func (BlochExperiment) Description() string {
	return "energy bands of a periodic cosine potential"
}

func (BlochExperiment) Params(cfg *config.Config) map[string]float64 {
	params := gridParams(cfg)
	params["amplitude"] = cfg.Lattice.Amplitude
	params["bloch_k"] = cfg.Lattice.K
	params["n_k"] = float64(cfg.Lattice.NK)
	params["n_bands"] = float64(cfg.Lattice.NBands)
	params["periods"] = float64(cfg.Lattice.Periods)
	return params
}

func (BlochExperiment) Apply(params map[string]float64, cfg *config.Config) {
	applyGridParams(params, cfg)
	cfg.Lattice.Amplitude = params["amplitude"]
	cfg.Lattice.K = params["bloch_k"]
	cfg.Lattice.NK = int(params["n_k"])
	cfg.Lattice.NBands = int(params["n_bands"])
	cfg.Lattice.Periods = int(params["periods"])
}

func (e BlochExperiment) Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error) {
	x, _ := quantum.PeriodicGrid(cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.Points)
	v := quantum.Cosine(cfg.Lattice.Amplitude)

	bands, err := quantum.Bands(cfg.Grid.HEff, x, v, cfg.Lattice.NK, cfg.Lattice.NBands)
	if err != nil {
		return nil, err
	}

	bandCols := []string{"k"}
	for i := range bands {
		bandCols = append(bandCols, fmt.Sprintf("E%d", i))
	}
	bandTable := &storage.Table{Columns: bandCols}
	for i := range bands[0].K {
		row := []float64{bands[0].K[i]}
		for _, b := range bands {
			row = append(row, b.E[i])
		}
		bandTable.Rows = append(bandTable.Rows, row)
	}

	spec, err := quantum.SolveBloch(cfg.Grid.HEff, x, v, cfg.Lattice.K)
	if err != nil {
		return nil, err
	}

	gap := 0.0
	if len(bands) > 1 {
		// band gap read off at the zone edge
		gap = bands[1].E[0] - bands[0].E[0]
	}

	out := &Outcome{
		Experiment: e.Name(),
		Params:     e.Params(cfg),
		Metrics: map[string]float64{
			"edge_gap":    gap,
			"band_bottom": bands[0].E[len(bands[0].E)/2],
		},
		Tables: map[string]*storage.Table{"bands": bandTable},
	}

	if figDir != "" {
		bandFig := filepath.Join(figDir, "bloch_bands.png")
		if err := figures.BandDiagram(bands, "cosine lattice bands", bandFig); err != nil {
			return nil, err
		}

		eMax := cfg.Grid.EMax
		if eMax == 0 && len(spec.Energies) > 3 {
			eMax = spec.Energies[3] + 1e-12
		}
		densFig := filepath.Join(figDir, "bloch_densities.png")
		if err := figures.BlochDensities(spec, eMax, cfg.Lattice.Periods, densFig); err != nil {
			return nil, err
		}
		out.Figures = append(out.Figures, bandFig, densFig)
	}

	return out, nil
}
