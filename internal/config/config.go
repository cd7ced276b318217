package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 200.0
	DefaultHEff     = 0.07
	DefaultSeed     = 1
)

// Config is the on-disk run description. Every experiment reads the
// common block plus its own section; unused sections are ignored.
type Config struct {
	Experiment string  `yaml:"experiment"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Seed       uint64  `yaml:"seed"`

	Map     MapConfig     `yaml:"map"`
	Well    WellConfig    `yaml:"well"`
	Grid    GridConfig    `yaml:"grid"`
	Packet  PacketConfig  `yaml:"packet"`
	Lattice LatticeConfig `yaml:"lattice"`
	Gas     GasConfig     `yaml:"gas"`
	Walk    WalkConfig    `yaml:"walk"`
}

// MapConfig parameterizes the kicked-rotor map.
type MapConfig struct {
	K     float64 `yaml:"k"`
	Iters int     `yaml:"iters"`
	Rows  int     `yaml:"seed_rows"`
	Cols  int     `yaml:"seed_cols"`
}

// WellConfig parameterizes the driven double well.
type WellConfig struct {
	Tilt      float64 `yaml:"tilt"`
	Amplitude float64 `yaml:"amplitude"`
	Omega     float64 `yaml:"omega"`
	X0        float64 `yaml:"x0"`
	P0        float64 `yaml:"p0"`
}

// GridConfig sets the position grid of the quantum solvers.
type GridConfig struct {
	XMin   float64 `yaml:"x_min"`
	XMax   float64 `yaml:"x_max"`
	Points int     `yaml:"points"`
	HEff   float64 `yaml:"h_eff"`
	Tilt   float64 `yaml:"tilt"`
	EMax   float64 `yaml:"e_max"`
}

// PacketConfig describes the initial Gaussian packet.
type PacketConfig struct {
	X0    float64   `yaml:"x0"`
	Sigma float64   `yaml:"sigma"`
	P0    float64   `yaml:"p0"`
	Times []float64 `yaml:"times"`
}

// LatticeConfig parameterizes the periodic-potential solver.
type LatticeConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	K         float64 `yaml:"bloch_k"`
	NK        int     `yaml:"n_k"`
	NBands    int     `yaml:"n_bands"`
	Periods   int     `yaml:"periods"`
}

// GasConfig parameterizes the pressure estimator.
type GasConfig struct {
	Particles int     `yaml:"particles"`
	Trials    int     `yaml:"trials"`
	Window    float64 `yaml:"window"`
}

// WalkConfig parameterizes the drift-diffusion ensemble.
type WalkConfig struct {
	Walkers int     `yaml:"walkers"`
	VDrift  float64 `yaml:"v_drift"`
	D       float64 `yaml:"diffusion"`
	XAbs    float64 `yaml:"x_abs"`
	TMax    float64 `yaml:"t_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Experiment: "well",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Seed:       DefaultSeed,
		Map:        MapConfig{K: 2.6, Iters: 1000, Rows: 10, Cols: 10},
		Well:       WellConfig{Tilt: 0.2, Amplitude: 0.1, Omega: 1.0, X0: 1.0},
		Grid:       GridConfig{XMin: -1.5, XMax: 1.5, Points: 500, HEff: DefaultHEff, Tilt: 0.15, EMax: 0.0},
		Packet:     PacketConfig{X0: -0.7, Sigma: 0.1, P0: 0, Times: []float64{0, 5, 10, 20}},
		Lattice:    LatticeConfig{Amplitude: 2, NK: 61, NBands: 4, Periods: 3},
		Gas:        GasConfig{Particles: 8, Trials: 10000, Window: 4},
		Walk:       WalkConfig{Walkers: 10000, VDrift: 0.1, D: 1.5, XAbs: 15, TMax: 40},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values no experiment can run with.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Grid.Points < 2 {
		return fmt.Errorf("grid needs at least 2 points, got %d", c.Grid.Points)
	}
	if c.Grid.XMax <= c.Grid.XMin {
		return fmt.Errorf("grid window [%g, %g] is empty", c.Grid.XMin, c.Grid.XMax)
	}
	if c.Grid.HEff <= 0 {
		return fmt.Errorf("h_eff must be positive, got %g", c.Grid.HEff)
	}
	if c.Packet.Sigma <= 0 {
		return fmt.Errorf("packet sigma must be positive, got %g", c.Packet.Sigma)
	}
	if c.Lattice.NK < 2 {
		return fmt.Errorf("band sweep needs at least 2 k points, got %d", c.Lattice.NK)
	}
	return nil
}
