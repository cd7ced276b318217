package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/dynamo"
	"github.com/numlab/physlab/internal/integrators"
	"github.com/numlab/physlab/internal/storage"
)

// Outcome is what one experiment run produces: the effective
// parameters, summary metrics, named data tables for the run store,
// and the figure files written under the figure directory.
type Outcome struct {
	Experiment string
	Params     map[string]float64
	Metrics    map[string]float64
	Tables     map[string]*storage.Table
	Figures    []string
}

// Experiment is one self-contained numerical study.
type Experiment interface {
	Name() string
	Description() string

	// Run executes the experiment and renders its figures into
	// figDir. An empty figDir skips figure rendering.
	Run(ctx context.Context, cfg *config.Config, figDir string) (*Outcome, error)

	// Params flattens the experiment's effective parameters, the
	// same map a finished Outcome reports.
	Params(cfg *config.Config) map[string]float64

	// Apply writes stored run parameters back into a config, so a
	// stored run can be reproduced or replotted.
	Apply(params map[string]float64, cfg *config.Config)
}

type Registry struct {
	experiments map[string]Experiment
}

func NewRegistry() *Registry {
	r := &Registry{experiments: make(map[string]Experiment)}
	for _, e := range []Experiment{
		&MapExperiment{},
		&DerivExperiment{},
		&QuadExperiment{},
		&WellExperiment{},
		&EigenExperiment{},
		&EvolveExperiment{},
		&BlochExperiment{},
		&GasExperiment{},
		&WalkExperiment{},
	} {
		r.experiments[e.Name()] = e
	}
	return r
}

func (r *Registry) Get(name string) (Experiment, error) {
	e, ok := r.experiments[name]
	if !ok {
		return nil, fmt.Errorf("unknown experiment: %s", name)
	}
	return e, nil
}

func (r *Registry) List() []Experiment {
	names := make([]string, 0, len(r.experiments))
	for name := range r.experiments {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Experiment, len(names))
	for i, name := range names {
		out[i] = r.experiments[name]
	}
	return out
}

func pickIntegrator(name string) (dynamo.Integrator, error) {
	switch name {
	case "", "rk4":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	case "leapfrog":
		return integrators.NewLeapfrog(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
