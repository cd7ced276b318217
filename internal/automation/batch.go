package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/experiment"
	"github.com/numlab/physlab/internal/storage"
)

// Batch is a scripted sequence of experiment runs loaded from YAML.
type Batch struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []BatchStep `yaml:"steps"`
}

// BatchStep runs one experiment, starting from a preset or the
// defaults and applying any parameter overrides on top.
type BatchStep struct {
	Experiment string             `yaml:"experiment"`
	Preset     string             `yaml:"preset"`
	Seed       uint64             `yaml:"seed"`
	Params     map[string]float64 `yaml:"params"`
}

// StepResult pairs a finished step with its stored run ID.
type StepResult struct {
	Step    BatchStep
	RunID   string
	Outcome *experiment.Outcome
}

// LoadBatch reads a batch description from a YAML file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if len(batch.Steps) == 0 {
		return nil, fmt.Errorf("automation: %s has no steps", path)
	}
	return &batch, nil
}

// RunBatch executes every step in order, saving each run to the
// store. Figures go to figDir; an empty figDir skips them.
func RunBatch(ctx context.Context, batch *Batch, registry *experiment.Registry, store *storage.Store, figDir string) ([]StepResult, error) {
	results := make([]StepResult, 0, len(batch.Steps))

	for i, step := range batch.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		exp, err := registry.Get(step.Experiment)
		if err != nil {
			return results, fmt.Errorf("automation: step %d: %w", i, err)
		}

		cfg := config.DefaultConfig()
		if step.Preset != "" {
			if p := config.GetPreset(step.Experiment, step.Preset); p != nil {
				cfg = p
			} else {
				return results, fmt.Errorf("automation: step %d: unknown preset %s", i, step.Preset)
			}
		}
		cfg.Experiment = step.Experiment
		if step.Seed != 0 {
			cfg.Seed = step.Seed
		}
		if len(step.Params) > 0 {
			merged := mergeParams(exp, cfg, step.Params)
			exp.Apply(merged, cfg)
		}
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("automation: step %d: %w", i, err)
		}

		out, err := exp.Run(ctx, cfg, figDir)
		if err != nil {
			return results, fmt.Errorf("automation: step %d (%s): %w", i, step.Experiment, err)
		}

		runID, err := store.Save(step.Experiment, cfg.Seed, out.Params, out.Metrics, out.Tables)
		if err != nil {
			return results, err
		}

		results = append(results, StepResult{Step: step, RunID: runID, Outcome: out})
	}

	return results, nil
}

// mergeParams overlays step overrides on the experiment's current
// effective parameters, so a step only needs to name what it changes.
func mergeParams(exp experiment.Experiment, cfg *config.Config, overrides map[string]float64) map[string]float64 {
	base := exp.Params(cfg)
	for k, v := range overrides {
		base[k] = v
	}
	return base
}
