package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/numlab/physlab/internal/experiment"
	"github.com/numlab/physlab/internal/storage"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatch(t *testing.T) {
	path := writeBatchFile(t, `
name: smoke
description: quick sanity runs
steps:
  - experiment: gas
    seed: 7
    params:
      trials: 200
      particles: 4
  - experiment: deriv
`)

	batch, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if batch.Name != "smoke" {
		t.Errorf("name = %q, want smoke", batch.Name)
	}
	if len(batch.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(batch.Steps))
	}
	if batch.Steps[0].Seed != 7 {
		t.Errorf("seed = %d, want 7", batch.Steps[0].Seed)
	}
	if batch.Steps[0].Params["trials"] != 200 {
		t.Errorf("trials override = %v, want 200", batch.Steps[0].Params["trials"])
	}
}

func TestLoadBatchRejectsEmpty(t *testing.T) {
	path := writeBatchFile(t, "name: empty\nsteps: []\n")
	if _, err := LoadBatch(path); err == nil {
		t.Error("expected error for batch with no steps")
	}
}

func TestLoadBatchRejectsBadYAML(t *testing.T) {
	path := writeBatchFile(t, "steps: [not: [valid")
	if _, err := LoadBatch(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadBatchMissingFile(t *testing.T) {
	if _, err := LoadBatch(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunBatch(t *testing.T) {
	batch := &Batch{
		Name: "smoke",
		Steps: []BatchStep{
			{
				Experiment: "gas",
				Seed:       7,
				Params:     map[string]float64{"trials": 200, "particles": 4},
			},
			{Experiment: "deriv"},
		},
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunBatch(context.Background(), batch, experiment.NewRegistry(), st, "")
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	gas := results[0]
	if gas.Outcome.Params["trials"] != 200 {
		t.Errorf("trials = %v, want override 200", gas.Outcome.Params["trials"])
	}
	if gas.Outcome.Params["seed"] != 7 {
		t.Errorf("seed = %v, want 7", gas.Outcome.Params["seed"])
	}
	if _, ok := gas.Outcome.Metrics["pressure_mean"]; !ok {
		t.Error("gas run missing pressure_mean metric")
	}

	// runs must land in the store
	for _, r := range results {
		if _, err := st.Load(r.RunID); err != nil {
			t.Errorf("load %s: %v", r.RunID, err)
		}
	}
}

func TestRunBatchStepsAreIndependent(t *testing.T) {
	batch := &Batch{
		Steps: []BatchStep{
			{
				Experiment: "gas",
				Preset:     "classroom",
				Params:     map[string]float64{"particles": 2, "trials": 200},
			},
			{
				Experiment: "gas",
				Preset:     "classroom",
				Params:     map[string]float64{"trials": 200},
			},
		},
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunBatch(context.Background(), batch, experiment.NewRegistry(), st, "")
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if results[0].Outcome.Params["particles"] != 2 {
		t.Errorf("step 1 particles = %v, want override 2", results[0].Outcome.Params["particles"])
	}
	// step 2 names the same preset and must not see step 1's override
	if results[1].Outcome.Params["particles"] != 8 {
		t.Errorf("step 2 particles = %v, want preset value 8", results[1].Outcome.Params["particles"])
	}
}

func TestRunBatchUnknownExperiment(t *testing.T) {
	batch := &Batch{Steps: []BatchStep{{Experiment: "nope"}}}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := RunBatch(context.Background(), batch, experiment.NewRegistry(), st, ""); err == nil {
		t.Error("expected error for unknown experiment")
	}
}

func TestRunBatchUnknownPreset(t *testing.T) {
	batch := &Batch{Steps: []BatchStep{{Experiment: "gas", Preset: "nope"}}}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := RunBatch(context.Background(), batch, experiment.NewRegistry(), st, ""); err == nil {
		t.Error("expected error for unknown preset")
	}
}
