package storage

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

func sampleTables() map[string]*Table {
	return map[string]*Table{
		"trajectory": {
			Columns: []string{"t", "x", "p"},
			Rows: [][]float64{
				{0, 1, 0},
				{0.1, 0.99, -0.05},
				{0.2, 0.97, -0.1},
			},
		},
		"energy": {
			Columns: []string{"t", "E"},
			Rows:    [][]float64{{0, 0.5}, {0.2, 0.5}},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	params := map[string]float64{"amplitude": 0.1}
	metrics := map[string]float64{"energy_drift": 1e-6}

	runID, err := store.Save("well", 7, params, metrics, sampleTables())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "well_") {
		t.Errorf("run ID %q missing experiment prefix", runID)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Experiment != "well" || meta.Seed != 7 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if len(meta.Tables) != 2 {
		t.Errorf("tables = %v, want 2 entries", meta.Tables)
	}
	if meta.Metrics["energy_drift"] != 1e-6 {
		t.Errorf("metrics lost: %v", meta.Metrics)
	}
}

func TestLoadTable(t *testing.T) {
	store := New(t.TempDir())
	runID, err := store.Save("well", 1, nil, nil, sampleTables())
	if err != nil {
		t.Fatal(err)
	}

	tab, err := store.LoadTable(runID, "trajectory")
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tab.Rows))
	}

	xs := tab.Column("x")
	if len(xs) != 3 || xs[0] != 1 {
		t.Errorf("column x = %v", xs)
	}
	if tab.Column("nonexistent") != nil {
		t.Error("missing column should return nil")
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Save("gas", 1, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	second, err := store.Save("walk", 1, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].ID != second {
		t.Errorf("newest run should come first, got %s", runs[0].ID)
	}
}

func TestListEmptyDir(t *testing.T) {
	store := New(t.TempDir() + "/missing")
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %d, want 0", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	store := New(t.TempDir())
	runID, err := store.Save("well", 1, nil, map[string]float64{"drift": 0}, sampleTables())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.ID != runID {
		t.Errorf("exported ID = %s, want %s", data.ID, runID)
	}
	traj, ok := data.Series["trajectory"]
	if !ok || len(traj.Rows) != 3 {
		t.Errorf("trajectory series missing or truncated: %+v", data.Series)
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	runID, err := store.Save("well", 1, nil, nil, sampleTables())
	if err != nil {
		t.Fatal(err)
	}

	out := dir + "/energy_copy.csv"
	if err := store.ExportCSV(out, runID, "energy"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus 2 rows", len(lines))
	}
	if lines[0] != "t,E" {
		t.Errorf("header = %q, want t,E", lines[0])
	}
}

func TestExportCSVStdout(t *testing.T) {
	store := New(t.TempDir())
	runID, err := store.Save("well", 1, nil, nil, sampleTables())
	if err != nil {
		t.Fatal(err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	exportErr := store.ExportCSV("-", runID, "energy")
	w.Close()
	os.Stdout = orig

	if exportErr != nil {
		t.Fatal(exportErr)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 || lines[0] != "t,E" {
		t.Errorf("stdout export = %q, want t,E header plus 2 rows", string(data))
	}
}
