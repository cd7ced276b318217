package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON shape of a full run dump.
type ExportData struct {
	RunMetadata
	Series map[string]*exportTable `json:"series"`
}

type exportTable struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// ExportJSON writes a run with all of its tables as one indented JSON
// document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Series:      make(map[string]*exportTable, len(meta.Tables)),
	}
	for _, name := range meta.Tables {
		t, err := s.LoadTable(runID, name)
		if err != nil {
			return err
		}
		data.Series[name] = &exportTable{Columns: t.Columns, Rows: t.Rows}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the run dump to a file, or to stdout when the
// path is "-".
func (s *Store) ExportJSONFile(path, runID string) error {
	if path == "-" {
		return s.ExportJSON(os.Stdout, runID)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.ExportJSON(f, runID)
}

// ExportCSV copies one table of a run to a standalone CSV file, or
// to stdout when the path is "-".
func (s *Store) ExportCSV(path, runID, table string) error {
	t, err := s.LoadTable(runID, table)
	if err != nil {
		return err
	}
	if path == "-" {
		return writeCSV(os.Stdout, t)
	}
	return writeTable(path, t)
}
