package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Times  []float64   `json:"times"`
	Fields [][]float64 `json:"fields"`
}

// ExportJSON writes a stored run, metadata and snapshots, as one JSON
// document. Non-finite samples cannot be encoded and produce an error.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	fields, times, err := s.LoadFields(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Times: times, Fields: fields})
}

// ExportJSONFile is ExportJSON to a new file at path.
func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.ExportJSON(file, runID); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ExportCSV copies a run's fields.csv to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	file, err := os.Open(s.FieldsPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrRunNotFound
		}
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
