// Package storage persists simulation runs as a directory per run holding
// metadata.json and fields.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/sim"
)

const (
	metadataFile = "metadata.json"
	fieldsFile   = "fields.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Initial     string             `json:"initial"`
	Integrator  string             `json:"integrator"`
	Operator    string             `json:"operator"`
	Smoother    string             `json:"smoother"`
	SmoothEvery int                `json:"smooth_every,omitempty"`
	Length      float64            `json:"length"`
	Points      int                `json:"points"`
	Dx          float64            `json:"dx"`
	Nu          float64            `json:"nu"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	StepsTaken  int                `json:"steps_taken"`
	Unstable    bool               `json:"unstable"`
	Errors      []string           `json:"errors,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewRunID returns "<name>_<uuid>".
func NewRunID(name string) string {
	if name == "" {
		name = "run"
	}
	return fmt.Sprintf("%s_%s", name, uuid.NewString())
}

func newMetadata(cfg *config.Config, result *sim.Result) RunMetadata {
	meta := RunMetadata{
		ID:          NewRunID(cfg.Name),
		Name:        cfg.Name,
		Timestamp:   time.Now(),
		Initial:     cfg.Initial,
		Integrator:  cfg.Integrator,
		Operator:    cfg.Operator,
		Smoother:    cfg.Smoother,
		SmoothEvery: cfg.SmoothEvery,
		Length:      cfg.Length,
		Points:      cfg.Points,
		Dx:          cfg.Dx(),
		Nu:          cfg.Nu,
		Dt:          cfg.Dt,
		Duration:    result.FinalTime(),
		StepsTaken:  result.StepsTaken,
		Unstable:    result.Unstable,
		Metrics:     sanitizeMetrics(result.Metrics),
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}
	return meta
}

// sanitizeMetrics drops non-finite values, which encoding/json rejects.
func sanitizeMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

// Save writes a new run directory and returns its ID.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	meta := newMetadata(cfg, result)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, fieldsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFieldsCSV(csvFile, result); err != nil {
		return "", fmt.Errorf("write fields: %w", err)
	}

	return meta.ID, nil
}

// WriteFieldsCSV writes a header "time,u0,...,uN-1" and one row per saved
// field. Values use the shortest representation that round-trips.
func WriteFieldsCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)

	if len(result.Fields) > 0 {
		header := []string{"time"}
		for i := range result.Fields[0] {
			header = append(header, fmt.Sprintf("u%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for i, u := range result.Fields {
		row := make([]string, 0, len(u)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, val := range u {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// FieldsPath returns the location of a run's fields.csv.
func (s *Store) FieldsPath(runID string) string {
	return filepath.Join(s.baseDir, runID, fieldsFile)
}

// LoadFields reads fields.csv back into snapshots and their times.
func (s *Store) LoadFields(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(s.FieldsPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	fields := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: time: %w", i, err)
		}

		u := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			u = append(u, val)
		}
		times = append(times, t)
		fields = append(fields, u)
	}

	return fields, times, nil
}
