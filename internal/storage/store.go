package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/mverhelle/folio/internal/sim"
	"github.com/mverhelle/folio/internal/steer"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Origin    string             `json:"origin"` // "sim" or "play"
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Params    steer.Params       `json:"params"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes metadata.json and trace.csv under a new run directory. An
// empty meta.ID gets a fresh uuid.
func (s *Store) Save(meta RunMetadata, rows []Row) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Steps = len(rows)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if len(rows) == 0 {
		return meta.ID, nil
	}
	if err := gocsv.MarshalFile(&rows, csvFile); err != nil {
		return "", fmt.Errorf("writing trace: %w", err)
	}
	return meta.ID, nil
}

// SaveResult stores a headless run.
func (s *Store) SaveResult(scenario string, p steer.Params, cfg sim.Config, res *sim.Result) (string, error) {
	meta := RunMetadata{
		Scenario: scenario,
		Origin:   "sim",
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Params:   p,
		Metrics:  res.Metrics,
	}
	return s.Save(meta, RowsFromResult(res))
}

// List returns every readable run, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrNotFound)
		}
		return nil, err
	}
	defer file.Close()

	rows := []Row{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []Row{}, nil
		}
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return rows, nil
}

type ExportData struct {
	Meta RunMetadata `json:"meta"`
	Rows []Row       `json:"rows"`
}

// ExportJSON writes a run's metadata and trace as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, rows []Row) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: meta, Rows: rows})
}
