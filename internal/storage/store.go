package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/gridflow/internal/config"
	"github.com/san-kum/gridflow/internal/engine"
)

// Store persists headless runs: one directory per run holding a
// metadata.json and the per-tick series as series.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Config    config.Config      `json:"config"`
	Ticks     int                `json:"ticks"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a finished run under a timestamped ID and returns it.
func (s *Store) Save(name string, cfg *config.Config, result *engine.Result) (string, error) {
	// Same-name saves within one second would land in the same
	// directory; suffix until the ID is fresh.
	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runID := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, runID)); os.IsNotExist(err) {
			break
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Config:    *cfg,
		Ticks:     result.Ticks,
		Metrics:   result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.Marshal(result.Series, csvFile); err != nil {
		return "", fmt.Errorf("storage: writing series for %s: %w", runID, err)
	}
	return runID, nil
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.loadMetadata(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Load returns the metadata and tick series of a stored run.
func (s *Store) Load(runID string) (RunMetadata, []engine.TickStats, error) {
	meta, err := s.loadMetadata(runID)
	if err != nil {
		return RunMetadata{}, nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	csvFile, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return RunMetadata{}, nil, err
	}
	defer csvFile.Close()

	var series []engine.TickStats
	if err := gocsv.Unmarshal(csvFile, &series); err != nil {
		return RunMetadata{}, nil, fmt.Errorf("storage: reading series for %s: %w", runID, err)
	}
	return meta, series, nil
}

func (s *Store) loadMetadata(runID string) (RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return RunMetadata{}, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return RunMetadata{}, err
	}
	return meta, nil
}
