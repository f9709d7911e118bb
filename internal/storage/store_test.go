package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/san-kum/gridflow/internal/config"
	"github.com/san-kum/gridflow/internal/engine"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Ticks: 3,
		Series: []engine.TickStats{
			{Tick: 1, TotalMass: 7.2, WetCells: 9, PeakSpeed: 0.5},
			{Tick: 2, TotalMass: 14.4, WetCells: 18, PeakSpeed: 0.9},
			{Tick: 3, TotalMass: 21.6, WetCells: 27, PeakSpeed: 1.2},
		},
		Metrics: map[string]float64{"mass_drift": 0.0, "coverage": 0.04},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	runID, err := st.Save("rain", cfg, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	meta, series, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Name != "rain" {
		t.Errorf("expected name rain, got %s", meta.Name)
	}
	if meta.Ticks != 3 {
		t.Errorf("expected 3 ticks, got %d", meta.Ticks)
	}
	if meta.Config != *cfg {
		t.Errorf("config mismatch: %+v", meta.Config)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 series rows, got %d", len(series))
	}
	if series[1].TotalMass != 14.4 || series[1].WetCells != 18 {
		t.Errorf("series row mismatch: %+v", series[1])
	}
}

func TestSaveKeepsSameNameRunsDistinct(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	first, err := st.Save("rain", cfg, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save("rain", cfg, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatalf("two saves produced the same run ID %q", first)
	}
	for _, id := range []string{first, second} {
		if _, series, err := st.Load(id); err != nil || len(series) != 3 {
			t.Errorf("run %s not independently readable: %v", id, err)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 stored runs, got %d", len(runs))
	}
}

func TestListNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save("first", config.DefaultConfig(), sampleResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("second", config.DefaultConfig(), sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("runs should be sorted newest first")
	}
}

func TestListEmptyStore(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should not error, got %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save("export", config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	meta, series, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, series); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.ID != runID || len(data.Series) != 3 {
		t.Errorf("export mismatch: id=%s rows=%d", data.ID, len(data.Series))
	}
}
