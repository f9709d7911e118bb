package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gridflow/internal/config"
	"github.com/san-kum/gridflow/internal/engine"
)

type ExportData struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Config  config.Config      `json:"config"`
	Ticks   int                `json:"ticks"`
	Series  []engine.TickStats `json:"series"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, series []engine.TickStats) error {
	data := ExportData{
		ID:      meta.ID,
		Name:    meta.Name,
		Config:  meta.Config,
		Ticks:   meta.Ticks,
		Series:  series,
		Metrics: meta.Metrics,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
