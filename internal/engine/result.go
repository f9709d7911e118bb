package engine

import (
	"context"
	"math"

	"github.com/san-kum/gridflow/internal/fluid"
)

// Metric observes committed snapshots during a run and reduces them to
// a single value.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// TickStats is the per-tick series record captured by headless runs.
type TickStats struct {
	Tick      int     `csv:"tick"`
	TotalMass float64 `csv:"total_mass"`
	WetCells  int     `csv:"wet_cells"`
	PeakSpeed float64 `csv:"peak_speed"`
}

// Result collects the series and final metric values of a run.
type Result struct {
	Ticks   int
	Series  []TickStats
	Metrics map[string]float64
}

// Run advances the engine the given number of ticks, observing each
// committed state with every metric and recording the series. The
// context is checked between ticks; a tick itself never blocks.
func (e *Engine) Run(ctx context.Context, ticks int, ms []Metric) (*Result, error) {
	res := &Result{
		Series:  make([]TickStats, 0, ticks),
		Metrics: make(map[string]float64),
	}
	for t := 0; t < ticks; t++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		e.Step()
		snap := e.Snapshot()
		for _, m := range ms {
			m.Observe(snap)
		}
		res.Series = append(res.Series, statsOf(snap))
	}
	res.Ticks = ticks
	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

func statsOf(s Snapshot) TickStats {
	st := TickStats{Tick: s.Tick}
	for i, m := range s.Mass {
		st.TotalMass += m
		if m > fluid.MinMass {
			st.WetCells++
		}
		if speed := math.Hypot(s.VX[i], s.VY[i]); speed > st.PeakSpeed {
			st.PeakSpeed = speed
		}
	}
	return st
}
