// Package metrics provides observers that reduce a run of committed
// grid snapshots to summary values. Each implements [engine.Metric].
package metrics

import (
	"math"

	"github.com/san-kum/gridflow/internal/engine"
)

// TotalMass reports the system mass of the most recent snapshot.
type TotalMass struct {
	latest float64
}

func NewTotalMass() *TotalMass { return &TotalMass{} }

func (m *TotalMass) Name() string { return "total_mass" }

func (m *TotalMass) Observe(s engine.Snapshot) {
	m.latest = s.TotalMass()
}

func (m *TotalMass) Value() float64 { return m.latest }

func (m *TotalMass) Reset() { m.latest = 0 }

// MassDrift watches for conservation violations: it reports the
// largest absolute change in total mass between consecutive snapshots.
// With no edits and no emitter this should stay at floating-point
// noise.
type MassDrift struct {
	prev    float64
	hasPrev bool
	worst   float64
}

func NewMassDrift() *MassDrift { return &MassDrift{} }

func (m *MassDrift) Name() string { return "mass_drift" }

func (m *MassDrift) Observe(s engine.Snapshot) {
	total := s.TotalMass()
	if m.hasPrev {
		if d := math.Abs(total - m.prev); d > m.worst {
			m.worst = d
		}
	}
	m.prev = total
	m.hasPrev = true
}

func (m *MassDrift) Value() float64 { return m.worst }

func (m *MassDrift) Reset() {
	m.prev = 0
	m.hasPrev = false
	m.worst = 0
}
