package metrics

import (
	"github.com/san-kum/gridflow/internal/engine"
	"github.com/san-kum/gridflow/internal/fluid"
)

// Coverage reports the fraction of non-wall cells holding visible
// water in the most recent snapshot.
type Coverage struct {
	latest float64
}

func NewCoverage() *Coverage { return &Coverage{} }

func (m *Coverage) Name() string { return "coverage" }

func (m *Coverage) Observe(s engine.Snapshot) {
	wet, open := 0, 0
	for i, mass := range s.Mass {
		if s.Wall[i] {
			continue
		}
		open++
		if mass > fluid.MinMass {
			wet++
		}
	}
	if open == 0 {
		m.latest = 0
		return
	}
	m.latest = float64(wet) / float64(open)
}

func (m *Coverage) Value() float64 { return m.latest }

func (m *Coverage) Reset() { m.latest = 0 }
