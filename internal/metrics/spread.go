package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/gridflow/internal/engine"
	"github.com/san-kum/gridflow/internal/fluid"
)

// Spread reports the standard deviation of mass across wet cells in
// the most recent snapshot. Low spread means the water has pooled into
// evenly filled cells; high spread means steep gradients are still
// driving flow.
type Spread struct {
	latest float64
}

func NewSpread() *Spread { return &Spread{} }

func (m *Spread) Name() string { return "mass_spread" }

func (m *Spread) Observe(s engine.Snapshot) {
	wet := make([]float64, 0, len(s.Mass))
	for i, mass := range s.Mass {
		if s.Wall[i] || mass <= fluid.MinMass {
			continue
		}
		wet = append(wet, mass)
	}
	if len(wet) < 2 {
		m.latest = 0
		return
	}
	m.latest = stat.StdDev(wet, nil)
}

func (m *Spread) Value() float64 { return m.latest }

func (m *Spread) Reset() { m.latest = 0 }
