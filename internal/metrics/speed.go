package metrics

import (
	"math"

	"github.com/san-kum/gridflow/internal/engine"
)

// PeakSpeed reports the largest cell speed seen over the whole run, a
// cheap watchdog for runaway acceleration.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (m *PeakSpeed) Name() string { return "peak_speed" }

func (m *PeakSpeed) Observe(s engine.Snapshot) {
	for i := range s.VX {
		if speed := math.Hypot(s.VX[i], s.VY[i]); speed > m.peak {
			m.peak = speed
		}
	}
}

func (m *PeakSpeed) Value() float64 { return m.peak }

func (m *PeakSpeed) Reset() { m.peak = 0 }
