package engine

import (
	"math"

	"github.com/san-kum/gridflow/internal/grid"
)

// Emitter defaults. The band sits on the top interior row, centered
// horizontally, and simulates a continuous source when enabled.
const (
	EmitAmount    = 0.8
	EmitVelocityY = 0.5
	EmitBandWidth = 9
)

// Emitter injects a fixed mass increment and a downward velocity seed
// into a fixed band of cells every tick it runs.
type Emitter struct {
	Amount    float64
	VelocityY float64
	BandWidth int
}

// NewEmitter returns an emitter with the default band and rates.
func NewEmitter() *Emitter {
	return &Emitter{
		Amount:    EmitAmount,
		VelocityY: EmitVelocityY,
		BandWidth: EmitBandWidth,
	}
}

// Inject applies one tick of emission to the grid. Wall cells and band
// positions clipped by the border are skipped; injected mass is capped
// at MaxMass.
func (em *Emitter) Inject(g *grid.Grid) {
	y := 1
	cx := g.W / 2
	half := em.BandWidth / 2
	for x := cx - half; x <= cx+half; x++ {
		if !g.Interior(x, y) {
			continue
		}
		mass, _, _, wall := g.At(x, y)
		if wall {
			continue
		}
		g.SetMass(x, y, math.Min(mass+em.Amount, MaxMass))
		g.SetVelocity(x, y, 0, em.VelocityY)
	}
}
