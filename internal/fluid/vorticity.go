package fluid

import (
	"math"

	"github.com/san-kum/gridflow/internal/grid"
)

// Vorticity perturbs the tentative velocity field with a force
// perpendicular to the local curl, producing the swirling patterns the
// plain transfer rules cannot. It never moves mass.
type Vorticity struct {
	Strength    float64
	SpatialFreq float64
}

// NewVorticity returns a vorticity pass with the given strength and
// spatial frequency.
func NewVorticity(strength, spatialFreq float64) *Vorticity {
	return &Vorticity{Strength: strength, SpatialFreq: spatialFreq}
}

// Apply reads the tentative field (vxIn, vyIn) and writes the final
// field into (vxOut, vyOut). The curl is evaluated exclusively on the
// input buffers so a cell never sees values rewritten earlier in the
// same pass. The sin/cos phase terms break translational symmetry so
// distinct spirals form at different grid locations instead of a
// uniform shear.
//
// Mass eligibility is judged on the next-mass buffer, the mass these
// final velocities will be committed alongside.
func (v *Vorticity) Apply(g *grid.Grid, vxIn, vyIn, vxOut, vyOut []float64) {
	copy(vxOut, vxIn)
	copy(vyOut, vyIn)

	mass := g.NextMass()
	wall := g.Walls()
	w, h := g.W, g.H

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if wall[i] || mass[i] <= MinMass {
				continue
			}
			curl := 0.5*(vyIn[i+1]-vyIn[i-1]) - 0.5*(vxIn[i+w]-vxIn[i-w])
			vxOut[i] = vxIn[i] + curl*v.Strength*math.Sin(float64(y)*v.SpatialFreq)
			vyOut[i] = vyIn[i] + curl*v.Strength*math.Cos(float64(x)*v.SpatialFreq)
		}
	}
}
