package fluid

import "github.com/san-kum/gridflow/internal/grid"

// SolverParams are the tunables consumed by one solver sweep. They are
// fixed for the lifetime of a grid instance.
type SolverParams struct {
	Gravity   float64
	FlowSpeed float64
	Damping   float64
}

// Solver computes one tick of mass transfer. It reads the committed
// mass and velocity buffers, accumulates transfer deltas into the
// grid's next-mass buffer, and writes a tentative velocity for every
// cell into the caller-provided output slices. The committed buffers
// are never mutated.
type Solver struct {
	params SolverParams
}

// NewSolver returns a solver with the given fixed parameters.
func NewSolver(p SolverParams) *Solver {
	return &Solver{params: p}
}

// Step runs a single row-major sweep over the grid.
//
// Neighbor mass reads go through the next buffer, which starts as a
// copy of the committed mass and accumulates paired deltas, so later
// cells in the sweep see mass already moved by earlier ones. This
// single-pass Gauss-Seidel character is intentional; converting the
// reads to a pure pre-tick snapshot changes the convergence behavior.
// A cell's own outgoing budget is always its pre-tick mass, which
// keeps every transfer bounded and the next buffer non-negative.
func (s *Solver) Step(g *grid.Grid, vxOut, vyOut []float64) {
	g.BeginTick()

	mass := g.Mass()
	next := g.NextMass()
	vx, vy := g.VX(), g.VY()
	wall := g.Walls()
	w, h := g.W, g.H
	rate := s.params.FlowSpeed * 0.5

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			vxOut[i], vyOut[i] = 0, 0
			if wall[i] || mass[i] <= MinMass {
				continue
			}

			cvx := vx[i] * s.params.Damping
			cvy := vy[i] * s.params.Damping
			remaining := mass[i]

			// Vertical transfer toward the cell below.
			if y+1 < h && !wall[i+w] {
				down := i + w
				flow := StableDownFlow(remaining+next[down], s.params.Gravity) - next[down]
				if flow > remaining {
					flow = remaining
				}
				if flow > 0 {
					next[i] -= flow
					next[down] += flow
					cvy += flow * 0.5
					remaining -= flow
				}
			}

			// Lateral transfer, proportional to the mass difference.
			if remaining > 0 {
				var flowL, flowR float64
				if x-1 >= 0 && !wall[i-1] {
					if d := (remaining - next[i-1]) * rate; d > 0 {
						flowL = d
					}
				}
				if x+1 < w && !wall[i+1] {
					if d := (remaining - next[i+1]) * rate; d > 0 {
						flowR = d
					}
				}
				// Scale both sides down so their sum never exceeds
				// what the cell still holds. A zero sum means no
				// transfer, never a division.
				if total := flowL + flowR; total > remaining {
					scale := remaining / total
					flowL *= scale
					flowR *= scale
				}
				if flowL > 0 {
					next[i] -= flowL
					next[i-1] += flowL
					cvx -= flowL * 0.3
				}
				if flowR > 0 {
					next[i] -= flowR
					next[i+1] += flowR
					cvx += flowR * 0.3
				}
			}

			vxOut[i] = cvx
			vyOut[i] = cvy
		}
	}
}
