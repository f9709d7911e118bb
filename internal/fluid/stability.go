package fluid

// MinMass is the threshold below which a cell is treated as empty and
// skipped by both the solver and the vorticity pass.
const MinMass = 0.001

// StableDownFlow returns how much of the combined mass of two
// vertically adjacent cells should settle in the lower cell.
//
// Three bands: up to one full unit everything accumulates below; a
// narrow compression band smooths the transition past 1.0 so two
// nearly-full cells do not flicker mass across the boundary; beyond
// that the pair splits the total evenly with a gravity bias toward the
// lower cell. The breakpoints and coefficients are load-bearing for
// the downstream visual tuning and must not be adjusted in isolation.
func StableDownFlow(totalMass, gravity float64) float64 {
	switch {
	case totalMass <= 1.0:
		return 1.0
	case totalMass < 2.0+gravity:
		return 1.0 + totalMass*0.1
	default:
		return (totalMass + gravity) / 2.0
	}
}
