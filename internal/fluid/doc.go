// Package fluid implements the per-tick mass transfer rules of the
// water grid:
//
//   - [StableDownFlow]: piecewise target split for vertically stacked
//     cells, shaped to avoid oscillating back-and-forth transfer
//   - [Solver]: single-sweep vertical and lateral mass redistribution
//     with the velocity bookkeeping derived from each transfer
//   - [Vorticity]: curl-driven perpendicular forcing that synthesizes
//     swirling motion without touching mass
//
// The rules are hand-tuned for stability and visual appeal, not for
// physical accuracy. The solver conserves mass exactly: every unit
// subtracted from a source cell is added to exactly one destination
// cell in the same operation.
package fluid
