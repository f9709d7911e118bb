package fluid

import (
	"math"
	"testing"

	"github.com/san-kum/gridflow/internal/grid"
)

func defaultParams() SolverParams {
	return SolverParams{Gravity: 0.8, FlowSpeed: 0.5, Damping: 0.98}
}

func totalMass(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

// tick runs one solver sweep and commits, reusing the scratch slices.
func tick(t *testing.T, s *Solver, g *grid.Grid, vx, vy []float64) {
	t.Helper()
	s.Step(g, vx, vy)
	g.Commit(vx, vy)
}

func TestSolverConservesMass(t *testing.T) {
	g, err := grid.New(12, 10)
	if err != nil {
		t.Fatal(err)
	}
	g.SetMass(3, 2, 4.2)
	g.SetMass(4, 2, 0.7)
	g.SetMass(8, 5, 2.9)
	g.SetMass(2, 7, 1.3)
	g.SetWall(5, 5, true)

	before := totalMass(g.Mass())
	s := NewSolver(defaultParams())
	n := g.W * g.H

	vx := make([]float64, n)
	vy := make([]float64, n)
	for i := 0; i < 50; i++ {
		s.Step(g, vx, vy)
		vx, vy = g.Commit(vx, vy)
		after := totalMass(g.Mass())
		if math.Abs(after-before) > 1e-9 {
			t.Fatalf("tick %d: mass not conserved: %.12f -> %.12f", i, before, after)
		}
	}
}

func TestSolverSkipsWallCells(t *testing.T) {
	g, _ := grid.New(8, 8)
	g.SetMass(3, 2, 3.0)
	g.SetWall(3, 3, true)

	s := NewSolver(defaultParams())
	n := g.W * g.H
	vx := make([]float64, n)
	vy := make([]float64, n)

	for i := 0; i < 40; i++ {
		s.Step(g, vx, vy)
		vx, vy = g.Commit(vx, vy)
		if mass, _, _, _ := g.At(3, 3); mass != 0 {
			t.Fatalf("tick %d: mass flowed into a wall cell: %f", i, mass)
		}
	}
}

func TestSolverDropletSettles(t *testing.T) {
	g, _ := grid.New(5, 6)
	g.SetMass(2, 2, 3.0)

	s := NewSolver(defaultParams())
	n := g.W * g.H
	vx := make([]float64, n)
	vy := make([]float64, n)
	for i := 0; i < 300; i++ {
		s.Step(g, vx, vy)
		vx, vy = g.Commit(vx, vy)
	}

	// Total 3.0 over a 3-cell-wide floor: each floor cell fills to one
	// full unit, everything above drains.
	floor := g.H - 2
	for x := 1; x <= 3; x++ {
		mass, _, _, _ := g.At(x, floor)
		if math.Abs(mass-1.0) > 0.02 {
			t.Errorf("floor cell (%d, %d) = %f, want ~1.0", x, floor, mass)
		}
	}
	for y := 1; y < floor; y++ {
		for x := 1; x <= 3; x++ {
			if mass, _, _, _ := g.At(x, y); mass > 0.01 {
				t.Errorf("cell (%d, %d) still holds %f above the floor", x, y, mass)
			}
		}
	}

	// Converged: the next sweep must not move anything visible.
	prev := make([]float64, n)
	copy(prev, g.Mass())
	s.Step(g, vx, vy)
	vx, vy = g.Commit(vx, vy)
	for i, m := range g.Mass() {
		if math.Abs(m-prev[i]) > 1e-9 {
			t.Fatalf("cell %d oscillates after settling: %.12f -> %.12f", i, prev[i], m)
		}
	}
}

func TestSolverLateralSplitIsSymmetric(t *testing.T) {
	g, _ := grid.New(7, 4)
	// One overfull cell on the floor with empty neighbors both sides.
	g.SetMass(3, 2, 3.0)

	s := NewSolver(defaultParams())
	n := g.W * g.H
	vx := make([]float64, n)
	vy := make([]float64, n)
	tick(t, s, g, vx, vy)

	left, _, _, _ := g.At(2, 2)
	right, _, _, _ := g.At(4, 2)
	if left <= 0 || right <= 0 {
		t.Fatalf("expected lateral spread to both neighbors, got left=%f right=%f", left, right)
	}
	if math.Abs(left-right) > 1e-12 {
		t.Errorf("symmetric neighbors should receive equal flow: left=%f right=%f", left, right)
	}
}

// Two equal sources side by side on the floor: the left one transfers
// first, so the right one sees its already-reduced next-buffer mass
// and sends some flow back left. A sweep reading pre-tick snapshots
// instead would leave the pair untouched and symmetric at 1.5 each.
func TestSolverSweepSeesEarlierTransfers(t *testing.T) {
	g, _ := grid.New(7, 4)
	g.SetMass(2, 2, 2.0)
	g.SetMass(3, 2, 2.0)

	s := NewSolver(defaultParams())
	n := g.W * g.H
	vx := make([]float64, n)
	vy := make([]float64, n)
	tick(t, s, g, vx, vy)

	// Left source: 0.5 out to the empty left neighbor, nothing right
	// (the right source still reads as full). Right source: 0.5 out to
	// the empty right neighbor plus (2.0-1.5)*0.25 back into the left
	// source.
	want := map[[2]int]float64{
		{1, 2}: 0.5,
		{2, 2}: 1.625,
		{3, 2}: 1.375,
		{4, 2}: 0.5,
	}
	for pos, expected := range want {
		mass, _, _, _ := g.At(pos[0], pos[1])
		if math.Abs(mass-expected) > 1e-12 {
			t.Errorf("cell (%d, %d) = %.12f, want %.12f", pos[0], pos[1], mass, expected)
		}
	}

	left, _, _, _ := g.At(2, 2)
	right, _, _, _ := g.At(3, 2)
	if left <= right {
		t.Errorf("sweep order should leave the earlier source heavier: left=%f right=%f", left, right)
	}
}

func TestSolverDampsAndZeroesVelocity(t *testing.T) {
	g, _ := grid.New(6, 6)
	g.SetMass(2, 2, 0.5)
	g.SetVelocity(2, 2, 1.0, 0)

	// A stale velocity on an empty cell must be cleared by the sweep.
	g.SetMass(3, 3, 0.2)
	g.SetVelocity(3, 3, 2.0, 2.0)
	g.SetMass(3, 3, 0)

	s := NewSolver(defaultParams())
	n := g.W * g.H
	vx := make([]float64, n)
	vy := make([]float64, n)
	s.Step(g, vx, vy)

	i := g.Index(2, 2)
	// Damped, then reduced further by the leftward/rightward transfers
	// cancelling; the vertical flow only touches vy.
	if vx[i] > 1.0*0.98+1e-12 {
		t.Errorf("velocity was not damped: %f", vx[i])
	}
	j := g.Index(3, 3)
	if vx[j] != 0 || vy[j] != 0 {
		t.Errorf("empty cell kept velocity (%f, %f)", vx[j], vy[j])
	}
}

func TestSolverVerticalFlowAddsDownwardVelocity(t *testing.T) {
	g, _ := grid.New(5, 7)
	g.SetMass(2, 2, 2.0)

	s := NewSolver(defaultParams())
	n := g.W * g.H
	vx := make([]float64, n)
	vy := make([]float64, n)
	s.Step(g, vx, vy)

	i := g.Index(2, 2)
	// stableDownFlow(2.0, 0.8) = 1.2, flow = 1.2, vy += flow * 0.5
	if math.Abs(vy[i]-0.6) > 1e-12 {
		t.Errorf("vy = %f, want 0.6", vy[i])
	}
}
