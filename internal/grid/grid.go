// Package grid holds the per-cell state of the water simulation: a
// row-major lattice of mass, velocity, and wall flags, with the mass
// array double-buffered so one tick's writes never read back their own
// committed results.
package grid

import "errors"

// ErrInvalidDimension indicates a grid too small to hold a border plus
// at least one interior cell in each direction.
var ErrInvalidDimension = errors.New("grid: width and height must be at least 3")

// Grid stores the simulation lattice. The mass array exists in two
// slots; exactly one is committed (readable) at any time and the other
// accumulates the next tick's transfers. Roles swap at commit, the
// contents are never copied across.
type Grid struct {
	W, H int

	mass [2][]float64
	cur  int

	vx, vy []float64
	wall   []bool
}

// New allocates a grid with a solid border wall.
func New(w, h int) (*Grid, error) {
	g := &Grid{}
	if err := g.Reset(w, h); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset reallocates every array to the given dimensions, clears all
// cells, and re-establishes the border wall.
func (g *Grid) Reset(w, h int) error {
	if w < 3 || h < 3 {
		return ErrInvalidDimension
	}
	n := w * h
	g.W, g.H = w, h
	g.mass[0] = make([]float64, n)
	g.mass[1] = make([]float64, n)
	g.cur = 0
	g.vx = make([]float64, n)
	g.vy = make([]float64, n)
	g.wall = make([]bool, n)

	for x := 0; x < w; x++ {
		g.wall[x] = true
		g.wall[(h-1)*w+x] = true
	}
	for y := 0; y < h; y++ {
		g.wall[y*w] = true
		g.wall[y*w+w-1] = true
	}
	return nil
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies on the grid at all.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Interior reports whether (x, y) lies strictly inside the permanent
// border ring.
func (g *Grid) Interior(x, y int) bool {
	return x >= 1 && x < g.W-1 && y >= 1 && y < g.H-1
}

// Mass exposes the committed mass buffer.
func (g *Grid) Mass() []float64 { return g.mass[g.cur] }

// NextMass exposes the in-progress mass buffer written by the solver.
func (g *Grid) NextMass() []float64 { return g.mass[g.cur^1] }

// VX and VY expose the committed velocity components.
func (g *Grid) VX() []float64 { return g.vx }
func (g *Grid) VY() []float64 { return g.vy }

// Walls exposes the wall flags.
func (g *Grid) Walls() []bool { return g.wall }

// BeginTick seeds the next-mass buffer with the committed values so
// the solver can accumulate paired transfer deltas on top of it.
func (g *Grid) BeginTick() {
	copy(g.mass[g.cur^1], g.mass[g.cur])
}

// Commit flips the mass buffer roles and installs the final velocity
// arrays for the tick. The previously committed velocity slices are
// returned so the caller can reuse them as scratch.
func (g *Grid) Commit(vx, vy []float64) (oldVX, oldVY []float64) {
	g.cur ^= 1
	oldVX, oldVY = g.vx, g.vy
	g.vx, g.vy = vx, vy
	return oldVX, oldVY
}

// SetWall marks or clears a wall. Creating a wall clears the cell's
// mass and velocity so the wall invariant holds from that instant.
// Out-of-range coordinates are a no-op.
func (g *Grid) SetWall(x, y int, v bool) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.Index(x, y)
	g.wall[i] = v
	if v {
		g.mass[g.cur][i] = 0
		g.mass[g.cur^1][i] = 0
		g.vx[i] = 0
		g.vy[i] = 0
	}
}

// SetMass writes the committed mass of a cell directly. Wall cells and
// out-of-range coordinates are a no-op.
func (g *Grid) SetMass(x, y int, m float64) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.Index(x, y)
	if g.wall[i] {
		return
	}
	if m < 0 {
		m = 0
	}
	g.mass[g.cur][i] = m
}

// SetVelocity writes the committed velocity of a cell directly. Wall
// cells and out-of-range coordinates are a no-op.
func (g *Grid) SetVelocity(x, y int, vx, vy float64) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.Index(x, y)
	if g.wall[i] {
		return
	}
	g.vx[i] = vx
	g.vy[i] = vy
}

// At returns the committed state of a cell. Out-of-range coordinates
// read as an empty wall-less cell.
func (g *Grid) At(x, y int) (mass, vx, vy float64, wall bool) {
	if !g.InBounds(x, y) {
		return 0, 0, 0, false
	}
	i := g.Index(x, y)
	return g.mass[g.cur][i], g.vx[i], g.vy[i], g.wall[i]
}
