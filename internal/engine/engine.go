package engine

import (
	"github.com/san-kum/gridflow/internal/fluid"
	"github.com/san-kum/gridflow/internal/grid"
)

// Config fixes the dimensions and tunables of an engine for its whole
// lifetime. Changing dimensions requires a new engine.
type Config struct {
	Width  int
	Height int

	Gravity   float64
	FlowSpeed float64
	// Evaporation is a reserved mass-decay rate. It is carried in the
	// configuration but not applied anywhere yet.
	Evaporation float64

	VorticityStrength float64
	SpatialFreq       float64
	VelocityDamping   float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Width:             80,
		Height:            40,
		Gravity:           0.8,
		FlowSpeed:         0.5,
		Evaporation:       0,
		VorticityStrength: 0.15,
		SpatialFreq:       0.1,
		VelocityDamping:   0.98,
	}
}

// Phase identifies where a tick is in its transition cycle. Outside a
// Step call the engine is always PhaseIdle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEditsApplied
	PhaseFlowComputed
	PhaseVorticityApplied
	PhaseCommitted
)

// Engine sequences edits, the flow solver, the vorticity pass, and the
// buffer commit into one atomic step.
type Engine struct {
	cfg       Config
	grid      *grid.Grid
	solver    *fluid.Solver
	vorticity *fluid.Vorticity
	emitter   *Emitter

	// tentative field written by the solver, final field written by
	// the vorticity pass; the final slices rotate through the grid at
	// commit.
	tentVX, tentVY   []float64
	finalVX, finalVY []float64

	autoEmit bool
	phase    Phase
	tick     int
}

// New builds an engine for the given config. It fails with
// grid.ErrInvalidDimension when the dimensions cannot hold a border
// plus interior.
func New(cfg Config) (*Engine, error) {
	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	n := cfg.Width * cfg.Height
	return &Engine{
		cfg:  cfg,
		grid: g,
		solver: fluid.NewSolver(fluid.SolverParams{
			Gravity:   cfg.Gravity,
			FlowSpeed: cfg.FlowSpeed,
			Damping:   cfg.VelocityDamping,
		}),
		vorticity: fluid.NewVorticity(cfg.VorticityStrength, cfg.SpatialFreq),
		emitter:   NewEmitter(),
		tentVX:    make([]float64, n),
		tentVY:    make([]float64, n),
		finalVX:   make([]float64, n),
		finalVY:   make([]float64, n),
	}, nil
}

// Config returns the immutable configuration.
func (e *Engine) Config() Config { return e.cfg }

// Tick returns the number of completed steps since creation or reset.
func (e *Engine) Tick() int { return e.tick }

// Phase returns the current tick phase.
func (e *Engine) Phase() Phase { return e.phase }

// AutoEmit reports whether the emitter runs at the start of each step.
func (e *Engine) AutoEmit() bool { return e.autoEmit }

// SetAutoEmit toggles the per-step emitter injection.
func (e *Engine) SetAutoEmit(enabled bool) { e.autoEmit = enabled }

// Reset clears all cells and velocities, re-establishes the border
// wall, and rewinds the tick counter. The configuration is unchanged.
func (e *Engine) Reset() {
	// Dimensions were validated at construction; with an unchanged
	// config this cannot fail.
	_ = e.grid.Reset(e.cfg.Width, e.cfg.Height)
	for i := range e.tentVX {
		e.tentVX[i] = 0
		e.tentVY[i] = 0
		e.finalVX[i] = 0
		e.finalVY[i] = 0
	}
	e.tick = 0
	e.phase = PhaseIdle
}

// Step executes one full tick: emitter injection, flow solve,
// vorticity forcing, and the commit swap. It runs to completion with
// no partial visibility to readers.
func (e *Engine) Step() {
	if e.autoEmit {
		e.emitter.Inject(e.grid)
	}
	e.phase = PhaseEditsApplied

	e.solver.Step(e.grid, e.tentVX, e.tentVY)
	e.phase = PhaseFlowComputed

	e.vorticity.Apply(e.grid, e.tentVX, e.tentVY, e.finalVX, e.finalVY)
	e.phase = PhaseVorticityApplied

	e.finalVX, e.finalVY = e.grid.Commit(e.finalVX, e.finalVY)
	e.phase = PhaseCommitted

	e.tick++
	e.phase = PhaseIdle
}

// At returns the committed state of a single cell.
func (e *Engine) At(x, y int) (mass, vx, vy float64, wall bool) {
	return e.grid.At(x, y)
}

// Snapshot copies the committed state for external consumers. The
// returned slices are owned by the caller.
func (e *Engine) Snapshot() Snapshot {
	n := e.cfg.Width * e.cfg.Height
	s := Snapshot{
		W:    e.cfg.Width,
		H:    e.cfg.Height,
		Tick: e.tick,
		Mass: make([]float64, n),
		VX:   make([]float64, n),
		VY:   make([]float64, n),
		Wall: make([]bool, n),
	}
	copy(s.Mass, e.grid.Mass())
	copy(s.VX, e.grid.VX())
	copy(s.VY, e.grid.VY())
	copy(s.Wall, e.grid.Walls())
	return s
}

// Snapshot is a point-in-time copy of the committed grid state.
type Snapshot struct {
	W, H int
	Tick int
	Mass []float64
	VX   []float64
	VY   []float64
	Wall []bool
}

// Index returns the linear index for (x, y) within the snapshot.
func (s Snapshot) Index(x, y int) int { return y*s.W + x }

// TotalMass sums the mass over every cell.
func (s Snapshot) TotalMass() float64 {
	total := 0.0
	for _, m := range s.Mass {
		total += m
	}
	return total
}
