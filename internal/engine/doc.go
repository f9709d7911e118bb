// Package engine orchestrates the water grid simulation.
//
// An [Engine] owns a grid plus the solver and vorticity passes and
// advances them one fixed increment per [Engine.Step]:
//
//	eng, _ := engine.New(engine.DefaultConfig())
//	eng.ApplyEdit(10, 5, 2, engine.AddWater, 1.0)
//	eng.Step()
//	snap := eng.Snapshot()
//
// One step applies pending emitter injection, runs the flow solver
// into the next-mass buffer, applies the vorticity pass to the
// tentative velocities, and commits by swapping buffer roles. Readers
// only ever observe committed state.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Exactly one goroutine may step
// or edit an engine; a concurrent reader must synchronize on the step
// boundary.
package engine
