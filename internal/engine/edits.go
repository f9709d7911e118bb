package engine

import "math"

// MaxMass is the soft cap enforced by the edit and emission paths. The
// solver itself never clamps mass downward.
const MaxMass = 5.0

// EditKind enumerates the brush tools. The set is closed; dispatch is
// exhaustive.
type EditKind int

const (
	AddWater EditKind = iota
	AddWall
	Erase
	Drain
)

func (k EditKind) String() string {
	switch k {
	case AddWater:
		return "water"
	case AddWall:
		return "wall"
	case Erase:
		return "erase"
	case Drain:
		return "drain"
	default:
		return "unknown"
	}
}

// ApplyEdit mutates every interior cell within the Euclidean radius of
// (x, y) according to the brush kind, immediately and directly on the
// committed buffers. Cells outside the grid or on the permanent border
// are silently dropped.
func (e *Engine) ApplyEdit(x, y int, radius float64, kind EditKind, amount float64) {
	if radius < 0 {
		return
	}
	r := int(math.Ceil(radius))
	r2 := radius * radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) > r2 {
				continue
			}
			cx, cy := x+dx, y+dy
			if !e.grid.Interior(cx, cy) {
				continue
			}
			e.applyEditCell(cx, cy, kind, amount)
		}
	}
}

func (e *Engine) applyEditCell(x, y int, kind EditKind, amount float64) {
	switch kind {
	case AddWater:
		mass, _, _, wall := e.grid.At(x, y)
		if wall {
			return
		}
		e.grid.SetMass(x, y, math.Min(mass+amount, MaxMass))
	case AddWall:
		e.grid.SetWall(x, y, true)
	case Erase:
		e.grid.SetWall(x, y, false)
		e.grid.SetMass(x, y, 0)
		e.grid.SetVelocity(x, y, 0, 0)
	case Drain:
		e.grid.SetMass(x, y, 0)
	}
}
