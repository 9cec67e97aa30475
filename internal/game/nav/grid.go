// Package nav finds walkable routes across the patrol grid.
package nav

import (
	stdmath "math"

	"github.com/jakecoffman/cp"

	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Cell is an integer grid coordinate on the XZ plane. Cells are one world
// unit wide and a cell's position is its integer corner.
type Cell struct {
	X, Z int
}

// CellOf returns the cell containing p.
func CellOf(p math.Vec3) Cell {
	return Cell{
		X: int(stdmath.Floor(float64(p.X))),
		Z: int(stdmath.Floor(float64(p.Z))),
	}
}

// Position returns the world position of the cell at height y.
func (c Cell) Position(y float32) math.Vec3 {
	return math.Vec3{X: float32(c.X), Y: y, Z: float32(c.Z)}
}

// Chebyshev returns the king-move distance between two cells.
func (c Cell) Chebyshev(o Cell) int {
	dx := abs(c.X - o.X)
	dz := abs(c.Z - o.Z)
	if dx > dz {
		return dx
	}
	return dz
}

func (c Cell) vect() cp.Vector {
	return cp.Vector{X: float64(c.X), Y: float64(c.Z)}
}

// Bounds returns the inclusive grid rectangle with XZ mapped onto the
// rectangle's X/Y.
func Bounds(left, back, right, forward float64) cp.BB {
	return cp.BB{L: left, B: back, R: right, T: forward}
}

// Footprint is the set of cells an obstacle occupies. The zero value
// blocks nothing.
type Footprint struct {
	set    bool
	centre Cell
	bb     cp.BB
}

// NewFootprint covers every cell within the integer part of half
// (X and Z extents) around the cell holding centre.
func NewFootprint(centre math.Vec3, half math.Vec2) Footprint {
	c := CellOf(centre)
	return Footprint{
		set:    true,
		centre: c,
		bb:     cp.NewBBForExtents(c.vect(), float64(int(half.X)), float64(int(half.Y))),
	}
}

// Blocks reports whether c lies in the footprint.
func (f Footprint) Blocks(c Cell) bool {
	return f.set && f.bb.ContainsVect(c.vect())
}

// IsCentre reports whether c is the obstacle's own cell.
func (f Footprint) IsCentre(c Cell) bool {
	return f.set && f.centre == c
}

// Cells lists the footprint cells row by row.
func (f Footprint) Cells() []Cell {
	if !f.set {
		return nil
	}
	var cells []Cell
	for z := int(f.bb.B); z <= int(f.bb.T); z++ {
		for x := int(f.bb.L); x <= int(f.bb.R); x++ {
			cells = append(cells, Cell{X: x, Z: z})
		}
	}
	return cells
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
