// Package terrain provides the static height map actors stand on.
package terrain

import (
	"fmt"

	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Heightmap is a regular grid of altitudes sampled at cell corners.
// Positions outside the grid take the height of the nearest edge.
type Heightmap struct {
	Origin    math.Vec2 // world XZ of corner (0, 0)
	CellSize  float32
	Width     int       // corner count along X
	Depth     int       // corner count along Z
	Altitudes []float32 // row-major: index = z*Width + x
	Base      float32   // height returned when the grid is empty
}

// Flat returns a height map with a constant height everywhere.
func Flat(height float32) *Heightmap {
	return &Heightmap{CellSize: 1, Base: height}
}

// New builds a height map from rows of altitudes, rows[z][x].
func New(origin math.Vec2, cellSize float32, rows [][]float32) (*Heightmap, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("terrain: cell size must be positive, got %v", cellSize)
	}
	if len(rows) == 0 {
		return &Heightmap{Origin: origin, CellSize: cellSize}, nil
	}

	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("terrain: row 0 is empty")
	}

	alts := make([]float32, 0, width*len(rows))
	for z, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("terrain: row %d has %d columns, want %d", z, len(row), width)
		}
		alts = append(alts, row...)
	}

	return &Heightmap{
		Origin:    origin,
		CellSize:  cellSize,
		Width:     width,
		Depth:     len(rows),
		Altitudes: alts,
	}, nil
}

// Height returns the bilinearly interpolated terrain height under pos.
func (h *Heightmap) Height(pos math.Vec3) float32 {
	if h == nil {
		return 0
	}
	if h.Width == 0 || h.Depth == 0 {
		return h.Base
	}
	if h.Width == 1 || h.Depth == 1 {
		return h.at(h.cellIndex(pos.X-h.Origin.X, h.Width), h.cellIndex(pos.Z-h.Origin.Y, h.Depth))
	}

	fx := clampf((pos.X-h.Origin.X)/h.CellSize, 0, float32(h.Width-1))
	fz := clampf((pos.Z-h.Origin.Y)/h.CellSize, 0, float32(h.Depth-1))

	cellX := int(fx)
	cellZ := int(fz)
	if cellX >= h.Width-1 {
		cellX = h.Width - 2
	}
	if cellZ >= h.Depth-1 {
		cellZ = h.Depth - 2
	}

	fracX := fx - float32(cellX)
	fracZ := fz - float32(cellZ)

	// South edge (lower Z) then north edge, then lerp between them on Z.
	south := h.at(cellX, cellZ)*(1-fracX) + h.at(cellX+1, cellZ)*fracX
	north := h.at(cellX, cellZ+1)*(1-fracX) + h.at(cellX+1, cellZ+1)*fracX
	return south*(1-fracZ) + north*fracZ
}

// Bounds returns the XZ extent covered by the grid.
func (h *Heightmap) Bounds() (min, max math.Vec2) {
	size := math.Vec2{
		X: float32(maxInt(h.Width-1, 0)) * h.CellSize,
		Y: float32(maxInt(h.Depth-1, 0)) * h.CellSize,
	}
	return h.Origin, h.Origin.Add(size)
}

func (h *Heightmap) at(x, z int) float32 {
	return h.Altitudes[z*h.Width+x]
}

func (h *Heightmap) cellIndex(offset float32, n int) int {
	i := int(clampf(offset/h.CellSize+0.5, 0, float32(n-1)))
	return i
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
