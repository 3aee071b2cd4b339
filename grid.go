package isosurf

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// cellCountTol absorbs floating point error when a box side is an exact
// multiple of the cell size.
const cellCountTol = 1e-9

// Grid3 is a regular lattice of cubic cells. Cell i spans
// [Origin + i*CellSize, Origin + (i+1)*CellSize] on every axis.
type Grid3 struct {
	Origin   r3.Vec
	CellSize float64
	// Cells is the number of cells along each axis.
	Cells V3i
}

// NewGrid3 returns the grid of cells of side cellSize covering bounds.
// The last cell on an axis may overhang bounds.Max.
func NewGrid3(bounds r3.Box, cellSize float64) (Grid3, error) {
	if !(cellSize > 0) {
		return Grid3{}, errors.New("cell size must be positive")
	}
	nx, okx := cellCount(bounds.Min.X, bounds.Max.X, cellSize)
	ny, oky := cellCount(bounds.Min.Y, bounds.Max.Y, cellSize)
	nz, okz := cellCount(bounds.Min.Z, bounds.Max.Z, cellSize)
	if !okx || !oky || !okz {
		return Grid3{}, errors.New("grid bounds must have positive finite size on every axis")
	}
	return Grid3{Origin: bounds.Min, CellSize: cellSize, Cells: V3i{nx, ny, nz}}, nil
}

// Corner returns the position of lattice corner i.
func (g Grid3) Corner(i V3i) r3.Vec {
	return r3.Add(g.Origin, r3.Scale(g.CellSize, i.ToV3()))
}

// Cell returns the bounding box of cell i.
func (g Grid3) Cell(i V3i) r3.Box {
	min := g.Corner(i)
	return r3.Box{Min: min, Max: r3.Add(min, r3.Vec{X: g.CellSize, Y: g.CellSize, Z: g.CellSize})}
}

// Len returns the total number of cells in the grid.
func (g Grid3) Len() int { return g.Cells[0] * g.Cells[1] * g.Cells[2] }

// Index returns a unique index in [0, Len) for cell i.
func (g Grid3) Index(i V3i) int {
	return (i[0]*g.Cells[1]+i[1])*g.Cells[2] + i[2]
}

// Contains reports whether i indexes a cell of the grid.
func (g Grid3) Contains(i V3i) bool {
	return i[0] >= 0 && i[1] >= 0 && i[2] >= 0 &&
		i[0] < g.Cells[0] && i[1] < g.Cells[1] && i[2] < g.Cells[2]
}

// Grid2 is the 2d analog of Grid3.
type Grid2 struct {
	Origin   r2.Vec
	CellSize float64
	Cells    V2i
}

// NewGrid2 returns the grid of square cells of side cellSize covering bounds.
func NewGrid2(bounds r2.Box, cellSize float64) (Grid2, error) {
	if !(cellSize > 0) {
		return Grid2{}, errors.New("cell size must be positive")
	}
	nx, okx := cellCount(bounds.Min.X, bounds.Max.X, cellSize)
	ny, oky := cellCount(bounds.Min.Y, bounds.Max.Y, cellSize)
	if !okx || !oky {
		return Grid2{}, errors.New("grid bounds must have positive finite size on every axis")
	}
	return Grid2{Origin: bounds.Min, CellSize: cellSize, Cells: V2i{nx, ny}}, nil
}

func (g Grid2) Corner(i V2i) r2.Vec {
	return r2.Add(g.Origin, r2.Scale(g.CellSize, i.ToV2()))
}

func (g Grid2) Cell(i V2i) r2.Box {
	min := g.Corner(i)
	return r2.Box{Min: min, Max: r2.Add(min, r2.Vec{X: g.CellSize, Y: g.CellSize})}
}

func (g Grid2) Len() int { return g.Cells[0] * g.Cells[1] }

func (g Grid2) Index(i V2i) int { return i[0]*g.Cells[1] + i[1] }

func (g Grid2) Contains(i V2i) bool {
	return i[0] >= 0 && i[1] >= 0 && i[0] < g.Cells[0] && i[1] < g.Cells[1]
}

func cellCount(min, max, size float64) (int, bool) {
	span := max - min
	if !(span > 0) || math.IsInf(span, 0) {
		return 0, false
	}
	return int(math.Ceil(span/size - cellCountTol)), true
}
