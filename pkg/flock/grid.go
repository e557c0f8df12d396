package flock

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// DefaultCellSize matches NeighborRadius, so a query touches a 3x3 block.
const DefaultCellSize = NeighborRadius

// PlannedCellSize is the cell size first sketched for this grid. It works but
// makes a radius-50 query scan 13x13 cells.
const PlannedCellSize = 8.0

type gridKey struct {
	x, y int
}

// GridIndex is a uniform spatial hash: map cell -> agent IDs.
type GridIndex struct {
	cellSize float64
	grid     map[gridKey][]int
}

// NewGridIndex creates a grid with the given cell size.
// Non-positive sizes fall back to DefaultCellSize.
func NewGridIndex(cellSize float64) *GridIndex {
	if !(cellSize > 0) {
		cellSize = DefaultCellSize
	}
	return &GridIndex{
		cellSize: cellSize,
		grid:     make(map[gridKey][]int),
	}
}

// CellSize returns the edge length of a cell.
func (g *GridIndex) CellSize() float64 {
	return g.cellSize
}

func (g *GridIndex) cellOf(p geometry.Vector2D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// Rebuild resets every cell to length 0 but keeps its capacity, so steady
// state ticks allocate almost nothing.
func (g *GridIndex) Rebuild(agents []Agent) {
	for k := range g.grid {
		g.grid[k] = g.grid[k][:0]
	}
	for i := range agents {
		key := g.cellOf(agents[i].Position)
		g.grid[key] = append(g.grid[key], agents[i].ID)
	}
}

// Moved relocates id when it crossed a cell border.
func (g *GridIndex) Moved(agents []Agent, id int, from geometry.Vector2D) {
	oldKey, newKey := g.cellOf(from), g.cellOf(agents[id].Position)
	if oldKey == newKey {
		return
	}
	cell := g.grid[oldKey]
	if i := slices.Index(cell, id); i >= 0 {
		last := len(cell) - 1
		cell[i] = cell[last]
		g.grid[oldKey] = cell[:last]
	}
	g.grid[newKey] = append(g.grid[newKey], id)
}

// Candidates scans every cell overlapped by the square around center.
func (g *GridIndex) Candidates(center geometry.Vector2D, radius float64, dst []int) []int {
	// widened by a hair so rounding in the distance test can never reach
	// outside the scanned block
	r := radius + 1e-9*(1+math.Abs(center.X)+math.Abs(center.Y))
	minGx := int(math.Floor((center.X - r) / g.cellSize))
	maxGx := int(math.Floor((center.X + r) / g.cellSize))
	minGy := int(math.Floor((center.Y - r) / g.cellSize))
	maxGy := int(math.Floor((center.Y + r) / g.cellSize))

	for gx := minGx; gx <= maxGx; gx++ {
		for gy := minGy; gy <= maxGy; gy++ {
			if ids, ok := g.grid[gridKey{x: gx, y: gy}]; ok {
				dst = append(dst, ids...)
			}
		}
	}
	return dst
}
