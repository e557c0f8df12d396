package flock

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// NeighborRadius is the inclusive query radius of World.AgentNeighbors.
// It is smaller than DesiredSeparation, so it bounds all three rules.
const NeighborRadius = 50.0

// NeighborIndex is a spatial structure over the population of a World.
// Candidates may return a superset of the agents within radius: the world
// applies the exact distance test and orders the result by ID, so every
// implementation yields the same neighbor lists.
type NeighborIndex interface {
	// Rebuild indexes the whole population. Called once per tick.
	Rebuild(agents []Agent)
	// Moved tells the index that agents[id] left position from.
	Moved(agents []Agent, id int, from geometry.Vector2D)
	// Candidates appends to dst the IDs that may lie within radius of center.
	Candidates(center geometry.Vector2D, radius float64, dst []int) []int
}

// NewNeighborIndex returns the index registered under name:
// "scan", "grid" or "rtree". cellSize is only used by the grid.
func NewNeighborIndex(name string, cellSize float64) (NeighborIndex, error) {
	switch name {
	case "scan":
		return &ScanIndex{}, nil
	case "", "grid":
		return NewGridIndex(cellSize), nil
	case "rtree":
		return NewRTreeIndex(), nil
	}
	return nil, fmt.Errorf("%w: neighbor index %q", ErrUnknownOption, name)
}

// ScanIndex answers every query with the whole population.
type ScanIndex struct {
	n int
}

func (s *ScanIndex) Rebuild(agents []Agent) {
	s.n = len(agents)
}

func (s *ScanIndex) Moved([]Agent, int, geometry.Vector2D) {}

func (s *ScanIndex) Candidates(_ geometry.Vector2D, _ float64, dst []int) []int {
	for id := 0; id < s.n; id++ {
		dst = append(dst, id)
	}
	return dst
}

// withinRadius is the single distance test shared by every index.
func withinRadius(a, b geometry.Vector2D, radius float64) bool {
	return a.DistanceTo(b) <= radius
}
