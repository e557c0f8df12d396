package flock

import (
	"github.com/dhconnelly/rtreego"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	// agents are points, rtreego wants a non-empty box
	pointTolerance = 1e-6
)

type rtreeEntry struct {
	id   int
	rect rtreego.Rect
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	return e.rect
}

func entryComparator(obj1, obj2 rtreego.Spatial) bool {
	return obj1.(*rtreeEntry).id == obj2.(*rtreeEntry).id
}

// RTreeIndex stores agents as points in an R-tree.
type RTreeIndex struct {
	tree    *rtreego.Rtree
	entries []*rtreeEntry
}

// NewRTreeIndex creates an empty R-tree index.
func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{tree: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)}
}

func pointRect(p geometry.Vector2D) rtreego.Rect {
	return rtreego.Point{p.X, p.Y}.ToRect(pointTolerance)
}

// Rebuild bulk loads the population.
func (r *RTreeIndex) Rebuild(agents []Agent) {
	r.entries = r.entries[:0]
	spatials := make([]rtreego.Spatial, len(agents))
	for i := range agents {
		e := &rtreeEntry{id: agents[i].ID, rect: pointRect(agents[i].Position)}
		r.entries = append(r.entries, e)
		spatials[i] = e
	}
	r.tree = rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, spatials...)
}

// Moved deletes the entry at its old box and reinserts it at the new one.
func (r *RTreeIndex) Moved(agents []Agent, id int, _ geometry.Vector2D) {
	e := r.entries[id]
	r.tree.DeleteWithComparator(e, entryComparator)
	e.rect = pointRect(agents[id].Position)
	r.tree.Insert(e)
}

// Candidates returns the entries intersecting the square around center.
func (r *RTreeIndex) Candidates(center geometry.Vector2D, radius float64, dst []int) []int {
	side := 2 * (radius + pointTolerance)
	bb, err := rtreego.NewRect(rtreego.Point{center.X - side/2, center.Y - side/2}, []float64{side, side})
	if err != nil {
		// negative radius
		return dst
	}
	for _, s := range r.tree.SearchIntersect(bb) {
		dst = append(dst, s.(*rtreeEntry).id)
	}
	return dst
}
