package flock

import (
	"fmt"
	"slices"
	"time"

	"github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// World owns a fixed population of agents and advances it one tick per Step.
// A World is not safe for concurrent use.
type World struct {
	bounds Bounds
	agents []Agent
	// next receives the Snapshot policy's results before the swap
	next []Agent

	index   NeighborIndex
	policy  UpdatePolicy
	workers int
	logger  log.Logger

	ticks   uint64
	scratch neighborScratch
}

// neighborScratch holds the buffers reused by one walker across queries.
type neighborScratch struct {
	ids    []int
	agents []Agent
}

// NewWorld creates count agents spread uniformly over a width x height world
// centred on the origin. Agent IDs are 0..count-1 in creation order.
func NewWorld(width, height float64, count int, opts ...Option) (*World, error) {
	bounds := Bounds{Width: width, Height: height}
	if err := bounds.validate(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: agent count must not be negative, got %d", ErrInvalidWorld, count)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(0)
	}
	if o.index == nil {
		o.index = NewGridIndex(DefaultCellSize)
	}

	agents := make([]Agent, count)
	for i := range agents {
		x := uniform(o.rng, width)
		y := uniform(o.rng, height)
		agents[i] = newAgent(x, y, i, o.sampler(o.rng))
	}

	w := &World{
		bounds:  bounds,
		agents:  agents,
		index:   o.index,
		policy:  o.policy,
		workers: o.workers,
		logger:  o.logger,
	}
	w.index.Rebuild(w.agents)
	w.logger.Infof("world %.0fx%.0f created with %d agents (index: %T, policy: %s)",
		width, height, count, w.index, w.policy)
	return w, nil
}

// Bounds returns the world extent.
func (w *World) Bounds() Bounds { return w.bounds }

// Width returns the world width.
func (w *World) Width() float64 { return w.bounds.Width }

// Height returns the world height.
func (w *World) Height() float64 { return w.bounds.Height }

// Len returns the population size.
func (w *World) Len() int { return len(w.agents) }

// Ticks returns the number of completed steps.
func (w *World) Ticks() uint64 { return w.ticks }

// Policy returns the update policy in use.
func (w *World) Policy() UpdatePolicy { return w.policy }

// Agents returns a copy of the population. Later steps do not affect it.
func (w *World) Agents() []Agent {
	return slices.Clone(w.agents)
}

// AgentNeighbors returns every agent within NeighborRadius of agent,
// the agent itself included, in ID order.
func (w *World) AgentNeighbors(agent Agent) []Agent {
	return w.collectNeighbors(w.agents, agent.Position, &neighborScratch{})
}

// collectNeighbors filters the index candidates around center with the exact
// distance test. The returned slice aliases s and is only valid until the
// next call with the same scratch.
func (w *World) collectNeighbors(agents []Agent, center geometry.Vector2D, s *neighborScratch) []Agent {
	s.ids = w.index.Candidates(center, NeighborRadius, s.ids[:0])
	slices.Sort(s.ids)
	s.agents = s.agents[:0]
	for _, id := range s.ids {
		if withinRadius(agents[id].Position, center, NeighborRadius) {
			s.agents = append(s.agents, agents[id])
		}
	}
	return s.agents
}

// Step advances every agent by one tick.
func (w *World) Step() {
	start := time.Now()
	switch w.policy {
	case Snapshot:
		w.stepSnapshot()
	default:
		w.stepSequential()
	}
	w.ticks++
	w.logger.Debugf("tick %d: %d agents in %s", w.ticks, len(w.agents), time.Since(start))
}

// stepSequential mutates agents in place in ID order. The index follows each
// move, so agent i sees agents 0..i-1 at their new positions.
func (w *World) stepSequential() {
	for i := range w.agents {
		neighbors := w.collectNeighbors(w.agents, w.agents[i].Position, &w.scratch)
		from := w.agents[i].Position
		w.agents[i].Step(w.bounds, neighbors)
		w.index.Moved(w.agents, i, from)
	}
}

// stepSnapshot reads only the previous tick: agents are copied into next,
// stepped in parallel against prev, then the two slices are swapped.
func (w *World) stepSnapshot() {
	prev := w.agents
	if cap(w.next) < len(prev) {
		w.next = make([]Agent, len(prev))
	}
	next := w.next[:len(prev)]

	chunk := (len(prev) + w.workers - 1) / w.workers
	var g errgroup.Group
	g.SetLimit(w.workers)
	for lo := 0; lo < len(prev); lo += chunk {
		hi := min(lo+chunk, len(prev))
		g.Go(func() error {
			var s neighborScratch
			for i := lo; i < hi; i++ {
				neighbors := w.collectNeighbors(prev, prev[i].Position, &s)
				next[i] = prev[i]
				next[i].Step(w.bounds, neighbors)
			}
			return nil
		})
	}
	_ = g.Wait()

	w.agents, w.next = next, prev
	w.index.Rebuild(w.agents)
}
