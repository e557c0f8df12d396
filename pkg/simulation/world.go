package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
)

// Snapshot is what the UI receives after every tick.
type Snapshot struct {
	Tick   uint64
	Bounds flock.Bounds
	Agents []flock.Agent
}

// WorldActor owns the flock.World and is its only writer.
// The game loop sends it one tick (a *durationpb.Duration frame time) per frame.
type WorldActor struct {
	world      *flock.World
	snapshotCh chan<- *Snapshot

	// --- Benchmark Stats ---
	tickCount    int
	droppedCount int
	stepTime     time.Duration
	lastLogTime  time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor wraps world. Snapshots are pushed without blocking on snapshotCh.
func NewWorldActor(world *flock.World, snapshotCh chan<- *Snapshot) *WorldActor {
	return &WorldActor{
		world:       world,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is starting with %d agents...", w.world.Len())
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("World Started. Publishing initial state...")
		w.pushSnapshot()

	// The Main Simulation Step (Driven by Game Loop)
	case *durationpb.Duration:
		start := time.Now()
		w.world.Step()
		w.stepTime += time.Since(start)
		w.tickCount++
		ctx.Logger().Debugf("tick %d (frame %s)", w.world.Ticks(), msg.AsDuration())

		w.pushSnapshot()
		w.logBenchmarks(ctx)

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) < time.Second {
		return
	}
	var avg time.Duration
	if w.tickCount > 0 {
		avg = w.stepTime / time.Duration(w.tickCount)
	}
	ctx.Logger().Infof("📊 TICK RATE: %d/sec (avg step %s, dropped frames %d) | Agents: %d",
		w.tickCount, avg, w.droppedCount, w.world.Len())
	w.tickCount = 0
	w.droppedCount = 0
	w.stepTime = 0
	w.lastLogTime = time.Now()
}

func (w *WorldActor) pushSnapshot() {
	select {
	case w.snapshotCh <- w.buildSnapshot():
	default:
		// UI busy, skip frame
		w.droppedCount++
	}
}

func (w *WorldActor) buildSnapshot() *Snapshot {
	return &Snapshot{
		Tick:   w.world.Ticks(),
		Bounds: w.world.Bounds(),
		Agents: w.world.Agents(),
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is shutdown after %d ticks...", w.world.Ticks())
	return nil
}
