package simulation

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
)

// Triangles per DrawTriangles batch, keeps vertex indices inside uint16.
const agentsPerBatch = 10000

var (
	whiteImage = ebiten.NewImage(3, 3)
	background = color.RGBA{R: 10, G: 10, B: 30, A: 255}

	// agent shape in its own frame, nose on +Y
	agentShape = [3][2]float64{{0, 6}, {4, -4}, {-4, -4}}
)

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *Snapshot
	lastState  *Snapshot

	cfg *Config

	vertices []ebiten.Vertex
	indices  []uint16

	// Timing instrumentation
	lastFrame          time.Time
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame builds the world from cfg and spawns its actor on system.
func NewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	world, err := cfg.NewWorld(system.Logger())
	if err != nil {
		return nil, err
	}

	// Buffer to avoid blocking the world actor
	snapshotCh := make(chan *Snapshot, 10)
	worldPID, err := system.Spawn(ctx, "world", NewWorldActor(world, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	return &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  &Snapshot{Bounds: world.Bounds()}, // Avoid nil pointer
		cfg:        cfg,
		lastFrame:  time.Now(),
	}, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	// 1. Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}

	// 2. Trigger Simulation Step
	frame := start.Sub(g.lastFrame)
	g.lastFrame = start
	return actor.Tell(g.ctx, g.worldPID, durationpb.New(frame))
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(background)

	agents := g.lastState.Agents
	for len(agents) > 0 {
		n := min(len(agents), agentsPerBatch)
		g.drawAgents(screen, agents[:n])
		agents = agents[n:]
	}

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nTick: %d\nAgents: %d\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		len(g.lastState.Agents),
		g.updateAvg,
		g.drawAvg,
		g.updateAvg+g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}

// drawAgents renders one batch of agents as triangles in a single draw call.
func (g *Game) drawAgents(screen *ebiten.Image, agents []flock.Agent) {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for i := range agents {
		base := uint16(len(g.vertices))
		for _, p := range agentShape {
			x, y := agents[i].Apply(p[0], p[1])
			sx, sy := g.toScreen(x, y)
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX: float32(sx),
				DstY: float32(sy),
				SrcX: 1, SrcY: 1,
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
		g.indices = append(g.indices, base, base+1, base+2)
	}
	screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// toScreen maps centred world coordinates (y up) to screen pixels (y down).
func (g *Game) toScreen(x, y float64) (float64, float64) {
	b := g.lastState.Bounds
	return x + b.Width/2, b.Height/2 - y
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }

// RunGame opens the window and blocks until it is closed.
func RunGame(ctx context.Context, cfg *Config, logger golog.Logger) error {
	system, err := actor.NewActorSystem("FlockWorld", actor.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() {
		if err := system.Stop(ctx); err != nil {
			logger.Errorf("failed to stop actor system: %v", err)
		}
	}()

	game, err := NewGame(ctx, cfg, system)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("Flock: %d agents", cfg.AgentCount))
	ebiten.SetTPS(cfg.TicksPerSecond)
	return ebiten.RunGame(game)
}

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}
