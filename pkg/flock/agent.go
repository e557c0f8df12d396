package flock

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Steering constants. Weights are fixed at compile time.
const (
	MaxSpeed = 2.0
	MaxForce = 0.03

	// DesiredSeparation is the distance under which a neighbor pushes an agent away.
	DesiredSeparation = 100.0
	// SteerSpeed is the length of the desired velocity used by alignment and seek.
	SteerSpeed = 5.0

	SeparationWeight = 1.5
	AlignmentWeight  = 1.1
	CohesionWeight   = 1.2

	// HeadingOffset rotates the motion angle so that a sprite drawn facing +Y
	// points along the velocity.
	HeadingOffset = math.Pi / 2
)

// Agent represents a single boid.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds. https://en.wikipedia.org/wiki/Boids
// Fields are exported so a renderer can read them. Hosts must treat the
// values they receive from World as read-only copies.
type Agent struct {
	ID           int
	Position     geometry.Vector2D
	Velocity     geometry.Vector2D
	Acceleration geometry.Vector2D
	Heading      float64
}

// NewAgent creates an agent at (x, y) with a velocity drawn from the default
// unit circle sampler. Agents live in the z = 0 plane, z is ignored.
func NewAgent(x, y, z float64, id int, rng *rand.Rand) Agent {
	return newAgent(x, y, id, UnitCircle(rng))
}

func newAgent(x, y float64, id int, velocity geometry.Vector2D) Agent {
	return Agent{
		ID:       id,
		Position: geometry.Vector2D{X: x, Y: y},
		Velocity: velocity,
	}
}

// Step applies one tick of the flocking rules. neighbors may contain the
// agent itself: every rule skips entries carrying the agent's ID.
func (a *Agent) Step(bounds Bounds, neighbors []Agent) {
	a.wrap(bounds)

	a.separation(neighbors)
	a.alignment(neighbors)
	a.cohesion(neighbors)

	a.Velocity = a.Velocity.Add(a.Acceleration).Limit(MaxSpeed)
	a.Position = a.Position.Add(a.Velocity)
	a.Heading = a.Velocity.Angle() - HeadingOffset
	a.Acceleration = geometry.Zero
}

// Speed is the length of the velocity.
func (a Agent) Speed() float64 {
	return a.Velocity.Len()
}

// wrap teleports the agent to the opposite edge once it has crossed one.
func (a *Agent) wrap(b Bounds) {
	halfW, halfH := b.Width/2, b.Height/2
	if a.Position.X > halfW {
		a.Position.X = -halfW
	}
	if a.Position.X < -halfW {
		a.Position.X = halfW
	}
	if a.Position.Y > halfH {
		a.Position.Y = -halfH
	}
	if a.Position.Y < -halfH {
		a.Position.Y = halfH
	}
}

// addForce clamps force to MaxForce before weighting it into the acceleration.
func (a *Agent) addForce(force geometry.Vector2D, weight float64) {
	a.Acceleration = a.Acceleration.Add(force.Limit(MaxForce).Mul(weight))
}

func (a *Agent) seek(target geometry.Vector2D) {
	desired := target.Sub(a.Position).Normalize().Mul(SteerSpeed)
	a.addForce(desired.Sub(a.Velocity), CohesionWeight)
}

func (a *Agent) separation(neighbors []Agent) {
	var steer geometry.Vector2D
	count := 0
	for _, n := range neighbors {
		if n.ID == a.ID {
			continue
		}
		d := a.Position.DistanceTo(n.Position)
		// a coincident neighbor has no away direction
		if d == 0 || d >= DesiredSeparation {
			continue
		}
		away := a.Position.Sub(n.Position).Normalize().Div(d)
		steer = steer.Add(away)
		count++
	}
	if count > 0 {
		steer = steer.Div(float64(count))
	}
	if steer.Len() > 0 {
		steer = steer.Normalize().Mul(MaxSpeed).Sub(a.Velocity)
		a.addForce(steer, SeparationWeight)
	}
}

func (a *Agent) alignment(neighbors []Agent) {
	var sum geometry.Vector2D
	count := 0
	for _, n := range neighbors {
		if n.ID == a.ID {
			continue
		}
		sum = sum.Add(n.Velocity)
		count++
	}
	if count == 0 {
		return
	}
	desired := sum.Div(float64(count)).Normalize().Mul(SteerSpeed)
	a.addForce(desired.Sub(a.Velocity), AlignmentWeight)
}

func (a *Agent) cohesion(neighbors []Agent) {
	var sum geometry.Vector2D
	count := 0
	for _, n := range neighbors {
		if n.ID == a.ID {
			continue
		}
		sum = sum.Add(n.Position)
		count++
	}
	if count == 0 {
		return
	}
	a.seek(sum.Div(float64(count)))
}
