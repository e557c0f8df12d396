package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

var testBounds = Bounds{Width: 1000, Height: 600}

func agentAt(id int, x, y, vx, vy float64) Agent {
	return Agent{
		ID:       id,
		Position: geometry.Vector2D{X: x, Y: y},
		Velocity: geometry.Vector2D{X: vx, Y: vy},
	}
}

func TestAgent_BorderWrap(t *testing.T) {
	tests := []struct {
		name string
		pos  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"past right edge", geometry.Vector2D{X: 500.5, Y: 10}, geometry.Vector2D{X: -500, Y: 10}},
		{"past left edge", geometry.Vector2D{X: -501, Y: 10}, geometry.Vector2D{X: 500, Y: 10}},
		{"past top edge", geometry.Vector2D{X: 10, Y: 300.1}, geometry.Vector2D{X: 10, Y: -300}},
		{"past bottom edge", geometry.Vector2D{X: 10, Y: -330}, geometry.Vector2D{X: 10, Y: 300}},
		{"past a corner", geometry.Vector2D{X: 600, Y: -400}, geometry.Vector2D{X: -500, Y: 300}},
		{"on the edge stays", geometry.Vector2D{X: 500, Y: -300}, geometry.Vector2D{X: 500, Y: -300}},
		{"inside stays", geometry.Vector2D{X: 1, Y: 2}, geometry.Vector2D{X: 1, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Agent{ID: 0, Position: tt.pos}
			// zero velocity: the position after Step is exactly the wrapped one
			a.Step(testBounds, []Agent{a})
			if a.Position != tt.want {
				t.Errorf("Step from %v = %v; want %v", tt.pos, a.Position, tt.want)
			}
		})
	}
}

func TestAgent_AloneMovesStraight(t *testing.T) {
	a := agentAt(7, 0, 0, 1, 0.5)
	start := a.Velocity
	for i := 1; i <= 10; i++ {
		a.Step(testBounds, []Agent{a})
		if a.Velocity != start {
			t.Fatalf("step %d: velocity changed to %v; want %v", i, a.Velocity, start)
		}
		want := geometry.Vector2D{X: float64(i), Y: 0.5 * float64(i)}
		if !a.Position.Eq(want) {
			t.Fatalf("step %d: position = %v; want %v", i, a.Position, want)
		}
	}
}

func TestAgent_SeparationDominatesForCloseNeighbors(t *testing.T) {
	left := agentAt(0, 0, 0, 0, 0)
	right := agentAt(1, 10, 0, 0, 0)
	neighbors := []Agent{left, right}

	left.Step(testBounds, neighbors)
	right.Step(testBounds, neighbors)

	if left.Velocity.X >= 0 {
		t.Errorf("left agent velocity = %v; want it pushed towards -X", left.Velocity)
	}
	if right.Velocity.X <= 0 {
		t.Errorf("right agent velocity = %v; want it pushed towards +X", right.Velocity)
	}
	if left.Velocity.Y != 0 || right.Velocity.Y != 0 {
		t.Errorf("unexpected Y components: %v %v", left.Velocity, right.Velocity)
	}
	// separation 1.5*0.03 minus cohesion 1.2*0.03, alignment has no direction
	if got, want := left.Velocity.X, -0.009; math.Abs(got-want) > 1e-12 {
		t.Errorf("left velocity X = %v; want %v", got, want)
	}
}

func TestAgent_VelocityIsLimited(t *testing.T) {
	a := agentAt(0, 0, 0, 30, 40)
	a.Step(testBounds, nil)
	if got := a.Speed(); got > MaxSpeed+geometry.Epsilon {
		t.Errorf("speed after step = %v; want <= %v", got, MaxSpeed)
	}
	if !a.Velocity.Eq(geometry.Vector2D{X: 1.2, Y: 1.6}) {
		t.Errorf("velocity = %v; want direction kept at max speed", a.Velocity)
	}
}

func TestAgent_HeadingAndAcceleration(t *testing.T) {
	tests := []struct {
		name     string
		velocity geometry.Vector2D
		want     float64
	}{
		{"up", geometry.Vector2D{X: 0, Y: 1}, 0},
		{"right", geometry.Vector2D{X: 1, Y: 0}, -math.Pi / 2},
		{"left", geometry.Vector2D{X: -1, Y: 0}, math.Pi / 2},
		{"down", geometry.Vector2D{X: 0, Y: -1}, -math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Agent{Velocity: tt.velocity}
			other := agentAt(1, 20, 20, 0, 1)
			a.Step(testBounds, []Agent{a, other})
			if !a.Acceleration.IsZero() {
				t.Errorf("acceleration after step = %v; want zero", a.Acceleration)
			}
			want := a.Velocity.Angle() - HeadingOffset
			if a.Heading != want {
				t.Errorf("heading = %v; want %v", a.Heading, want)
			}
			alone := Agent{Velocity: tt.velocity}
			alone.Step(testBounds, nil)
			if math.Abs(alone.Heading-tt.want) > 1e-12 {
				t.Errorf("heading alone = %v; want %v", alone.Heading, tt.want)
			}
		})
	}
}

func TestAgent_AddForceClampsBeforeWeighting(t *testing.T) {
	a := Agent{}
	a.addForce(geometry.Vector2D{X: 10, Y: 0}, SeparationWeight)
	want := geometry.Vector2D{X: MaxForce * SeparationWeight, Y: 0}
	if !a.Acceleration.Eq(want) {
		t.Errorf("acceleration = %v; want %v", a.Acceleration, want)
	}

	a.addForce(geometry.Vector2D{X: 0, Y: 0.01}, AlignmentWeight)
	want = want.Add(geometry.Vector2D{X: 0, Y: 0.01 * AlignmentWeight})
	if !a.Acceleration.Eq(want) {
		t.Errorf("acceleration = %v; want %v", a.Acceleration, want)
	}
}

func TestAgent_RulesSkipSelf(t *testing.T) {
	a := agentAt(3, 5, 5, 1, 1)
	self := []Agent{a, a}

	a.separation(self)
	a.alignment(self)
	a.cohesion(self)

	if !a.Acceleration.IsZero() {
		t.Errorf("acceleration from self only = %v; want zero", a.Acceleration)
	}
}

func TestAgent_Separation(t *testing.T) {
	t.Run("ignores neighbors at desired separation or further", func(t *testing.T) {
		a := agentAt(0, 0, 0, 1, 0)
		a.separation([]Agent{agentAt(1, DesiredSeparation, 0, 0, 0), agentAt(2, 0, 150, 0, 0)})
		if !a.Acceleration.IsZero() {
			t.Errorf("acceleration = %v; want zero", a.Acceleration)
		}
	})

	t.Run("coincident neighbor contributes nothing", func(t *testing.T) {
		a := agentAt(0, 3, 3, 1, 0)
		a.separation([]Agent{agentAt(1, 3, 3, 0, 0)})
		if !a.Acceleration.IsZero() {
			t.Errorf("acceleration = %v; want zero", a.Acceleration)
		}
		a.Step(testBounds, []Agent{agentAt(1, 3, 3, 0, 0)})
		if math.IsNaN(a.Velocity.X) || math.IsNaN(a.Velocity.Y) {
			t.Errorf("velocity became NaN: %v", a.Velocity)
		}
	})

	t.Run("symmetric neighbors cancel out", func(t *testing.T) {
		a := agentAt(0, 0, 0, 0, 0)
		a.separation([]Agent{agentAt(1, 10, 0, 0, 0), agentAt(2, -10, 0, 0, 0)})
		if !a.Acceleration.IsZero() {
			t.Errorf("acceleration = %v; want zero", a.Acceleration)
		}
	})

	t.Run("closer neighbor weighs more", func(t *testing.T) {
		a := agentAt(0, 0, 0, 0, 0)
		a.separation([]Agent{agentAt(1, 5, 0, 0, 0), agentAt(2, -40, 0, 0, 0)})
		if a.Acceleration.X >= 0 {
			t.Errorf("acceleration = %v; want away from the closer neighbor", a.Acceleration)
		}
	})
}

func TestAgent_AlignmentSteersTowardsAverageHeading(t *testing.T) {
	a := agentAt(0, 0, 0, 0, 0)
	a.alignment([]Agent{a, agentAt(1, 5, 5, 0, 2), agentAt(2, -5, 5, 0, 1)})
	want := geometry.Vector2D{X: 0, Y: MaxForce * AlignmentWeight}
	if !a.Acceleration.Eq(want) {
		t.Errorf("acceleration = %v; want %v", a.Acceleration, want)
	}
}

func TestAgent_CohesionSeeksCentre(t *testing.T) {
	a := agentAt(0, 0, 0, 0, 0)
	a.cohesion([]Agent{agentAt(1, 0, 20, 0, 0), agentAt(2, 0, 40, 0, 0)})
	want := geometry.Vector2D{X: 0, Y: MaxForce * CohesionWeight}
	if !a.Acceleration.Eq(want) {
		t.Errorf("acceleration = %v; want %v", a.Acceleration, want)
	}
}

func TestNewAgent(t *testing.T) {
	rng := NewRand(42)
	a := NewAgent(12, -4, 99, 5, rng)
	if a.ID != 5 || a.Position != (geometry.Vector2D{X: 12, Y: -4}) {
		t.Errorf("NewAgent = %+v", a)
	}
	if math.Abs(a.Speed()-1) > geometry.Epsilon {
		t.Errorf("initial speed = %v; want 1", a.Speed())
	}
	if !a.Acceleration.IsZero() || a.Heading != 0 {
		t.Errorf("NewAgent should start with zero acceleration and heading, got %+v", a)
	}
}
