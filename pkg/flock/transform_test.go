package flock

import (
	"math"
	"testing"
)

func TestAgent_Transform(t *testing.T) {
	a := agentAt(0, 10, -5, 2, 0)
	a.Step(testBounds, nil)
	// moving along +X: heading is -90deg, sprite forward (+Y) maps to +X
	x, y := a.Apply(0, 1)
	if math.Abs(x-(a.Position.X+1)) > 1e-9 || math.Abs(y-a.Position.Y) > 1e-9 {
		t.Errorf("Apply(0, 1) = (%v, %v); want one unit ahead of %v", x, y, a.Position)
	}

	x, y = a.Apply(0, 0)
	if math.Abs(x-a.Position.X) > 1e-9 || math.Abs(y-a.Position.Y) > 1e-9 {
		t.Errorf("Apply(0, 0) = (%v, %v); want %v", x, y, a.Position)
	}

	p := a.Position3D()
	if p.X() != a.Position.X || p.Y() != a.Position.Y || p.Z() != 0 {
		t.Errorf("Position3D = %v", p)
	}
}
