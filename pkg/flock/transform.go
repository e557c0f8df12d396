package flock

import "github.com/go-gl/mathgl/mgl64"

// Position3D returns the position in the z = 0 plane.
func (a Agent) Position3D() mgl64.Vec3 {
	return mgl64.Vec3{a.Position.X, a.Position.Y, 0}
}

// Transform returns the model matrix of a sprite whose forward axis is +Y:
// rotate by Heading around Z, then translate to the position.
func (a Agent) Transform() mgl64.Mat4 {
	return mgl64.Translate3D(a.Position.X, a.Position.Y, 0).Mul4(mgl64.HomogRotate3DZ(a.Heading))
}

// Apply maps a point of sprite space (forward = +Y) to world space.
func (a Agent) Apply(x, y float64) (float64, float64) {
	p := a.Transform().Mul4x1(mgl64.Vec4{x, y, 0, 1})
	return p.X(), p.Y()
}
