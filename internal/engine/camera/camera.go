// Package camera provides the orbit camera used to look at the heightmap.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults.
const (
	DefaultFOV  float32 = 45
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 100
)

// OrbitCamera circles a center point in the XY plane at a fixed height,
// with Z as the up axis. The eye sits at
// center + (Radius*sin(Angle), Radius*cos(Angle), Height).
type OrbitCamera struct {
	Center mgl32.Vec3
	Radius float32
	Height float32
	Angle  float32 // radians

	// Speed is the auto-rotation rate in radians per second.
	Speed      float32
	AutoRotate bool

	FOV       float32 // degrees
	Near, Far float32

	MinRadius, MaxRadius float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera returns a camera orbiting the origin.
func NewOrbitCamera(radius, height, speed float32) *OrbitCamera {
	return &OrbitCamera{
		Radius:          radius,
		Height:          height,
		Speed:           speed,
		AutoRotate:      true,
		FOV:             DefaultFOV,
		Near:            DefaultNear,
		Far:             DefaultFar,
		MinRadius:       1,
		MaxRadius:       80,
		DragSensitivity: 0.01,
		ZoomSensitivity: 0.1,
	}
}

// Update advances auto-rotation by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if !c.AutoRotate {
		return
	}
	c.Angle = wrapAngle(c.Angle + c.Speed*dt)
}

// Position returns the eye position.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	s, co := gomath.Sincos(float64(c.Angle))
	return c.Center.Add(mgl32.Vec3{
		c.Radius * float32(s),
		c.Radius * float32(co),
		c.Height,
	})
}

// ViewMatrix looks from the eye at the center with +Z up.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 0, 1})
}

// ProjectionMatrix returns the perspective projection for an aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag rotates the orbit by a horizontal mouse delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX float32) {
	c.Angle = wrapAngle(c.Angle - deltaX*c.DragSensitivity)
}

// HandleZoom scales the radius by a wheel delta, clamped to [MinRadius, MaxRadius].
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Radius -= delta * c.Radius * c.ZoomSensitivity
	c.Radius = mgl32.Clamp(c.Radius, c.MinRadius, c.MaxRadius)
}

// FitToBounds centers the orbit on a box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Center = lo.Add(hi).Mul(0.5)
	c.Center[2] = 0

	extent := hi.Sub(lo).Len()
	c.Radius = mgl32.Clamp(extent, c.MinRadius, c.MaxRadius)
	c.Height = c.Radius
}

func wrapAngle(a float32) float32 {
	const twoPi = 2 * gomath.Pi
	return float32(gomath.Mod(float64(a), twoPi))
}
