package scene

import (
	"math"

	"github.com/CygnusX-26/swrast/pkg/math3d"
)

// Camera is a position, look-at target, up vector, and the pitch/yaw
// derived from them; view and projection matrices are cached and
// recomputed lazily whenever a setter marks them dirty.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3
	Pitch    float64
	Yaw      float64

	FOV         float64
	AspectRatio float64
	Near        float64
	Far         float64

	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera() *Camera {
	c := &Camera{
		Position:    math3d.V3(0, 0, 0),
		Target:      math3d.V3(0, 0, -1),
		Up:          math3d.Up(),
		FOV:         math.Pi / 3,
		AspectRatio: 1,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
	return c
}

// SetPosition moves the camera, keeping its current view direction
// (Pitch/Yaw). Target is left unchanged and is not re-aimed at; call
// LookAt afterward to face it again.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets width/height.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// LookAt points the camera at target, updating Pitch/Yaw to match.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	dir := target.Sub(c.Position).Normalize()
	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.viewDirty = true
}

// Rotate adjusts pitch/yaw by the given deltas (radians), clamping pitch
// away from the poles, and re-derives Target from the new orientation.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw

	const maxPitch = math.Pi/2 - 0.01
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))

	c.Target = c.Position.Add(c.Forward())
	c.viewDirty = true
}

// Forward returns the camera's look direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// ViewMatrix returns the right-handed look-at view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position, c.Position.Add(c.Forward()), c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the z-in-[0,1] perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective01(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// WorldToScreen projects a world-space point to screen coordinates for
// debug overlays (wireframes, HUD markers) that need a single point
// rather than a full triangle raster. Returns visible=false for a point
// behind the eye or outside the NDC cube, matching the main rasterizer's
// own near-plane and frustum rejection.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip := c.ProjectionMatrix().Mul(c.ViewMatrix()).MulVec4(math3d.V4FromV3(worldPos, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < 0 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight)
	depth = ndc.Z
	return x, y, depth, true
}
