package raster

import "github.com/CygnusX-26/swrast/pkg/math3d"

// Plane is Ax + By + Cz + D = 0, with (A, B, C) the unit normal.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

func (p *Plane) normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to point;
// positive is in front (the side the normal points to).
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the six planes (left, right, bottom, top, near, far) of a
// view-projection transform, each with its normal pointing inward.
type Frustum struct {
	Planes [6]Plane
}

const (
	frustumLeft = iota
	frustumRight
	frustumBottom
	frustumTop
	frustumNear
	frustumFar
)

// NewFrustum extracts the frustum planes from a combined view-projection
// matrix via the Gribb/Hartmann method.
func NewFrustum(m math3d.Mat4) Frustum {
	var f Frustum

	f.Planes[frustumLeft] = Plane{Normal: math3d.V3(m[3]+m[0], m[7]+m[4], m[11]+m[8]), D: m[15] + m[12]}
	f.Planes[frustumRight] = Plane{Normal: math3d.V3(m[3]-m[0], m[7]-m[4], m[11]-m[8]), D: m[15] - m[12]}
	f.Planes[frustumBottom] = Plane{Normal: math3d.V3(m[3]+m[1], m[7]+m[5], m[11]+m[9]), D: m[15] + m[13]}
	f.Planes[frustumTop] = Plane{Normal: math3d.V3(m[3]-m[1], m[7]-m[5], m[11]-m[9]), D: m[15] - m[13]}
	f.Planes[frustumNear] = Plane{Normal: math3d.V3(m[3]+m[2], m[7]+m[6], m[11]+m[10]), D: m[15] + m[14]}
	f.Planes[frustumFar] = Plane{Normal: math3d.V3(m[3]-m[2], m[7]-m[6], m[11]-m[10]), D: m[15] - m[14]}

	for i := range f.Planes {
		f.Planes[i].normalize()
	}
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// Transform returns the AABB bounding all 8 transformed corners of box.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	newMin := m.MulVec3(corners[0])
	newMax := newMin
	for _, c := range corners[1:] {
		t := m.MulVec3(c)
		newMin = newMin.Min(t)
		newMax = newMax.Max(t)
	}
	return AABB{Min: newMin, Max: newMax}
}

// IntersectAABB reports whether any part of box is inside the frustum,
// using the positive-vertex test: a box is rejected only when its
// furthest corner in the plane's normal direction still falls outside
// that plane.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		p := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
