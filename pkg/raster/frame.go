package raster

import (
	"fmt"

	"github.com/CygnusX-26/swrast/pkg/math3d"
	"github.com/CygnusX-26/swrast/pkg/scene"
)

// Draw renders world into pixels, a width*height*4 RGBA byte buffer,
// clearing it to opaque white and resetting db before drawing. db is
// supplied by the caller so repeated frames (e.g. a terminal viewer's
// render loop) can reuse one allocation instead of paying for a fresh
// depth buffer every call.
//
// Objects are drawn in World.Objects order; within an object, triangles
// are drawn one at a time, but each triangle's own scanline sweep is
// split across a worker pool (see drawTriangle). A singular normal
// matrix on any object is a fatal Math error and aborts the frame
// immediately; a single triangle being back-facing, out-of-frustum, or
// degenerate only skips that triangle.
func Draw(world *scene.World, db *DepthBuffer, pixels []byte, width, height int) error {
	if len(pixels) < width*height*4 {
		return fmt.Errorf("raster: pixel buffer too small for %dx%d", width, height)
	}
	for i := range width * height * 4 {
		pixels[i] = 255
	}
	db.Reset()

	view := world.Camera.ViewMatrix()
	proj := world.Camera.ProjectionMatrix()

	lightDirView := upperLeft3x3(view).MulVec3Dir(world.Light.Direction()).Normalize()

	for i := range world.Objects {
		obj := &world.Objects[i]
		model := obj.ModelMatrix()
		modelView := view.Mul(model)
		viewProj := proj.Mul(modelView)

		normalMatrix, err := transformObject(obj, viewProj, modelView)
		if err != nil {
			return err
		}

		if boundsProvider, ok := obj.Mesh.(interface {
			Bounds() (math3d.Vec3, math3d.Vec3)
		}); ok {
			min, max := boundsProvider.Bounds()
			if !NewFrustum(viewProj).IntersectAABB(AABB{Min: min, Max: max}) {
				continue
			}
		}

		drawObject(pixels, width, height, db, obj.Mesh, viewProj, normalMatrix, lightDirView, world.Light.Ambient)
	}

	return nil
}

// drawObject transforms and rasterizes every triangle of mesh,
// skipping triangles that are out-of-frustum (any vertex behind the
// eye or with NDC z outside [0,1]), degenerate (zero screen-space
// area), or back-facing.
func drawObject(
	pixels []byte, width, height int, db *DepthBuffer,
	mesh scene.MeshSource, viewProj, normalMatrix math3d.Mat4,
	lightDirView math3d.Vec3, ambient float64,
) {
	for i := range mesh.TriangleCount() {
		tri := mesh.GetTriangle(i)

		var sv [3]screenVertex
		valid := true
		for k := range 3 {
			pos := mesh.GetPosition(tri.Verts[k])
			sv[k] = projectVertex(viewProj, pos, width, height)
			if !sv[k].Valid {
				valid = false
			}
		}
		if !valid {
			continue
		}
		if !isFrontFacing(sv[0], sv[1], sv[2]) {
			continue
		}

		var uv [3]scene.UV
		var normal [3]math3d.Vec3
		hasUV := tri.Texes[0] != scene.AbsentIndex && tri.Texes[1] != scene.AbsentIndex && tri.Texes[2] != scene.AbsentIndex
		for k := range 3 {
			if tri.Texes[k] != scene.AbsentIndex {
				uv[k] = mesh.GetTexcoord(tri.Texes[k])
			}
			var n math3d.Vec3
			if tri.Norms[k] != scene.AbsentIndex {
				n = mesh.GetNormal(tri.Norms[k])
			} else {
				n = math3d.V3(0, 0, 1)
			}
			normal[k] = normalMatrix.MulVec3Dir(n).Normalize()
		}

		mat := mesh.GetMaterial(tri.Material)
		if mat == nil {
			def := scene.DefaultMaterial()
			mat = &def
		}

		drawTriangle(pixels, width, height, db, sv, uv, normal, hasUV, mat, lightDirView, ambient)
	}
}
