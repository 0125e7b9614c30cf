package raster

import (
	"math"
	"testing"

	"github.com/CygnusX-26/swrast/pkg/math3d"
	"github.com/CygnusX-26/swrast/pkg/scene"
)

const testW, testH = 100, 100

// newTestWorld builds a world with the camera at the origin looking
// down -Z with a 90-degree vertical FOV and unit aspect ratio, so the
// screen-space math in these tests stays easy to hand-check.
func newTestWorld() *scene.World {
	w := scene.NewWorld()
	w.Camera.SetPosition(math3d.V3(0, 0, 0))
	w.Camera.SetFOV(math.Pi / 2)
	w.Camera.SetAspectRatio(1)
	w.Camera.LookAt(math3d.V3(0, 0, -1))
	w.Light = scene.Light{
		Position: math3d.V3(0, 0, 0),
		Target:   math3d.V3(0, 0, -1),
		Ambient:  0.1,
	}
	return w
}

// frontFacingTriangle returns a mesh with one triangle, ordered
// top / bottom-right / bottom-left, which this package's winding
// convention treats as front-facing when viewed from +Z looking
// toward -Z (see isFrontFacing).
func frontFacingTriangle(z float64, mat scene.Material) *scene.Mesh {
	mesh := scene.NewMesh("tri")
	mesh.Positions = []math3d.Vec3{
		math3d.V3(0, 1, z),
		math3d.V3(1, -1, z),
		math3d.V3(-1, -1, z),
	}
	mesh.Normals = []math3d.Vec3{
		math3d.V3(0, 0, 1),
		math3d.V3(0, 0, 1),
		math3d.V3(0, 0, 1),
	}
	mesh.Texcoords = []scene.UV{{U: 0.5, V: 1}, {U: 1, V: 0}, {U: 0, V: 0}}
	mesh.Materials = []scene.Material{mat}
	mesh.Triangles = []scene.Triangle{
		{Verts: [3]int{0, 1, 2}, Texes: [3]int{0, 1, 2}, Norms: [3]int{0, 1, 2}, Material: 0},
	}
	mesh.CalculateBounds()
	return mesh
}

func newPixels() []byte { return make([]byte, testW*testH*4) }

func pixelAt(pixels []byte, x, y int) (r, g, b, a byte) {
	i := (y*testW + x) * 4
	return pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
}

// TestDrawEmptyWorldIsBackground verifies a world with no objects
// renders as plain opaque white.
func TestDrawEmptyWorldIsBackground(t *testing.T) {
	world := newTestWorld()
	pixels := newPixels()
	db := NewDepthBuffer(testW, testH)

	if err := Draw(world, db, pixels, testW, testH); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	for i, v := range pixels {
		if v != 255 {
			t.Fatalf("pixel byte %d = %d, want 255 (empty frame should be opaque white)", i, v)
		}
	}
}

// TestDrawFrontFacingTriangleCoversCenter verifies a triangle facing
// the camera paints its centroid pixel and leaves the far corners of
// the image as background.
func TestDrawFrontFacingTriangleCoversCenter(t *testing.T) {
	world := newTestWorld()
	mat := scene.Material{Name: "white", Ka: scene.RGB(0.1, 0.1, 0.1), Kd: scene.RGB(1, 1, 1)}
	world.Objects = []scene.Object{{Name: "tri", Mesh: frontFacingTriangle(-5, mat)}}

	pixels := newPixels()
	db := NewDepthBuffer(testW, testH)
	if err := Draw(world, db, pixels, testW, testH); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	r, g, b, _ := pixelAt(pixels, testW/2, testH/2)
	if r == 255 && g == 255 && b == 255 {
		t.Error("centroid pixel should be covered by the front-facing triangle, got background white")
	}

	r, g, b, _ = pixelAt(pixels, 0, 0)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("corner pixel outside the triangle should stay background white, got (%d,%d,%d)", r, g, b)
	}
}

// TestDrawBackFacingTriangleIsCulled verifies reversing a front-facing
// triangle's winding removes it from the frame entirely.
func TestDrawBackFacingTriangleIsCulled(t *testing.T) {
	world := newTestWorld()
	mat := scene.Material{Name: "white", Ka: scene.RGB(0.1, 0.1, 0.1), Kd: scene.RGB(1, 1, 1)}
	mesh := frontFacingTriangle(-5, mat)
	mesh.Triangles[0].Verts = [3]int{1, 0, 2} // swap two vertices: now back-facing
	world.Objects = []scene.Object{{Name: "tri", Mesh: mesh}}

	pixels := newPixels()
	db := NewDepthBuffer(testW, testH)
	if err := Draw(world, db, pixels, testW, testH); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	for i, v := range pixels {
		if v != 255 {
			t.Fatalf("back-facing triangle should be fully culled, found non-background byte at %d", i)
		}
	}
}

// TestDrawOverlappingTrianglesNearerWins verifies the depth buffer
// keeps the nearer of two overlapping triangles at their shared pixel.
func TestDrawOverlappingTrianglesNearerWins(t *testing.T) {
	world := newTestWorld()
	red := scene.Material{Name: "red", Ka: scene.RGB(0.1, 0, 0), Kd: scene.RGB(1, 0, 0)}
	blue := scene.Material{Name: "blue", Ka: scene.RGB(0, 0, 0.1), Kd: scene.RGB(0, 0, 1)}

	farMesh := frontFacingTriangle(-10, red)
	nearMesh := frontFacingTriangle(-5, blue)

	world.Objects = []scene.Object{
		{Name: "far", Mesh: farMesh},
		{Name: "near", Mesh: nearMesh},
	}

	pixels := newPixels()
	db := NewDepthBuffer(testW, testH)
	if err := Draw(world, db, pixels, testW, testH); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	r, _, b, _ := pixelAt(pixels, testW/2, testH/2)
	if b == 0 || r != 0 {
		t.Errorf("nearer blue triangle should win the depth test at the shared pixel, got r=%d b=%d", r, b)
	}
}

// TestDrawObjectBehindCameraIsCulled verifies a triangle entirely
// behind the eye (w <= 0) is treated as out-of-frustum and skipped.
func TestDrawObjectBehindCameraIsCulled(t *testing.T) {
	world := newTestWorld()
	mat := scene.Material{Name: "white", Kd: scene.RGB(1, 1, 1)}
	world.Objects = []scene.Object{{Name: "behind", Mesh: frontFacingTriangle(5, mat)}}

	pixels := newPixels()
	db := NewDepthBuffer(testW, testH)
	if err := Draw(world, db, pixels, testW, testH); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	for i, v := range pixels {
		if v != 255 {
			t.Fatalf("triangle behind the camera should be culled, found non-background byte at %d", i)
		}
	}
}

// TestSampleNearestClampsAtTextureEdge verifies a texture coordinate
// outside [0,1] samples the edge pixel rather than wrapping or erroring.
func TestSampleNearestClampsAtTextureEdge(t *testing.T) {
	img := scene.NewImage(2, 2)
	img.Set(0, 0, scene.RGB(1, 0, 0))
	img.Set(1, 0, scene.RGB(0, 1, 0))
	img.Set(0, 1, scene.RGB(0, 0, 1))
	img.Set(1, 1, scene.RGB(1, 1, 1))

	edge := img.SampleNearest(1, 1)
	clamped := img.SampleNearest(5, 5)
	if clamped != edge {
		t.Errorf("sampling far outside [0,1] should clamp to the (1,1) edge pixel %v, got %v", edge, clamped)
	}

	negative := img.SampleNearest(-5, -5)
	corner := img.SampleNearest(0, 0)
	if negative != corner {
		t.Errorf("sampling below 0 should clamp to the (0,0) corner pixel %v, got %v", corner, negative)
	}
}

// TestDrawAmbientFloorNeverGoesFullyDark verifies a triangle lit from
// directly behind (zero diffuse) still renders at the 0.1 ambient
// floor rather than going pure black.
func TestDrawAmbientFloorNeverGoesFullyDark(t *testing.T) {
	world := newTestWorld()
	world.Light = scene.Light{
		Position: math3d.V3(0, 0, 10),
		Target:   math3d.V3(0, 0, 0),
		Ambient:  0.1,
	}
	mat := scene.Material{Name: "lit", Ka: scene.RGB(0.1, 0.1, 0.1), Kd: scene.RGB(1, 1, 1)}
	world.Objects = []scene.Object{{Name: "tri", Mesh: frontFacingTriangle(-5, mat)}}

	pixels := newPixels()
	db := NewDepthBuffer(testW, testH)
	if err := Draw(world, db, pixels, testW, testH); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	r, g, b, _ := pixelAt(pixels, testW/2, testH/2)
	if r == 0 && g == 0 && b == 0 {
		t.Error("a lit-from-behind triangle should still show the 0.1 ambient floor, got pure black")
	}
}
