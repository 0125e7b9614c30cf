package scene

import (
	"math"
	"testing"

	"github.com/CygnusX-26/swrast/pkg/math3d"
)

// TestCalculateSmoothNormalsReassignsTriangleNorms verifies that after
// smooth-normal reconstruction, every triangle's Norms indices match
// its Verts indices (one normal per vertex position).
func TestCalculateSmoothNormalsReassignsTriangleNorms(t *testing.T) {
	mesh := NewMesh("tri")
	mesh.Positions = []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(1, 0, 0),
		math3d.V3(0, 1, 0),
	}
	mesh.Triangles = []Triangle{
		{Verts: [3]int{0, 1, 2}, Texes: [3]int{AbsentIndex, AbsentIndex, AbsentIndex}, Material: 0},
	}

	mesh.CalculateSmoothNormals()

	if len(mesh.Normals) != 3 {
		t.Fatalf("expected 3 normals, got %d", len(mesh.Normals))
	}
	if mesh.Triangles[0].Norms != mesh.Triangles[0].Verts {
		t.Errorf("Norms should mirror Verts after reconstruction, got %v vs %v",
			mesh.Triangles[0].Norms, mesh.Triangles[0].Verts)
	}
	for i, n := range mesh.Normals {
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Errorf("normal %d not unit length: %v", i, n)
		}
	}
}

// TestCalculateBounds verifies the bounding box covers every position.
func TestCalculateBounds(t *testing.T) {
	mesh := NewMesh("box")
	mesh.Positions = []math3d.Vec3{
		math3d.V3(-1, -2, -3),
		math3d.V3(4, 5, 6),
		math3d.V3(0, 0, 0),
	}
	mesh.CalculateBounds()

	if mesh.BoundsMin != math3d.V3(-1, -2, -3) {
		t.Errorf("BoundsMin = %v, want (-1,-2,-3)", mesh.BoundsMin)
	}
	if mesh.BoundsMax != math3d.V3(4, 5, 6) {
		t.Errorf("BoundsMax = %v, want (4,5,6)", mesh.BoundsMax)
	}
}

// TestMeshCloneIsIndependent verifies Clone copies slices, not aliases.
func TestMeshCloneIsIndependent(t *testing.T) {
	mesh := NewMesh("original")
	mesh.Materials = []Material{{Name: "a"}, {Name: "b"}}
	mesh.Positions = []math3d.Vec3{math3d.V3(1, 2, 3)}

	clone := mesh.Clone()
	clone.Materials[0].Name = "changed"
	clone.Positions[0] = math3d.V3(9, 9, 9)

	if mesh.Materials[0].Name == "changed" {
		t.Error("clone's material mutation leaked into original")
	}
	if mesh.Positions[0] == math3d.V3(9, 9, 9) {
		t.Error("clone's position mutation leaked into original")
	}
}

// TestGetMaterialOutOfRange verifies GetMaterial rejects negative and
// overflowing indices, including the AbsentIndex sentinel.
func TestGetMaterialOutOfRange(t *testing.T) {
	mesh := NewMesh("m")
	mesh.Materials = []Material{DefaultMaterial()}

	if mesh.GetMaterial(0) == nil {
		t.Error("GetMaterial(0) should return the default material")
	}
	if mesh.GetMaterial(AbsentIndex) != nil {
		t.Error("GetMaterial(AbsentIndex) should return nil")
	}
	if mesh.GetMaterial(5) != nil {
		t.Error("GetMaterial(5) should return nil for an empty-after-0 slice")
	}
}
