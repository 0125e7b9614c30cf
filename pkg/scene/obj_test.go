package scene

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadOBJNegativeIndexWinding verifies a face naming at least one
// negative vertex index has its winding reversed in its entirety.
func TestLoadOBJNegativeIndexWinding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	data := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf -4 -3 -2 -1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(mesh.Triangles) != 2 {
		t.Fatalf("expected 2 triangles from fan triangulation, got %d", len(mesh.Triangles))
	}

	forward, err := loadForwardWinding(t, dir)
	if err != nil {
		t.Fatalf("forward fixture: %v", err)
	}

	for i, tri := range mesh.Triangles {
		want := forward.Triangles[i]
		if tri.Verts[0] != want.Verts[1] || tri.Verts[1] != want.Verts[0] || tri.Verts[2] != want.Verts[2] {
			t.Errorf("triangle %d: winding not reversed relative to positive-index fan: got %v, forward was %v", i, tri.Verts, want.Verts)
		}
	}
}

// loadForwardWinding parses the same quad with all-positive indices, as
// a reference for what the un-reversed winding would have been.
func loadForwardWinding(t *testing.T, dir string) (*Mesh, error) {
	t.Helper()
	path := filepath.Join(dir, "quad_forward.obj")
	data := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return nil, err
	}
	return LoadOBJ(path)
}

// TestLoadOBJAbsentIndexSentinel verifies a face token that omits its
// texcoord component resolves to AbsentIndex, not 0.
func TestLoadOBJAbsentIndexSentinel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	data := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(mesh.Triangles))
	}
	for _, idx := range mesh.Triangles[0].Texes {
		if idx != AbsentIndex {
			t.Errorf("expected texcoord index AbsentIndex, got %d", idx)
		}
	}
}

// TestLoadOBJUnknownMaterialFails verifies usemtl naming an unregistered
// material is a fatal load error.
func TestLoadOBJUnknownMaterialFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	data := "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl ghost\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadOBJ(path); err == nil {
		t.Error("expected error for unknown material, got nil")
	}
}

// TestLoadOBJReconstructsNormalsWhenAbsent verifies a mesh with no vn
// directives gets smooth normals computed automatically. The loader's
// fan emits (p1, p0, p2), reversing the source winding, so the normal
// reconstructed for a CCW XY-plane face points toward -Z.
func TestLoadOBJReconstructsNormalsWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	data := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(mesh.Normals) != 3 {
		t.Fatalf("expected 3 reconstructed normals, got %d", len(mesh.Normals))
	}
	for i, n := range mesh.Normals {
		if n.Z >= 0 {
			t.Errorf("normal %d should point toward -Z for a CCW XY-plane source face (fan-reversed), got %v", i, n)
		}
	}
}

// TestLoadOBJMaterialSharing verifies two faces naming the same
// material share one Materials entry by index.
func TestLoadOBJMaterialSharing(t *testing.T) {
	dir := t.TempDir()
	mtlPath := filepath.Join(dir, "mat.mtl")
	mtlData := "newmtl red\nKd 1 0 0\n"
	if err := os.WriteFile(mtlPath, []byte(mtlData), 0o644); err != nil {
		t.Fatalf("write mtl fixture: %v", err)
	}

	objPath := filepath.Join(dir, "two.obj")
	objData := "mtllib mat.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nusemtl red\nf 1 2 3\nf 2 4 3\n"
	if err := os.WriteFile(objPath, []byte(objData), 0o644); err != nil {
		t.Fatalf("write obj fixture: %v", err)
	}

	mesh, err := LoadOBJ(objPath)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(mesh.Triangles) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(mesh.Triangles))
	}
	if mesh.Triangles[0].Material != mesh.Triangles[1].Material {
		t.Errorf("both faces should share one material index, got %d and %d",
			mesh.Triangles[0].Material, mesh.Triangles[1].Material)
	}
	mat := mesh.GetMaterial(mesh.Triangles[0].Material)
	if mat == nil || mat.Name != "red" {
		t.Errorf("expected material 'red', got %+v", mat)
	}
}
