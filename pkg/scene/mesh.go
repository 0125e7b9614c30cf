package scene

import (
	"github.com/CygnusX-26/swrast/pkg/math3d"
)

// AbsentIndex is the sentinel stored in Triangle.Texes/Norms when the
// source face token omitted that component. Zero cannot be used for this
// (it collides with a legitimate index 0 once 1-based source indices are
// converted to 0-based), so the loader stores -1 instead.
const AbsentIndex = -1

// Triangle references three vertex positions, three texture coordinates,
// three normals, and a material, each independently indexed into the
// owning Mesh's arrays. A Texes/Norms slot of AbsentIndex means the
// source face omitted that component.
type Triangle struct {
	Verts [3]int
	Texes [3]int
	Norms [3]int

	// Material indexes Mesh.Materials, or is AbsentIndex if no material
	// was ever assigned to this face.
	Material int
}

// Mesh is an immutable-after-load collection of indexed geometry:
// vertex positions, per-vertex normals, texture coordinates, and the
// triangles that reference them. It implements MeshSource directly.
type Mesh struct {
	Name string

	Positions []math3d.Vec3
	Normals   []math3d.Vec3
	Texcoords []UV

	Triangles []Triangle
	Materials []Material

	BoundsMin, BoundsMax math3d.Vec3
}

// NewMesh creates an empty, named mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// MeshSource is the capability bundle the rasterizer consumes: vertex
// positions, normals, texcoords, and indexed triangles. Both the .obj
// loader's Mesh and the glTF loader's Mesh satisfy it, and a
// procedurally-built mesh can too without going through either loader.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetTriangle(i int) Triangle
	GetPosition(i int) math3d.Vec3
	GetNormal(i int) math3d.Vec3
	GetTexcoord(i int) UV
	GetMaterial(idx int) *Material
}

// VertexCount returns the number of vertex positions.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// GetTriangle returns triangle i.
func (m *Mesh) GetTriangle(i int) Triangle { return m.Triangles[i] }

// GetPosition returns vertex position i.
func (m *Mesh) GetPosition(i int) math3d.Vec3 { return m.Positions[i] }

// GetNormal returns vertex normal i.
func (m *Mesh) GetNormal(i int) math3d.Vec3 { return m.Normals[i] }

// GetTexcoord returns texcoord i.
func (m *Mesh) GetTexcoord(i int) UV { return m.Texcoords[i] }

// GetFaceMaterial returns the material index of triangle i, or
// AbsentIndex if the face was never assigned one.
func (m *Mesh) GetFaceMaterial(i int) int { return m.Triangles[i].Material }

// GetMaterial returns the material at idx, or nil if idx is out of range
// (including AbsentIndex, which is always negative).
func (m *Mesh) GetMaterial(idx int) *Material {
	if idx < 0 || idx >= len(m.Materials) {
		return nil
	}
	return &m.Materials[idx]
}

// MaterialCount returns the number of distinct materials the mesh holds.
func (m *Mesh) MaterialCount() int { return len(m.Materials) }

// CalculateBounds computes the axis-aligned bounding box over Positions.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}
	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Bounds returns the mesh's local-space axis-aligned bounding box,
// letting a rasterizer do a cheap object-level frustum test before
// transforming and testing every triangle individually.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateSmoothNormals reconstructs one normal per vertex position by
// accumulating, for every triangle, the un-normalized cross product
// (v1-v0)x(v2-v0) into each of its three vertex-normal slots, then
// normalizing. This is the loader's normal-reconstruction algorithm,
// exposed so a procedurally-built mesh can reuse it too.
func (m *Mesh) CalculateSmoothNormals() {
	m.Normals = make([]math3d.Vec3, len(m.Positions))

	for _, tri := range m.Triangles {
		v0 := m.Positions[tri.Verts[0]]
		v1 := m.Positions[tri.Verts[1]]
		v2 := m.Positions[tri.Verts[2]]

		faceNormal := v1.Sub(v0).Cross(v2.Sub(v0))

		m.Normals[tri.Verts[0]] = m.Normals[tri.Verts[0]].Add(faceNormal)
		m.Normals[tri.Verts[1]] = m.Normals[tri.Verts[1]].Add(faceNormal)
		m.Normals[tri.Verts[2]] = m.Normals[tri.Verts[2]].Add(faceNormal)
	}

	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}

	for i := range m.Triangles {
		m.Triangles[i].Norms = [3]int{
			m.Triangles[i].Verts[0],
			m.Triangles[i].Verts[1],
			m.Triangles[i].Verts[2],
		}
	}
}

// Clone returns a copy of the mesh with independent position, normal,
// texcoord, triangle, and material slices. The texture images a
// material points to (MapKa/MapKd/MapKs) are shared, not copied.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Positions: append([]math3d.Vec3(nil), m.Positions...),
		Normals:   append([]math3d.Vec3(nil), m.Normals...),
		Texcoords: append([]UV(nil), m.Texcoords...),
		Triangles: append([]Triangle(nil), m.Triangles...),
		Materials: append([]Material(nil), m.Materials...),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	return clone
}
