package scene

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/qmuntal/gltf"

	"github.com/CygnusX-26/swrast/pkg/math3d"
)

// LoadGLTF loads the triangle primitives of every mesh in a glTF
// (.gltf/.glb) document into a single Mesh, as a second MeshSource-compatible loader alongside
// LoadOBJ. Normals are reconstructed (area-weighted smooth) if the
// document supplies none.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %w", path, err)
	}

	mesh := NewMesh(filepath.Base(path))
	mesh.Materials = []Material{DefaultMaterial()}

	hasNormals := false
	for _, m := range doc.Meshes {
		if err := processGLTFMesh(doc, m, mesh, &hasNormals); err != nil {
			return nil, fmt.Errorf("gltf %s: mesh %q: %w", path, m.Name, err)
		}
	}

	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	return mesh, nil
}

func processGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh, hasNormals *bool) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readGLTFVec3(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readGLTFVec3(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
			*hasNormals = true
		}

		var uvs [][2]float64
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readGLTFVec2(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		basePos := len(mesh.Positions)
		mesh.Positions = append(mesh.Positions, positions...)

		baseNorm := len(mesh.Normals)
		if len(normals) > 0 {
			mesh.Normals = append(mesh.Normals, normals...)
		}

		baseTex := len(mesh.Texcoords)
		for _, uv := range uvs {
			// glTF origin is top-left; flip V to match bottom-left image
			// coordinates, as the .obj/.mtl texturing pipeline expects.
			mesh.Texcoords = append(mesh.Texcoords, UV{U: uv[0], V: 1 - uv[1]})
		}

		normIdxFor := func(i int) int {
			if len(normals) == 0 {
				return AbsentIndex
			}
			return baseNorm + i
		}
		texIdxFor := func(i int) int {
			if len(uvs) == 0 {
				return AbsentIndex
			}
			return baseTex + i
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readGLTFIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// glTF uses CCW winding for front-facing; this pipeline's Y-flip
		// screen mapping expects CW, so the second and third indices of
		// every triangle are swapped on emission.
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			mesh.Triangles = append(mesh.Triangles, Triangle{
				Verts:    [3]int{basePos + a, basePos + c, basePos + b},
				Texes:    [3]int{texIdxFor(a), texIdxFor(c), texIdxFor(b)},
				Norms:    [3]int{normIdxFor(a), normIdxFor(c), normIdxFor(b)},
				Material: 0,
			})
		}
	}
	return nil
}

func readGLTFVec3(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	raw, err := readGLTFAccessor(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := raw.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}
	out := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		out[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return out, nil
}

func readGLTFVec2(doc *gltf.Document, accessorIdx int) ([][2]float64, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	raw, err := readGLTFAccessor(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := raw.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}
	out := make([][2]float64, len(floats))
	for i, f := range floats {
		out[i] = [2]float64{float64(f[0]), float64(f[1])}
	}
	return out, nil
}

func readGLTFIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	raw, err := readGLTFAccessor(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case []uint8:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []uint16:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []uint32:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", raw)
	}
}

func readGLTFAccessor(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		out := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				out[i][j] = readLEFloat32(bufData[offset+j*4:])
			}
		}
		return out, nil

	case gltf.AccessorVec2:
		if stride == 0 {
			stride = 8
		}
		out := make([][2]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 2 {
				out[i][j] = readLEFloat32(bufData[offset+j*4:])
			}
		}
		return out, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			out := make([]uint8, count)
			for i := range count {
				out[i] = bufData[start+i*stride]
			}
			return out, nil
		case gltf.ComponentUshort:
			out := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				out[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return out, nil
		case gltf.ComponentUint:
			out := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				out[i] = uint32(bufData[offset]) | uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 | uint32(bufData[offset+3])<<24
			}
			return out, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

func readLEFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return *(*float32)(unsafe.Pointer(&bits))
}
