package scene

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CygnusX-26/swrast/pkg/math3d"
)

// defaultMaterialName is the reserved sentinel the loader assigns to
// faces that appear before any usemtl directive.
const defaultMaterialName = ""

// LoadOBJ parses a Wavefront .obj file (and any .mtl files it
// references) into a Mesh. Missing components, non-numeric fields, a
// missing mtllib file, a missing material image, or an unknown material
// referenced by usemtl at face-emission time are all fatal, returning a
// *LoadError describing the file, line, and field at fault.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Field: "open", Err: err}
	}
	defer f.Close()
	return parseOBJ(f, path)
}

func parseOBJ(r io.Reader, path string) (*Mesh, error) {
	mesh := NewMesh(filepath.Base(path))
	dir := filepath.Dir(path)

	nameToIndex := map[string]int{defaultMaterialName: 0}
	mesh.Materials = []Material{DefaultMaterial()}
	curMaterial := defaultMaterialName

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields)
			if err != nil {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "v", Err: err}
			}
			mesh.Positions = append(mesh.Positions, p)

		case "vn":
			n, err := parseVec3(fields)
			if err != nil {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "vn", Err: err}
			}
			mesh.Normals = append(mesh.Normals, n.Normalize())

		case "vt":
			uv, err := parseUV(fields)
			if err != nil {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "vt", Err: err}
			}
			mesh.Texcoords = append(mesh.Texcoords, uv)

		case "mtllib":
			if len(fields) < 2 {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "mtllib", Err: fmt.Errorf("missing filename")}
			}
			mtlPath := filepath.Join(dir, fields[1])
			loaded, err := loadMTL(mtlPath)
			if err != nil {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "mtllib", Err: err}
			}
			for name, mat := range loaded {
				if _, exists := nameToIndex[name]; exists {
					continue
				}
				nameToIndex[name] = len(mesh.Materials)
				mesh.Materials = append(mesh.Materials, mat)
			}

		case "usemtl":
			if len(fields) < 2 {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "usemtl", Err: fmt.Errorf("missing material name")}
			}
			curMaterial = fields[1]

		case "f":
			if len(fields) < 4 {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "f", Err: fmt.Errorf("face needs at least 3 vertices, got %d", len(fields)-1)}
			}
			matIdx, ok := nameToIndex[curMaterial]
			if !ok {
				return nil, &LoadError{Path: path, Line: lineNum, Field: "usemtl", Err: fmt.Errorf("unknown material %q", curMaterial)}
			}
			if err := emitFace(mesh, fields[1:], matIdx, path, lineNum); err != nil {
				return nil, err
			}

		case "o", "g":
			if len(fields) > 1 {
				mesh.Name = fields[1]
			}

		case "s":
			// smoothing group directive: ignored, normals are always
			// either taken verbatim from vn or reconstructed smooth.

		default:
			// comments, splines, and the rest of the grammar this
			// loader doesn't implement are ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Field: "read", Err: err}
	}

	mesh.CalculateBounds()
	if len(mesh.Normals) == 0 {
		mesh.CalculateSmoothNormals()
	}

	return mesh, nil
}

func emitFace(mesh *Mesh, tokens []string, matIdx int, path string, lineNum int) error {
	type faceVert struct {
		pos, tex, norm int
	}

	verts := make([]faceVert, len(tokens))
	reversed := false

	for i, tok := range tokens {
		posIdx, texIdx, normIdx, neg, err := parseFaceToken(tok)
		if err != nil {
			return &LoadError{Path: path, Line: lineNum, Field: "f", Err: err}
		}
		if neg {
			reversed = true
		}

		posIdx = resolveIndex(posIdx, len(mesh.Positions))
		if posIdx < 0 || posIdx >= len(mesh.Positions) {
			return &LoadError{Path: path, Line: lineNum, Field: "f", Err: fmt.Errorf("vertex index %d out of range", posIdx+1)}
		}
		texIdx = resolveOptionalIndex(texIdx, len(mesh.Texcoords))
		normIdx = resolveOptionalIndex(normIdx, len(mesh.Normals))

		verts[i] = faceVert{posIdx, texIdx, normIdx}
	}

	emit := func(a, b, c faceVert) {
		mesh.Triangles = append(mesh.Triangles, Triangle{
			Verts:    [3]int{a.pos, b.pos, c.pos},
			Texes:    [3]int{a.tex, b.tex, c.tex},
			Norms:    [3]int{a.norm, b.norm, c.norm},
			Material: matIdx,
		})
	}

	// Fan triangulation per the reference implementation: triangles all
	// share p[0] and step across p[2..n) against the fixed p[1]. A face
	// carrying at least one negative index is reversed in its entirety,
	// realized by swapping the fan's first two vertices.
	p0, p1 := verts[0], verts[1]
	for i := 2; i < len(verts); i++ {
		if reversed {
			emit(p0, p1, verts[i])
		} else {
			emit(p1, p0, verts[i])
		}
	}
	return nil
}

// parseFaceToken parses a single face token of the form v, v/vt, v/vt/vn,
// or v//vn, returning 1-based (or negative) indices; a zero component
// means it was not specified. neg reports whether any component of the
// token was itself negative.
func parseFaceToken(s string) (pos, tex, norm int, neg bool, err error) {
	parts := strings.Split(s, "/")

	pos, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, false, fmt.Errorf("invalid vertex index %q", parts[0])
	}
	if pos < 0 {
		neg = true
	}

	if len(parts) > 1 && parts[1] != "" {
		tex, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, 0, false, fmt.Errorf("invalid texcoord index %q", parts[1])
		}
		if tex < 0 {
			neg = true
		}
	}

	if len(parts) > 2 && parts[2] != "" {
		norm, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, 0, false, fmt.Errorf("invalid normal index %q", parts[2])
		}
		if norm < 0 {
			neg = true
		}
	}

	return pos, tex, norm, neg, nil
}

// resolveIndex converts a required 1-based (or negative, counted from
// the end) OBJ index to a 0-based index.
func resolveIndex(idx, count int) int {
	if idx < 0 {
		return count + idx
	}
	return idx - 1
}

// resolveOptionalIndex converts an optional 1-based (or negative, or
// absent) OBJ index to a 0-based index, returning AbsentIndex when the
// source token omitted the component.
func resolveOptionalIndex(idx, count int) int {
	if idx == 0 {
		return AbsentIndex
	}
	return resolveIndex(idx, count)
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 4 {
		return math3d.Vec3{}, fmt.Errorf("need x y z, got %d fields", len(fields)-1)
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return math3d.Vec3{}, fmt.Errorf("invalid x %q", fields[1])
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return math3d.Vec3{}, fmt.Errorf("invalid y %q", fields[2])
	}
	z, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || math.IsNaN(z) || math.IsInf(z, 0) {
		return math3d.Vec3{}, fmt.Errorf("invalid z %q", fields[3])
	}
	return math3d.V3(x, y, z), nil
}

func parseUV(fields []string) (UV, error) {
	if len(fields) < 2 {
		return UV{}, fmt.Errorf("need at least u, got %d fields", len(fields)-1)
	}
	u, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return UV{}, fmt.Errorf("invalid u %q", fields[1])
	}
	var v, w float64
	if len(fields) > 2 {
		v, err = strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return UV{}, fmt.Errorf("invalid v %q", fields[2])
		}
	}
	if len(fields) > 3 {
		w, err = strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return UV{}, fmt.Errorf("invalid w %q", fields[3])
		}
	}
	return UV{U: u, V: v, W: w}, nil
}
