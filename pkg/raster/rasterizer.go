package raster

import (
	"math"
	"runtime"
	"sync"

	"github.com/CygnusX-26/swrast/pkg/math3d"
	"github.com/CygnusX-26/swrast/pkg/scene"
)

// screenVertex is a single vertex carried through the pipeline after
// the model-view-projection transform: screen-space (X, Y), the
// post-divide NDC z in [0,1], and 1/w for perspective-correct
// interpolation of everything that isn't z itself.
type screenVertex struct {
	X, Y  float64
	NDCz  float64
	InvW  float64
	Valid bool
}

// upperLeft3x3 returns m with its translation column cleared and the
// bottom-right element reset to 1, so that Determinant/Inverse/Transpose
// operate on (and recover) only the rotation/scale 3x3 submatrix.
func upperLeft3x3(m math3d.Mat4) math3d.Mat4 {
	u := m
	u[12], u[13], u[14] = 0, 0, 0
	u[3], u[7], u[11] = 0, 0, 0
	u[15] = 1
	return u
}

// transformObject computes the normal matrix for one object; the
// model-view-projection transform is composed by the caller and passed
// in as viewProj. The normal matrix is
// transpose(inverse(upper-left-3x3(view * model))); per the fatal-error
// taxonomy, a singular model-view submatrix aborts the whole frame with
// a *MathError naming the offending object, rather than being silently
// skipped like a single degenerate triangle.
func transformObject(obj *scene.Object, viewProj, modelView math3d.Mat4) (math3d.Mat4, error) {
	rot := upperLeft3x3(modelView)
	if rot.Determinant() == 0 {
		return math3d.Mat4{}, &MathError{Object: obj.Name, Reason: "normal matrix is singular"}
	}
	normalMatrix := rot.Inverse().Transpose()
	return normalMatrix, nil
}

// projectVertex runs a single position through the MVP transform,
// producing its screen coordinates, NDC z, and 1/w. A vertex behind or
// on the eye (w <= 0), or whose NDC z lies outside [0,1] (nearer than
// the near plane or beyond the far plane), is reported invalid; the
// triangle it belongs to is then treated as out-of-frustum and silently
// skipped, per the render-internal (non-fatal) error category.
func projectVertex(viewProj math3d.Mat4, pos math3d.Vec3, width, height int) screenVertex {
	clip := viewProj.MulVec4(math3d.V4FromV3(pos, 1))
	if clip.W <= 0 || math.IsNaN(clip.W) {
		return screenVertex{}
	}
	invW := 1.0 / clip.W
	ndc := math3d.V3(clip.X*invW, clip.Y*invW, clip.Z*invW)
	if math.IsNaN(ndc.X) || math.IsNaN(ndc.Y) || math.IsNaN(ndc.Z) ||
		math.IsInf(ndc.X, 0) || math.IsInf(ndc.Y, 0) || math.IsInf(ndc.Z, 0) {
		return screenVertex{}
	}
	if ndc.Z < 0 || ndc.Z > 1 {
		return screenVertex{}
	}
	return screenVertex{
		X:     (ndc.X + 1) * 0.5 * float64(width),
		Y:     (1 - ndc.Y) * 0.5 * float64(height),
		NDCz:  ndc.Z,
		InvW:  invW,
		Valid: true,
	}
}

// isFrontFacing implements the screen-space winding test: draw only
// when the signed area of (s1, s2, s3) is strictly positive.
func isFrontFacing(s1, s2, s3 screenVertex) bool {
	cross := (s2.X-s1.X)*(s3.Y-s1.Y) - (s2.Y-s1.Y)*(s3.X-s1.X)
	return cross > 0
}

// drawTriangle rasterizes one triangle into pixels (a width*height*4
// RGBA byte buffer) and db, using edge functions for coverage and
// perspective-correct barycentric interpolation for UV and normal.
// hasUV reports whether the triangle supplies all three texcoords; only
// then are map_ka/map_kd/map_ks sampled in place of the material's flat
// colors. Row ranges of the bounding box are split across a worker
// pool; triangles themselves are drawn one at a time by the caller.
func drawTriangle(
	pixels []byte, width, height int, db *DepthBuffer,
	sv [3]screenVertex,
	uv [3]scene.UV, normal [3]math3d.Vec3, hasUV bool,
	mat *scene.Material, lightDir math3d.Vec3, ambient float64,
) {
	minX := int(math.Floor(minOf3(sv[0].X, sv[1].X, sv[2].X)))
	maxX := int(math.Ceil(maxOf3(sv[0].X, sv[1].X, sv[2].X)))
	minY := int(math.Floor(minOf3(sv[0].Y, sv[1].Y, sv[2].Y)))
	maxY := int(math.Ceil(maxOf3(sv[0].Y, sv[1].Y, sv[2].Y)))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > width-1 {
		maxX = width - 1
	}
	if maxY > height-1 {
		maxY = height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	x1, y1 := sv[0].X, sv[0].Y
	x2, y2 := sv[1].X, sv[1].Y
	x3, y3 := sv[2].X, sv[2].Y

	workers := runtime.GOMAXPROCS(0)
	rows := maxY - minY + 1
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	rowsPerWorker := (rows + workers - 1) / workers

	for wIdx := range workers {
		rowStart := minY + wIdx*rowsPerWorker
		rowEnd := rowStart + rowsPerWorker - 1
		if rowEnd > maxY {
			rowEnd = maxY
		}
		if rowStart > rowEnd {
			continue
		}

		wg.Add(1)
		go func(rowStart, rowEnd int) {
			defer wg.Done()
			for py := rowStart; py <= rowEnd; py++ {
				fy := float64(py) + 0.5
				for px := minX; px <= maxX; px++ {
					fx := float64(px) + 0.5

					e1 := (fy-y2)*(x3-x2) - (fx-x2)*(y3-y2)
					e2 := (fy-y3)*(x1-x3) - (fx-x3)*(y1-y3)
					e3 := (fy-y1)*(x2-x1) - (fx-x1)*(y2-y1)

					if e1 < 0 || e2 < 0 || e3 < 0 {
						continue
					}
					sum := e1 + e2 + e3
					if sum == 0 {
						continue
					}
					w1, w2, w3 := e1/sum, e2/sum, e3/sum

					z := float32(w1*sv[0].NDCz + w2*sv[1].NDCz + w3*sv[2].NDCz)
					if !db.TryUpdate(px, py, z) {
						continue
					}

					o1, o2, o3 := sv[0].InvW, sv[1].InvW, sv[2].InvW
					denom := w1*o1 + w2*o2 + w3*o3
					if denom == 0 {
						continue
					}

					nx := (w1*normal[0].X*o1 + w2*normal[1].X*o2 + w3*normal[2].X*o3) / denom
					ny := (w1*normal[0].Y*o1 + w2*normal[1].Y*o2 + w3*normal[2].Y*o3) / denom
					nz := (w1*normal[0].Z*o1 + w2*normal[1].Z*o2 + w3*normal[2].Z*o3) / denom
					n := math3d.V3(nx, ny, nz).Normalize()

					diffuse := clamp01(n.Dot(lightDir), 0.1, 1.0)

					ka, kd, ks := mat.Ka, mat.Kd, mat.Ks
					if hasUV {
						u := (w1*uv[0].U*o1 + w2*uv[1].U*o2 + w3*uv[2].U*o3) / denom
						v := (w1*uv[0].V*o1 + w2*uv[1].V*o2 + w3*uv[2].V*o3) / denom
						v = 1 - v

						if mat.MapKa != nil {
							ka = mat.MapKa.SampleNearest(u, v)
						}
						if mat.MapKd != nil {
							kd = mat.MapKd.SampleNearest(u, v)
						}
						if mat.MapKs != nil {
							ks = mat.MapKs.SampleNearest(u, v)
						}
					}
					const specular = 0.0
					color := ka.Scale(ambient).Add(kd.Scale(diffuse)).Add(ks.Scale(specular))
					r, g, b, a := color.Bytes()

					idx := (py*width + px) * 4
					pixels[idx] = r
					pixels[idx+1] = g
					pixels[idx+2] = b
					pixels[idx+3] = a
				}
			}
		}(rowStart, rowEnd)
	}
	wg.Wait()
}

func clamp01(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minOf3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func maxOf3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
