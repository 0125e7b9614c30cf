package scene

import "github.com/CygnusX-26/swrast/pkg/math3d"

// Light is a directional light expressed as a position and a target; the
// direction used for shading is normalize(target - position).
type Light struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Ambient  float64
}

// Direction returns the normalized direction from Position to Target.
func (l Light) Direction() math3d.Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}

// Object places a Mesh in the world via a translation offset.
type Object struct {
	Name   string
	Mesh   MeshSource
	Offset math3d.Vec3
}

// ModelMatrix returns the object's model matrix: pure translation by
// Offset, matching spec's "Object: owns a Mesh, plus offset_x/y/z".
func (o Object) ModelMatrix() math3d.Mat4 {
	return math3d.Translate(o.Offset)
}

// World is a camera, a light, the placed mesh instances, and a
// projection matrix. Projection is computed once by NewWorld from the
// default camera and is not updated by later Camera setters; raster.Draw
// takes its projection from Camera.ProjectionMatrix() instead.
// Constructed once per run; mutated only by replacing Camera/Light
// fields or by appending/removing Objects.
type World struct {
	Camera     Camera
	Light      Light
	Objects    []Object
	Projection math3d.Mat4
}

// NewWorld constructs a World with a default camera and a dim ambient
// light pointed down -Z.
func NewWorld() *World {
	cam := NewCamera()
	return &World{
		Camera: *cam,
		Light: Light{
			Position: math3d.V3(0, 0, 0),
			Target:   math3d.V3(0, 0, -1),
			Ambient:  0.1,
		},
		Projection: cam.ProjectionMatrix(),
	}
}
