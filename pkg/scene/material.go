package scene

// Material holds the ambient/diffuse/specular colors and optional albedo
// maps a triangle shades with. Materials are constructed once by the
// .obj/.mtl loader and shared by reference (here, by index into
// Mesh.Materials) among every triangle that names them; they are never
// mutated after commit.
type Material struct {
	Name string

	Ka, Kd, Ks   Color
	Transparency float64
	Tf           Color
	Ni           float64

	MapKa, MapKd, MapKs *Image
}

// DefaultMaterial is the dim-gray material a face resolves to before any
// usemtl directive has been seen.
func DefaultMaterial() Material {
	return Material{
		Name: "",
		Ka:   RGB(0.1, 0.1, 0.1),
		Kd:   RGB(0.1, 0.1, 0.1),
		Ks:   RGB(0.1, 0.1, 0.1),
	}
}
