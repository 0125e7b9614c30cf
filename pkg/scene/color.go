// Package scene holds the data model a rasterizer draws: colors,
// materials, meshes, cameras, lights, and the loaders that populate them
// from Wavefront .obj/.mtl files, glTF assets, or a YAML scene file.
package scene

// Color is an RGBA color with components in [0,1]. Scalar multiplication
// scales r,g,b and leaves alpha untouched; addition sums r,g,b and leaves
// alpha untouched, matching how the rasterizer accumulates ambient,
// diffuse, and specular contributions without ever touching opacity.
type Color struct {
	R, G, B, A float64
}

// RGBA constructs a Color from float components.
func RGBA(r, g, b, a float64) Color {
	return Color{r, g, b, a}
}

// RGB constructs an opaque Color from float components.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// Scale returns c with r,g,b scaled by k; alpha is preserved.
func (c Color) Scale(k float64) Color {
	return Color{c.R * k, c.G * k, c.B * k, c.A}
}

// Add returns the component-wise sum of r,g,b; alpha is preserved from c.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// Bytes returns c truncated (not rounded) to 8-bit RGBA, per the
// reference implementation's direct-cast rounding convention.
func (c Color) Bytes() (r, g, b, a uint8) {
	return clampByte(c.R), clampByte(c.G), clampByte(c.B), clampByte(c.A)
}

func clampByte(v float64) uint8 {
	v *= 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
