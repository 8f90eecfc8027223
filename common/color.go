package common

import "github.com/chewxy/math32"

// Color is an sRGB colour with straight alpha, the way colours are authored.
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque sRGB colour.
func RGB(r, g, b float32) Color { return Color{R: r, G: g, B: b, A: 1} }

// Black is opaque black.
var Black = RGB(0, 0, 0)

// Linear converts the colour to linear RGBA for shading.
func (c Color) Linear() [4]float32 {
	return [4]float32{srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B), c.A}
}

// LinearRGB is Linear without alpha.
func (c Color) LinearRGB() Vec3 {
	l := c.Linear()
	return Vec3{l[0], l[1], l[2]}
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}
