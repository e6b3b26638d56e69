package gfx

import "image/color"

// Color represents an RGBA color with float components, conventionally 0.0 to 1.0.
// Values are not clamped until converted to 8-bit pixels.
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
)

// RGB creates an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NRGBA converts to an 8-bit color, clamping each channel to [0, 1].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
