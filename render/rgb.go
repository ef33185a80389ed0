package render

import "image/color"

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBA is an RGB color with a straight (non-premultiplied) alpha
type RGBA struct {
	R, G, B, A uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Opaque drops the alpha channel
func (c RGBA) Opaque() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// NRGBA converts to the stdlib non-premultiplied color
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA converts to an opaque stdlib color
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// clamp converts float to uint8, truncating
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// ClampRound converts float to uint8 with rounding
func ClampRound(v float64) uint8 {
	return clamp(v + 0.5)
}

// Scale multiplies all channels by factor, clamped so factor > 1.0 does not wrap
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}
