package render

import (
	"image"
	"image/color"
)

// Canvas is a fixed-size mutable RGB raster owned by one frame build at a time
// Backed by an opaque *image.RGBA so glyph drawers and draw ops can target it directly
type Canvas struct {
	img    *image.RGBA
	width  int
	height int
}

// NewCanvas creates a black canvas with the specified dimensions
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
	c.Clear()
	return c
}

// Width returns canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns canvas height in pixels
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// Image exposes the backing raster as a draw target
// Callers must keep alpha at 0xff
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear resets all pixels to opaque black using exponential copy
func (c *Canvas) Clear() {
	c.Fill(RGBBlack)
}

// Fill sets every pixel to the given color
func (c *Canvas) Fill(rgb RGB) {
	pix := c.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = rgb.R, rgb.G, rgb.B, 0xff
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// inBounds returns true if in canvas bounds
func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// RGBAt returns the pixel at (x, y), black when out of bounds
func (c *Canvas) RGBAt(x, y int) RGB {
	if !c.inBounds(x, y) {
		return RGBBlack
	}
	i := y*c.img.Stride + x*4
	p := c.img.Pix[i : i+3 : i+3]
	return RGB{R: p[0], G: p[1], B: p[2]}
}

// SetRGB writes an opaque pixel, ignoring out of bounds writes
func (c *Canvas) SetRGB(x, y int, rgb RGB) {
	if !c.inBounds(x, y) {
		return
	}
	i := y*c.img.Stride + x*4
	p := c.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = rgb.R, rgb.G, rgb.B, 0xff
}

// Row returns the RGBA bytes of row y for in-place processing
func (c *Canvas) Row(y int) []uint8 {
	start := y * c.img.Stride
	return c.img.Pix[start : start+c.width*4]
}

// CopyFrom overwrites this canvas with src, dimensions must match
func (c *Canvas) CopyFrom(src *Canvas) {
	copy(c.img.Pix, src.img.Pix)
}

// Freeze snapshots the canvas into an immutable Frame
func (c *Canvas) Freeze() *Frame {
	pix := make([]uint8, c.width*c.height*3)
	o := 0
	for y := 0; y < c.height; y++ {
		row := c.Row(y)
		for i := 0; i < len(row); i += 4 {
			pix[o] = row[i]
			pix[o+1] = row[i+1]
			pix[o+2] = row[i+2]
			o += 3
		}
	}
	return &Frame{pix: pix, width: c.width, height: c.height}
}

// Frame is an immutable RGB raster produced by one frame build
// It implements image.Image for encoders and previews
type Frame struct {
	pix    []uint8
	width  int
	height int
}

// Width returns frame width in pixels
func (f *Frame) Width() int { return f.width }

// Height returns frame height in pixels
func (f *Frame) Height() int { return f.height }

// RGBAt returns the pixel at (x, y), black when out of bounds
func (f *Frame) RGBAt(x, y int) RGB {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return RGBBlack
	}
	i := (y*f.width + x) * 3
	return RGB{R: f.pix[i], G: f.pix[i+1], B: f.pix[i+2]}
}

// ColorModel implements image.Image
func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.width, f.height) }

// At implements image.Image
func (f *Frame) At(x, y int) color.Color { return f.RGBAt(x, y).RGBA() }

// Equal reports whether two frames hold identical pixels
func (f *Frame) Equal(other *Frame) bool {
	if f.width != other.width || f.height != other.height {
		return false
	}
	for i := range f.pix {
		if f.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}
