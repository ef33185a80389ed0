package effects

import (
	"math"

	"github.com/lixenwraith/phosphor/render"
)

// warpSample is the precomputed bilinear source for one destination pixel
type warpSample struct {
	x0, y0 int32
	x1, y1 int32
	fx, fy float32
}

// warpMap caches the radial mapping for one canvas size and coefficient
// The mapping does not depend on pixel data so it is built once per animation
type warpMap struct {
	width, height int
	distortion    float64
	samples       []warpSample
}

// snapEpsilon absorbs float error so integral source coordinates sample exactly
const snapEpsilon = 1e-9

func newWarpMap(width, height int, d float64) *warpMap {
	m := &warpMap{
		width:      width,
		height:     height,
		distortion: d,
		samples:    make([]warpSample, width*height),
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		d = 0
	}

	halfW := float64(width) / 2
	halfH := float64(height) / 2
	maxX := float64(width - 1)
	maxY := float64(height - 1)

	for y := 0; y < height; y++ {
		yn := (float64(y) - halfH) / halfH
		for x := 0; x < width; x++ {
			xn := (float64(x) - halfW) / halfW

			r2 := xn*xn + yn*yn
			f := 1 + d*r2

			sx := clampf(xn*f*halfW+halfW, 0, maxX)
			sy := clampf(yn*f*halfH+halfH, 0, maxY)

			m.samples[y*width+x] = bilinearSource(sx, sy, width, height)
		}
	}
	return m
}

// bilinearSource splits a clamped coordinate into neighbours and weights
// Neighbours past the last row/column are clamped, never wrapped
func bilinearSource(sx, sy float64, width, height int) warpSample {
	if r := math.Round(sx); math.Abs(sx-r) < snapEpsilon {
		sx = r
	}
	if r := math.Round(sy); math.Abs(sy-r) < snapEpsilon {
		sy = r
	}

	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	x1 := min(x0+1, width-1)
	y1 := min(y0+1, height-1)

	return warpSample{
		x0: int32(x0), y0: int32(y0),
		x1: int32(x1), y1: int32(y1),
		fx: float32(sx - float64(x0)),
		fy: float32(sy - float64(y0)),
	}
}

func (m *warpMap) matches(width, height int, d float64) bool {
	return m != nil && m.width == width && m.height == height && m.distortion == d
}

// apply resamples src into dst through the map, both must match the map size
func (m *warpMap) apply(dst, src *render.Canvas) {
	sp := src.Image().Pix
	stride := src.Image().Stride

	for y := 0; y < m.height; y++ {
		row := dst.Row(y)
		base := y * m.width
		for x := 0; x < m.width; x++ {
			s := m.samples[base+x]

			i00 := int(s.y0)*stride + int(s.x0)*4
			i10 := int(s.y0)*stride + int(s.x1)*4
			i01 := int(s.y1)*stride + int(s.x0)*4
			i11 := int(s.y1)*stride + int(s.x1)*4

			fx, fy := s.fx, s.fy
			w00 := (1 - fx) * (1 - fy)
			w10 := fx * (1 - fy)
			w01 := (1 - fx) * fy
			w11 := fx * fy

			o := x * 4
			for ch := 0; ch < 3; ch++ {
				v := float32(sp[i00+ch])*w00 + float32(sp[i10+ch])*w10 +
					float32(sp[i01+ch])*w01 + float32(sp[i11+ch])*w11
				row[o+ch] = render.ClampRound(float64(v))
			}
			row[o+3] = 0xff
		}
	}
}

// Warp returns a barrel/pincushion distorted copy of src with identical dimensions
// d = 0 is the identity; positive d samples further from the center
func Warp(src *render.Canvas, d float64) *render.Canvas {
	dst := render.NewCanvas(src.Width(), src.Height())
	WarpInto(dst, src, d)
	return dst
}

// WarpInto writes the warped src into dst, which must have the same dimensions
func WarpInto(dst, src *render.Canvas, d float64) {
	newWarpMap(src.Width(), src.Height(), d).apply(dst, src)
}

// WarpStage applies the screen curvature as a pipeline stage
// Keeps a scratch canvas and the cached coordinate map between frames
type WarpStage struct {
	scratch *render.Canvas
	m       *warpMap
}

// NewWarpStage creates a warp stage
func NewWarpStage() *WarpStage {
	return &WarpStage{}
}

// IsVisible implements render.VisibilityToggle
func (s *WarpStage) IsVisible() bool { return true }

// Apply implements render.Stage
func (s *WarpStage) Apply(ctx render.StageContext, c *render.Canvas) {
	d := ctx.Params.Distortion
	w, h := c.Width(), c.Height()

	if !s.m.matches(w, h, d) {
		s.m = newWarpMap(w, h, d)
	}
	if s.scratch == nil || s.scratch.Width() != w || s.scratch.Height() != h {
		s.scratch = render.NewCanvas(w, h)
	}

	s.m.apply(s.scratch, c)
	c.CopyFrom(s.scratch)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
