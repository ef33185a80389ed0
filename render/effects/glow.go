package effects

import (
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/phosphor/render"
	"github.com/lixenwraith/phosphor/typeface"
)

// Glow composites text as a crisp top layer over a blurred halo
// Halo spread is controlled by Layers, softness by the fixed blur radius
type Glow struct {
	Face   font.Face
	Color  render.RGBA
	Layers int

	sigma   float64
	scratch *image.RGBA
}

// NewGlow creates a compositor; blurRadius is the gaussian sigma in pixels
func NewGlow(face font.Face, c render.RGBA, layers, blurRadius int) *Glow {
	return &Glow{
		Face:   face,
		Color:  c,
		Layers: max(0, layers),
		sigma:  float64(max(0, blurRadius)),
	}
}

// blurMargin is the reach of the blur kernel, truncated at 3 sigma
func (g *Glow) blurMargin() int {
	return int(math.Ceil(3 * g.sigma))
}

// Draw renders text at anchor (top-left of the line box) onto dst
func (g *Glow) Draw(dst *render.Canvas, text string, anchor image.Point) {
	if text == "" {
		return
	}
	dot := fixed.Point26_6{
		X: fixed.I(anchor.X),
		Y: fixed.I(anchor.Y) + g.Face.Metrics().Ascent,
	}

	if g.Layers > 0 {
		g.drawHalo(dst, text, dot)
	}

	// Crisp top layer, alpha dropped
	d := font.Drawer{
		Dst:  dst.Image(),
		Src:  image.NewUniform(g.Color.Opaque().RGBA()),
		Face: g.Face,
		Dot:  dot,
	}
	d.DrawString(text)
}

// drawHalo stamps offset copies into the scratch layer, blurs and composites them
func (g *Glow) drawHalo(dst *render.Canvas, text string, dot fixed.Point26_6) {
	bounds := dst.Bounds()
	if g.scratch == nil || g.scratch.Rect != bounds {
		g.scratch = image.NewRGBA(bounds)
	}

	region := haloRegion(g.Face, text, dot, g.Layers+g.blurMargin()).Intersect(bounds)
	if region.Empty() {
		return
	}

	src := image.NewUniform(g.Color.NRGBA())
	stamp := font.Drawer{Dst: g.scratch, Src: src, Face: g.Face}
	for offset := 1; offset <= g.Layers; offset++ {
		o := fixed.I(offset)
		for _, p := range [4]fixed.Point26_6{
			{X: dot.X - o, Y: dot.Y},
			{X: dot.X + o, Y: dot.Y},
			{X: dot.X, Y: dot.Y - o},
			{X: dot.X, Y: dot.Y + o},
		} {
			stamp.Dot = p
			stamp.DrawString(text)
		}
	}

	var halo image.Image = g.scratch
	at := region.Min
	if g.sigma > 0 {
		// Blur returns a zero-origin copy of the region
		halo = imaging.Blur(g.scratch.SubImage(region), g.sigma)
		at = image.Point{}
	}
	draw.Draw(dst.Image(), region, halo, at, draw.Over)

	draw.Draw(g.scratch, region, image.Transparent, image.Point{}, draw.Src)
}

// haloRegion returns the pixel box touched by text at dot, grown by margin on every side
func haloRegion(face font.Face, text string, dot fixed.Point26_6, margin int) image.Rectangle {
	b, _ := font.BoundString(face, text)
	r := image.Rect(
		(dot.X + b.Min.X).Floor(),
		(dot.Y + b.Min.Y).Floor(),
		(dot.X + b.Max.X).Ceil(),
		(dot.Y + b.Max.Y).Ceil(),
	)
	return r.Inset(-margin)
}

// TextStage composites every line of the frame's text state through the glow
type TextStage struct {
	glow    *Glow
	originX int
}

// NewTextStage centers the block on the first line of the full text
// The origin is shared by every line of every frame so lines never re-center while typing
func NewTextStage(p *render.EffectParameters, fullText string) *TextStage {
	first, _, _ := strings.Cut(fullText, "\n")
	width := typeface.TextWidth(p.Face, first)
	return &TextStage{
		glow:    NewGlow(p.Face, p.GlowColor, p.GlowLayers, p.BlurRadius),
		originX: floorDiv(p.Width-width, 2),
	}
}

// OriginX returns the shared horizontal anchor
func (s *TextStage) OriginX() int {
	return s.originX
}

// Apply implements render.Stage
func (s *TextStage) Apply(ctx render.StageContext, c *render.Canvas) {
	y := ctx.Params.TopOffset
	for _, line := range ctx.State.Lines(ctx.Params.CursorRune) {
		s.glow.Draw(c, line, image.Pt(s.originX, y))
		y += ctx.Params.LineSpacing
	}
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
