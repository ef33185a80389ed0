package export

import (
	"image/color"

	"github.com/lixenwraith/phosphor/parameter"
	"github.com/lixenwraith/phosphor/render"
)

// maxPaletteSize is the GIF color table limit
const maxPaletteSize = 256

// PhosphorPalette builds a GIF palette from a black-to-glow ramp plus neutral greys
// quality (1-100) sets the ramp depth; the glow color and pure black are always present
func PhosphorPalette(glow render.RGB, quality int) color.Palette {
	quality = min(max(quality, 1), 100)
	rampSize := max(2, (maxPaletteSize-parameter.PaletteGreyLevels)*quality/100)

	seen := make(map[color.RGBA]bool, maxPaletteSize)
	pal := make(color.Palette, 0, maxPaletteSize)
	add := func(c color.RGBA) {
		if len(pal) >= maxPaletteSize || seen[c] {
			return
		}
		seen[c] = true
		pal = append(pal, c)
	}

	for i := 0; i < rampSize; i++ {
		t := float64(i) / float64(rampSize-1)
		add(render.Scale(glow, t).RGBA())
	}
	for i := 0; i < parameter.PaletteGreyLevels; i++ {
		v := uint8(i * 255 / (parameter.PaletteGreyLevels - 1))
		add(color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	return pal
}
