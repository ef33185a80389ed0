package effects

import (
	"math/rand/v2"

	"github.com/lixenwraith/phosphor/render"
)

// NewStandardBuilder assembles the boot-screen pipeline: glow text, warp, overlay, power-on fade
// fullText is the final text of the animation and fixes the horizontal anchor for every frame
func NewStandardBuilder(p *render.EffectParameters, fullText string, rng *rand.Rand) (*render.FrameBuilder, error) {
	overlay, err := NewOverlayStage(OverlayParamsFrom(p), rng)
	if err != nil {
		return nil, err
	}

	b := render.NewFrameBuilder(p)
	b.Register(NewTextStage(p, fullText), render.PriorityText)
	b.Register(NewWarpStage(), render.PriorityWarp)
	b.Register(overlay, render.PriorityOverlay)
	b.Register(NewFadeStage(p), render.PriorityFade)
	return b, nil
}
