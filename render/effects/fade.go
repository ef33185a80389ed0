package effects

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/lixenwraith/phosphor/render"
)

// FadeStage ramps brightness from black at power-on using an out-quad curve
// Frame time is derived from the frame index so output stays deterministic
type FadeStage struct {
	tween    *gween.Tween
	duration float32
}

// NewFadeStage creates a fade over p.PowerOn; zero duration disables it
func NewFadeStage(p *render.EffectParameters) *FadeStage {
	d := float32(p.PowerOn.Seconds())
	return &FadeStage{
		tween:    gween.New(0, 1, d, ease.OutQuad),
		duration: d,
	}
}

// IsVisible implements render.VisibilityToggle
func (s *FadeStage) IsVisible() bool {
	return s.duration > 0
}

// Level returns the brightness multiplier for a frame index
func (s *FadeStage) Level(index int, p *render.EffectParameters) float64 {
	if s.duration <= 0 {
		return 1
	}
	t := float32(float64(index) * p.FrameTime.Seconds())
	v, _ := s.tween.Set(t)
	return float64(v)
}

// Apply implements render.Stage
func (s *FadeStage) Apply(ctx render.StageContext, c *render.Canvas) {
	level := s.Level(ctx.Index, ctx.Params)
	if level >= 1 {
		return
	}
	for y := 0; y < c.Height(); y++ {
		row := c.Row(y)
		for i := 0; i < len(row); i += 4 {
			row[i] = render.ClampRound(float64(row[i]) * level)
			row[i+1] = render.ClampRound(float64(row[i+1]) * level)
			row[i+2] = render.ClampRound(float64(row[i+2]) * level)
		}
	}
}
