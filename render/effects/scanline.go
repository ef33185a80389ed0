package effects

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/phosphor/render"
)

// OverlayParams configures the scanline/noise degradation
type OverlayParams struct {
	Scanline float64 // Odd row darkening in [0, 1]
	Noise    float64 // Gaussian standard deviation in normalized units
	Scale    float64 // Noise particle size in pixels
	Mode     render.NoiseMode
}

// OverlayParamsFrom extracts overlay settings from the shared parameters
func OverlayParamsFrom(p *render.EffectParameters) OverlayParams {
	return OverlayParams{
		Scanline: p.ScanlineIntensity,
		Noise:    p.NoiseIntensity,
		Scale:    p.NoiseScale,
		Mode:     p.NoiseMode,
	}
}

// Validate rejects modes the overlay cannot render
func (p OverlayParams) Validate() error {
	switch p.Mode {
	case render.NoiseMonochrome, render.NoiseColor:
		return nil
	}
	return fmt.Errorf("%w: %v", render.ErrUnknownNoiseMode, p.Mode)
}

// RowMultiplier returns the scanline brightness factor for a row
// Even rows are untouched, odd rows are darkened by (1 - s)
func RowMultiplier(y int, s float64) float64 {
	if y%2 == 1 {
		return 1 - s
	}
	return 1
}

// Overlay applies scanlines and freshly sampled noise to c in place
func Overlay(c *render.Canvas, p OverlayParams, rng *rand.Rand) error {
	if err := p.Validate(); err != nil {
		return err
	}
	field := NewNoiseField(c.Width(), c.Height(), p.Scale, p.Mode)
	field.Resample(rng, p.Noise)
	applyOverlay(c, p.Scanline, field)
	return nil
}

// applyOverlay computes clamp01(in/255 * row + noise) * 255 per channel
func applyOverlay(c *render.Canvas, scanline float64, field *NoiseField) {
	w, h := c.Width(), c.Height()
	for y := 0; y < h; y++ {
		mul := RowMultiplier(y, scanline) / 255.0
		row := c.Row(y)
		for x := 0; x < w; x++ {
			nr, ng, nb := field.At(x, y, w, h)
			o := x * 4
			row[o] = overlayChannel(row[o], mul, nr)
			row[o+1] = overlayChannel(row[o+1], mul, ng)
			row[o+2] = overlayChannel(row[o+2], mul, nb)
		}
	}
}

func overlayChannel(v uint8, mul float64, noise float32) uint8 {
	f := float64(v)*mul + float64(noise)
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return render.ClampRound(f * 255.0)
}

// OverlayStage applies scanlines and noise as a pipeline stage
// The noise field is reused between frames but resampled on every Apply
type OverlayStage struct {
	params OverlayParams
	rng    *rand.Rand
	field  *NoiseField
}

// NewOverlayStage validates params and creates the stage
// rng is the injected random source, seeded by the caller for reproducible output
func NewOverlayStage(p OverlayParams, rng *rand.Rand) (*OverlayStage, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &OverlayStage{params: p, rng: rng}, nil
}

// IsVisible implements render.VisibilityToggle
func (s *OverlayStage) IsVisible() bool {
	return s.params.Scanline != 0 || s.params.Noise != 0
}

// Apply implements render.Stage
func (s *OverlayStage) Apply(ctx render.StageContext, c *render.Canvas) {
	w, h := c.Width(), c.Height()
	if s.field == nil || s.field.Cols != NoiseGridSize(w, s.params.Scale) || s.field.Rows != NoiseGridSize(h, s.params.Scale) {
		s.field = NewNoiseField(w, h, s.params.Scale, s.params.Mode)
	}
	s.field.Resample(s.rng, s.params.Noise)
	applyOverlay(c, s.params.Scanline, s.field)
}
