// Package config loads, validates and persists the phosphor TOML configuration
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/phosphor/parameter"
	"github.com/lixenwraith/phosphor/parameter/visual"
	"github.com/lixenwraith/phosphor/render"
	"github.com/lixenwraith/phosphor/sequence"
	"github.com/lixenwraith/phosphor/typeface"
)

// Sentinel errors
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the complete file configuration
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Font    FontConfig    `toml:"font"`
	Effects EffectsConfig `toml:"effects"`
	Text    TextConfig    `toml:"text"`
	Output  OutputConfig  `toml:"output"`
	Audio   AudioConfig   `toml:"audio"`
}

// RenderConfig holds canvas size and timing
type RenderConfig struct {
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	FPS            int     `toml:"fps"`
	TextDuration   float64 `toml:"text_duration"`
	CursorDuration float64 `toml:"cursor_duration"`
	Quality        int     `toml:"quality"`
}

// FontConfig holds the font reference and text color
type FontConfig struct {
	Path      string  `toml:"path"`
	Size      float64 `toml:"size"`
	Color     []int   `toml:"color"`
	LineSpace int     `toml:"line_space"`
}

// EffectsConfig holds post-processing intensities
type EffectsConfig struct {
	Warp       float64 `toml:"warp"`
	Scanline   float64 `toml:"scanline"`
	Noise      float64 `toml:"noise"`
	NoiseScale float64 `toml:"noise_scale"`
	NoiseMode  string  `toml:"noise_mode"`
	Glow       int     `toml:"glow"`
	GlowAlpha  int     `toml:"glow_alpha"`
	PowerOn    float64 `toml:"power_on"`
}

// TextConfig controls boot text composition
type TextConfig struct {
	Tab            bool   `toml:"tab"`
	TabLength      int    `toml:"tab_length"`
	PadLines       bool   `toml:"pad_lines"`
	ShowCPU        bool   `toml:"show_cpu"`
	OverrideOS     string `toml:"override_os"`
	OverrideKernel string `toml:"override_kernel"`
	OverrideDE     string `toml:"override_de"`
	OverrideShell  string `toml:"override_shell"`
	OverrideMemory string `toml:"override_memory"`
}

// OutputConfig holds artifact paths and the noise seed
type OutputConfig struct {
	GIF  string `toml:"gif"`
	WAV  string `toml:"wav"`
	Seed uint64 `toml:"seed"`
}

// AudioConfig controls soundtrack export and live playback
type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Live       bool    `toml:"live"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

// Default returns the built-in configuration
func Default() *Config {
	green := visual.PhosphorGreen
	return &Config{
		Render: RenderConfig{
			Width:          parameter.DefaultWidth,
			Height:         parameter.DefaultHeight,
			FPS:            parameter.DefaultFPS,
			TextDuration:   parameter.DefaultTextDuration.Seconds(),
			CursorDuration: parameter.DefaultCursorDuration.Seconds(),
			Quality:        parameter.DefaultGIFQuality,
		},
		Font: FontConfig{
			Path:      "FSEX302.ttf",
			Size:      parameter.DefaultFontSize,
			Color:     []int{int(green.R), int(green.G), int(green.B)},
			LineSpace: parameter.DefaultLineSpacing,
		},
		Effects: EffectsConfig{
			Warp:       parameter.DefaultWarp,
			Scanline:   parameter.DefaultScanline,
			Noise:      parameter.DefaultNoise,
			NoiseScale: parameter.DefaultNoiseScale,
			NoiseMode:  parameter.DefaultNoiseMode,
			Glow:       parameter.DefaultGlowLayers,
			GlowAlpha:  parameter.DefaultGlowAlpha,
		},
		Text: TextConfig{
			Tab:       true,
			TabLength: parameter.DefaultTabLength,
		},
		Output: OutputConfig{
			GIF: parameter.DefaultOutputGIF,
			WAV: parameter.DefaultOutputWAV,
		},
		Audio: AudioConfig{
			Volume:     parameter.DefaultAudioVolume,
			SampleRate: parameter.AudioSampleRate,
		},
	}
}

// Validate fails fast on values no frame could be rendered with
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	r := c.Render
	check(r.Width > 0 && r.Width <= parameter.MaxDimension, "render.width %d out of range", r.Width)
	check(r.Height > 0 && r.Height <= parameter.MaxDimension, "render.height %d out of range", r.Height)
	check(r.FPS > 0 && r.FPS <= parameter.MaxFPS, "render.fps %d out of range", r.FPS)
	check(finite(r.TextDuration) && r.TextDuration >= 0, "render.text_duration %v must be >= 0", r.TextDuration)
	check(finite(r.CursorDuration) && r.CursorDuration >= 0, "render.cursor_duration %v must be >= 0", r.CursorDuration)
	check(r.Quality >= 1 && r.Quality <= 100, "render.quality %d must be 1-100", r.Quality)

	f := c.Font
	check(finite(f.Size) && f.Size > 0, "font.size %v must be > 0", f.Size)
	check(len(f.Color) == 3, "font.color must have 3 components, got %d", len(f.Color))
	for i, v := range f.Color {
		check(v >= 0 && v <= 255, "font.color[%d] %d out of range", i, v)
	}
	check(f.LineSpace >= 0, "font.line_space %d must be >= 0", f.LineSpace)

	e := c.Effects
	check(finite(e.Warp) && math.Abs(e.Warp) <= parameter.MaxDistortion, "effects.warp %v out of range", e.Warp)
	check(finite(e.Scanline) && e.Scanline >= 0 && e.Scanline <= 1, "effects.scanline %v must be 0-1", e.Scanline)
	check(finite(e.Noise) && e.Noise >= 0, "effects.noise %v must be >= 0", e.Noise)
	check(finite(e.NoiseScale) && e.NoiseScale > 0, "effects.noise_scale %v must be > 0", e.NoiseScale)
	if _, err := render.ParseNoiseMode(e.NoiseMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: effects.noise_mode: %w", ErrInvalidConfig, err))
	}
	check(e.Glow >= 0, "effects.glow %d must be >= 0", e.Glow)
	check(e.GlowAlpha >= 0 && e.GlowAlpha <= 255, "effects.glow_alpha %d must be 0-255", e.GlowAlpha)
	check(finite(e.PowerOn) && e.PowerOn >= 0, "effects.power_on %v must be >= 0", e.PowerOn)

	check(c.Text.TabLength >= 0, "text.tab_length %d must be >= 0", c.Text.TabLength)

	a := c.Audio
	check(finite(a.Volume) && a.Volume >= 0 && a.Volume <= 1, "audio.volume %v must be 0-1", a.Volume)
	check(a.SampleRate > 0, "audio.sample_rate %d must be > 0", a.SampleRate)

	if err := c.Timing().Validate(); err != nil && r.FPS > 0 {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// Timing returns the sequencer timing
func (c *Config) Timing() sequence.Timing {
	return sequence.Timing{
		FPS:           c.Render.FPS,
		TextDuration:  seconds(c.Render.TextDuration),
		BlinkDuration: seconds(c.Render.CursorDuration),
	}
}

// FontColor returns the configured text color with the halo alpha
func (c *Config) FontColor() render.RGBA {
	return render.RGBA{
		R: uint8(c.Font.Color[0]),
		G: uint8(c.Font.Color[1]),
		B: uint8(c.Font.Color[2]),
		A: uint8(c.Effects.GlowAlpha),
	}
}

// EffectParameters resolves the font and builds the immutable effect parameters
// Must only be called on a validated config
func (c *Config) EffectParameters() (*render.EffectParameters, typeface.Source) {
	face, src := typeface.Resolve(c.Font.Path, c.Font.Size)
	mode, _ := render.ParseNoiseMode(c.Effects.NoiseMode)

	return &render.EffectParameters{
		Width:             c.Render.Width,
		Height:            c.Render.Height,
		Distortion:        c.Effects.Warp,
		ScanlineIntensity: c.Effects.Scanline,
		NoiseIntensity:    c.Effects.Noise,
		NoiseScale:        c.Effects.NoiseScale,
		NoiseMode:         mode,
		Face:              face,
		GlowLayers:        c.Effects.Glow,
		GlowColor:         c.FontColor(),
		BlurRadius:        parameter.GlowBlurRadius,
		LineSpacing:       c.Font.LineSpace,
		TopOffset:         parameter.TextTopOffset,
		CursorRune:        typeface.CursorRune(face, visual.CursorGlyph, visual.CursorFallback),
		PowerOn:           seconds(c.Effects.PowerOn),
		FrameTime:         c.Timing().FrameTime(),
	}, src
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
