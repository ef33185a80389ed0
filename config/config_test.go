package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/phosphor/asset"
	"github.com/lixenwraith/phosphor/parameter"
	"github.com/lixenwraith/phosphor/render"
	"github.com/lixenwraith/phosphor/typeface"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	c, err := Parse(asset.DefaultConfig)
	if err != nil {
		t.Fatalf("Embedded config failed to parse: %v", err)
	}
	if !reflect.DeepEqual(c, Default()) {
		t.Errorf("Expected embedded config to equal Default()\ngot:  %+v\nwant: %+v", c, Default())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	c, err := Parse(`
[render]
width = 640
fps = 12

[effects]
noise_mode = "color"
unknown_key = 1
`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Render.Width != 640 || c.Render.FPS != 12 {
		t.Errorf("Expected overrides applied, got %+v", c.Render)
	}
	if c.Render.Height != parameter.DefaultHeight {
		t.Errorf("Expected default height, got %d", c.Render.Height)
	}
	if c.Effects.NoiseMode != "color" {
		t.Errorf("Expected color noise, got %s", c.Effects.NoiseMode)
	}
	if c.Effects.Warp != parameter.DefaultWarp {
		t.Errorf("Expected default warp, got %v", c.Effects.Warp)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("[render\nwidth = ")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render.width"},
		{"huge height", func(c *Config) { c.Render.Height = parameter.MaxDimension + 1 }, "render.height"},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"negative text", func(c *Config) { c.Render.TextDuration = -1 }, "render.text_duration"},
		{"nan cursor", func(c *Config) { c.Render.CursorDuration = math.NaN() }, "render.cursor_duration"},
		{"no frames", func(c *Config) { c.Render.TextDuration, c.Render.CursorDuration = 0, 0 }, "empty frame sequence"},
		{"bad quality", func(c *Config) { c.Render.Quality = 0 }, "render.quality"},
		{"zero font", func(c *Config) { c.Font.Size = 0 }, "font.size"},
		{"short color", func(c *Config) { c.Font.Color = []int{1, 2} }, "font.color"},
		{"color range", func(c *Config) { c.Font.Color = []int{0, 300, 0} }, "font.color[1]"},
		{"inf warp", func(c *Config) { c.Effects.Warp = math.Inf(1) }, "effects.warp"},
		{"scanline range", func(c *Config) { c.Effects.Scanline = 1.5 }, "effects.scanline"},
		{"negative noise", func(c *Config) { c.Effects.Noise = -0.1 }, "effects.noise "},
		{"zero scale", func(c *Config) { c.Effects.NoiseScale = 0 }, "effects.noise_scale"},
		{"noise mode", func(c *Config) { c.Effects.NoiseMode = "plaid" }, "effects.noise_mode"},
		{"negative glow", func(c *Config) { c.Effects.Glow = -1 }, "effects.glow "},
		{"glow alpha", func(c *Config) { c.Effects.GlowAlpha = 256 }, "effects.glow_alpha"},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }, "audio.volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error to mention %q, got %v", tt.field, err)
			}
		})
	}
}

func TestUnknownNoiseModeIsTyped(t *testing.T) {
	c := Default()
	c.Effects.NoiseMode = "sepia"
	if err := c.Validate(); !errors.Is(err, render.ErrUnknownNoiseMode) {
		t.Errorf("Expected ErrUnknownNoiseMode in chain, got %v", err)
	}
}

func TestLoadAutoPriority(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, DefaultConfigPath)

	// Missing default: embedded used and persisted
	c, src, err := LoadAuto("", defaultPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if src != SourceEmbedded {
		t.Errorf("Expected embedded source, got %s", src)
	}
	if !reflect.DeepEqual(c, Default()) {
		t.Error("Expected default values from embedded config")
	}
	data, err := os.ReadFile(defaultPath)
	if err != nil {
		t.Fatalf("Expected default config written: %v", err)
	}
	if string(data) != asset.DefaultConfig {
		t.Error("Expected written file to match the embedded document")
	}
	assertPerm(t, defaultPath, 0o644)

	// Existing default file wins over embedded
	if err := os.WriteFile(defaultPath, []byte("[render]\nfps = 24\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, src, err = LoadAuto("", defaultPath)
	if err != nil || src != SourceDefault || c.Render.FPS != 24 {
		t.Errorf("Expected default file with fps 24, got src=%s fps=%d err=%v", src, c.Render.FPS, err)
	}

	// Custom path wins over default file
	custom := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(custom, []byte("[render]\nfps = 15\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, src, err = LoadAuto(custom, defaultPath)
	if err != nil || src != SourceCustom || c.Render.FPS != 15 {
		t.Errorf("Expected custom file with fps 15, got src=%s fps=%d err=%v", src, c.Render.FPS, err)
	}

	// Missing custom path is an error, no fallback
	if _, _, err := LoadAuto(filepath.Join(dir, "nope.toml"), defaultPath); err == nil {
		t.Error("Expected error for missing custom config")
	}
}

func assertPerm(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	if perm := info.Mode().Perm(); perm != want {
		t.Errorf("%s: expected mode %o, got %o", path, want, perm)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	c := Default()
	c.Render.Width = 800
	c.Effects.NoiseMode = "color"
	c.Output.Seed = 42
	c.Text.OverrideOS = "ROBCO UNIFIED OS"

	if err := Save(c, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	assertPerm(t, path, 0o644)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, c) {
		t.Errorf("Expected saved config to load back unchanged\ngot:  %+v\nwant: %+v", loaded, c)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvWidth, "320")
	t.Setenv(EnvHeight, "not-a-number")
	t.Setenv(EnvFPS, "12")
	t.Setenv(EnvFontPath, "/tmp/font.ttf")
	t.Setenv(EnvFontSize, "18.5")
	t.Setenv(EnvNoiseMode, "color")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvOutput, "out.gif")
	t.Setenv(EnvAudio, "true")

	c := Default()
	ApplyEnv(c)

	if c.Render.Width != 320 || c.Render.FPS != 12 {
		t.Errorf("Expected width 320 fps 12, got %d %d", c.Render.Width, c.Render.FPS)
	}
	if c.Render.Height != parameter.DefaultHeight {
		t.Errorf("Expected invalid height ignored, got %d", c.Render.Height)
	}
	if c.Font.Path != "/tmp/font.ttf" || c.Font.Size != 18.5 {
		t.Errorf("Unexpected font override %+v", c.Font)
	}
	if c.Effects.NoiseMode != "color" || c.Output.Seed != 99 || c.Output.GIF != "out.gif" || !c.Audio.Enabled {
		t.Errorf("Unexpected overrides: %+v %+v %+v", c.Effects, c.Output, c.Audio)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PHOSPHOR_FPS=7\nPHOSPHOR_WIDTH=111\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// Real environment wins over .env
	t.Setenv(EnvWidth, "222")
	t.Setenv(EnvFPS, "")
	os.Unsetenv(EnvFPS)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	c := Default()
	ApplyEnv(c)
	if c.Render.FPS != 7 {
		t.Errorf("Expected fps from .env, got %d", c.Render.FPS)
	}
	if c.Render.Width != 222 {
		t.Errorf("Expected real env width 222, got %d", c.Render.Width)
	}
}

func TestEffectParameters(t *testing.T) {
	c := Default()
	c.Font.Path = ""
	c.Font.Size = 0.5
	c.Effects.NoiseMode = "color"
	c.Effects.PowerOn = 0.5
	c.Render.FPS = 10
	c.Render.TextDuration = 1

	p, src := c.EffectParameters()
	if src != typeface.SourceGoMono {
		t.Errorf("Expected gomono source, got %s", src)
	}
	if p.NoiseMode != render.NoiseColor {
		t.Errorf("Expected color noise, got %s", p.NoiseMode)
	}
	if p.GlowColor != (render.RGBA{R: 0, G: 255, B: 0, A: parameter.DefaultGlowAlpha}) {
		t.Errorf("Unexpected glow color %+v", p.GlowColor)
	}
	if p.BlurRadius != parameter.GlowBlurRadius || p.TopOffset != parameter.TextTopOffset {
		t.Errorf("Expected fixed blur radius and top offset, got %d %d", p.BlurRadius, p.TopOffset)
	}
	if p.PowerOn != 500*time.Millisecond || p.FrameTime != 100*time.Millisecond {
		t.Errorf("Unexpected timing %v %v", p.PowerOn, p.FrameTime)
	}
	if p.CursorRune != '█' {
		t.Errorf("Expected block cursor with gomono, got %q", p.CursorRune)
	}

	// Bitmap face has no block glyph
	if r := typeface.CursorRune(basicfont.Face7x13, '█', '_'); r != '_' {
		t.Errorf("Expected underscore fallback, got %q", r)
	}
}
