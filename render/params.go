package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/image/font"
)

// NoiseMode selects how overlay noise is distributed across channels
type NoiseMode uint8

const (
	NoiseMonochrome NoiseMode = iota // One value per pixel shared by R, G and B
	NoiseColor                       // Independent value per channel
)

// Sentinel errors
var (
	ErrUnknownNoiseMode = errors.New("unknown noise mode")
)

// ParseNoiseMode maps a config string to a NoiseMode
func ParseNoiseMode(s string) (NoiseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monochrome", "mono":
		return NoiseMonochrome, nil
	case "color", "colour":
		return NoiseColor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNoiseMode, s)
}

func (m NoiseMode) String() string {
	switch m {
	case NoiseMonochrome:
		return "monochrome"
	case NoiseColor:
		return "color"
	}
	return fmt.Sprintf("NoiseMode(%d)", uint8(m))
}

// EffectParameters is the immutable rendering configuration shared by every stage
// Constructed once before the animation starts and passed by pointer, never mutated
type EffectParameters struct {
	Width  int
	Height int

	// Warp
	Distortion float64

	// Scanline/noise overlay
	ScanlineIntensity float64
	NoiseIntensity    float64
	NoiseScale        float64 // Noise particle size in pixels, > 0
	NoiseMode         NoiseMode

	// Glow text
	Face        font.Face
	GlowLayers  int
	GlowColor   RGBA
	BlurRadius  int
	LineSpacing int
	TopOffset   int
	CursorRune  rune

	// Power-on fade, 0 disables
	PowerOn   time.Duration
	FrameTime time.Duration
}

// TextState is the revealed text and cursor visibility for one frame
type TextState struct {
	Text          string
	CursorVisible bool
}

// Lines splits the state into render lines, appending the cursor to the last line when visible
func (s TextState) Lines(cursor rune) []string {
	lines := strings.Split(s.Text, "\n")
	if s.CursorVisible {
		lines[len(lines)-1] += string(cursor)
	}
	return lines
}
