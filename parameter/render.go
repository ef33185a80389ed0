package parameter

// Canvas Defaults
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
	DefaultFPS    = 30

	// MaxDimension caps either canvas axis
	MaxDimension = 8192

	// MaxFPS caps the frame rate; GIF delays are quantized to 10ms
	MaxFPS = 100
)

// Text Layout
const (
	// TextTopOffset is the fixed y of the first line, text is not vertically centered
	TextTopOffset = 50

	DefaultFontSize    = 30
	DefaultLineSpacing = 45
	DefaultTabLength   = 2
)

// Glow
const (
	// GlowBlurRadius is the gaussian sigma of the halo, independent of layer count
	GlowBlurRadius = 2

	DefaultGlowLayers = 3

	// DefaultGlowAlpha is the alpha of the offset halo copies
	DefaultGlowAlpha = 128
)

// Post Processing Defaults
const (
	DefaultWarp       = 0.15
	DefaultScanline   = 0.3
	DefaultNoise      = 0.03
	DefaultNoiseScale = 1.0
	DefaultNoiseMode  = "monochrome"

	// MaxDistortion bounds the warp coefficient accepted from config
	MaxDistortion = 10.0
)

// Export
const (
	// DefaultGIFQuality selects palette ramp depth, 1..100
	DefaultGIFQuality = 50

	// PaletteGreyLevels is the count of neutral greys added to the glow ramp
	PaletteGreyLevels = 32

	DefaultOutputGIF = "boot.gif"
	DefaultOutputWAV = "boot.wav"
)
