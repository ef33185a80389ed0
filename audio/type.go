package audio

import (
	"errors"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/phosphor/parameter"
)

// SoundType identifies a synthesized sound
type SoundType int

const (
	SoundClick SoundType = iota // Key press while text is typed
	SoundBeep                   // Power-on tone on the first frame
)

func (s SoundType) String() string {
	switch s {
	case SoundClick:
		return "click"
	case SoundBeep:
		return "beep"
	}
	return "unknown"
}

// Config holds audio settings
type Config struct {
	Enabled    bool
	Live       bool
	Volume     float64 // Master volume 0.0-1.0
	SampleRate int
}

// DefaultConfig returns audio disabled with default volume and rate
func DefaultConfig() *Config {
	return &Config{
		Volume:     parameter.DefaultAudioVolume,
		SampleRate: parameter.AudioSampleRate,
	}
}

// Rate returns the configured sample rate, falling back to the default
func (c *Config) Rate() beep.SampleRate {
	if c.SampleRate <= 0 {
		return beep.SampleRate(parameter.AudioSampleRate)
	}
	return beep.SampleRate(c.SampleRate)
}

// Sentinel errors
var (
	ErrNoSamples = errors.New("soundtrack has no samples")
)
