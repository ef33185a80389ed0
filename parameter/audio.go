package parameter

import "time"

// Audio Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer, trades latency for underruns
	AudioBufferDuration = 50 * time.Millisecond

	DefaultAudioVolume = 0.6
)

// Key Click Sound
const (
	ClickSoundDuration  = 18 * time.Millisecond
	ClickSoundAttack    = 1 * time.Millisecond
	ClickSoundRelease   = 14 * time.Millisecond
	ClickSoundFrequency = 1800.0
	ClickNoiseMix       = 0.45
)

// Power-On Beep
const (
	BeepSoundDuration  = 220 * time.Millisecond
	BeepSoundAttack    = 5 * time.Millisecond
	BeepSoundRelease   = 120 * time.Millisecond
	BeepSoundFrequency = 880.0
	BeepOvertoneRatio  = 2.0
	BeepOvertoneGain   = 0.25
)

// Terminal Hum
const (
	HumFrequency = 60.0
	HumGain      = 0.04
)
