package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/phosphor/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// noiseSeed keeps synthesized noise identical across runs
const noiseSeed = 0x70686f73

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(noiseSeed, uint64(wave))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates a linear attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(0, total-att-rel),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(0, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateClickSound generates a short mechanical key click: a square transient over noise
func CreateClickSound(cfg *Config) beep.Streamer {
	rate := cfg.Rate()
	d := parameter.ClickSoundDuration

	tone := NewEnvelope(NewOscillator(parameter.ClickSoundFrequency, d, WaveSquare, rate),
		d, parameter.ClickSoundAttack, parameter.ClickSoundRelease, rate)
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate),
		d, parameter.ClickSoundAttack, parameter.ClickSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(tone, 1-parameter.ClickNoiseMix),
		newVolume(noise, parameter.ClickNoiseMix),
	)
	return beep.Take(rate.N(d), newVolume(mixed, cfg.Volume))
}

// CreateBeepSound generates the power-on tone with one overtone
func CreateBeepSound(cfg *Config) beep.Streamer {
	rate := cfg.Rate()
	d := parameter.BeepSoundDuration

	fund := NewEnvelope(NewOscillator(parameter.BeepSoundFrequency, d, WaveSine, rate),
		d, parameter.BeepSoundAttack, parameter.BeepSoundRelease, rate)
	over := NewEnvelope(NewOscillator(parameter.BeepSoundFrequency*parameter.BeepOvertoneRatio, d, WaveSine, rate),
		d, parameter.BeepSoundAttack, parameter.BeepSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(fund, 1-parameter.BeepOvertoneGain),
		newVolume(over, parameter.BeepOvertoneGain),
	)
	return beep.Take(rate.N(d), newVolume(mixed, cfg.Volume))
}

// CreateHum generates the low mains hum under the whole soundtrack
func CreateHum(cfg *Config, d time.Duration) beep.Streamer {
	rate := cfg.Rate()
	tone, err := generators.SineTone(rate, parameter.HumFrequency)
	if err != nil {
		return beep.Silence(rate.N(d))
	}
	return newVolume(beep.Take(rate.N(d), tone), parameter.HumGain*cfg.Volume)
}

// GetSoundEffect returns the streamer for a sound type, nil when unknown
func GetSoundEffect(soundType SoundType, cfg *Config) beep.Streamer {
	switch soundType {
	case SoundClick:
		return CreateClickSound(cfg)
	case SoundBeep:
		return CreateBeepSound(cfg)
	default:
		return nil
	}
}
