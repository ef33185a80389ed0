package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/phosphor/sequence"
)

// Cue schedules a sound at the start of a frame
type Cue struct {
	Frame int
	Sound SoundType
}

// cuesFor returns the sounds triggered by one frame
func cuesFor(ev sequence.FrameEvent) []SoundType {
	var sounds []SoundType
	if ev.Index == 0 {
		sounds = append(sounds, SoundBeep)
	}
	if ev.Typed {
		sounds = append(sounds, SoundClick)
	}
	return sounds
}

// Recorder collects cues from sequencer frames for offline rendering
type Recorder struct {
	cues   []Cue
	frames int
	delay  time.Duration
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnFrame implements sequence.Observer
func (r *Recorder) OnFrame(ev sequence.FrameEvent) {
	for _, s := range cuesFor(ev) {
		r.cues = append(r.cues, Cue{Frame: ev.Index, Sound: s})
	}
	r.frames = ev.Index + 1
	r.delay = ev.Delay
}

// Cues returns the recorded cues in frame order
func (r *Recorder) Cues() []Cue {
	return r.cues
}

// Soundtrack returns a timeline covering every recorded frame
func (r *Recorder) Soundtrack(cfg *Config) (*Soundtrack, error) {
	return NewSoundtrack(cfg, r.cues, r.frames, r.delay)
}

// Soundtrack is a frame-aligned audio timeline
type Soundtrack struct {
	cfg    *Config
	cues   []Cue
	frames int
	delay  time.Duration
}

// NewSoundtrack validates and creates a timeline of frames*delay
func NewSoundtrack(cfg *Config, cues []Cue, frames int, delay time.Duration) (*Soundtrack, error) {
	if frames <= 0 || delay <= 0 || cfg.Rate().N(delay*time.Duration(frames)) == 0 {
		return nil, ErrNoSamples
	}
	return &Soundtrack{cfg: cfg, cues: cues, frames: frames, delay: delay}, nil
}

// Duration returns the timeline length
func (s *Soundtrack) Duration() time.Duration {
	return s.delay * time.Duration(s.frames)
}

// Samples returns the timeline length in samples
func (s *Soundtrack) Samples() int {
	return s.cfg.Rate().N(s.Duration())
}

// FrameOffset returns the first sample of a frame
func (s *Soundtrack) FrameOffset(frame int) int {
	return s.cfg.Rate().N(s.delay * time.Duration(frame))
}

// Streamer mixes hum and every cue at its frame offset, exactly Samples() long
func (s *Soundtrack) Streamer() beep.Streamer {
	parts := make([]beep.Streamer, 0, len(s.cues)+2)
	// Endless silence keeps the mixer alive until Take cuts it
	parts = append(parts, beep.Silence(-1), CreateHum(s.cfg, s.Duration()))

	for _, c := range s.cues {
		sound := GetSoundEffect(c.Sound, s.cfg)
		if sound == nil {
			continue
		}
		parts = append(parts, beep.Seq(beep.Silence(s.FrameOffset(c.Frame)), sound))
	}
	return beep.Take(s.Samples(), beep.Mix(parts...))
}

// Format returns the 16-bit stereo output format
func (s *Soundtrack) Format() beep.Format {
	return beep.Format{SampleRate: s.cfg.Rate(), NumChannels: 2, Precision: 2}
}

// EncodeWAV renders the timeline as a WAV file
func (s *Soundtrack) EncodeWAV(w io.WriteSeeker) error {
	if err := wav.Encode(w, s.Streamer(), s.Format()); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	return nil
}
