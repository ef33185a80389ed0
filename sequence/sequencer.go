// Package sequence drives the typing and cursor blink phases and collects rendered frames
package sequence

import (
	"context"
	"log"
	"time"

	"github.com/lixenwraith/phosphor/render"
)

// Builder renders one frame for a text state
type Builder interface {
	Build(index int, state render.TextState) *render.Frame
}

// FrameEvent is delivered to observers after each frame is appended
type FrameEvent struct {
	Step
	Frame *render.Frame
	Total int
	Delay time.Duration
}

// Observer receives frames as they are produced, on the sequencer goroutine
type Observer interface {
	OnFrame(ev FrameEvent)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ev FrameEvent)

func (f ObserverFunc) OnFrame(ev FrameEvent) { f(ev) }

// Sequence is the ordered output of a run plus its timing metadata
type Sequence struct {
	Frames    []*render.Frame
	Delay     time.Duration
	Cancelled bool

	TypingFrames int
	BlinkFrames  int
}

// Validate checks the sequence is non-empty with uniform dimensions
func (s *Sequence) Validate() error {
	if len(s.Frames) == 0 {
		return ErrEmptySequence
	}
	w, h := s.Frames[0].Width(), s.Frames[0].Height()
	for _, f := range s.Frames[1:] {
		if f.Width() != w || f.Height() != h {
			return ErrMixedFrameSize
		}
	}
	return nil
}

// Duration returns total display time
func (s *Sequence) Duration() time.Duration {
	return s.Delay * time.Duration(len(s.Frames))
}

// Sequencer owns the animation state across both phases
type Sequencer struct {
	builder   Builder
	text      string
	timing    Timing
	observers []Observer

	phase Phase
	steps []Step
}

// New validates timing and precomputes the frame plan
func New(b Builder, text string, t Timing, observers ...Observer) (*Sequencer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Sequencer{
		builder:   b,
		text:      text,
		timing:    t,
		observers: observers,
		phase:     PhaseTyping,
		steps:     Plan(text, t),
	}, nil
}

// Phase returns the current phase
func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Steps returns the precomputed plan
func (s *Sequencer) Steps() []Step {
	return s.steps
}

// transition moves to the next phase, ignoring invalid transitions
func (s *Sequencer) transition(to Phase) {
	if s.phase == to || !CanTransition(s.phase, to) {
		return
	}
	log.Printf("Sequencer phase %s -> %s", s.phase, to)
	s.phase = to
}

// Run produces every planned frame in order
// Cancellation is checked only between frames; a cancelled run returns the frames
// produced so far with Cancelled set and a nil error
func (s *Sequencer) Run(ctx context.Context) (*Sequence, error) {
	seq := &Sequence{
		Frames:       make([]*render.Frame, 0, len(s.steps)),
		Delay:        s.timing.Delay(),
		TypingFrames: s.timing.TypingFrames(),
		BlinkFrames:  s.timing.BlinkFrames(),
	}

	for _, step := range s.steps {
		if ctx.Err() != nil {
			seq.Cancelled = true
			log.Printf("Sequencer cancelled after %d/%d frames", len(seq.Frames), len(s.steps))
			return seq, nil
		}

		s.transition(step.Phase)

		frame := s.builder.Build(step.Index, step.State)
		seq.Frames = append(seq.Frames, frame)

		ev := FrameEvent{Step: step, Frame: frame, Total: len(s.steps), Delay: seq.Delay}
		for _, o := range s.observers {
			o.OnFrame(ev)
		}
	}

	s.transition(PhaseDone)
	return seq, nil
}
