package sequence

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/phosphor/parameter"
)

// Sentinel errors
var (
	ErrInvalidTiming  = errors.New("invalid timing")
	ErrEmptySequence  = errors.New("empty frame sequence")
	ErrMixedFrameSize = errors.New("frames have different dimensions")
)

// Timing holds frame rate and phase durations
type Timing struct {
	FPS           int
	TextDuration  time.Duration
	BlinkDuration time.Duration
}

// Validate rejects timings that cannot produce a sequence
func (t Timing) Validate() error {
	if t.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidTiming, t.FPS)
	}
	if t.TextDuration < 0 || t.BlinkDuration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidTiming)
	}
	if t.TypingFrames()+t.BlinkFrames() == 0 {
		return ErrEmptySequence
	}
	return nil
}

// TypingFrames returns round(F * D_text), at least 1 when D_text > 0
func (t Timing) TypingFrames() int {
	n := framesFor(t.FPS, t.TextDuration)
	if n == 0 && t.TextDuration > 0 {
		n = 1
	}
	return n
}

// BlinkFrames returns round(F * D_blink)
func (t Timing) BlinkFrames() int {
	return framesFor(t.FPS, t.BlinkDuration)
}

// TotalFrames returns the frame count of an uncancelled run
func (t Timing) TotalFrames() int {
	return t.TypingFrames() + t.BlinkFrames()
}

// FrameTime is the typing cadence D_text / N, inherited by the blink phase
// Falls back to 1/F when there is no typing phase
func (t Timing) FrameTime() time.Duration {
	if n := t.TypingFrames(); n > 0 {
		return t.TextDuration / time.Duration(n)
	}
	return t.Delay()
}

// Delay is the display duration of every frame, 1s / F
func (t Timing) Delay() time.Duration {
	if t.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(t.FPS)
}

// ToggleEvery returns the blink half-period in frames, at least 1
func (t Timing) ToggleEvery() int {
	ft := t.FrameTime()
	if ft <= 0 {
		return 1
	}
	n := int(math.Round(float64(parameter.CursorBlinkPeriod) / float64(ft)))
	return max(1, n)
}

// CursorVisible returns cursor visibility for blink frame j; visible first
func (t Timing) CursorVisible(j int) bool {
	return (j/t.ToggleEvery())%2 == 0
}

func framesFor(fps int, d time.Duration) int {
	if fps <= 0 || d <= 0 {
		return 0
	}
	return int(math.Round(float64(fps) * d.Seconds()))
}
