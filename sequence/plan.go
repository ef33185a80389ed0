package sequence

import (
	"unicode/utf8"

	"github.com/lixenwraith/phosphor/render"
)

// Step is the text state of one output frame
type Step struct {
	Index int
	Phase Phase
	State render.TextState

	// Typed is set on typing frames that revealed new characters
	Typed bool
}

// Plan expands text and timing into the full ordered list of frame states
func Plan(text string, t Timing) []Step {
	n, m := t.TypingFrames(), t.BlinkFrames()
	steps := make([]Step, 0, n+m)

	prevLen := 0
	for i, prefix := range SplitText(text, n) {
		l := utf8.RuneCountInString(prefix)
		steps = append(steps, Step{
			Index: i,
			Phase: PhaseTyping,
			State: render.TextState{Text: prefix, CursorVisible: true},
			Typed: l > prevLen,
		})
		prevLen = l
	}

	for j := 0; j < m; j++ {
		steps = append(steps, Step{
			Index: n + j,
			Phase: PhaseCursorBlink,
			State: render.TextState{Text: text, CursorVisible: t.CursorVisible(j)},
		})
	}
	return steps
}
