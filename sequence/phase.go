package sequence

import "fmt"

// Phase is the animation state
type Phase uint8

const (
	PhaseTyping Phase = iota
	PhaseCursorBlink
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhaseCursorBlink:
		return "cursor_blink"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// CanTransition checks if a phase transition is valid
// Typing may be skipped entirely when it has no frames
func CanTransition(from, to Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseTyping:      {PhaseCursorBlink, PhaseDone},
		PhaseCursorBlink: {PhaseDone},
	}

	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}
