package parameter

import "time"

// Preview
const (
	// PreviewEventBuffer is the tcell event channel capacity
	PreviewEventBuffer = 16

	// PreviewMinFrameTime skips pacing sleeps shorter than this
	PreviewMinFrameTime = time.Millisecond
)
