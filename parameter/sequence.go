package parameter

import "time"

// Animation Timing
const (
	DefaultTextDuration   = 2 * time.Second
	DefaultCursorDuration = 2 * time.Second

	// CursorBlinkPeriod is the time between cursor visibility toggles
	CursorBlinkPeriod = 500 * time.Millisecond
)
