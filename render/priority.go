package render

// StagePriority determines stage order within a frame build. Lower values run first
type StagePriority int

const (
	PriorityText StagePriority = iota
	PriorityWarp
	PriorityOverlay
	PriorityFade
)
