package render

// Stage is one step of the per-frame pipeline, mutating the canvas in place
type Stage interface {
	Apply(ctx StageContext, c *Canvas)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// StageContext carries per-frame inputs to stages
type StageContext struct {
	Index  int // Frame position in the output sequence
	State  TextState
	Params *EffectParameters
}
