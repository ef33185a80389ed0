package render

type stageEntry struct {
	stage    Stage
	priority StagePriority
	index    int // registration order for stable sort
}

// FrameBuilder coordinates the per-frame pipeline: clear, run stages in priority order, freeze
// The canvas is owned exclusively by the builder; callers only ever see immutable frames
type FrameBuilder struct {
	params   *EffectParameters
	canvas   *Canvas
	stages   []stageEntry
	regCount int
}

// NewFrameBuilder creates a builder with a canvas sized from params
func NewFrameBuilder(params *EffectParameters) *FrameBuilder {
	return &FrameBuilder{
		params: params,
		canvas: NewCanvas(params.Width, params.Height),
		stages: make([]stageEntry, 0, 4),
	}
}

// Params returns the shared effect parameters
func (b *FrameBuilder) Params() *EffectParameters {
	return b.params
}

// Register adds a stage at the specified priority. Maintains sorted order via insertion sort
func (b *FrameBuilder) Register(s Stage, priority StagePriority) {
	entry := stageEntry{
		stage:    s,
		priority: priority,
		index:    b.regCount,
	}
	b.regCount++

	pos := len(b.stages)
	for i, e := range b.stages {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	b.stages = append(b.stages, stageEntry{})
	copy(b.stages[pos+1:], b.stages[pos:])
	b.stages[pos] = entry
}

// StageCount returns the number of registered stages
func (b *FrameBuilder) StageCount() int {
	return len(b.stages)
}

// Build executes the pipeline for one frame and returns the frozen result
func (b *FrameBuilder) Build(index int, state TextState) *Frame {
	b.canvas.Clear()

	ctx := StageContext{
		Index:  index,
		State:  state,
		Params: b.params,
	}

	for _, entry := range b.stages {
		// Skip if stage implements VisibilityToggle and is not visible
		if vt, ok := entry.stage.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.stage.Apply(ctx, b.canvas)
	}

	return b.canvas.Freeze()
}
