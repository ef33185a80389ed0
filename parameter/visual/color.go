package visual

import "github.com/lixenwraith/phosphor/render"

// Phosphor colors
var (
	// PhosphorGreen is the classic P1 phosphor text color
	PhosphorGreen = render.RGB{R: 0, G: 255, B: 0}

	// StatusAccent is used in CLI summaries
	StatusAccent = render.RGB{R: 120, G: 255, B: 120}
)
