package visual

// Block characters used by the boot text and the terminal preview
const (
	// CursorGlyph is the solid block cursor appended to the last text line
	CursorGlyph = '█' // █

	// CursorFallback is used when the face has no block glyph
	CursorFallback = '_'

	// HalfBlockUpper packs two vertical pixels in one cell: fg = top, bg = bottom
	HalfBlockUpper = '▀' // ▀
)
