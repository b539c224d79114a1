package constants

// Dialog box frame runes
const (
	BoxHorizontal  = '━'
	BoxVertical    = '┃'
	BoxTopLeft     = '┏'
	BoxTopRight    = '┓'
	BoxBottomLeft  = '┗'
	BoxBottomRight = '┛'
)

// Layout
const (
	// FieldMarginX is the screen column of the field frame's left edge
	FieldMarginX = 1

	// FieldMarginY is the screen row of the field frame's top edge
	FieldMarginY = 1

	// StatusLineOffset is the number of rows from the frame's bottom edge to the status line
	StatusLineOffset = 1
)
