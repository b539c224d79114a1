package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciifield/field"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFieldText  = tcell.NewRGBColor(192, 202, 245) // Pale lavender
	RgbWall       = tcell.NewRGBColor(255, 158, 100) // Orange for collidable cells
	RgbPlayer     = tcell.NewRGBColor(158, 206, 106) // Green token

	RgbHover   = tcell.NewRGBColor(65, 72, 104) // Muted blue under the pointer
	RgbPreview = tcell.NewRGBColor(60, 40, 0)   // Very dark orange for pending strokes

	RgbFrame        = tcell.NewRGBColor(86, 95, 137)   // Dim frame
	RgbFrameFocused = tcell.NewRGBColor(122, 162, 247) // Bright blue frame while focused

	RgbStatusText   = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusBg     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusEditBg = tcell.NewRGBColor(144, 238, 144) // Light grass green while editing
)

// Cell highlight layers, lowest first
type Highlight uint8

const (
	HighlightNone Highlight = iota
	HighlightPreview
	HighlightHover
)

// StyleForCell returns the style of a field cell. token marks the player glyph
func StyleForCell(c field.Cell, token rune, hl Highlight) tcell.Style {
	style := tcell.StyleDefault.Background(RgbBackground)

	switch {
	case token != 0 && c.Content == token:
		style = style.Foreground(RgbPlayer)
	case c.Collidable:
		style = style.Foreground(RgbWall).Bold(true)
	default:
		style = style.Foreground(RgbFieldText)
	}

	switch hl {
	case HighlightPreview:
		style = style.Background(RgbPreview)
	case HighlightHover:
		style = style.Background(RgbHover)
	}
	return style
}

// FrameStyle returns the frame style for the focus state
func FrameStyle(focused bool) tcell.Style {
	style := tcell.StyleDefault.Background(RgbBackground)
	if focused {
		return style.Foreground(RgbFrameFocused)
	}
	return style.Foreground(RgbFrame)
}

// StatusStyle returns the status line style
func StatusStyle(editing bool) tcell.Style {
	if editing {
		return tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatusEditBg)
	}
	return tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatusBg)
}
