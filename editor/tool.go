package editor

import (
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/shape"
)

// Tool is an editor drawing tool
type Tool uint8

const (
	ToolNone Tool = iota
	ToolDot
	ToolLine
	ToolSquare
	ToolFilledSquare
	ToolDialogBox
	ToolWall
)

// Tools lists the selectable tools in tool-belt order
var Tools = [...]Tool{ToolDot, ToolLine, ToolSquare, ToolFilledSquare, ToolDialogBox, ToolWall}

func (t Tool) String() string {
	switch t {
	case ToolDot:
		return "dot"
	case ToolLine:
		return "line"
	case ToolSquare:
		return "square"
	case ToolFilledSquare:
		return "filled square"
	case ToolDialogBox:
		return "dialog box"
	case ToolWall:
		return "wall"
	}
	return "none"
}

// Points is the number of clicks the tool waits for
func (t Tool) Points() int {
	switch t {
	case ToolNone:
		return 0
	case ToolDot:
		return 1
	}
	return 2
}

// UsesBrush reports whether the tool paints the brush character
func (t Tool) UsesBrush() bool {
	return t != ToolDialogBox && t != ToolNone
}

// Outline returns the coordinates the tool would touch for the given corners
func (t Tool) Outline(p1, p2 core.Point) []core.Point {
	switch t {
	case ToolDot:
		return shape.Point(p1)
	case ToolLine, ToolWall:
		return shape.Line(p1, p2)
	case ToolSquare, ToolDialogBox:
		return shape.SquareOutline(p1, p2)
	case ToolFilledSquare:
		return shape.FilledRectangle(p1, p2)
	}
	return nil
}
