package input

import (
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/editor"
)

// ActionType discriminates semantic actions
type ActionType uint8

const (
	ActionNone ActionType = iota

	// System
	ActionQuit   // Ctrl+Q, Ctrl+C
	ActionEscape // cancel the armed tool or close the popup

	// Player
	ActionMove       // direction key press or synthesized release
	ActionToggleHide // hide or show the player token

	// Editor
	ActionToggleEditor
	ActionSelectTool
	ActionBrush // next rune becomes the brush
	ActionClearField

	// Session
	ActionToggleFocus
	ActionToggleMute
	ActionToggleHelp
	ActionSave
	ActionLoad
)

// Action is a parsed semantic action
type Action struct {
	Type      ActionType
	Direction core.Direction
	Release   bool // ActionMove: key released rather than pressed
	Tool      editor.Tool
	Char      rune // ActionBrush: the brush character
}

func (t ActionType) String() string {
	switch t {
	case ActionQuit:
		return "quit"
	case ActionEscape:
		return "escape"
	case ActionMove:
		return "move"
	case ActionToggleHide:
		return "toggle_hide"
	case ActionToggleEditor:
		return "toggle_editor"
	case ActionSelectTool:
		return "select_tool"
	case ActionBrush:
		return "brush"
	case ActionClearField:
		return "clear_field"
	case ActionToggleFocus:
		return "toggle_focus"
	case ActionToggleMute:
		return "toggle_mute"
	case ActionToggleHelp:
		return "toggle_help"
	case ActionSave:
		return "save"
	case ActionLoad:
		return "load"
	}
	return "none"
}
