package input

import (
	"slices"

	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/editor"
)

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap loader to resolve YAML action strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	return map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		"quit":   action(ActionQuit),
		"escape": action(ActionEscape),

		"move_north": move(core.North),
		"move_east":  move(core.East),
		"move_south": move(core.South),
		"move_west":  move(core.West),

		"tool_dot":           tool(editor.ToolDot),
		"tool_line":          tool(editor.ToolLine),
		"tool_square":        tool(editor.ToolSquare),
		"tool_filled_square": tool(editor.ToolFilledSquare),
		"tool_dialog_box":    tool(editor.ToolDialogBox),
		"tool_wall":          tool(editor.ToolWall),

		"brush":         {Behavior: BehaviorCharWait, Action: ActionBrush},
		"toggle_editor": action(ActionToggleEditor),
		"toggle_hide":   action(ActionToggleHide),
		"clear_field":   action(ActionClearField),
		"toggle_focus":  action(ActionToggleFocus),
		"toggle_mute":   action(ActionToggleMute),
		"toggle_help":   action(ActionToggleHelp),
		"save":          action(ActionSave),
		"load":          action(ActionLoad),
	}
}

// ActionEntry returns the KeyEntry for a canonical action name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}

// IsActionName reports whether name is a registered action
func IsActionName(name string) bool {
	_, ok := actionRegistry[name]
	return ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
