package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/editor"
)

// KeyBehavior classifies how a key is processed
type KeyBehavior uint8

const (
	BehaviorNone KeyBehavior = iota
	BehaviorMove
	BehaviorTool
	BehaviorCharWait // next rune is consumed as an argument
	BehaviorAction
)

// KeyEntry describes a key's behavior without function pointers
type KeyEntry struct {
	Behavior  KeyBehavior
	Direction core.Direction
	Tool      editor.Tool
	Action    ActionType
}

// KeyTable maps keys to behaviors
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]KeyEntry

	// Rune bindings
	Runes map[rune]KeyEntry
}

func move(d core.Direction) KeyEntry {
	return KeyEntry{Behavior: BehaviorMove, Direction: d, Action: ActionMove}
}

func tool(t editor.Tool) KeyEntry {
	return KeyEntry{Behavior: BehaviorTool, Tool: t, Action: ActionSelectTool}
}

func action(a ActionType) KeyEntry {
	return KeyEntry{Behavior: BehaviorAction, Action: a}
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlQ:  action(ActionQuit),
			tcell.KeyCtrlC:  action(ActionQuit),
			tcell.KeyEscape: action(ActionEscape),
			tcell.KeyUp:     move(core.North),
			tcell.KeyDown:   move(core.South),
			tcell.KeyLeft:   move(core.West),
			tcell.KeyRight:  move(core.East),
			tcell.KeyTab:    action(ActionToggleFocus),
			tcell.KeyCtrlS:  action(ActionSave),
			tcell.KeyCtrlR:  action(ActionLoad),
			tcell.KeyCtrlX:  action(ActionClearField),
			tcell.KeyF1:     action(ActionToggleHelp),
		},

		Runes: map[rune]KeyEntry{
			// Vi motions
			'h': move(core.West),
			'j': move(core.South),
			'k': move(core.North),
			'l': move(core.East),

			// Tool belt
			'1': tool(editor.ToolDot),
			'2': tool(editor.ToolLine),
			'3': tool(editor.ToolSquare),
			'4': tool(editor.ToolFilledSquare),
			'5': tool(editor.ToolDialogBox),
			'6': tool(editor.ToolWall),

			'b': {Behavior: BehaviorCharWait, Action: ActionBrush},
			'e': action(ActionToggleEditor),
			'v': action(ActionToggleHide),
			'm': action(ActionToggleMute),
			'?': action(ActionToggleHelp),
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: cloneMap(kt.SpecialKeys),
		Runes:       cloneMap(kt.Runes),
	}
}

func cloneMap[K comparable](m map[K]KeyEntry) map[K]KeyEntry {
	if m == nil {
		return make(map[K]KeyEntry)
	}
	return maps.Clone(m)
}
