package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/editor"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestDefaultBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"arrow up", specialKey(tcell.KeyUp), Action{Type: ActionMove, Direction: core.North}},
		{"arrow down", specialKey(tcell.KeyDown), Action{Type: ActionMove, Direction: core.South}},
		{"arrow left", specialKey(tcell.KeyLeft), Action{Type: ActionMove, Direction: core.West}},
		{"arrow right", specialKey(tcell.KeyRight), Action{Type: ActionMove, Direction: core.East}},
		{"vi k", runeKey('k'), Action{Type: ActionMove, Direction: core.North}},
		{"vi l", runeKey('l'), Action{Type: ActionMove, Direction: core.East}},
		{"ctrl-q", specialKey(tcell.KeyCtrlQ), Action{Type: ActionQuit}},
		{"escape", specialKey(tcell.KeyEscape), Action{Type: ActionEscape}},
		{"tab", specialKey(tcell.KeyTab), Action{Type: ActionToggleFocus}},
		{"ctrl-s", specialKey(tcell.KeyCtrlS), Action{Type: ActionSave}},
		{"line tool", runeKey('2'), Action{Type: ActionSelectTool, Tool: editor.ToolLine}},
		{"wall tool", runeKey('6'), Action{Type: ActionSelectTool, Tool: editor.ToolWall}},
		{"editor", runeKey('e'), Action{Type: ActionToggleEditor}},
		{"help", runeKey('?'), Action{Type: ActionToggleHelp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeys(nil)
			got := k.Process(tt.ev)
			if got == nil {
				t.Fatal("Expected action, got nil")
			}
			if *got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, *got)
			}
		})
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	k := NewKeys(nil)
	if a := k.Process(runeKey('z')); a != nil {
		t.Errorf("Expected nil for unbound rune, got %+v", a)
	}
	if a := k.Process(specialKey(tcell.KeyF12)); a != nil {
		t.Errorf("Expected nil for unbound key, got %+v", a)
	}
}

func TestBrushConsumesNextRune(t *testing.T) {
	k := NewKeys(nil)

	if a := k.Process(runeKey('b')); a != nil {
		t.Fatalf("Expected no action on prefix, got %+v", a)
	}
	if k.State() != StateCharWait {
		t.Fatalf("Expected StateCharWait, got %d", k.State())
	}

	// 'h' is bound to a move, but the pending brush takes it as its argument
	a := k.Process(runeKey('h'))
	if a == nil || a.Type != ActionBrush || a.Char != 'h' {
		t.Fatalf("Expected brush 'h', got %+v", a)
	}
	if k.State() != StateIdle {
		t.Error("Expected idle after argument")
	}
}

func TestBrushAbortedBySpecialKey(t *testing.T) {
	k := NewKeys(nil)
	k.Process(runeKey('b'))
	if a := k.Process(specialKey(tcell.KeyEscape)); a != nil {
		t.Errorf("Expected aborted sequence, got %+v", a)
	}
	if k.State() != StateIdle {
		t.Error("Expected idle after abort")
	}
	// Next key processes normally
	if a := k.Process(runeKey('h')); a == nil || a.Type != ActionMove {
		t.Errorf("Expected move after abort, got %+v", a)
	}
}

func TestActionTypeNamesRegistered(t *testing.T) {
	for _, name := range []string{"quit", "escape", "toggle_editor", "clear_field", "save", "load"} {
		if !IsActionName(name) {
			t.Errorf("Expected %q registered", name)
		}
	}
	for i, name := range ActionNames()[1:] {
		if ActionNames()[i] >= name {
			t.Fatalf("Expected sorted names, got %q before %q", ActionNames()[i], name)
		}
	}
}
