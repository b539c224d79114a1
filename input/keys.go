// Package input translates terminal key events into field actions
package input

import (
	"github.com/gdamore/tcell/v2"
)

// KeyState is the parser state between key events
type KeyState uint8

const (
	StateIdle KeyState = iota
	StateCharWait
)

// Keys parses key events into actions against a key table
type Keys struct {
	table   *KeyTable
	state   KeyState
	pending KeyEntry // entry awaiting its rune argument in StateCharWait
}

// NewKeys creates a parser; a nil table uses the defaults
func NewKeys(kt *KeyTable) *Keys {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Keys{table: kt}
}

// State returns the current parser state
func (k *Keys) State() KeyState {
	return k.state
}

// Reset drops any pending multi-key sequence
func (k *Keys) Reset() {
	k.state = StateIdle
	k.pending = KeyEntry{}
}

// Process translates one event. Returns nil when the event maps to nothing
func (k *Keys) Process(ev *tcell.EventKey) *Action {
	if k.state == StateCharWait {
		return k.completeCharWait(ev)
	}

	if ev.Key() == tcell.KeyRune {
		entry, ok := k.table.Runes[ev.Rune()]
		if !ok {
			return nil
		}
		return k.handleEntry(entry)
	}

	entry, ok := k.table.SpecialKeys[ev.Key()]
	if !ok {
		return nil
	}
	return k.handleEntry(entry)
}

func (k *Keys) handleEntry(entry KeyEntry) *Action {
	switch entry.Behavior {
	case BehaviorMove:
		return &Action{Type: ActionMove, Direction: entry.Direction}
	case BehaviorTool:
		return &Action{Type: ActionSelectTool, Tool: entry.Tool}
	case BehaviorCharWait:
		k.state = StateCharWait
		k.pending = entry
		return nil
	case BehaviorAction:
		return &Action{Type: entry.Action}
	}
	return nil
}

// completeCharWait consumes the argument rune. Escape or any special key aborts
func (k *Keys) completeCharWait(ev *tcell.EventKey) *Action {
	entry := k.pending
	k.Reset()
	if ev.Key() != tcell.KeyRune {
		return nil
	}
	return &Action{Type: entry.Action, Char: ev.Rune()}
}
