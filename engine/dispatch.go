package engine

import (
	"errors"

	"github.com/lixenwraith/asciifield/editor"
	"github.com/lixenwraith/asciifield/input"
	"github.com/lixenwraith/asciifield/mapfile"
)

// Dispatch applies one action to the session. Rejected actions are reported
// on the status line; only field failures are returned
func (ctx *Context) Dispatch(a input.Action) error {
	if ctx.help != nil {
		return ctx.dispatchHelp(a)
	}

	switch a.Type {
	case input.ActionQuit:
		ctx.quit = true

	case input.ActionEscape:
		if ctx.Editor.Tool() != editor.ToolNone {
			ctx.Editor.Cancel()
			ctx.notify("tool cancelled")
		}

	case input.ActionMove:
		if a.Release {
			ctx.Agent.KeyUp(a.Direction)
			return nil
		}
		if !ctx.View.Focused() {
			return nil
		}
		// Auto-repeated presses only keep the hold alive; the agent's timer paces the steps
		if ctx.Repeat.Press(a.Direction, ctx.Clock.Now()) {
			ctx.Agent.KeyDown(a.Direction)
		}

	case input.ActionToggleHide:
		if ctx.Agent.Visible() {
			return ctx.Agent.Hide()
		}
		return ctx.Agent.Show()

	case input.ActionToggleEditor:
		if ctx.Editor.Enabled() {
			ctx.Editor.Disable()
			ctx.notify("editor off")
		} else {
			ctx.Editor.Enable()
			ctx.notify("editor on")
		}

	case input.ActionSelectTool:
		if err := ctx.Editor.Select(a.Tool); err != nil {
			if errors.Is(err, editor.ErrDisabled) {
				ctx.notify("Editor not enabled")
				return nil
			}
			ctx.notify("%v", err)
			return nil
		}
		if ctx.Editor.Tool() == editor.ToolNone {
			ctx.notify("%s off", a.Tool)
		} else {
			ctx.notify("%s: click %d point(s)", a.Tool, a.Tool.Points())
		}

	case input.ActionBrush:
		ctx.Editor.SetBrush(string(a.Char))
		ctx.notify("brush %q", a.Char)

	case input.ActionClearField:
		blank := &mapfile.Document{Columns: ctx.Field.Columns(), Rows: ctx.Field.Rows()}
		if err := mapfile.Apply(blank, ctx.Field, ctx.Agent); err != nil {
			return err
		}
		ctx.notify("field cleared")

	case input.ActionToggleFocus:
		ctx.View.SetFocused(!ctx.View.Focused())
		if !ctx.View.Focused() {
			ctx.releaseAll()
		}

	case input.ActionToggleMute:
		ctx.Sound.SetMuted(!ctx.Sound.Muted())
		if ctx.Sound.Muted() {
			ctx.notify("sound muted")
		} else {
			ctx.notify("sound on")
		}

	case input.ActionToggleHelp:
		return ctx.openHelp()

	case input.ActionSave:
		ctx.save()

	case input.ActionLoad:
		return ctx.load()
	}
	return nil
}

func (ctx *Context) dispatchHelp(a input.Action) error {
	switch a.Type {
	case input.ActionQuit:
		ctx.quit = true
	case input.ActionEscape, input.ActionToggleHelp:
		ctx.closeHelp()
	}
	return nil
}

func (ctx *Context) save() {
	doc := mapfile.Capture(ctx.SlotName, ctx.Field, ctx.Agent)
	if ctx.MapPath != "" {
		if err := mapfile.WriteFile(ctx.MapPath, doc); err != nil {
			ctx.notify("save failed: %v", err)
			return
		}
		ctx.notify("saved %s", ctx.MapPath)
		return
	}

	if !ctx.Slots.Persistent() {
		ctx.notify("save unavailable: no data directory")
		return
	}
	if err := ctx.Slots.Save(ctx.SlotName, doc); err != nil {
		ctx.notify("save failed: %v", err)
		return
	}
	ctx.notify("saved slot %q", ctx.SlotName)
}

// load replaces the field from the configured target. Unreadable documents
// are reported; a failure while applying is returned
func (ctx *Context) load() error {
	var (
		doc    *mapfile.Document
		err    error
		source string
	)
	if ctx.MapPath != "" {
		doc, err = mapfile.ReadFile(ctx.MapPath)
		source = ctx.MapPath
	} else {
		doc, err = ctx.Slots.Load(ctx.SlotName)
		source = "slot " + ctx.SlotName
	}
	if err != nil {
		ctx.notify("load failed: %v", err)
		return nil
	}

	ctx.releaseAll()
	ctx.Editor.Cancel()
	if err := mapfile.Apply(doc, ctx.Field, ctx.Agent); err != nil {
		if errors.Is(err, mapfile.ErrSizeMismatch) {
			ctx.notify("load failed: %v", err)
			return nil
		}
		return err
	}
	ctx.notify("loaded %s", source)
	return nil
}
