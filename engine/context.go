// Package engine wires a field session together and dispatches input to it
package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciifield/audio"
	"github.com/lixenwraith/asciifield/config"
	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/draw"
	"github.com/lixenwraith/asciifield/editor"
	"github.com/lixenwraith/asciifield/field"
	"github.com/lixenwraith/asciifield/input"
	"github.com/lixenwraith/asciifield/mapfile"
	"github.com/lixenwraith/asciifield/player"
	"github.com/lixenwraith/asciifield/render"
)

// Options carries the collaborators a Context does not build itself
type Options struct {
	MapPath  string // file target for save/load, empty to use the slot
	SlotName string // gdata slot for save/load
	Slots    *mapfile.Slots
	Sound    *audio.SoundManager
	Keys     *input.KeyTable
	Clock    Clock
	// NewTicker overrides the player's repeat timer
	NewTicker func(time.Duration) player.Ticker
}

// Context holds one interactive session: a main field, the player on it,
// the editor drawing into it, and the view showing it
type Context struct {
	Config *config.Config
	Screen tcell.Screen

	Field  *field.Field
	Drawer *draw.Drawer
	Agent  *player.Agent
	Editor *editor.Editor
	View   *render.View

	Keys   *input.Keys
	Repeat *input.Repeat
	Sound  *audio.SoundManager
	Slots  *mapfile.Slots
	Clock  Clock

	MapPath  string
	SlotName string

	help    *Popup
	message string
	quit    bool
}

// NewContext builds a session on screen from cfg
func NewContext(screen tcell.Screen, cfg *config.Config, opts Options) (*Context, error) {
	f, err := field.New(cfg.Field.Columns, cfg.Field.Rows)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Config:   cfg,
		Screen:   screen,
		Field:    f,
		Drawer:   draw.New(f),
		Keys:     input.NewKeys(opts.Keys),
		Repeat:   input.NewRepeat(cfg.Input.ReleaseTimeout),
		Sound:    opts.Sound,
		Slots:    opts.Slots,
		Clock:    opts.Clock,
		MapPath:  opts.MapPath,
		SlotName: opts.SlotName,
	}
	if ctx.Sound == nil {
		ctx.Sound = audio.NewSoundManager()
	}
	if ctx.Slots == nil {
		ctx.Slots = mapfile.NewSlots(nil)
	}
	if ctx.Clock == nil {
		ctx.Clock = NewTimeProvider()
	}
	if ctx.SlotName == "" {
		ctx.SlotName = "default"
	}

	ctx.View = render.NewView(screen, f, constants.FieldMarginX, constants.FieldMarginY)
	ctx.View.SetTitle(constants.AppName)

	ctx.Agent, err = player.New(f, player.Options{
		Token:          cfg.TokenRune(),
		RepeatInterval: cfg.Player.RepeatInterval,
		TopExclusive:   cfg.Player.TopExclusive,
		Focused:        ctx.View.Focused,
		NewTicker:      opts.NewTicker,
	})
	if err != nil {
		ctx.View.Close()
		return nil, err
	}
	ctx.Agent.SetFeedback(ctx.Sound)
	ctx.View.SetToken(ctx.Agent.Token())
	if spawn := core.Pt(cfg.Player.Spawn.X, cfg.Player.Spawn.Y); spawn != (core.Point{}) {
		if err := ctx.Agent.Place(spawn); err != nil {
			ctx.View.Close()
			return nil, err
		}
	}

	ctx.Editor = editor.New(ctx.Drawer)
	ctx.Editor.SetFeedback(ctx.Sound)
	ctx.Editor.SetBrush(cfg.Editor.Brush)
	if cfg.Editor.Enabled {
		ctx.Editor.Enable()
	}

	return ctx, nil
}

// Quit reports whether the session asked to end
func (ctx *Context) Quit() bool {
	return ctx.quit
}

// Message returns the last status message
func (ctx *Context) Message() string {
	return ctx.message
}

func (ctx *Context) notify(format string, args ...any) {
	ctx.message = fmt.Sprintf(format, args...)
	log.Printf("[engine] %s", ctx.message)
}

// HandleEvent routes one terminal event
func (ctx *Context) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := ctx.Keys.Process(ev)
		if a == nil {
			return nil
		}
		return ctx.Dispatch(*a)

	case *tcell.EventMouse:
		if ctx.help != nil {
			// Modal: the popup swallows the pointer
			return nil
		}
		armed, stroke := ctx.Editor.Tool(), ctx.Editor.LastStroke()
		err := ctx.View.HandleMouse(ev)
		if !ctx.View.Focused() {
			ctx.releaseAll()
		}
		// A click that returned the editor to idle committed the stroke
		if armed != editor.ToolNone && ctx.Editor.Phase() == editor.PhaseIdle {
			switch {
			case ctx.Editor.LastError() != nil:
				ctx.notify("%s failed: %v", armed, ctx.Editor.LastError())
			case ctx.Editor.LastStroke() != stroke:
				ctx.notify("%s drawn", armed)
			default:
				ctx.notify("%s skipped: empty brush", armed)
			}
		}
		return err

	case *tcell.EventResize:
		ctx.Screen.Clear()
		ctx.Screen.Sync()
		ctx.View.Invalidate()
		if ctx.help != nil {
			ctx.help.View.Invalidate()
		}
	}
	return nil
}

// Tick applies one repeat step of the held directions
func (ctx *Context) Tick() error {
	return ctx.Agent.Tick()
}

// Sweep releases directions whose key stopped auto-repeating
func (ctx *Context) Sweep() {
	for _, d := range ctx.Repeat.Sweep(ctx.Clock.Now()) {
		ctx.Agent.KeyUp(d)
	}
}

func (ctx *Context) releaseAll() {
	ctx.Repeat.ReleaseAll()
	ctx.Agent.Stop()
}

// Render draws the session and shows the screen
func (ctx *Context) Render() {
	ctx.View.SetPreview(ctx.Editor.Preview())
	ctx.View.SetStatus(ctx.statusLine(), ctx.Editor.Enabled())
	ctx.View.Draw()
	if ctx.help != nil {
		ctx.help.View.Draw()
	}
	ctx.Screen.Show()
}

func (ctx *Context) statusLine() string {
	p := ctx.Agent.Position()
	s := fmt.Sprintf(" %v", p)
	if ctx.Editor.Enabled() {
		s += fmt.Sprintf(" | edit %s [%s] brush %q", ctx.Editor.Tool(), ctx.Editor.Phase(), ctx.Editor.Brush())
	}
	if !ctx.View.Focused() {
		s += " | click field to focus"
	}
	if ctx.message != "" {
		s += " | " + ctx.message
	}
	return s
}

// Close releases the session's timers and subscriptions
func (ctx *Context) Close() {
	ctx.releaseAll()
	ctx.Editor.Cancel()
	ctx.closeHelp()
	ctx.View.Close()
}
