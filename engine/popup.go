package engine

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/draw"
	"github.com/lixenwraith/asciifield/field"
	"github.com/lixenwraith/asciifield/render"
)

var helpLines = []string{
	"arrows hjkl  move",
	"tab          focus",
	"e            editor on/off",
	"1-6          dot line square",
	"             fill box wall",
	"b<char>      brush",
	"v            hide/show player",
	"ctrl-x       clear field",
	"ctrl-s/r     save/load",
	"m            mute",
	"esc          close, cancel",
	"ctrl-q       quit",
}

// Popup is an independent field framed by a dialog box and drawn over the main view
type Popup struct {
	Field *field.Field
	View  *render.View
}

// NewPopup lays lines out inside a dialog box on a field of its own
func NewPopup(screen tcell.Screen, lines []string, x, y int) (*Popup, error) {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}

	// Border plus one column of padding each side
	f, err := field.New(width+3, len(lines)+1)
	if err != nil {
		return nil, err
	}
	hw, hh := f.Extent()
	if _, err := draw.New(f).DialogBox(core.Pt(-hw, -hh), core.Pt(hw, hh)); err != nil {
		return nil, err
	}
	for i, l := range lines {
		px := -hw + 2
		for _, r := range l {
			if err := f.SetRune(r, core.Pt(px, hh-1-i)); err != nil {
				return nil, err
			}
			px++
		}
	}

	v := render.NewView(screen, f, x, y)
	v.SetFramed(false)
	return &Popup{Field: f, View: v}, nil
}

// Close detaches the popup view from its field
func (p *Popup) Close() {
	p.View.Close()
}

func (ctx *Context) openHelp() error {
	if ctx.help != nil {
		return nil
	}
	ctx.releaseAll()

	// Centre over the main view
	mw, mh := ctx.View.Size()
	p, err := NewPopup(ctx.Screen, helpLines, 0, 0)
	if err != nil {
		return err
	}
	pw, ph := p.View.Size()
	p.View.Move(constants.FieldMarginX+max((mw-pw)/2, 0), constants.FieldMarginY+max((mh-ph)/2, 0))
	ctx.help = p
	return nil
}

func (ctx *Context) closeHelp() {
	if ctx.help == nil {
		return
	}
	ctx.help.Close()
	ctx.help = nil
	ctx.Screen.Clear()
	ctx.View.Invalidate()
}

// HelpOpen reports whether the help popup is shown
func (ctx *Context) HelpOpen() bool {
	return ctx.help != nil
}
