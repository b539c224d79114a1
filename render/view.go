// Package render draws fields on a tcell screen and maps the mouse back onto them
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/event"
	"github.com/lixenwraith/asciifield/field"
)

// View is a framed, mouse-aware window onto one Field.
// The frame's top-left corner sits at (x, y); field cell (-halfW, halfH) is drawn at (x+1, y+1)
type View struct {
	screen tcell.Screen
	field  *field.Field
	x, y   int
	title  string
	token  rune
	framed bool

	sub   event.Subscription
	dirty mapset.Set[core.Point]
	full  bool

	focused  bool
	hover    core.Point
	hovering bool
	preview  mapset.Set[core.Point]
	buttons  tcell.ButtonMask

	status  string
	editing bool
}

// NewView creates a view and subscribes it to field changes
func NewView(screen tcell.Screen, f *field.Field, x, y int) *View {
	v := &View{
		screen:  screen,
		field:   f,
		x:       x,
		y:       y,
		dirty:   mapset.New[core.Point](),
		preview: mapset.New[core.Point](),
		framed:  true,
		full:    true,
	}
	v.sub = event.Subscribe(f.Bus(), field.TopicChange, func(c field.Cell) {
		v.dirty.Put(c.Point())
	})
	return v
}

// Close stops tracking field changes
func (v *View) Close() {
	v.sub.Cancel()
}

// Field returns the viewed field
func (v *View) Field() *field.Field {
	return v.field
}

// SetTitle sets the text drawn into the top frame edge
func (v *View) SetTitle(title string) {
	v.title = title
	v.full = true
}

// SetToken sets the rune styled as the player
func (v *View) SetToken(r rune) {
	v.token = r
	v.full = true
}

// SetFramed toggles the frame. An unframed view draws field cell (-halfW, halfH) at (x, y)
func (v *View) SetFramed(framed bool) {
	v.framed = framed
	v.full = true
}

func (v *View) inset() int {
	if v.framed {
		return 1
	}
	return 0
}

// Move relocates the frame, e.g. after a terminal resize
func (v *View) Move(x, y int) {
	v.x, v.y = x, y
	v.full = true
}

// Size returns the view width and height in screen cells, frame included
func (v *View) Size() (int, int) {
	edge := 2 * v.inset()
	return v.field.Columns() + 1 + edge, v.field.Rows() + 1 + edge
}

// ToScreen maps a field coordinate to its screen cell
func (v *View) ToScreen(p core.Point) (int, int) {
	hw, hh := v.field.Extent()
	in := v.inset()
	return p.X + hw + v.x + in, hh - p.Y + v.y + in
}

// ToField maps a screen cell to a field coordinate. ok is false outside the field
func (v *View) ToField(sx, sy int) (core.Point, bool) {
	hw, hh := v.field.Extent()
	in := v.inset()
	p := core.Pt(sx-(v.x+in)-hw, hh-(sy-(v.y+in)))
	return p, v.field.Contains(p)
}

// Focused reports whether keyboard movement is routed to the field
func (v *View) Focused() bool {
	return v.focused
}

// SetFocused sets the focus state
func (v *View) SetFocused(focused bool) {
	if v.focused != focused {
		v.focused = focused
		v.full = true
	}
}

// Hover returns the hovered field cell
func (v *View) Hover() (core.Point, bool) {
	return v.hover, v.hovering
}

// SetPreview highlights points as a pending stroke; nil clears it
func (v *View) SetPreview(points []core.Point) {
	v.preview.Each(func(p core.Point) {
		v.dirty.Put(p)
	})
	v.preview = mapset.New[core.Point]()
	for _, p := range points {
		v.preview.Put(p)
		v.dirty.Put(p)
	}
}

// SetStatus sets the status line text and mode
func (v *View) SetStatus(status string, editing bool) {
	v.status = status
	v.editing = editing
}

// Invalidate forces a full redraw on the next Draw
func (v *View) Invalidate() {
	v.full = true
}

// HandleMouse routes a mouse event. A primary press inside the field focuses
// it and publishes a click; a press outside drops focus. Motion publishes hover
// when the pointer enters a new cell. Returns the first handler error
func (v *View) HandleMouse(ev *tcell.EventMouse) error {
	sx, sy := ev.Position()
	p, inside := v.ToField(sx, sy)

	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && v.buttons&tcell.Button1 == 0
	v.buttons = buttons

	if !inside {
		if v.hovering {
			v.hovering = false
			v.dirty.Put(v.hover)
		}
		if pressed {
			v.SetFocused(false)
		}
		return nil
	}

	var err error
	if !v.hovering || p != v.hover {
		if v.hovering {
			v.dirty.Put(v.hover)
		}
		v.hover, v.hovering = p, true
		v.dirty.Put(p)
		err = v.field.NotifyHover(p)
	}
	if pressed {
		v.SetFocused(true)
		if cerr := v.field.NotifyClick(p); err == nil {
			err = cerr
		}
	}
	return err
}

// Draw paints the frame and every dirty cell; a full redraw repaints everything.
// The caller shows the screen
func (v *View) Draw() {
	if v.full {
		if v.framed {
			v.drawFrame()
		}
		v.field.Each(func(c field.Cell) bool {
			v.drawCell(c)
			return true
		})
		v.dirty = mapset.New[core.Point]()
		v.full = false
	} else {
		v.dirty.Each(func(p core.Point) {
			if c, err := v.field.Cell(p); err == nil {
				v.drawCell(c)
			}
		})
		v.dirty = mapset.New[core.Point]()
	}
	v.drawStatus()
}

func (v *View) drawCell(c field.Cell) {
	hl := HighlightNone
	switch {
	case v.hovering && c.Point() == v.hover:
		hl = HighlightHover
	case v.preview.Has(c.Point()):
		hl = HighlightPreview
	}
	sx, sy := v.ToScreen(c.Point())
	v.screen.SetContent(sx, sy, c.Content, nil, StyleForCell(c, v.token, hl))
}

func (v *View) drawFrame() {
	w, h := v.Size()
	style := FrameStyle(v.focused)
	right, bottom := v.x+w-1, v.y+h-1

	for sx := v.x + 1; sx < right; sx++ {
		v.screen.SetContent(sx, v.y, constants.BoxHorizontal, nil, style)
		v.screen.SetContent(sx, bottom, constants.BoxHorizontal, nil, style)
	}
	for sy := v.y + 1; sy < bottom; sy++ {
		v.screen.SetContent(v.x, sy, constants.BoxVertical, nil, style)
		v.screen.SetContent(right, sy, constants.BoxVertical, nil, style)
	}
	v.screen.SetContent(v.x, v.y, constants.BoxTopLeft, nil, style)
	v.screen.SetContent(right, v.y, constants.BoxTopRight, nil, style)
	v.screen.SetContent(v.x, bottom, constants.BoxBottomLeft, nil, style)
	v.screen.SetContent(right, bottom, constants.BoxBottomRight, nil, style)

	if v.title != "" {
		v.drawText(v.x+2, v.y, right-1, " "+v.title+" ", style)
	}
}

// drawStatus writes the status line below the frame, padded to the frame width
func (v *View) drawStatus() {
	if v.status == "" {
		return
	}
	w, h := v.Size()
	sy := v.y + h - 1 + constants.StatusLineOffset
	style := StatusStyle(v.editing)
	end := v.drawText(v.x, sy, v.x+w, v.status, style)
	for sx := end; sx < v.x+w; sx++ {
		v.screen.SetContent(sx, sy, ' ', nil, style)
	}
}

// drawText writes s from sx up to limit (exclusive), returning the next free column
func (v *View) drawText(sx, sy, limit int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if sx+rw > limit {
			break
		}
		v.screen.SetContent(sx, sy, r, nil, style)
		sx += rw
	}
	return sx
}
