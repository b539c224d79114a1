// Package editor lets the user paint onto a Field with mouse clicks.
//
// Each tool is a small state machine fed by the field's click topic:
//
//	Idle -> AwaitingFirstPoint -> AwaitingSecondPoint -> Ready -> Idle
//
// Single-point tools skip AwaitingSecondPoint. The editor holds a click
// subscription only while a tool is armed, and cancels it on completion.
package editor

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/draw"
	"github.com/lixenwraith/asciifield/event"
	"github.com/lixenwraith/asciifield/field"
)

var (
	// ErrDisabled is returned when a tool is selected before Enable
	ErrDisabled = errors.New("editor not enabled")

	// ErrUnknownTool is returned for ToolNone or values outside Tools
	ErrUnknownTool = errors.New("unknown tool")
)

// Phase of the armed tool
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAwaitingFirstPoint
	PhaseAwaitingSecondPoint
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFirstPoint:
		return "awaiting first point"
	case PhaseAwaitingSecondPoint:
		return "awaiting second point"
	case PhaseReady:
		return "ready"
	}
	return "idle"
}

// Feedback is notified when a stroke lands on the field
type Feedback interface {
	Paint()
}

// Stroke is one committed edit
type Stroke struct {
	Tool     Tool
	From, To core.Point
	Brush    string
	Cells    []field.Cell
}

// Editor arms tools on one field
type Editor struct {
	field  *field.Field
	drawer *draw.Drawer

	enabled bool
	brush   string
	tool    Tool
	phase   Phase
	first   core.Point
	second  core.Point

	clickSub event.Subscription
	hoverSub event.Subscription
	preview  []core.Point

	last     *Stroke
	lastErr  error
	feedback Feedback
}

// New binds an editor to the drawer's field. The editor starts disabled
func New(d *draw.Drawer) *Editor {
	return &Editor{field: d.Field(), drawer: d}
}

// SetFeedback installs the stroke observer
func (e *Editor) SetFeedback(fb Feedback) {
	e.feedback = fb
}

// Enable unlocks tool selection
func (e *Editor) Enable() {
	if !e.enabled {
		e.enabled = true
		log.Printf("[editor] online")
	}
}

// Disable cancels any armed tool and locks selection
func (e *Editor) Disable() {
	e.Cancel()
	e.enabled = false
}

// Enabled reports whether tools may be selected
func (e *Editor) Enabled() bool {
	return e.enabled
}

// SetBrush sets the character painted by brush tools. Only the first code point is used
func (e *Editor) SetBrush(s string) {
	e.brush = s
}

// Brush returns the current brush
func (e *Editor) Brush() string {
	return e.brush
}

// Tool returns the armed tool, ToolNone when idle
func (e *Editor) Tool() Tool {
	return e.tool
}

// Phase returns the armed tool's progress
func (e *Editor) Phase() Phase {
	return e.phase
}

// Preview returns the cells the armed tool would touch if the hovered cell were clicked
func (e *Editor) Preview() []core.Point {
	return e.preview
}

// LastStroke returns the most recent committed stroke, nil if none
func (e *Editor) LastStroke() *Stroke {
	return e.last
}

// LastError returns the error of the most recent commit attempt
func (e *Editor) LastError() error {
	return e.lastErr
}

// Select arms t, cancelling any tool in progress.
// Selecting the armed tool again disarms it, like toggling its button
func (e *Editor) Select(t Tool) error {
	if !e.enabled {
		return ErrDisabled
	}
	if t == ToolNone || t > ToolWall {
		return fmt.Errorf("%w: %d", ErrUnknownTool, t)
	}
	if e.tool == t {
		e.Cancel()
		return nil
	}

	e.Cancel()
	e.tool = t
	e.phase = PhaseAwaitingFirstPoint
	bus := e.field.Bus()
	e.clickSub = event.Subscribe(bus, field.TopicClick, e.onClick)
	e.hoverSub = event.Subscribe(bus, field.TopicHover, e.onHover)
	return nil
}

// Cancel disarms the current tool without drawing
func (e *Editor) Cancel() {
	e.clickSub.Cancel()
	e.hoverSub.Cancel()
	e.clickSub = event.Subscription{}
	e.hoverSub = event.Subscription{}
	e.tool = ToolNone
	e.phase = PhaseIdle
	e.preview = nil
}

func (e *Editor) onClick(c field.Cell) {
	switch e.phase {
	case PhaseAwaitingFirstPoint:
		e.first = c.Point()
		e.second = e.first
		if e.tool.Points() == 1 {
			e.phase = PhaseReady
		} else {
			e.phase = PhaseAwaitingSecondPoint
			e.preview = e.tool.Outline(e.first, e.first)
		}
	case PhaseAwaitingSecondPoint:
		e.second = c.Point()
		e.phase = PhaseReady
	default:
		return
	}

	if e.phase == PhaseReady {
		e.commit()
	}
}

func (e *Editor) onHover(c field.Cell) {
	if e.phase == PhaseAwaitingSecondPoint {
		e.preview = e.tool.Outline(e.first, c.Point())
	}
}

func (e *Editor) commit() {
	tool := e.tool
	from, to := e.first, e.second
	brush := e.brush
	e.Cancel()

	if tool.UsesBrush() && brush == "" {
		log.Printf("[editor] %s %v-%v skipped: empty brush", tool, from, to)
		e.lastErr = nil
		return
	}

	cells, err := e.apply(tool, from, to, brush)
	e.lastErr = err
	if err != nil {
		log.Printf("[editor] %s %v-%v failed: %v", tool, from, to, err)
		return
	}

	e.last = &Stroke{Tool: tool, From: from, To: to, Brush: brush, Cells: cells}
	if e.feedback != nil {
		e.feedback.Paint()
	}
}

func (e *Editor) apply(tool Tool, from, to core.Point, brush string) ([]field.Cell, error) {
	switch tool {
	case ToolDot:
		return e.drawer.Point(from, brush)
	case ToolLine:
		return e.drawer.Line(from, to, brush)
	case ToolSquare:
		return e.drawer.Square(from, to, brush)
	case ToolFilledSquare:
		return e.drawer.FilledSquare(from, to, brush)
	case ToolDialogBox:
		return e.drawer.DialogBox(from, to)
	case ToolWall:
		cells, err := e.drawer.Line(from, to, brush)
		if err != nil {
			return cells, err
		}
		return cells, e.drawer.Walls(cells, true)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownTool, tool)
}
