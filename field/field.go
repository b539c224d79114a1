// Package field is the interactive character grid: a centered grid of Cells,
// the only mutation path for their content, and a per-field event bus that
// carries click, hover and change notifications.
package field

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/event"
	"github.com/lixenwraith/asciifield/grid"
)

var (
	// ErrOutOfRange is returned for coordinates outside the field
	ErrOutOfRange = grid.ErrOutOfRange

	// ErrInvalidPosition is returned when a position argument carries no coordinate
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidContent is returned when content has no code point to write
	ErrInvalidContent = errors.New("invalid content")
)

// Topics published on Field.Bus. Payloads are Cell copies taken after the event
var (
	TopicClick  = event.NewTopic[Cell]("click")
	TopicHover  = event.NewTopic[Cell]("hover")
	TopicChange = event.NewTopic[Cell]("change")
)

// Field owns the cells of one UI surface
type Field struct {
	columns int
	rows    int
	cells   *grid.Grid[Cell]
	bus     *event.Bus
}

// New builds a field with every cell materialized blank.
// Odd sizes round up to even so (0,0) is the exact center
func New(columns, rows int) (*Field, error) {
	f := &Field{columns: columns, rows: rows}
	if err := f.Reset(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reset rebuilds the grid and the bus. State is replaced, not merged:
// all content is blank again and every subscription is dropped
func (f *Field) Reset() error {
	cells, err := grid.New[Cell](f.columns, f.rows)
	if err != nil {
		return fmt.Errorf("field: %w", err)
	}
	hw, hh := cells.Extent()
	for y := -hh; y <= hh; y++ {
		for x := -hw; x <= hw; x++ {
			cells.Set(x, y, Cell{X: x, Y: y, Content: constants.BlankRune})
		}
	}

	f.columns = cells.Width()
	f.rows = cells.Height()
	f.cells = cells
	f.bus = event.NewBus()
	return nil
}

// Columns returns the even width; x spans [-Columns/2, Columns/2]
func (f *Field) Columns() int {
	return f.columns
}

// Rows returns the even height; y spans [-Rows/2, Rows/2]
func (f *Field) Rows() int {
	return f.rows
}

// Extent returns the largest addressable |x| and |y|
func (f *Field) Extent() (int, int) {
	return f.cells.Extent()
}

// Contains reports whether p is a cell of the field
func (f *Field) Contains(p core.Point) bool {
	return f.cells.Contains(p.X, p.Y)
}

// Bus returns the field's event bus
func (f *Field) Bus() *event.Bus {
	return f.bus
}

// Cell returns a copy of the cell at p
func (f *Field) Cell(p core.Point) (Cell, error) {
	return f.cells.Get(p.X, p.Y)
}

// SetContent writes the first code point of s into the cell at p
func (f *Field) SetContent(s string, p core.Point) error {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return fmt.Errorf("%w: empty string at %v", ErrInvalidContent, p)
	}
	return f.SetRune(r, p)
}

// SetContentAt is SetContent for any position-bearing value accepted by PositionOf
func (f *Field) SetContentAt(s string, pos any) error {
	p, err := PositionOf(pos)
	if err != nil {
		return err
	}
	return f.SetContent(s, p)
}

// SetRune writes r into the cell at p
func (f *Field) SetRune(r rune, p core.Point) error {
	return f.update(p, func(c *Cell) { c.Content = r })
}

// SetCollidable flags the cell at p as blocking the player or clears the flag
func (f *Field) SetCollidable(p core.Point, collidable bool) error {
	return f.update(p, func(c *Cell) { c.Collidable = collidable })
}

func (f *Field) update(p core.Point, mutate func(c *Cell)) error {
	c, err := f.cells.Get(p.X, p.Y)
	if err != nil {
		return err
	}
	mutate(&c)
	f.cells.Set(p.X, p.Y, c)
	// Handler failures are logged by the bus; the write itself succeeded
	_ = event.Publish(f.bus, TopicChange, c)
	return nil
}

// NotifyClick is called by the rendering surface when the cell at p is activated
func (f *Field) NotifyClick(p core.Point) error {
	c, err := f.Cell(p)
	if err != nil {
		return err
	}
	return event.Publish(f.bus, TopicClick, c)
}

// NotifyHover is called by the rendering surface when the pointer enters the cell at p
func (f *Field) NotifyHover(p core.Point) error {
	c, err := f.Cell(p)
	if err != nil {
		return err
	}
	return event.Publish(f.bus, TopicHover, c)
}

// Each visits every cell in row-major order from the south-west corner.
// Returning false stops the walk
func (f *Field) Each(fn func(c Cell) bool) {
	f.cells.Each(func(_, _ int, c Cell) bool {
		return fn(c)
	})
}

// Clear blanks every cell and drops every collision flag, keeping subscriptions
func (f *Field) Clear() {
	f.Each(func(c Cell) bool {
		if c.Content != constants.BlankRune || c.Collidable {
			f.update(c.Point(), func(c *Cell) {
				c.Content = constants.BlankRune
				c.Collidable = false
			})
		}
		return true
	})
}

// Lines renders the field north row first, one string per row
func (f *Field) Lines() []string {
	hw, hh := f.Extent()
	lines := make([]string, 0, f.rows+1)
	var sb strings.Builder
	for y := hh; y >= -hh; y-- {
		sb.Reset()
		for x := -hw; x <= hw; x++ {
			c, _ := f.cells.Get(x, y)
			sb.WriteRune(c.Content)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// PositionOf extracts a coordinate from a core.Point, a Cell, or any core.Positioner
func PositionOf(pos any) (core.Point, error) {
	switch v := pos.(type) {
	case core.Point:
		return v, nil
	case *core.Point:
		if v != nil {
			return *v, nil
		}
	case Cell:
		return v.Point(), nil
	case *Cell:
		if v != nil {
			return v.Point(), nil
		}
	case core.Positioner:
		if v != nil {
			return v.Point(), nil
		}
	}
	return core.Point{}, fmt.Errorf("%w: %T", ErrInvalidPosition, pos)
}
