// Package draw paints characters onto a Field along shape selections
package draw

import (
	"fmt"
	"unicode/utf8"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/field"
	"github.com/lixenwraith/asciifield/shape"
)

// Drawer writes through one Field
type Drawer struct {
	field *field.Field
}

// New binds a Drawer to f
func New(f *field.Field) *Drawer {
	return &Drawer{field: f}
}

// Field returns the target field
func (d *Drawer) Field() *field.Field {
	return d.field
}

// Point paints a single cell
func (d *Drawer) Point(p core.Point, ch string) ([]field.Cell, error) {
	return d.Apply(shape.Point(p), ch)
}

// Line paints the rasterized segment p1-p2
func (d *Drawer) Line(p1, p2 core.Point, ch string) ([]field.Cell, error) {
	return d.Apply(shape.Line(p1, p2), ch)
}

// Square paints the outline of the rectangle spanned by p1 and p2
func (d *Drawer) Square(p1, p2 core.Point, ch string) ([]field.Cell, error) {
	return d.Apply(shape.SquareOutline(p1, p2), ch)
}

// FilledSquare paints every cell of the rectangle spanned by p1 and p2
func (d *Drawer) FilledSquare(p1, p2 core.Point, ch string) ([]field.Cell, error) {
	return d.Apply(shape.FilledRectangle(p1, p2), ch)
}

// Apply writes ch to every point and returns the touched cells in point order.
// Points and content are validated first, so a failing edit writes nothing
func (d *Drawer) Apply(points []core.Point, ch string) ([]field.Cell, error) {
	if ch == "" {
		return nil, fmt.Errorf("draw: %w: empty character", field.ErrInvalidContent)
	}
	if err := d.check(points); err != nil {
		return nil, err
	}

	cells := make([]field.Cell, 0, len(points))
	for _, p := range points {
		if err := d.field.SetContent(ch, p); err != nil {
			return cells, fmt.Errorf("draw: %w", err)
		}
		c, _ := d.field.Cell(p)
		cells = append(cells, c)
	}
	return cells, nil
}

// DialogBox frames the rectangle spanned by p1 and p2 with box-drawing runes.
// The top edge is the north side, as rendered
func (d *Drawer) DialogBox(p1, p2 core.Point) ([]field.Cell, error) {
	a := core.Normalize(p1, p2)
	topLeft := core.Pt(a.Min.X, a.Max.Y)
	topRight := a.Max
	bottomLeft := a.Min
	bottomRight := core.Pt(a.Max.X, a.Min.Y)

	if err := d.check([]core.Point{a.Min, a.Max}); err != nil {
		return nil, err
	}

	strokes := []struct {
		points []core.Point
		r      rune
	}{
		{shape.Line(topLeft, topRight), constants.BoxHorizontal},
		{shape.Line(bottomLeft, bottomRight), constants.BoxHorizontal},
		{shape.Line(topLeft, bottomLeft), constants.BoxVertical},
		{shape.Line(topRight, bottomRight), constants.BoxVertical},
		{shape.Point(topLeft), constants.BoxTopLeft},
		{shape.Point(topRight), constants.BoxTopRight},
		{shape.Point(bottomLeft), constants.BoxBottomLeft},
		{shape.Point(bottomRight), constants.BoxBottomRight},
	}

	var cells []field.Cell
	for _, s := range strokes {
		touched, err := d.Apply(s.points, string(s.r))
		cells = append(cells, touched...)
		if err != nil {
			return cells, err
		}
	}
	return cells, nil
}

// Walls sets or clears the collision flag on cells, typically the result of a draw call.
// Duplicate cells (square corners) are flagged once
func (d *Drawer) Walls(cells []field.Cell, collidable bool) error {
	seen := mapset.New[core.Point]()
	for _, c := range cells {
		p := c.Point()
		if seen.Has(p) {
			continue
		}
		seen.Put(p)
		if err := d.field.SetCollidable(p, collidable); err != nil {
			return fmt.Errorf("draw: %w", err)
		}
	}
	return nil
}

func (d *Drawer) check(points []core.Point) error {
	for _, p := range points {
		if !d.field.Contains(p) {
			return fmt.Errorf("draw: %w: %v", field.ErrOutOfRange, p)
		}
	}
	return nil
}

// Rune is a convenience for callers holding a single rune brush
func Rune(r rune) string {
	if !utf8.ValidRune(r) {
		return ""
	}
	return string(r)
}
