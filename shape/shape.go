// Package shape rasterizes geometric selections into ordered field coordinates.
//
// All functions are pure. Results keep draw order and are not deduplicated;
// a square outline lists each corner twice, once per adjoining edge.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/asciifield/core"
)

// ErrNonInteger is returned by FromFloat for coordinates that are not representable ints
var ErrNonInteger = errors.New("non-integer coordinate")

// FromFloat converts float coordinates into a Point, rejecting fractions instead of rounding.
// Values outside the int range are rejected as well
func FromFloat(x, y float64) (core.Point, error) {
	if !isInt(x) || !isInt(y) {
		return core.Point{}, fmt.Errorf("%w: (%v,%v)", ErrNonInteger, x, y)
	}
	return core.Point{X: int(x), Y: int(y)}, nil
}

// float64(math.MinInt) is exact; the upper bound is its negation, exclusive
func isInt(v float64) bool {
	lo := float64(math.MinInt)
	return v == math.Trunc(v) && v >= lo && v < -lo
}

// Point selects a single cell
func Point(p core.Point) []core.Point {
	return []core.Point{p}
}

// Line selects an 8-connected line from p1 to p2 using Bresenham's error accumulation.
// Both endpoints are included exactly once
func Line(p1, p2 core.Point) []core.Point {
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)
	sx, sy := 1, 1
	if p2.X < p1.X {
		sx = -1
	}
	if p2.Y < p1.Y {
		sy = -1
	}

	out := make([]core.Point, 0, max(dx, dy)+1)
	err := dx - dy
	cur := p1
	for cur != p2 {
		out = append(out, cur)
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			cur.X += sx
		}
		if e2 < dx {
			err += dx
			cur.Y += sy
		}
	}
	return append(out, p2)
}

// SquareOutline selects the border of the rectangle spanned by p1 and p2:
// top, right, bottom, left edges, clockwise from the top-left corner.
// A degenerate square is the single point
func SquareOutline(p1, p2 core.Point) []core.Point {
	if p1 == p2 {
		return Point(p1)
	}
	a := core.Normalize(p1, p2)
	c := a.Corners()
	tl, tr, br, bl := c[0], c[1], c[2], c[3]

	out := make([]core.Point, 0, 2*(a.Width()+a.Height())+4)
	out = append(out, Line(tl, tr)...)
	out = append(out, Line(tr, br)...)
	out = append(out, Line(br, bl)...)
	out = append(out, Line(bl, tl)...)
	return out
}

// FilledRectangle selects every cell of the closed rectangle spanned by p1 and p2
// in row-major order, y outer and x inner, both ascending
func FilledRectangle(p1, p2 core.Point) []core.Point {
	a := core.Normalize(p1, p2)
	out := make([]core.Point, 0, a.Width()*a.Height())
	for y := a.Min.Y; y <= a.Max.Y; y++ {
		for x := a.Min.X; x <= a.Max.X; x++ {
			out = append(out, core.Point{X: x, Y: y})
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
