// Package core holds the value types shared by every layer of the field:
// coordinates, cardinal directions and axis-aligned rectangles.
package core

import "fmt"

// Point is a field coordinate. The origin (0,0) is the center of the field,
// x grows east and y grows north.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Step returns the neighbor of p one cell in direction d
func (p Point) Step(d Direction) Point {
	return p.Add(d.Delta())
}

// String renders p as "(x,y)"
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Positioner is implemented by anything that knows its field coordinate
type Positioner interface {
	Point() Point
}

// Point makes Point a Positioner
func (p Point) Point() Point {
	return p
}
