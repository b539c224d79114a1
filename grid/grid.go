// Package grid provides a fixed-size 2-D store addressed by signed
// coordinates centered on the origin.
//
// A Grid of width W and height H (both rounded up to even) accepts
// x in [-W/2, W/2] and y in [-H/2, H/2], so it holds (W+1)*(H+1) slots
// with (0,0) exactly in the middle. Mapping a coordinate to storage is a
// constant-time shift by the half extent.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for coordinates outside the centered extent
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidDimension is returned by New for non-positive sizes
	ErrInvalidDimension = errors.New("invalid grid dimension")
)

// Grid is a centered coordinate store. The zero value is not usable; call New
type Grid[T any] struct {
	width  int // even
	height int // even
	halfW  int
	halfH  int
	stride int // width + 1
	slots  []T
}

// New allocates a grid with every slot set to the zero value of T.
// Odd sizes are rounded up to the next even value
func New[T any](width, height int) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	width += width & 1
	height += height & 1

	return &Grid[T]{
		width:  width,
		height: height,
		halfW:  width / 2,
		halfH:  height / 2,
		stride: width + 1,
		slots:  make([]T, (width+1)*(height+1)),
	}, nil
}

// Width returns the even width; the grid spans Width()+1 columns
func (g *Grid[T]) Width() int {
	return g.width
}

// Height returns the even height; the grid spans Height()+1 rows
func (g *Grid[T]) Height() int {
	return g.height
}

// Extent returns the largest addressable |x| and |y|
func (g *Grid[T]) Extent() (int, int) {
	return g.halfW, g.halfH
}

// Len returns the number of addressable slots
func (g *Grid[T]) Len() int {
	return len(g.slots)
}

// Contains reports whether (x, y) is addressable
func (g *Grid[T]) Contains(x, y int) bool {
	return x >= -g.halfW && x <= g.halfW && y >= -g.halfH && y <= g.halfH
}

func (g *Grid[T]) index(x, y int) (int, error) {
	if !g.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside [-%d,%d]x[-%d,%d]",
			ErrOutOfRange, x, y, g.halfW, g.halfW, g.halfH, g.halfH)
	}
	return (y+g.halfH)*g.stride + (x + g.halfW), nil
}

// Get returns the value stored at (x, y)
func (g *Grid[T]) Get(x, y int) (T, error) {
	i, err := g.index(x, y)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.slots[i], nil
}

// Set stores v at (x, y)
func (g *Grid[T]) Set(x, y int, v T) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.slots[i] = v
	return nil
}

// Each visits every coordinate in row-major order, y ascending outer and x ascending inner.
// Returning false from fn stops the walk
func (g *Grid[T]) Each(fn func(x, y int, v T) bool) {
	for i, v := range g.slots {
		x := i%g.stride - g.halfW
		y := i/g.stride - g.halfH
		if !fn(x, y, v) {
			return
		}
	}
}
