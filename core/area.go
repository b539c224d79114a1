package core

// Area is a closed rectangle of field coordinates
// Min is the corner with the smallest x and y, Max the largest
type Area struct {
	Min, Max Point
}

// Normalize builds the Area spanned by two arbitrary corners,
// swapping x and y independently when they are inverted
func Normalize(p1, p2 Point) Area {
	if p2.X < p1.X {
		p1.X, p2.X = p2.X, p1.X
	}
	if p2.Y < p1.Y {
		p1.Y, p2.Y = p2.Y, p1.Y
	}
	return Area{Min: p1, Max: p2}
}

// Width is the number of columns covered, minimum 1
func (a Area) Width() int {
	return a.Max.X - a.Min.X + 1
}

// Height is the number of rows covered, minimum 1
func (a Area) Height() int {
	return a.Max.Y - a.Min.Y + 1
}

// Contains reports whether p lies inside the closed rectangle
func (a Area) Contains(p Point) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Corners returns the four corners clockwise from (Min.X, Min.Y)
func (a Area) Corners() [4]Point {
	return [4]Point{
		a.Min,
		{X: a.Max.X, Y: a.Min.Y},
		a.Max,
		{X: a.Min.X, Y: a.Max.Y},
	}
}
