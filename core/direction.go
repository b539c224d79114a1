package core

// Direction is one of the four cardinal movement directions
type Direction uint8

const (
	DirNone Direction = iota
	North
	East
	South
	West
)

// Directions lists the cardinal directions in the order moves are applied within a tick
var Directions = [...]Direction{North, East, South, West}

// Delta returns the unit offset for d. North is +y: the field is drawn
// with y flipped relative to screen rows
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{X: 0, Y: 1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: -1}
	case West:
		return Point{X: -1, Y: 0}
	}
	return Point{}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "none"
}

// ParseDirection maps a direction name back to its value
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return DirNone, false
}
