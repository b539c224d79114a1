package field

import "github.com/lixenwraith/asciifield/core"

// Cell is one addressable unit of a Field. Values handed out by a Field are
// copies; mutate through the Field
type Cell struct {
	X, Y       int
	Content    rune
	Collidable bool // blocks the player
}

// Point returns the cell coordinate
func (c Cell) Point() core.Point {
	return core.Point{X: c.X, Y: c.Y}
}

// Blank reports whether the cell shows nothing
func (c Cell) Blank() bool {
	return c.Content == ' ' || c.Content == 0
}
