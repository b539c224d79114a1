package mapfile

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/asciifield/constants"
)

// draftDocument is the older save layout: the full cell matrix row by row,
// an unused collision grid and the player flags without a position
type draftDocument struct {
	Matrix [][]draftCell `yaml:"matrix"`
	Player *draftPlayer  `yaml:"player"`
}

type draftCell struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Char string `yaml:"char"`
}

type draftPlayer struct {
	MovementAllow   bool        `yaml:"movementAllow"`
	VisibilityAllow bool        `yaml:"visibilityAllow"`
	Spawn           *draftSpawn `yaml:"spawn"`
}

type draftSpawn struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// decodeDraft converts the older layout. ok is false when data carries no matrix.
// The field size is the smallest centered field holding every matrix cell
func decodeDraft(data []byte) (d *Document, ok bool, err error) {
	var draft draftDocument
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return nil, false, fmt.Errorf("mapfile: decode draft: %w", err)
	}
	if len(draft.Matrix) == 0 {
		return nil, false, nil
	}

	hw, hh := 1, 1
	d = &Document{}
	for _, row := range draft.Matrix {
		for _, c := range row {
			hw = max(hw, abs(c.X))
			hh = max(hh, abs(c.Y))
			r, _ := utf8.DecodeRuneInString(c.Char)
			if c.Char == "" || r == constants.BlankRune {
				continue
			}
			d.Cells = append(d.Cells, Cell{X: c.X, Y: c.Y, Char: string(r)})
		}
	}
	d.Columns, d.Rows = 2*hw, 2*hh

	if p := draft.Player; p != nil {
		d.Player = &Player{
			Movement:     p.MovementAllow,
			Visible:      p.VisibilityAllow,
			keepPosition: p.Spawn == nil,
		}
		if p.Spawn != nil {
			d.Player.X, d.Player.Y = p.Spawn.X, p.Spawn.Y
		}
	}
	return d, true, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
