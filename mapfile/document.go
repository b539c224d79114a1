// Package mapfile captures and restores field contents as YAML map documents
package mapfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/field"
	"github.com/lixenwraith/asciifield/player"
)

var (
	ErrSizeMismatch = errors.New("mapfile: document size does not match field")
	ErrInvalidCell  = errors.New("mapfile: invalid cell")
)

// Document is a saved field: every non-blank or collidable cell plus the player state
type Document struct {
	ID      uuid.UUID `yaml:"id" json:"id"`
	Name    string    `yaml:"name" json:"name"`
	Columns int       `yaml:"columns" json:"columns"`
	Rows    int       `yaml:"rows" json:"rows"`
	Cells   []Cell    `yaml:"cells" json:"cells"`
	Player  *Player   `yaml:"player,omitempty" json:"player,omitempty"`
}

// Cell is one stored cell. Char holds a single character
type Cell struct {
	X          int    `yaml:"x" json:"x"`
	Y          int    `yaml:"y" json:"y"`
	Char       string `yaml:"char" json:"char"`
	Collidable bool   `yaml:"collidable,omitempty" json:"collidable,omitempty"`
}

// Player is the stored agent state
type Player struct {
	X        int  `yaml:"x" json:"x"`
	Y        int  `yaml:"y" json:"y"`
	Movement bool `yaml:"movement" json:"movement"`
	Visible  bool `yaml:"visible" json:"visible"`

	keepPosition bool // draft saves store no position; the agent stays put
}

// Capture snapshots f under a fresh ID. The agent may be nil.
// The cell under a visible agent is stored with its background, not the token
func Capture(name string, f *field.Field, agent *player.Agent) *Document {
	doc := &Document{
		ID:      uuid.New(),
		Name:    name,
		Columns: f.Columns(),
		Rows:    f.Rows(),
	}

	var under core.Point
	covered := false
	if agent != nil {
		under = agent.Position()
		covered = agent.Visible()
		doc.Player = &Player{
			X:        under.X,
			Y:        under.Y,
			Movement: agent.MovementEnabled(),
			Visible:  agent.Visible(),
		}
	}

	f.Each(func(c field.Cell) bool {
		content := c.Content
		if covered && c.Point() == under {
			content = agent.Background()
		}
		if content == constants.BlankRune && !c.Collidable {
			return true
		}
		doc.Cells = append(doc.Cells, Cell{
			X:          c.X,
			Y:          c.Y,
			Char:       string(content),
			Collidable: c.Collidable,
		})
		return true
	})
	return doc
}

// Validate checks the document against a field of its own dimensions
func (d *Document) Validate() error {
	if d.Columns <= 0 || d.Rows <= 0 {
		return fmt.Errorf("mapfile: invalid size %dx%d", d.Columns, d.Rows)
	}
	hw := (d.Columns + d.Columns&1) / 2
	hh := (d.Rows + d.Rows&1) / 2
	inside := func(x, y int) bool {
		return x >= -hw && x <= hw && y >= -hh && y <= hh
	}

	for i, c := range d.Cells {
		if !inside(c.X, c.Y) {
			return fmt.Errorf("%w: #%d at (%d,%d) outside field", ErrInvalidCell, i, c.X, c.Y)
		}
		if c.Char == "" {
			return fmt.Errorf("%w: #%d at (%d,%d) has no character", ErrInvalidCell, i, c.X, c.Y)
		}
	}
	if d.Player != nil && !inside(d.Player.X, d.Player.Y) {
		return fmt.Errorf("mapfile: player (%d,%d) outside field", d.Player.X, d.Player.Y)
	}
	return nil
}

// Apply replaces the contents of f with d. A nil agent or a document
// without player state leaves the agent where it is
func Apply(d *Document, f *field.Field, agent *player.Agent) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if cols, rows := evenUp(d.Columns), evenUp(d.Rows); cols != f.Columns() || rows != f.Rows() {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, d.Columns, d.Rows, f.Columns(), f.Rows())
	}

	// Lift the agent off so its token never lands in the restored layout
	var movement, visible bool
	if agent != nil {
		movement, visible = agent.MovementEnabled(), agent.Visible()
		if err := agent.Hide(); err != nil {
			return err
		}
	}

	f.Clear()
	for _, c := range d.Cells {
		p := core.Pt(c.X, c.Y)
		if err := f.SetContent(c.Char, p); err != nil {
			return fmt.Errorf("mapfile: cell (%d,%d): %w", c.X, c.Y, err)
		}
		if c.Collidable {
			if err := f.SetCollidable(p, true); err != nil {
				return fmt.Errorf("mapfile: cell (%d,%d): %w", c.X, c.Y, err)
			}
		}
	}

	if agent == nil {
		return nil
	}
	at := agent.Position()
	if d.Player != nil {
		if !d.Player.keepPosition {
			at = core.Pt(d.Player.X, d.Player.Y)
		}
		movement, visible = d.Player.Movement, d.Player.Visible
	}
	if err := agent.Place(at); err != nil {
		return err
	}
	if visible {
		if err := agent.Show(); err != nil {
			return err
		}
	}
	// A hidden agent stays frozen
	agent.SetMovementEnabled(movement && visible)
	return nil
}

func evenUp(n int) int {
	return n + n&1
}

// Encode renders d as YAML
func Encode(d *Document) ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("mapfile: encode: %w", err)
	}
	return data, nil
}

// Decode parses a YAML or JSON document. A document without a size is
// retried as a draft save holding the full cell matrix
func Decode(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("mapfile: decode: %w", err)
	}
	if d.Columns == 0 && d.Rows == 0 {
		draft, ok, err := decodeDraft(data)
		if err != nil {
			return nil, err
		}
		if ok {
			d = *draft
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// WriteFile saves d to path
func WriteFile(path string, d *Document) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("mapfile: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a document from path
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapfile: read %s: %w", path, err)
	}
	return Decode(data)
}
