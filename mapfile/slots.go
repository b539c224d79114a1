package mapfile

import (
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/lixenwraith/asciifield/constants"
)

var ErrNoSlot = errors.New("mapfile: slot not found")

// Slots stores documents in the per-user application data directory.
// A nil manager degrades to memory-only mode where saves are dropped
type Slots struct {
	manager *gdata.Manager
	object  string
}

// OpenSlots opens the data directory for appName. Failure is not fatal;
// the returned Slots runs without persistence
func OpenSlots(appName string) *Slots {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[mapfile] Warning: failed to open data directory for %q: %v (saves disabled)", appName, err)
		m = nil
	}
	return NewSlots(m)
}

// NewSlots wraps an existing manager, which may be nil
func NewSlots(m *gdata.Manager) *Slots {
	return &Slots{manager: m, object: constants.SlotObject}
}

// Persistent reports whether saves reach disk
func (s *Slots) Persistent() bool {
	return s.manager != nil
}

// Save stores d under name
func (s *Slots) Save(name string, d *Document) error {
	if s.manager == nil {
		log.Printf("[mapfile] slot %q not saved: no data directory", name)
		return nil
	}
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := s.manager.SaveObjectProp(s.object, name, data); err != nil {
		return fmt.Errorf("mapfile: save slot %q: %w", name, err)
	}
	return nil
}

// Exists reports whether name has been saved
func (s *Slots) Exists(name string) bool {
	return s.manager != nil && s.manager.ObjectPropExists(s.object, name)
}

// Load reads the document saved under name
func (s *Slots) Load(name string) (*Document, error) {
	if !s.Exists(name) {
		return nil, fmt.Errorf("%w: %q", ErrNoSlot, name)
	}
	data, err := s.manager.LoadObjectProp(s.object, name)
	if err != nil {
		return nil, fmt.Errorf("mapfile: load slot %q: %w", name, err)
	}
	return Decode(data)
}
