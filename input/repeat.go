package input

import (
	"time"

	"github.com/lixenwraith/asciifield/core"
)

// Repeat synthesizes key releases for terminals that only report presses.
// A held key arrives as a stream of auto-repeated presses; a direction is
// released once no press has arrived within the timeout
type Repeat struct {
	timeout  time.Duration
	lastSeen [len(core.Directions) + 1]time.Time // indexed by Direction, zero = not held
}

// NewRepeat creates a release synthesizer. The timeout must exceed the
// terminal's initial auto-repeat delay
func NewRepeat(timeout time.Duration) *Repeat {
	return &Repeat{timeout: timeout}
}

// Press records a press of d at now. Returns true on the first press of a hold
func (r *Repeat) Press(d core.Direction, now time.Time) bool {
	if d == core.DirNone {
		return false
	}
	first := r.lastSeen[d].IsZero()
	r.lastSeen[d] = now
	return first
}

// Held reports whether d is currently held
func (r *Repeat) Held(d core.Direction) bool {
	return !r.lastSeen[d].IsZero()
}

// Sweep releases every direction quiet for longer than the timeout, in N, E, S, W order
func (r *Repeat) Sweep(now time.Time) []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions {
		last := r.lastSeen[d]
		if last.IsZero() || now.Sub(last) < r.timeout {
			continue
		}
		r.lastSeen[d] = time.Time{}
		released = append(released, d)
	}
	return released
}

// ReleaseAll releases every held direction, e.g. on focus loss
func (r *Repeat) ReleaseAll() []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions {
		if r.Held(d) {
			r.lastSeen[d] = time.Time{}
			released = append(released, d)
		}
	}
	return released
}
