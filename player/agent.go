// Package player moves a single token across a Field under keyboard control.
//
// The agent is a two-state machine. Idle: no direction held. Moving: at least
// one direction held and the repeat timer running; every tick attempts one step
// in each held direction, north, east, south, west in that order.
package player

import (
	"fmt"
	"log"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/event"
	"github.com/lixenwraith/asciifield/field"
)

// State of the movement machine
type State uint8

const (
	StateIdle State = iota
	StateMoving
)

func (s State) String() string {
	if s == StateMoving {
		return "moving"
	}
	return "idle"
}

// Outcome of a single move attempt
type Outcome uint8

const (
	OutcomeMoved Outcome = iota
	OutcomeBlocked
	OutcomeOutOfBounds
	OutcomeDisabled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeOutOfBounds:
		return "out of bounds"
	case OutcomeDisabled:
		return "disabled"
	}
	return "unknown"
}

// Feedback is notified of rejected moves, e.g. to play a sound
type Feedback interface {
	Bump()
	Boundary()
}

// Options configures an Agent. Zero fields take the defaults from constants
type Options struct {
	Token          rune
	RepeatInterval time.Duration

	// TopExclusive rejects moves onto the northmost row (y == rows/2);
	// by default the movement bound equals the grid extent
	TopExclusive bool

	// Focused gates KeyDown; nil means always focused
	Focused func() bool

	// NewTicker overrides the repeat timer, for tests
	NewTicker func(time.Duration) Ticker
}

// Agent is the player token bound to one Field. Bind exactly one Agent to the main field
type Agent struct {
	field *field.Field

	position   core.Point
	background rune // content of the occupied cell before the player arrived
	movement   bool
	visible    bool
	token      rune
	placed     bool
	writing    bool // set while the agent itself writes, so its own changes are not adopted
	changes    event.Subscription

	topExclusive bool
	focused      func() bool
	feedback     Feedback

	active    mapset.Set[core.Direction]
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	ticker    Ticker
}

// New creates an agent at the origin, visible and free to move, and draws its token
func New(f *field.Field, opts Options) (*Agent, error) {
	a := &Agent{
		field:        f,
		background:   constants.BlankRune,
		movement:     true,
		visible:      true,
		token:        opts.Token,
		topExclusive: opts.TopExclusive,
		focused:      opts.Focused,
		active:       mapset.New[core.Direction](),
		interval:     opts.RepeatInterval,
		newTicker:    opts.NewTicker,
	}
	if a.token == 0 {
		a.token = constants.PlayerToken
	}
	if a.interval <= 0 {
		a.interval = constants.RepeatInterval
	}
	if a.newTicker == nil {
		a.newTicker = newTimeTicker
	}

	if err := a.Place(core.Point{}); err != nil {
		return nil, err
	}
	a.changes = event.Subscribe(f.Bus(), field.TopicChange, a.adopt)
	return a, nil
}

// Close drops the field subscription. The token stays where it is
func (a *Agent) Close() {
	a.changes.Cancel()
}

// adopt takes a foreign write to the occupied cell as the new background
// and draws the token back over it
func (a *Agent) adopt(c field.Cell) {
	if a.writing || !a.visible || c.Point() != a.position || c.Content == a.token {
		return
	}
	a.background = c.Content
	if err := a.write(a.token, a.position); err != nil {
		log.Printf("[player] redraw at %v: %v", a.position, err)
	}
}

func (a *Agent) write(r rune, p core.Point) error {
	a.writing = true
	defer func() { a.writing = false }()
	return a.field.SetRune(r, p)
}

// SetFeedback installs the rejected-move observer
func (a *Agent) SetFeedback(fb Feedback) {
	a.feedback = fb
}

// Position returns the occupied cell
func (a *Agent) Position() core.Point {
	return a.position
}

// Background returns the content the occupied cell had before the player entered
func (a *Agent) Background() rune {
	return a.background
}

// Token returns the rendered player character
func (a *Agent) Token() rune {
	return a.token
}

// MovementEnabled reports whether Move may change the position
func (a *Agent) MovementEnabled() bool {
	return a.movement
}

// SetMovementEnabled freezes or releases the agent without hiding it
func (a *Agent) SetMovementEnabled(enabled bool) {
	a.movement = enabled
}

// Visible reports whether the token is drawn
func (a *Agent) Visible() bool {
	return a.visible
}

// State returns Moving while the repeat timer runs
func (a *Agent) State() State {
	if a.ticker != nil {
		return StateMoving
	}
	return StateIdle
}

// Active reports whether d is currently held
func (a *Agent) Active(d core.Direction) bool {
	return a.active.Has(d)
}

// Place puts the agent on p, restoring the cell it leaves
func (a *Agent) Place(p core.Point) error {
	if !a.field.Contains(p) {
		return fmt.Errorf("player: place %v: %w", p, field.ErrOutOfRange)
	}
	if a.placed && a.visible {
		if err := a.restore(); err != nil {
			return err
		}
	}
	target, err := a.field.Cell(p)
	if err != nil {
		return fmt.Errorf("player: place: %w", err)
	}
	a.position = p
	a.background = target.Content
	a.placed = true
	if a.visible {
		return a.write(a.token, p)
	}
	return nil
}

// Move attempts one step in d. Rejections are outcomes, not errors;
// an error means the field itself failed. A hidden agent never moves,
// whatever its movement flag says
func (a *Agent) Move(d core.Direction) (Outcome, error) {
	if !a.movement || !a.visible {
		return OutcomeDisabled, nil
	}

	to := a.position.Step(d)
	if !a.inBounds(to) {
		log.Printf("[player] %s from %v to %v: out of bounds", d, a.position, to)
		if a.feedback != nil {
			a.feedback.Boundary()
		}
		return OutcomeOutOfBounds, nil
	}

	target, err := a.field.Cell(to)
	if err != nil {
		return OutcomeOutOfBounds, err
	}
	if target.Collidable {
		if a.feedback != nil {
			a.feedback.Bump()
		}
		return OutcomeBlocked, nil
	}

	if err := a.restore(); err != nil {
		return OutcomeMoved, err
	}
	a.background = target.Content
	if err := a.write(a.token, to); err != nil {
		return OutcomeMoved, err
	}
	a.position = to
	return OutcomeMoved, nil
}

func (a *Agent) inBounds(p core.Point) bool {
	if !a.field.Contains(p) {
		return false
	}
	_, hh := a.field.Extent()
	if a.topExclusive && p.Y >= hh {
		return false
	}
	return true
}

func (a *Agent) restore() error {
	if err := a.write(a.background, a.position); err != nil {
		return fmt.Errorf("player: restore %v: %w", a.position, err)
	}
	return nil
}

// KeyDown marks d held and starts the repeat timer if needed.
// Ignored while the field does not have focus
func (a *Agent) KeyDown(d core.Direction) {
	if d == core.DirNone {
		return
	}
	if a.focused != nil && !a.focused() {
		return
	}
	a.active.Put(d)
	if a.ticker == nil {
		a.ticker = a.newTicker(a.interval)
	}
}

// KeyUp releases d; releasing the last held direction stops the timer
func (a *Agent) KeyUp(d core.Direction) {
	a.active.Remove(d)
	if a.active.Size() == 0 {
		a.stopTicker()
	}
}

// Stop releases every direction and returns to Idle
func (a *Agent) Stop() {
	for _, d := range core.Directions {
		a.active.Remove(d)
	}
	a.stopTicker()
}

func (a *Agent) stopTicker() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
}

// Ticks is the repeat timer channel, nil while idle so a select on it blocks
func (a *Agent) Ticks() <-chan time.Time {
	if a.ticker == nil {
		return nil
	}
	return a.ticker.C()
}

// Tick moves once in every held direction. Returns the first field error
func (a *Agent) Tick() error {
	for _, d := range core.Directions {
		if !a.active.Has(d) {
			continue
		}
		if _, err := a.Move(d); err != nil {
			return err
		}
	}
	return nil
}

// Hide disables movement and removes the token, restoring the occupied cell
func (a *Agent) Hide() error {
	a.movement = false
	if !a.visible {
		return nil
	}
	a.visible = false
	return a.restore()
}

// Show re-enables movement and draws the token where the agent was hidden.
// The occupied cell may have been edited meanwhile, so its content becomes the new background
func (a *Agent) Show() error {
	a.movement = true
	if a.visible {
		return nil
	}
	a.visible = true
	c, err := a.field.Cell(a.position)
	if err != nil {
		return fmt.Errorf("player: show: %w", err)
	}
	a.background = c.Content
	return a.write(a.token, a.position)
}
