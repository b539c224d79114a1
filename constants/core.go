package constants

import "time"

// Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize buffers terminal events between the poller and the loop
	EventChannelSize = 100
)

// Field Defaults
const (
	// DefaultColumns is the width of the main field, rounded up to even by the grid
	DefaultColumns = 40

	// DefaultRows is the height of the main field, rounded up to even by the grid
	DefaultRows = 20

	// BlankRune is the content of a freshly created cell
	BlankRune = ' '
)

// Player Defaults
const (
	// PlayerToken is the character rendered for the player
	PlayerToken = '█'

	// RepeatInterval is the movement repeat timer period while a direction is held
	RepeatInterval = 60 * time.Millisecond

	// KeyReleaseTimeout is how long a held direction may go without a terminal
	// auto-repeat before it is considered released
	// Terminal auto-repeat delay is usually 250-600ms before the first repeat
	KeyReleaseTimeout = 550 * time.Millisecond

	// KeyReleaseSweepInterval is how often held directions are checked for release
	KeyReleaseSweepInterval = 25 * time.Millisecond
)

// Storage
const (
	// AppName names the gdata storage directory
	AppName = "asciifield"

	// SlotObject is the gdata object holding saved maps
	SlotObject = "maps"
)
