package constants

import "time"

// Audio Output
const (
	// SampleRate is the speaker sample rate in Hz
	SampleRate = 44100

	// SpeakerBuffer is the speaker buffer length
	SpeakerBuffer = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two plays of the same sound
	// Holding a direction against a wall replays the bump every repeat tick
	MinSoundGap = 120 * time.Millisecond
)

// Bump Sound (collision)
const (
	BumpSoundDuration = 40 * time.Millisecond
	BumpSoundFreq     = 110.0
)

// Boundary Sound (edge of field)
const (
	BoundarySoundDuration = 80 * time.Millisecond
	BoundarySoundFreq     = 70.0
)

// Paint Sound (editor stroke committed)
const (
	PaintSoundDuration = 50 * time.Millisecond
	PaintSoundFreq     = 880.0
)
