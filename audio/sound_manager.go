package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/asciifield/constants"
)

const (
	sampleRate = beep.SampleRate(constants.SampleRate)
)

// Sound identifies one feedback effect
type Sound int

const (
	SoundBump Sound = iota
	SoundBoundary
	SoundPaint
	soundCount
)

// SoundManager plays short feedback effects through a shared mixer.
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	lastPlayed  [soundCount]time.Time
	now         func() time.Time
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(constants.SpeakerBuffer))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker close; an empty mixer keeps the device silent
	sm.mixer.Clear()
	sm.initialized = false
}

// SetMuted suppresses playback without releasing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Muted reports whether playback is suppressed
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Bump plays the collision knock
func (sm *SoundManager) Bump() {
	sm.play(SoundBump)
}

// Boundary plays the field edge buzz
func (sm *SoundManager) Boundary() {
	sm.play(SoundBoundary)
}

// Paint plays the stroke commit chirp
func (sm *SoundManager) Paint() {
	sm.play(SoundPaint)
}

// play mixes in s unless the same sound started less than MinSoundGap ago
func (sm *SoundManager) play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	now := sm.now()
	if last := sm.lastPlayed[s]; !last.IsZero() && now.Sub(last) < constants.MinSoundGap {
		return
	}
	sm.lastPlayed[s] = now

	if streamer := newSound(s); streamer != nil {
		sm.mixer.Add(streamer)
	}
}

func newSound(s Sound) beep.Streamer {
	switch s {
	case SoundBump:
		return beep.Take(sampleRate.N(constants.BumpSoundDuration),
			NewToneGenerator(sampleRate, constants.BumpSoundFreq, constants.BumpSoundDuration))
	case SoundBoundary:
		return beep.Take(sampleRate.N(constants.BoundarySoundDuration),
			NewBuzzGenerator(sampleRate, constants.BoundarySoundFreq))
	case SoundPaint:
		return beep.Take(sampleRate.N(constants.PaintSoundDuration),
			NewToneGenerator(sampleRate, constants.PaintSoundFreq, constants.PaintSoundDuration))
	}
	return nil
}
