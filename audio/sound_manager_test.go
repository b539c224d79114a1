package audio

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/editor"
	"github.com/lixenwraith/asciifield/player"
)

var (
	_ player.Feedback = (*SoundManager)(nil)
	_ editor.Feedback = (*SoundManager)(nil)
)

// newMixingManager returns a manager that mixes without a speaker, driven by a manual clock
func newMixingManager() (*SoundManager, *time.Time) {
	sm := NewSoundManager()
	sm.initialized = true
	clock := time.Unix(1000, 0)
	sm.now = func() time.Time { return clock }
	return sm, &clock
}

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.Bump()
	sm.Boundary()
	sm.Paint()
	sm.Cleanup()

	if sm.mixer.Len() != 0 {
		t.Errorf("Expected nothing mixed before initialization, got %d", sm.mixer.Len())
	}
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	// Speaker initialization fails without an audio device; audio is optional
	err := sm.Initialize()
	if err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	// Second initialization is a no-op
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	sm.Cleanup()
}

func TestSoundsMixed(t *testing.T) {
	sm, clock := newMixingManager()

	sm.Bump()
	sm.Boundary()
	sm.Paint()
	if sm.mixer.Len() != 3 {
		t.Fatalf("Expected 3 sounds mixed, got %d", sm.mixer.Len())
	}

	*clock = clock.Add(time.Second)
	sm.Cleanup()
	if sm.mixer.Len() != 0 {
		t.Errorf("Expected mixer cleared on cleanup, got %d", sm.mixer.Len())
	}

	sm.Bump()
	if sm.mixer.Len() != 0 {
		t.Error("Expected no playback after cleanup")
	}
}

func TestSoundRateLimited(t *testing.T) {
	sm, clock := newMixingManager()

	sm.Bump()
	*clock = clock.Add(constants.MinSoundGap / 2)
	sm.Bump()
	if sm.mixer.Len() != 1 {
		t.Fatalf("Expected repeated bump within gap dropped, got %d streamers", sm.mixer.Len())
	}

	// Other sounds have their own gap
	sm.Boundary()
	if sm.mixer.Len() != 2 {
		t.Fatalf("Expected boundary mixed alongside bump, got %d", sm.mixer.Len())
	}

	*clock = clock.Add(constants.MinSoundGap)
	sm.Bump()
	if sm.mixer.Len() != 3 {
		t.Errorf("Expected bump after gap, got %d", sm.mixer.Len())
	}
}

func TestSoundMuted(t *testing.T) {
	sm, _ := newMixingManager()
	sm.SetMuted(true)
	if !sm.Muted() {
		t.Fatal("Expected muted")
	}
	sm.Paint()
	if sm.mixer.Len() != 0 {
		t.Errorf("Expected muted manager to drop sounds, got %d", sm.mixer.Len())
	}
	sm.SetMuted(false)
	sm.Paint()
	if sm.mixer.Len() != 1 {
		t.Errorf("Expected sound after unmute, got %d", sm.mixer.Len())
	}
}

func TestSoundLengths(t *testing.T) {
	tests := []struct {
		sound  Sound
		length time.Duration
	}{
		{SoundBump, constants.BumpSoundDuration},
		{SoundBoundary, constants.BoundarySoundDuration},
		{SoundPaint, constants.PaintSoundDuration},
	}

	for _, tt := range tests {
		s := newSound(tt.sound)
		if s == nil {
			t.Fatalf("Expected streamer for sound %d", tt.sound)
		}
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if want := sampleRate.N(tt.length); total != want {
			t.Errorf("Sound %d: expected %d samples, got %d", tt.sound, want, total)
		}
	}
}

func TestGeneratorAmplitudes(t *testing.T) {
	gens := map[string]interface {
		Stream([][2]float64) (int, bool)
	}{
		"tone": NewToneGenerator(sampleRate, constants.PaintSoundFreq, constants.PaintSoundDuration),
		"buzz": NewBuzzGenerator(sampleRate, constants.BoundarySoundFreq),
	}

	for name, g := range gens {
		buf := make([][2]float64, sampleRate.N(100*time.Millisecond))
		g.Stream(buf)
		peak := 0.0
		for _, s := range buf {
			if s[0] != s[1] {
				t.Fatalf("%s: expected mono output, got %v", name, s)
			}
			peak = math.Max(peak, math.Abs(s[0]))
		}
		if peak == 0 || peak > 1.0 {
			t.Errorf("%s: peak amplitude %f out of range", name, peak)
		}
	}
}

func TestToneDecaysToSilence(t *testing.T) {
	g := NewToneGenerator(sampleRate, 440, 10*time.Millisecond)
	buf := make([][2]float64, sampleRate.N(20*time.Millisecond))
	g.Stream(buf)
	for i := sampleRate.N(10 * time.Millisecond); i < len(buf); i++ {
		if buf[i][0] != 0 {
			t.Fatalf("Expected silence after tone length at sample %d, got %f", i, buf[i][0])
		}
	}
}
