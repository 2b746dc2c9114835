// Package audio plays synthesized cues for a run through the system speaker.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/waterrun/internal/session"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager is a session.AudioSink backed by the speaker. Until
// Initialize succeeds every call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	loop        *beep.Ctrl
	volume      float64
	muted       bool
	wantLoop    bool // a run asked for the loop and has not stopped it
	initialized bool
	logger      *log.Logger
}

var _ session.AudioSink = (*SoundManager)(nil)

// NewSoundManager creates a sound manager at the given master volume (0..1).
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("audio ready", "rate", int(sampleRate))
	return nil
}

// Enabled reports whether the speaker is open.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// SetMuted silences future cues and pauses the loop. Unmuting resumes the
// loop if a run still wants it.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	if muted {
		if sm.loop != nil {
			speaker.Lock()
			sm.loop.Paused = true
			speaker.Unlock()
		}
		return
	}
	if sm.initialized && sm.wantLoop {
		sm.startLoopLocked()
	}
}

// Muted reports whether cues are silenced.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play mixes in a one-shot cue.
func (sm *SoundManager) Play(s session.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(newVolume(Cue(s, sampleRate), sm.volume))
	speaker.Unlock()
}

// StartLoop starts the ambient pulse unless it is already playing.
func (sm *SoundManager) StartLoop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.wantLoop = true
	if !sm.initialized || sm.muted {
		return
	}
	sm.startLoopLocked()
}

func (sm *SoundManager) startLoopLocked() {
	if sm.loop != nil && !sm.loop.Paused {
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(NewAmbient(sampleRate), sm.volume), Paused: false}
	speaker.Lock()
	if sm.loop != nil {
		// Drop the paused one so it leaves the mixer.
		sm.loop.Streamer = nil
	}
	sm.loop = ctrl
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopLoop pauses the ambient pulse.
func (sm *SoundManager) StopLoop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.wantLoop = false
	if sm.loop == nil {
		return
	}
	speaker.Lock()
	sm.loop.Paused = true
	speaker.Unlock()
}

// Cleanup silences everything and releases the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.loop = nil
	sm.mixer = &beep.Mixer{}
	sm.initialized = false
}
