package session

import (
	"context"
	"time"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
)

// ViewSink receives everything the player should see. Calls come from the
// run goroutine and must not block.
type ViewSink interface {
	Frame(f waterrun.Frame, ov waterrun.Overlay)
	RunStarted(d config.Difficulty)
	RunEnded(sum Summary)
	MilestoneReached(kind waterrun.MilestoneKind, value int)
	DeliverySucceeded(id waterrun.EntityID, total int)
}

// Sound is a fire-and-forget audio cue.
type Sound int

const (
	SoundJump Sound = iota
	SoundObstacleHit
	SoundDelivery
	SoundGameOver
	SoundMilestoneDistance
	SoundMilestoneDelivery
)

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundObstacleHit:
		return "obstacle-hit"
	case SoundDelivery:
		return "delivery"
	case SoundGameOver:
		return "game-over"
	case SoundMilestoneDistance:
		return "milestone-distance"
	case SoundMilestoneDelivery:
		return "milestone-delivery"
	}
	return "unknown"
}

// AudioSink plays cues and the ambient loop. Implementations swallow their
// own failures.
type AudioSink interface {
	Play(s Sound)
	StartLoop()
	StopLoop()
}

// Summary describes a finished run.
type Summary struct {
	Run        int
	Difficulty config.Difficulty
	Seed       int64
	Distance   int
	Deliveries int
	Ticks      int
	Skipped    int // obstacle spawns that found no room
	Duration   time.Duration
	EndedAt    time.Time
}

// RunRecorder stores finished runs.
type RunRecorder interface {
	RecordRun(ctx context.Context, sum Summary) error
}

// RecorderFunc adapts a function to RunRecorder.
type RecorderFunc func(ctx context.Context, sum Summary) error

// RecordRun calls f.
func (f RecorderFunc) RecordRun(ctx context.Context, sum Summary) error {
	return f(ctx, sum)
}

type nopView struct{}

func (nopView) Frame(waterrun.Frame, waterrun.Overlay) {}
func (nopView) RunStarted(config.Difficulty) {}
func (nopView) RunEnded(Summary) {}
func (nopView) MilestoneReached(waterrun.MilestoneKind, int) {}
func (nopView) DeliverySucceeded(waterrun.EntityID, int) {}

// NopAudio is a silent AudioSink.
type NopAudio struct{}

func (NopAudio) Play(Sound) {}
func (NopAudio) StartLoop() {}
func (NopAudio) StopLoop() {}
