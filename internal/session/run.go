package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/core"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
)

// run owns one simulation together with everything scheduled on its behalf.
// A single goroutine handles ticks, inputs, and timer callbacks.
type run struct {
	id        int
	sim       *waterrun.Simulation
	timing    config.TimingConfig
	view      ViewSink
	audio     AudioSink
	recorder  RunRecorder
	logger    *log.Logger
	startedAt time.Time

	ticks     <-chan time.Time
	stopTicks func()
	inputs    chan core.Action
	timers    *Timers

	overlay     waterrun.Overlay
	noticeTimer TimerID
	bannerTimer TimerID
	summary     Summary
	accepting   atomic.Bool
	stop        chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// post hands an input to the run goroutine without blocking.
func (r *run) post(a core.Action) {
	if !r.accepting.Load() {
		return
	}
	select {
	case r.inputs <- a:
	default:
		// Channel full, drop input
	}
}

func (r *run) stopped() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}

// halt closes input and the stop channel, then releases the ticker and
// every timer. Only the first call has an effect.
func (r *run) halt() {
	r.stopOnce.Do(func() {
		r.accepting.Store(false)
		close(r.stop)
		r.stopTicks()
		r.timers.CancelAll()
	})
}

// shutdown stops the run from outside and waits for its goroutine.
func (r *run) shutdown() {
	r.halt()
	r.wg.Wait()
}

func (r *run) loop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.stop:
			return
		case <-r.ticks:
			if r.stopped() {
				return
			}
			r.onTick()
		case a := <-r.inputs:
			if r.stopped() {
				return
			}
			r.onInput(a)
		case id := <-r.timers.Fired():
			if r.stopped() {
				return
			}
			r.timers.Dispatch(id)
		}
	}
}

// drainInputs applies everything posted before this tick.
func (r *run) drainInputs() {
	for {
		select {
		case a := <-r.inputs:
			r.onInput(a)
		default:
			return
		}
	}
}

func (r *run) onInput(a core.Action) {
	switch a {
	case core.ActionJump:
		r.sim.RequestJump()
	case core.ActionDeliver:
		r.handle(r.sim.Deliver())
	}
}

func (r *run) onTick() {
	r.drainInputs()
	events := r.sim.Step(core.InputFrame{})
	r.handle(events)
	r.view.Frame(r.sim.Frame(), r.overlaySnapshot())

	if r.sim.Phase() == waterrun.PhaseGameOver {
		r.finish()
	}
}

// finish ends the run from inside a tick: nothing else runs after it.
func (r *run) finish() {
	r.halt()
	r.audio.StopLoop()
	r.audio.Play(SoundGameOver)

	r.logger.Info("run ended",
		"run", r.id,
		"difficulty", r.summary.Difficulty,
		"distance", r.summary.Distance,
		"deliveries", r.summary.Deliveries,
		"ticks", r.summary.Ticks)
	if r.summary.Skipped > 0 {
		r.logger.Debug("obstacle spawns skipped", "run", r.id, "count", r.summary.Skipped)
	}

	if r.recorder != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := r.recorder.RecordRun(ctx, r.summary); err != nil {
			r.logger.Warn("run not recorded", "run", r.id, "err", err)
		}
	}
	r.view.RunEnded(r.summary)
}

// handle translates simulation events for the sinks.
func (r *run) handle(events []waterrun.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case waterrun.RunStarted:
			r.view.RunStarted(r.sim.Difficulty())
			r.audio.StartLoop()
		case waterrun.JumpStarted:
			r.audio.Play(SoundJump)
		case waterrun.ObstacleHit:
			r.audio.Play(SoundObstacleHit)
			r.logger.Debug("obstacle hit", "run", r.id, "entity", e.ID, "lives", e.LivesLeft)
		case waterrun.ChaseStarted:
			r.logger.Debug("chase started", "run", r.id)
		case waterrun.SpawnSkipped:
			r.logger.Debug("spawn skipped", "run", r.id, "total", e.Total)
		case waterrun.MilestoneReached:
			r.onMilestone(e)
		case waterrun.DeliverySucceeded:
			r.onDelivery(e)
		case waterrun.RunEnded:
			r.summary = Summary{
				Run:        r.id,
				Difficulty: r.sim.Difficulty(),
				Seed:       r.sim.Seed(),
				Distance:   e.Distance,
				Deliveries: e.Deliveries,
				Ticks:      e.Ticks,
				Skipped:    e.Skipped,
				Duration:   time.Since(r.startedAt),
				EndedAt:    time.Now(),
			}
		}
	}
}

func (r *run) onMilestone(e waterrun.MilestoneReached) {
	r.view.MilestoneReached(e.Kind, e.Value)
	if e.Kind == waterrun.MilestoneDistance {
		r.audio.Play(SoundMilestoneDistance)
		r.overlay.Banner = fmt.Sprintf("%d m!", e.Value)
	} else {
		r.audio.Play(SoundMilestoneDelivery)
		r.overlay.Banner = fmt.Sprintf("%d deliveries!", e.Value)
	}
	r.timers.Cancel(r.bannerTimer)
	r.bannerTimer = r.timers.After(r.timing.Banner, func() {
		r.overlay.Banner = ""
		r.bannerTimer = 0
	})
}

func (r *run) onDelivery(e waterrun.DeliverySucceeded) {
	r.view.DeliverySucceeded(e.ID, e.Total)
	r.audio.Play(SoundDelivery)

	// A new notice replaces the old one and restarts its window
	r.overlay.Notice = fmt.Sprintf("Water delivered! (%d)", e.Total)
	r.timers.Cancel(r.noticeTimer)
	r.noticeTimer = r.timers.After(r.timing.Notice, func() {
		r.overlay.Notice = ""
		r.noticeTimer = 0
	})

	if r.overlay.Celebrate == nil {
		r.overlay.Celebrate = make(map[waterrun.EntityID]bool)
	}
	r.overlay.Celebrate[e.ID] = true
	id := e.ID
	r.timers.After(r.timing.Highlight, func() {
		delete(r.overlay.Celebrate, id)
	})
}

// overlaySnapshot copies the overlay so the view never shares the map.
func (r *run) overlaySnapshot() waterrun.Overlay {
	ov := r.overlay
	if len(r.overlay.Celebrate) > 0 {
		ov.Celebrate = make(map[waterrun.EntityID]bool, len(r.overlay.Celebrate))
		for id := range r.overlay.Celebrate {
			ov.Celebrate[id] = true
		}
	} else {
		ov.Celebrate = nil
	}
	return ov
}
