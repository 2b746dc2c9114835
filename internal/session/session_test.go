package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
)

const waitTimeout = 2 * time.Second

// manualTicks is a TickSource driven by the test.
type manualTicks struct {
	ch      chan time.Time
	stopped atomic.Int32
}

func newManualTicks() *manualTicks {
	return &manualTicks{ch: make(chan time.Time)}
}

func (m *manualTicks) source(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() { m.stopped.Add(1) }
}

// tick delivers one tick, reporting false if no run took it.
func (m *manualTicks) tick() bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

type fakeAudio struct {
	mu     sync.Mutex
	played []Sound
	loops  int
}

func (a *fakeAudio) Play(s Sound) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.played = append(a.played, s)
}

func (a *fakeAudio) StartLoop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loops++
}

func (a *fakeAudio) StopLoop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loops--
}

func (a *fakeAudio) count(s Sound) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, p := range a.played {
		if p == s {
			n++
		}
	}
	return n
}

type harness struct {
	session *Session
	ticks   *manualTicks
	sink    *ChannelSink
	audio   *fakeAudio
	other   []Update
}

func newHarness(t *testing.T, cfg config.Config, rec RunRecorder) *harness {
	t.Helper()
	h := &harness{
		ticks: newManualTicks(),
		sink:  NewChannelSink(4096),
		audio: &fakeAudio{},
	}
	h.session = New(Options{
		Config:   cfg,
		View:     h.sink,
		Audio:    h.audio,
		Recorder: rec,
		Seed:     7,
		Ticks:    h.ticks.source,
	})
	t.Cleanup(h.session.Stop)
	return h
}

// nextFrame returns the next frame update, collecting everything else.
func (h *harness) nextFrame(t *testing.T) FrameUpdate {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case u := <-h.sink.Updates():
			if f, ok := u.(FrameUpdate); ok {
				return f
			}
			h.other = append(h.other, u)
		case <-deadline:
			t.Fatal("timed out waiting for a frame")
		}
	}
}

// step sends one tick and returns the frame it produced.
func (h *harness) step(t *testing.T) FrameUpdate {
	t.Helper()
	if !h.ticks.tick() {
		t.Fatal("no run accepted the tick")
	}
	return h.nextFrame(t)
}

func quietConfig() config.Config {
	cfg := config.Default()
	cfg.Obstacles.Chance = 0
	return cfg
}

func TestStartRequiresDifficulty(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)

	if err := h.session.Start(); !errors.Is(err, ErrNoDifficulty) {
		t.Fatalf("Start() error = %v, expected ErrNoDifficulty", err)
	}
	if h.session.Running() {
		t.Error("no run should be live")
	}
	if h.ticks.tick() {
		t.Error("a tick was consumed without a run")
	}
	select {
	case u := <-h.sink.Updates():
		t.Errorf("unexpected update %T", u)
	default:
	}
}

func TestSelectDifficultyRejectsUnknown(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	if err := h.session.SelectDifficulty("legendary"); !errors.Is(err, config.ErrUnknownDifficulty) {
		t.Errorf("SelectDifficulty error = %v, expected ErrUnknownDifficulty", err)
	}
	if h.session.Difficulty() != config.DifficultyNone {
		t.Error("a rejected difficulty must not be selected")
	}
}

func TestQuietRun(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	if err := h.session.SelectDifficulty(config.DifficultyNormal); err != nil {
		t.Fatal(err)
	}
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}

	first := h.nextFrame(t)
	if first.Frame.Tick != 0 || first.Frame.Phase != waterrun.PhaseRunning {
		t.Errorf("initial frame tick %d phase %v, expected 0 running", first.Frame.Tick, first.Frame.Phase)
	}

	var f FrameUpdate
	for i := 0; i < 500; i++ {
		f = h.step(t)
	}
	if f.Frame.Stats.Distance != 500 || f.Frame.Player.Lives != 2 {
		t.Errorf("after 500 ticks distance %d lives %d, expected 500 and 2", f.Frame.Stats.Distance, f.Frame.Player.Lives)
	}
	if f.Frame.Phase != waterrun.PhaseRunning {
		t.Errorf("Phase = %v, expected running", f.Frame.Phase)
	}

	started := 0
	for _, u := range h.other {
		if _, ok := u.(StartedUpdate); ok {
			started++
		}
	}
	if started != 1 {
		t.Errorf("StartedUpdate count = %d, expected 1", started)
	}
}

func TestJumpAppliesOnNextTick(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.session.SelectDifficulty(config.DifficultyEasy)
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	h.nextFrame(t)

	h.session.Jump()
	f := h.step(t)
	if !f.Frame.Player.Airborne {
		t.Error("player should be airborne on the tick after Jump")
	}
	if h.audio.count(SoundJump) != 1 {
		t.Errorf("jump cue played %d times, expected 1", h.audio.count(SoundJump))
	}
}

func TestGameOverStopsEverything(t *testing.T) {
	cfg := config.Default()
	cfg.Obstacles.Chance = 1

	var recorded []Summary
	var mu sync.Mutex
	rec := RecorderFunc(func(_ context.Context, sum Summary) error {
		mu.Lock()
		defer mu.Unlock()
		recorded = append(recorded, sum)
		return nil
	})

	h := newHarness(t, cfg, rec)
	h.session.SelectDifficulty(config.DifficultyNormal)
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	h.nextFrame(t)

	var last FrameUpdate
	for i := 0; i < 5000; i++ {
		last = h.step(t)
		if last.Frame.Phase == waterrun.PhaseGameOver {
			break
		}
	}
	if last.Frame.Phase != waterrun.PhaseGameOver {
		t.Fatal("run never ended")
	}

	// The EndedUpdate follows the final frame
	deadline := time.After(waitTimeout)
	var ended *Summary
	for ended == nil {
		select {
		case u := <-h.sink.Updates():
			if e, ok := u.(EndedUpdate); ok {
				ended = &e.Summary
			}
		case <-deadline:
			t.Fatal("timed out waiting for EndedUpdate")
		}
	}
	if ended.Distance != last.Frame.Stats.Distance || ended.Difficulty != config.DifficultyNormal {
		t.Errorf("summary = %+v, expected distance %d on normal", *ended, last.Frame.Stats.Distance)
	}

	// The loop may still be unwinding, so a send can be taken; it must not step
	h.ticks.tick()
	select {
	case u := <-h.sink.Updates():
		if _, ok := u.(FrameUpdate); ok {
			t.Error("a tick executed after game over")
		}
	case <-time.After(50 * time.Millisecond):
	}
	if h.ticks.stopped.Load() != 1 {
		t.Errorf("ticker stopped %d times, expected 1", h.ticks.stopped.Load())
	}
	if h.session.Running() {
		t.Error("session should not accept input after game over")
	}
	if h.audio.count(SoundGameOver) != 1 || h.audio.count(SoundObstacleHit) != 2 {
		t.Errorf("cues: game over %d, hits %d; expected 1 and 2",
			h.audio.count(SoundGameOver), h.audio.count(SoundObstacleHit))
	}

	mu.Lock()
	defer mu.Unlock()
	if len(recorded) != 1 || recorded[0].Ticks != last.Frame.Tick {
		t.Errorf("recorded = %+v, expected one summary with %d ticks", recorded, last.Frame.Tick)
	}
}

func TestRestartTearsDownPreviousRun(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.session.SelectDifficulty(config.DifficultyNormal)
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	h.nextFrame(t)
	for i := 0; i < 10; i++ {
		h.step(t)
	}

	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	if h.ticks.stopped.Load() != 1 {
		t.Errorf("previous ticker stopped %d times, expected 1", h.ticks.stopped.Load())
	}
	if f := h.nextFrame(t); f.Frame.Tick != 0 {
		t.Errorf("new run starts at tick %d, expected 0", f.Frame.Tick)
	}
	if f := h.step(t); f.Frame.Stats.Distance != 1 {
		t.Errorf("distance = %d, expected 1", f.Frame.Stats.Distance)
	}
}

func TestStopPreventsFurtherTicks(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.session.SelectDifficulty(config.DifficultyHard)
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	h.nextFrame(t)
	h.step(t)

	h.session.Stop()
	if h.ticks.tick() {
		t.Error("a tick executed after Stop")
	}
	if h.session.Running() {
		t.Error("Running() should be false after Stop")
	}
	h.session.Jump()
	h.session.PointerDown()
	h.session.Stop()
}

func TestDeliveryNoticeAndTimers(t *testing.T) {
	cfg := quietConfig()
	cfg.Timing.Notice = 20 * time.Millisecond
	cfg.Timing.Highlight = 20 * time.Millisecond

	h := newHarness(t, cfg, nil)
	h.session.SelectDifficulty(config.DifficultyNormal)
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	h.nextFrame(t)

	var active waterrun.EntityID
	for i := 0; i < 2000 && active == 0; i++ {
		active = h.step(t).Frame.Active
	}
	if active == 0 {
		t.Fatal("no door came into range")
	}

	h.session.PointerDown()
	f := h.step(t)
	if f.Frame.Stats.Deliveries != 1 {
		t.Fatalf("Deliveries = %d, expected 1", f.Frame.Stats.Deliveries)
	}
	if f.Overlay.Notice == "" || !f.Overlay.Celebrate[active] {
		t.Errorf("overlay = %+v, expected notice and celebration for %d", f.Overlay, active)
	}
	if h.audio.count(SoundDelivery) != 1 {
		t.Errorf("delivery cue played %d times, expected 1", h.audio.count(SoundDelivery))
	}

	// Presentation timers clear the overlay without touching the simulation
	cleared := false
	for i := 0; i < 100 && !cleared; i++ {
		time.Sleep(10 * time.Millisecond)
		f = h.step(t)
		cleared = f.Overlay.Notice == "" && len(f.Overlay.Celebrate) == 0
	}
	if !cleared {
		t.Errorf("overlay never cleared: %+v", f.Overlay)
	}
	if f.Frame.Stats.Deliveries != 1 {
		t.Errorf("Deliveries = %d after timers, expected 1", f.Frame.Stats.Deliveries)
	}
}

func TestDeliveryNoticeRestartsOnSecondDelivery(t *testing.T) {
	cfg := quietConfig()
	cfg.Timing.Notice = 400 * time.Millisecond
	cfg.Timing.Highlight = 20 * time.Millisecond

	h := newHarness(t, cfg, nil)
	h.session.SelectDifficulty(config.DifficultyNormal)
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	h.nextFrame(t)

	deliverNext := func(after waterrun.EntityID) (waterrun.EntityID, time.Time) {
		t.Helper()
		var active waterrun.EntityID
		for i := 0; i < 2000 && (active == 0 || active == after); i++ {
			active = h.step(t).Frame.Active
		}
		if active == 0 || active == after {
			t.Fatal("no new door came into range")
		}
		return active, time.Now()
	}

	first, firstAt := deliverNext(0)
	h.session.PointerDown()
	if f := h.step(t); f.Frame.Stats.Deliveries != 1 {
		t.Fatalf("Deliveries = %d, expected 1", f.Frame.Stats.Deliveries)
	}

	deliverNext(first)
	time.Sleep(time.Until(firstAt.Add(250 * time.Millisecond)))
	secondAt := time.Now()
	h.session.PointerDown()
	f := h.step(t)
	if f.Frame.Stats.Deliveries != 2 || !strings.Contains(f.Overlay.Notice, "(2)") {
		t.Fatalf("after second delivery: %d deliveries, notice %q", f.Frame.Stats.Deliveries, f.Overlay.Notice)
	}

	// The first window has passed; the notice belongs to the second delivery
	time.Sleep(time.Until(firstAt.Add(cfg.Timing.Notice + 100*time.Millisecond)))
	h.step(t)
	if f = h.step(t); f.Overlay.Notice == "" {
		t.Fatal("notice cleared by the first delivery's timer")
	}

	cleared := false
	for i := 0; i < 100 && !cleared; i++ {
		time.Sleep(10 * time.Millisecond)
		cleared = h.step(t).Overlay.Notice == ""
	}
	if !cleared {
		t.Fatal("notice never cleared")
	}
	if elapsed := time.Since(secondAt); elapsed < cfg.Timing.Notice {
		t.Errorf("notice cleared %v after the second delivery, expected at least %v", elapsed, cfg.Timing.Notice)
	}
}
