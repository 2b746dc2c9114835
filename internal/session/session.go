// Package session drives Water Run simulations in real time: a fixed-interval
// ticker, input acceptance, presentation timers, and translation of
// simulation events to view and audio sinks.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/core"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
)

// ErrNoDifficulty is returned by Start before a difficulty is selected.
var ErrNoDifficulty = config.ErrNoDifficulty

// TickSource starts a tick stream at the given interval and returns it along
// with a function that stops it.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

// TickerSource is the wall-clock TickSource.
func TickerSource(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Options configures a Session.
type Options struct {
	Config   config.Config
	View     ViewSink
	Audio    AudioSink
	Recorder RunRecorder
	Logger   *log.Logger
	Seed     int64      // 0 picks a seed from the clock for every run
	Ticks    TickSource // nil uses TickerSource
}

// Session is one player's seat: the difficulty picked in the menu and at most
// one live run.
type Session struct {
	mu         sync.Mutex
	opts       Options
	difficulty config.Difficulty
	current    *run
	runs       int
}

// New creates a session with no difficulty selected.
func New(opts Options) *Session {
	if opts.View == nil {
		opts.View = nopView{}
	}
	if opts.Audio == nil {
		opts.Audio = NopAudio{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Ticks == nil {
		opts.Ticks = TickerSource
	}
	return &Session{opts: opts}
}

// SelectDifficulty records the tier for the next Start.
func (s *Session) SelectDifficulty(d config.Difficulty) error {
	if _, err := s.opts.Config.Tier(d); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.difficulty = d
	return nil
}

// Difficulty returns the selected tier, or DifficultyNone.
func (s *Session) Difficulty() config.Difficulty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.difficulty
}

// Start tears down any previous run and starts a new one. Without a selected
// difficulty it returns ErrNoDifficulty and changes nothing.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.difficulty == config.DifficultyNone {
		return ErrNoDifficulty
	}

	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim, err := waterrun.NewSimulation(s.opts.Config, s.difficulty, seed)
	if err != nil {
		return err
	}

	if s.current != nil {
		s.current.shutdown()
		s.current = nil
	}

	s.runs++
	ticks, stopTicks := s.opts.Ticks(s.opts.Config.Timing.TickInterval)
	r := &run{
		id:        s.runs,
		sim:       sim,
		timing:    s.opts.Config.Timing,
		view:      s.opts.View,
		audio:     s.opts.Audio,
		recorder:  s.opts.Recorder,
		logger:    s.opts.Logger,
		startedAt: time.Now(),
		ticks:     ticks,
		stopTicks: stopTicks,
		inputs:    make(chan core.Action, 16),
		timers:    NewTimers(),
		stop:      make(chan struct{}),
	}

	events, err := sim.Start()
	if err != nil {
		stopTicks()
		return err
	}
	r.handle(events)
	r.view.Frame(sim.Frame(), r.overlaySnapshot())
	r.accepting.Store(true)

	s.opts.Logger.Info("run started", "run", r.id, "difficulty", s.difficulty, "seed", seed)

	r.wg.Add(1)
	go r.loop()
	s.current = r
	return nil
}

// Stop ends the live run, if any, and waits until no tick can execute.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.current.shutdown()
	s.opts.Audio.StopLoop()
	s.opts.Logger.Debug("run stopped", "run", s.current.id)
	s.current = nil
}

// Running reports whether a run is accepting input.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.accepting.Load()
}

// Jump requests a jump. Dropped when no run is live.
func (s *Session) Jump() {
	s.post(core.ActionJump)
}

// PointerDown requests a delivery. Dropped when no run is live.
func (s *Session) PointerDown() {
	s.post(core.ActionDeliver)
}

func (s *Session) post(a core.Action) {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r != nil {
		r.post(a)
	}
}
