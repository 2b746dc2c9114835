package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/core"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
	"github.com/vovakirdan/waterrun/internal/session"
	"github.com/vovakirdan/waterrun/internal/storage"
)

// screen is the page the app is showing.
type screen int

const (
	screenStart screen = iota
	screenRun
	screenBoard
)

// Options configures an App.
type Options struct {
	Config     config.Config
	Board      *storage.Board    // nil disables the run board
	ClearBoard bool              // lets the player empty the board
	Audio      session.AudioSink // nil is silent
	Logger     *log.Logger
	Seed       int64              // 0 picks a seed per run
	Ticks      session.TickSource // nil uses the wall clock
	Width      int
	Height     int
}

// muter is an audio sink the player can silence.
type muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// App is the top-level model: start screen -> run -> board, one session.
type App struct {
	sess       *session.Session
	sink       *session.ChannelSink
	epoch      uint64 // updates from older epochs belong to stopped runs
	board      *storage.Board
	allowClear bool
	muter      muter
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	screen     *core.Screen
	page       screen
	start      StartModel
	runs       BoardModel
	frame      waterrun.Frame
	overlay    waterrun.Overlay
	hasRun     bool
	ended      *session.Summary
	width      int
	height     int

	quitting bool
}

// NewApp builds the app and its session. Nothing runs until the player
// picks a difficulty and starts.
func NewApp(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		rt := core.DefaultRuntime()
		opts.Width, opts.Height = rt.ScreenW, rt.ScreenH
	}

	sink := session.NewChannelSink(64)
	sessOpts := session.Options{
		Config: opts.Config,
		View:   sink,
		Audio:  opts.Audio,
		Logger: opts.Logger,
		Seed:   opts.Seed,
		Ticks:  opts.Ticks,
	}
	if opts.Board != nil {
		sessOpts.Recorder = opts.Board
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.Width = opts.Width

	a := App{
		sess:       session.New(sessOpts),
		sink:       sink,
		epoch:      sink.Epoch(),
		board:      opts.Board,
		allowClear: opts.ClearBoard,
		logger:     opts.Logger,
		keys:       keys,
		help:       h,
		screen:     core.NewScreen(opts.Width, opts.Height-1),
		start:      NewStartModel(opts.Config, keys, opts.Width, opts.Height),
		width:      opts.Width,
		height:     opts.Height,
	}
	if m, ok := opts.Audio.(muter); ok {
		a.muter = m
	}
	a.refreshBest()
	return a
}

// Init starts listening for session updates.
func (a App) Init() tea.Cmd {
	return listenCmd(a.sink)
}

// Update handles messages and updates the app state.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.screen.Resize(msg.Width, max(msg.Height-1, 1))
		a.help.Width = msg.Width
		a.start, _ = a.start.Update(msg)
		if a.page == screenBoard {
			a.runs, _ = a.runs.Update(msg)
		}
		return a, nil

	case UpdateMsg:
		if msg.Update.Epoch() == a.epoch {
			a.apply(msg.Update)
		}
		return a, listenCmd(a.sink)

	case sinkClosedMsg:
		return a, nil

	case tea.MouseMsg:
		if a.page == screenRun && a.sess.Running() && MouseAction(msg) == core.ActionDeliver {
			a.sess.PointerDown()
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Mute) {
			a.toggleMute()
			return a, nil
		}
		switch a.page {
		case screenStart:
			return a.updateStart(msg)
		case screenRun:
			return a.updateRun(msg)
		case screenBoard:
			return a.updateBoard(msg)
		}
	}
	return a, nil
}

func (a App) updateStart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.start, cmd = a.start.Update(msg)

	if a.start.IsQuitting() {
		return a.quit()
	}
	if a.start.takeBoard() {
		a.openBoard(a.start.Picked())
		return a, cmd
	}
	if a.start.takeStart() {
		a.beginRun()
	}
	return a, cmd
}

func (a App) updateRun(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help) {
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	}

	if a.ended != nil {
		switch a.keys.OverAction(msg) {
		case core.ActionQuit:
			return a.quit()
		case core.ActionRestart:
			a.beginRun()
		case core.ActionBoard:
			a.openBoard(a.ended.Difficulty)
		case core.ActionBack:
			a.toStart()
		}
		return a, nil
	}

	switch a.keys.RunAction(msg) {
	case core.ActionQuit:
		return a.quit()
	case core.ActionJump:
		a.sess.Jump()
	case core.ActionDeliver:
		a.sess.PointerDown()
	case core.ActionBack:
		a.sess.Stop()
		a.toStart()
	}
	return a, nil
}

func (a App) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.runs, cmd = a.runs.Update(msg)
	if a.runs.IsQuitting() {
		return a.quit()
	}
	if a.runs.IsGoingBack() {
		if a.ended != nil {
			a.page = screenRun
		} else {
			a.toStart()
		}
		return a, nil
	}
	return a, cmd
}

// beginRun selects the picked difficulty and starts a run. Without a pick the
// start screen shows the prompt instead.
func (a *App) beginRun() {
	if d := a.start.Picked(); d != config.DifficultyNone {
		if err := a.sess.SelectDifficulty(d); err != nil {
			a.start.SetPrompt(err.Error())
			a.page = screenStart
			return
		}
	}

	// The old run must be silent before the epoch moves on.
	a.sess.Stop()
	a.epoch = a.sink.Reset()
	a.hasRun = false

	err := a.sess.Start()
	switch {
	case errors.Is(err, session.ErrNoDifficulty):
		a.start.SetPrompt(pickPrompt)
		a.page = screenStart
		return
	case err != nil:
		a.logger.Error("run not started", "err", err)
		a.start.SetPrompt(err.Error())
		a.page = screenStart
		return
	}

	a.ended = nil
	a.page = screenRun
}

func (a *App) toStart() {
	a.sess.Stop()
	a.epoch = a.sink.Reset()
	a.ended = nil
	a.hasRun = false
	a.page = screenStart
	a.refreshBest()
}

func (a *App) openBoard(d config.Difficulty) {
	a.runs = NewBoardModel(a.board, d, a.allowClear, a.width, a.height)
	a.page = screenBoard
}

func (a *App) toggleMute() {
	if a.muter == nil {
		return
	}
	muted := !a.muter.Muted()
	a.muter.SetMuted(muted)
	a.logger.Debug("audio muted", "muted", muted)
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.Close()
	a.quitting = true
	return a, tea.Quit
}

// Close stops the live run and the update listener.
func (a App) Close() {
	a.sess.Stop()
	a.sink.Close()
}

// apply folds one session update into the app.
func (a *App) apply(u session.Update) {
	switch u := u.(type) {
	case session.FrameUpdate:
		a.frame, a.overlay, a.hasRun = u.Frame, u.Overlay, true
	case session.StartedUpdate:
		a.ended = nil
	case session.EndedUpdate:
		sum := u.Summary
		a.ended = &sum
		a.refreshBest()
	case session.MilestoneUpdate, session.DeliveryUpdate:
		// Banners and notices arrive through the overlay.
	}
}

// refreshBest reloads the per-tier best distances for the start screen.
func (a *App) refreshBest() {
	if a.board == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	best := make(map[config.Difficulty]int)
	for _, d := range config.Difficulties() {
		n, err := a.board.BestDistance(ctx, d)
		if err != nil {
			a.logger.Warn("run board unavailable", "err", err)
			return
		}
		best[d] = n
	}
	a.start.SetBest(best)
}

// View renders the current page.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	switch a.page {
	case screenBoard:
		return a.runs.View()
	case screenRun:
		if a.hasRun {
			ov := a.overlay
			if a.ended != nil {
				ov.Hint = "R: run again  Tab: board  Esc: menu  Q: quit"
			}
			waterrun.Render(a.screen, a.frame, ov)
			return RenderScreen(a.screen) + "\n" + dimStyle.Render(a.help.View(runKeys{a.keys}))
		}
	}
	return a.start.View()
}

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	app := NewApp(opts)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
