package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/waterrun/internal/config"
)

// pickPrompt is shown when a run is requested before a difficulty is chosen.
const pickPrompt = "Pick a difficulty first"

// StartModel is the start screen: a difficulty picker plus the best distance
// recorded for each tier. Nothing is highlighted until the player moves.
type StartModel struct {
	tiers    []config.Difficulty
	cfg      config.Config
	cursor   int // -1 until a difficulty is picked
	best     map[config.Difficulty]int
	prompt   string
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
	start    bool // enter pressed; the app consumes it
	board    bool // tab pressed; the app consumes it
}

// NewStartModel creates the start screen with no difficulty picked.
func NewStartModel(cfg config.Config, keys KeyMap, width, height int) StartModel {
	h := help.New()
	h.Width = width
	return StartModel{
		tiers:  config.Difficulties(),
		cfg:    cfg,
		cursor: -1,
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init implements tea.Model.
func (m StartModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the start screen.
func (m StartModel) Update(msg tea.Msg) (StartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m StartModel) handleKey(msg tea.KeyMsg) StartModel {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.Up):
		if m.cursor <= 0 {
			m.cursor = len(m.tiers) - 1
		} else {
			m.cursor--
		}
		m.prompt = ""
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.tiers)
		m.prompt = ""
	case key.Matches(msg, m.keys.Easy):
		m.pick(config.DifficultyEasy)
	case key.Matches(msg, m.keys.Normal):
		m.pick(config.DifficultyNormal)
	case key.Matches(msg, m.keys.Hard):
		m.pick(config.DifficultyHard)
	case key.Matches(msg, m.keys.Start):
		m.start = true
	case key.Matches(msg, m.keys.Board):
		m.board = true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m
}

func (m *StartModel) pick(d config.Difficulty) {
	for i, t := range m.tiers {
		if t == d {
			m.cursor = i
			m.prompt = ""
			return
		}
	}
}

// Picked returns the highlighted difficulty, or DifficultyNone.
func (m StartModel) Picked() config.Difficulty {
	if m.cursor < 0 || m.cursor >= len(m.tiers) {
		return config.DifficultyNone
	}
	return m.tiers[m.cursor]
}

// SetPrompt shows a one-line message under the picker.
func (m *StartModel) SetPrompt(s string) {
	m.prompt = s
}

// SetBest replaces the per-tier best distances.
func (m *StartModel) SetBest(best map[config.Difficulty]int) {
	m.best = best
}

// takeStart reports and clears a pending start request.
func (m *StartModel) takeStart() bool {
	s := m.start
	m.start = false
	return s
}

// takeBoard reports and clears a pending board request.
func (m *StartModel) takeBoard() bool {
	b := m.board
	m.board = false
	return b
}

// IsQuitting returns true if the user asked to quit.
func (m StartModel) IsQuitting() bool {
	return m.quitting
}

// View renders the start screen.
func (m StartModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("W A T E R   R U N"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("deliver water, dodge hydrants, outrun the dog"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a difficulty", m.width))
	b.WriteString("\n\n")

	for i, d := range m.tiers {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%d. %-7s", cursor, i+1, d.Label())
		if t, err := m.cfg.Tier(d); err == nil {
			line += fmt.Sprintf("  speed %.1f  gravity %.2f", t.ScrollSpeed, t.Gravity)
		}
		if best := m.best[d]; best > 0 {
			line += fmt.Sprintf("  best %d", best)
		}
		if i == m.cursor {
			line = pickStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.prompt != "" {
		b.WriteString(centerText(promptStyle.Render(m.prompt), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(m.help.View(startKeys{m.keys}), m.width))
	b.WriteString("\n")
	return b.String()
}
