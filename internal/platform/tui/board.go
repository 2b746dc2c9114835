package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/storage"
)

// maxBoardRuns caps how many runs the board loads.
const maxBoardRuns = 50

// BoardKeyMap defines the key bindings for the run board.
type BoardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Open  key.Binding
	Clear key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Open, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Open, k.Clear, k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tier"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tier"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardTab is one view of the board: the best runs of a tier (all tiers
// when difficulty is unset) or the latest runs.
type boardTab struct {
	name       string
	difficulty config.Difficulty
	recent     bool
}

func boardTabs() []boardTab {
	tabs := []boardTab{{name: "All"}}
	for _, d := range config.Difficulties() {
		tabs = append(tabs, boardTab{name: d.Label(), difficulty: d})
	}
	return append(tabs, boardTab{name: "Recent", recent: true})
}

// BoardModel shows the runs finished in this process.
type BoardModel struct {
	board     *storage.Board
	tabs      []boardTab
	tab       int
	runs      []storage.RunEntry
	loadErr   error
	detail    *storage.RunEntry
	notice    string
	table     table.Model
	help      help.Model
	keys      BoardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewBoardModel creates the run board on the tab for d when d is set.
// allowClear enables the clear key; leave it off when the board is shared.
func NewBoardModel(board *storage.Board, d config.Difficulty, allowClear bool, width, height int) BoardModel {
	h := help.New()
	h.Width = width

	m := BoardModel{
		board:  board,
		tabs:   boardTabs(),
		keys:   DefaultBoardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.keys.Clear.SetEnabled(allowClear)
	for i, tab := range m.tabs {
		if !tab.recent && tab.difficulty == d {
			m.tab = i
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Tier", Width: 7},
		{Title: "Distance", Width: 9},
		{Title: "Deliveries", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Ended", Width: 9},
	}

	height := m.height - 9
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load refreshes the rows for the current tab.
func (m *BoardModel) load() {
	m.runs, m.loadErr = nil, nil
	if m.board != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if tab := m.tabs[m.tab]; tab.recent {
			m.runs, m.loadErr = m.board.RecentRuns(ctx, maxBoardRuns)
		} else {
			m.runs, m.loadErr = m.board.TopRuns(ctx, tab.difficulty, maxBoardRuns)
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Difficulty.Label(),
			fmt.Sprintf("%d", r.Distance),
			fmt.Sprintf("%d", r.Deliveries),
			r.Duration.Round(100 * time.Millisecond).String(),
			r.EndedAt.Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// openSelected loads the highlighted run. The board may have been cleared
// from elsewhere since the rows were loaded.
func (m *BoardModel) openSelected() {
	i := m.table.Cursor()
	if m.board == nil || i < 0 || i >= len(m.runs) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	e, err := m.board.RunByID(ctx, m.runs[i].ID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		m.notice = "That run is no longer on the board"
		m.load()
	case err != nil:
		m.loadErr = err
	default:
		m.detail = e
	}
}

func (m *BoardModel) clear() {
	if m.board == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.board.Clear(ctx); err != nil {
		m.loadErr = err
		return
	}
	m.notice = "Board cleared"
	m.load()
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != nil {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
			case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
				m.detail = nil
			}
			return m, nil
		}

		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab - 1 + len(m.tabs)) % len(m.tabs)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Open):
			m.openSelected()
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.clear()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("RUN BOARD"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case m.detail != nil:
		content = renderRunDetail(*m.detail)
	case m.loadErr != nil:
		content = promptStyle.Render("Run board unavailable")
	case len(m.runs) == 0:
		content = dimStyle.Italic(true).Padding(1, 4).
			Render("No runs finished yet.\nThe board empties when the program exits.")
	default:
		content = m.table.View()
	}
	for _, line := range strings.Split(boxStyle.Render(content), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(centerText(promptStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func renderRunDetail(e storage.RunEntry) string {
	rows := []struct{ label, value string }{
		{"Run", fmt.Sprintf("#%d", e.Run)},
		{"Tier", e.Difficulty.Label()},
		{"Seed", fmt.Sprintf("%d", e.Seed)},
		{"Distance", fmt.Sprintf("%d m", e.Distance)},
		{"Deliveries", fmt.Sprintf("%d", e.Deliveries)},
		{"Ticks", fmt.Sprintf("%d", e.Ticks)},
		{"Skipped", fmt.Sprintf("%d hydrant spawns", e.Skipped)},
		{"Time", e.Duration.Round(100 * time.Millisecond).String()},
		{"Ended", e.EndedAt.Format("15:04:05")},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("%-11s", r.label)))
		b.WriteString(r.value)
	}
	return b.String()
}

func (m BoardModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.tab {
			tabs[i] = active.Render(tab.name)
		} else {
			tabs[i] = dimStyle.Render(" " + tab.name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// IsGoingBack returns true if the user wants to leave the board.
func (m BoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}
