package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

// runLimit caps the rows loaded into the scoreboard table.
const runLimit = 50

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewTop    boardView = iota // Best runs of the selected game
	viewRecent                  // Latest runs of every game
)

type boardKeys struct {
	Scroll key.Binding
	Game   key.Binding
	View   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Game, k.Scroll, k.View, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var scoreboardKeys = boardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
	Game:   key.NewBinding(key.WithKeys("left", "h", "right", "l", "tab", "shift+tab"), key.WithHelp("←/→", "game")),
	View:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "top/recent")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel shows the stored best, run statistics and run history.
// Without a run database only the stored bests are available.
type ScoreboardModel struct {
	svc    Services
	games  []registry.Info
	cursor int
	view   boardView

	summary string
	table   table.Model
	help    help.Model
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard sized to the terminal.
func NewScoreboardModel(svc Services, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		svc:    svc,
		games:  registry.List(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newRunTable(m.columns(), height)
	m.reload()
	return m
}

func newRunTable(cols []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) columns() []table.Column {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 10},
		{Title: "Result", Width: 7},
		{Title: "Ticks", Width: 8},
		{Title: "Played", Width: 14},
	}
	if m.view == viewRecent {
		cols = append([]table.Column{{Title: "Game", Width: 24}}, cols[1:]...)
	}
	return cols
}

func (m ScoreboardModel) selected() (registry.Info, bool) {
	if len(m.games) == 0 {
		return registry.Info{}, false
	}
	return m.games[m.cursor], true
}

// reload refreshes the summary line and table rows from storage.
func (m *ScoreboardModel) reload() {
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.summary = ""

	info, ok := m.selected()
	if !ok {
		return
	}
	if m.view == viewRecent {
		m.summary = "Latest runs of all games"
		m.table.SetRows(m.recentRows())
		m.table.GotoTop()
		return
	}

	best := "none yet"
	if v, ok := m.svc.best(info.ID); ok {
		best = FormatScore(info.Order, v)
	}
	m.summary = "Best: " + best
	if m.svc.Runs == nil {
		m.summary += "  (run history unavailable)"
		return
	}

	if stats, err := m.svc.Runs.Stats(info.ID); err != nil {
		m.svc.logger().Error("cannot load stats", "game", info.Slug, "err", err)
	} else if stats.Runs > 0 {
		m.summary += fmt.Sprintf("  Runs: %d  Wins: %d  Avg: %.0f", stats.Runs, stats.Wins, stats.AvgScore)
	}

	runs, err := m.svc.Runs.TopRuns(info.ID, info.Order, runLimit)
	if err != nil {
		m.svc.logger().Error("cannot load runs", "game", info.Slug, "err", err)
		return
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), FormatScore(info.Order, r.Score), r.Phase, fmt.Sprint(r.Ticks), playedAt(r)}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) recentRows() []table.Row {
	if m.svc.Runs == nil {
		return nil
	}
	runs, err := m.svc.Runs.RecentRuns(runLimit)
	if err != nil {
		m.svc.logger().Error("cannot load recent runs", "err", err)
		return nil
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		info, _ := registry.Lookup(r.GameID)
		rows[i] = table.Row{info.Title, FormatScore(info.Order, r.Score), r.Phase, fmt.Sprint(r.Ticks), playedAt(r)}
	}
	return rows
}

func playedAt(r storage.Run) string {
	if r.CreatedAt.IsZero() {
		return "-"
	}
	return r.CreatedAt.Local().Format("Jan 02 15:04")
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Back and quit only set flags; the session
// decides what happens next.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, scoreboardKeys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, scoreboardKeys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, scoreboardKeys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		case key.Matches(msg, scoreboardKeys.Game):
			m.step(msg.String())
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-10, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the game cursor for the pressed key.
func (m *ScoreboardModel) step(k string) {
	if len(m.games) == 0 || m.view == viewRecent {
		return
	}
	delta := 1
	switch k {
	case "left", "h", "shift+tab":
		delta = -1
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	frame := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)

	var b strings.Builder
	b.WriteString(title.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	if m.view == viewTop && len(m.games) > 0 {
		tabs := make([]string, len(m.games))
		for i, g := range m.games {
			if i == m.cursor {
				tabs[i] = active.Render(" " + g.Title + " ")
			} else {
				tabs[i] = dim.Render(" " + g.Title + " ")
			}
		}
		line := strings.Join(tabs, "")
		if lipgloss.Width(line) > m.width {
			line = fmt.Sprintf("< %s >", m.games[m.cursor].Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.summary, m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = dim.Italic(true).Padding(1, 2).Render("No runs recorded yet.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, frame.Render(body)))
	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(scoreboardKeys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
