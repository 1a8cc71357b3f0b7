package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/storage"
)

// maxHistoryRows limits how much play history the board loads.
const maxHistoryRows = 50

// scoreboardView selects which table is shown.
type scoreboardView int

const (
	viewRecords scoreboardView = iota
	viewHistory
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "records/history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the logged-in player's per-level records and
// recent play history.
type ScoreboardModel struct {
	store  *storage.Store
	userID int64
	player string

	view    scoreboardView
	table   table.Model
	keys    ScoreboardKeyMap
	help    help.Model
	summary string
	loadErr error

	closed   bool
	quitting bool

	width  int
	height int
}

// NewScoreboardModel creates a scoreboard for one player.
func NewScoreboardModel(store *storage.Store, userID int64, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		userID: userID,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// reload rebuilds the table for the current view from the store.
func (m *ScoreboardModel) reload() {
	m.loadErr = nil

	var columns []table.Column
	var rows []table.Row

	switch m.view {
	case viewRecords:
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Best time", Width: 10},
			{Title: "Best moves", Width: 11},
			{Title: "Completed", Width: 10},
		}
		records, err := m.store.AllRecords(m.userID)
		if err != nil {
			m.loadErr = err
			break
		}
		for _, r := range records {
			rows = append(rows, table.Row{
				strconv.Itoa(r.Level + 1),
				fmt.Sprintf("%ds", r.BestTime),
				strconv.Itoa(r.BestMoves),
				strconv.Itoa(r.TimesCompleted),
			})
		}

	case viewHistory:
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Moves", Width: 6},
			{Title: "Time", Width: 6},
			{Title: "Result", Width: 8},
			{Title: "Mode", Width: 7},
			{Title: "When", Width: 17},
		}
		entries, err := m.store.RecentHistory(m.userID, maxHistoryRows)
		if err != nil {
			m.loadErr = err
			break
		}
		for _, e := range entries {
			result := "lost"
			if e.Completed {
				result = "won"
			}
			mode := "normal"
			if e.RelaxMode {
				mode = "relax"
			}
			rows = append(rows, table.Row{
				strconv.Itoa(e.Level + 1),
				strconv.Itoa(e.Moves),
				fmt.Sprintf("%ds", e.TimeSpent),
				result,
				mode,
				e.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("13"))
	s.Selected = s.Selected.Foreground(lipgloss.Color("11"))
	t.SetStyles(s)
	m.table = t

	m.summary = m.loadSummary()
}

// loadSummary renders the lifetime stats line above the table.
func (m *ScoreboardModel) loadSummary() string {
	ps, err := m.store.GetStats(m.userID)
	if err != nil || ps == nil {
		return "No games recorded yet"
	}
	return fmt.Sprintf("Games: %d   Wins: %d   Streak: %d (best %d)   Time played: %ds",
		ps.TotalGamesPlayed, ps.TotalGamesWon, ps.CurrentStreak, ps.BestStreak, ps.TotalTimePlayed)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.closed = true
			return m, nil
		case key.Matches(msg, m.keys.Switch):
			if m.view == viewRecords {
				m.view = viewHistory
			} else {
				m.view = viewRecords
			}
			m.reload()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Closed reports whether the player dismissed the scoreboard.
func (m ScoreboardModel) Closed() bool {
	return m.closed
}

// IsQuitting reports whether the player quit from the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	title := "Records"
	if m.view == viewHistory {
		title = "History"
	}
	if m.player != "" {
		title += "  " + m.player
	}

	body := m.table.View()
	if m.loadErr != nil {
		body = styleHUDWarn.Render("could not load scores: " + m.loadErr.Error())
	}

	content := styleTitle.Render(title) + "\n" +
		styleHUD.Render(m.summary) + "\n\n" +
		body + "\n\n" +
		m.help.View(m.keys)

	return centerText(content, m.width, m.height)
}
