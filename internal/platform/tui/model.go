package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// flashDuration is how many UI ticks a transient event message stays
// visible.
const flashDuration = 6

// GameModel is the Bubble Tea model for a running game. It renders the
// engine's snapshots and translates key presses into engine calls; all
// rules live in the engine.
type GameModel struct {
	prog      *game.Progression
	menu      LevelMenu
	keyMapper *KeyMapper
	player    string

	width  int
	height int

	cursor     int
	lastLevel  int
	menuOpen   bool
	flash      string
	flashTicks int

	openScoreboard bool
	toggleRelax    bool
	quitting       bool
}

// NewGameModel creates a model for the given progression. player is a
// display label; empty for guests.
func NewGameModel(prog *game.Progression, catalog *game.Catalog, player string, width, height int) GameModel {
	return GameModel{
		prog:      prog,
		menu:      NewLevelMenu(catalog),
		keyMapper: NewKeyMapper(),
		player:    player,
		width:     width,
		height:    height,
		lastLevel: -1,
	}
}

// Init starts the UI refresh loop and the engine event pump.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForEvent(m.prog.Events()))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if snap, _ := m.prog.Snapshot(); len(snap.Deck) > 0 {
			m.syncCursor(snap)
		}
		if m.flashTicks > 0 {
			m.flashTicks--
			if m.flashTicks == 0 {
				m.flash = ""
			}
		}
		return m, tickCmd()

	case EventMsg:
		return m.handleEvent(msg.Event)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menuOpen {
		action := m.keyMapper.MapKeyToMenuAction(msg)
		switch action {
		case MenuActionQuit:
			m.quitting = true
			m.prog.Close()
			return m, tea.Quit
		case MenuActionBack:
			m.menuOpen = false
			return m, nil
		default:
			if level, done := m.menu.Handle(action); done {
				m.menuOpen = false
				m.cursor = 0
				m.prog.SelectLevel(level)
			}
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.prog.Close()
		return m, tea.Quit
	}

	snap, _ := m.prog.Snapshot()
	if len(snap.Deck) == 0 {
		return m, nil
	}
	m.syncCursor(snap)

	switch action {
	case ActionUp:
		if m.cursor-snap.Columns >= 0 {
			m.cursor -= snap.Columns
		}
	case ActionDown:
		if m.cursor+snap.Columns < len(snap.Deck) {
			m.cursor += snap.Columns
		}
	case ActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case ActionRight:
		if m.cursor < len(snap.Deck)-1 {
			m.cursor++
		}
	case ActionFlip:
		m.prog.Flip(m.cursor)
	case ActionRestart:
		m.cursor = 0
		m.prog.Restart()
	case ActionToggleRelax:
		m.toggleRelax = true
	case ActionLevelMenu:
		m.menu.Reset(m.prog.LevelIndex())
		m.menuOpen = true
	case ActionScoreboard:
		m.openScoreboard = true
	case ActionBack:
		m.quitting = true
		m.prog.Close()
		return m, tea.Quit
	}

	return m, nil
}

// handleEvent turns engine events into transient HUD messages and
// re-arms the event pump.
func (m GameModel) handleEvent(ev game.Event) (tea.Model, tea.Cmd) {
	switch ev.(type) {
	case game.MatchEvent:
		m.setFlash("Match!")
	case game.MismatchEvent:
		m.setFlash("No match")
	case game.GameWonEvent:
		m.setFlash("")
	}
	return m, waitForEvent(m.prog.Events())
}

func (m *GameModel) setFlash(text string) {
	m.flash = text
	m.flashTicks = flashDuration
}

// syncCursor resets the cursor when the engine swapped levels under us
// and clamps it to the current deck.
func (m *GameModel) syncCursor(snap game.Snapshot) {
	if snap.Level != m.lastLevel {
		m.lastLevel = snap.Level
		m.cursor = 0
	}
	if m.cursor >= len(snap.Deck) {
		m.cursor = len(snap.Deck) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// OpenScoreboard reports whether the player asked for the scoreboard.
// The session model polls this after each update.
func (m GameModel) OpenScoreboard() bool {
	return m.openScoreboard
}

// clearScoreboardRequest acknowledges a scoreboard request.
func (m *GameModel) clearScoreboardRequest() {
	m.openScoreboard = false
}

// ToggleRelaxRequested reports whether the player asked to switch play
// mode. Switching rebuilds the session, so the request bubbles up to the
// session model.
func (m GameModel) ToggleRelaxRequested() bool {
	return m.toggleRelax
}

// IsQuitting reports whether the player quit the game.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// View renders the board, HUD, and any active overlay.
func (m GameModel) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}

	snap, won := m.prog.Snapshot()
	if len(snap.Deck) == 0 {
		return ""
	}
	m.syncCursor(snap)

	if m.menuOpen {
		return centerText(m.menu.View(), m.width, m.height)
	}

	hud := renderHUD(snap, m.player)
	board := renderBoard(snap, m.cursor)

	status := m.flash
	if overlay := renderOverlay(snap, won); overlay != "" {
		status = overlay
	} else if status != "" {
		status = styleFlash.Render(status)
	}

	controls := styleControls.Render("arrows: move   enter: flip   r: restart   t: mode   m: levels   tab: records   q: quit")

	content := hud + "\n\n" + board
	if status != "" {
		content += "\n\n" + status
	}
	content += "\n\n" + controls

	return centerText(content, m.width, m.height)
}
