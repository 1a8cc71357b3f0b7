package tui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/auth"
	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/stats"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// Options configures a game session.
type Options struct {
	// Store is the persistence backend. nil disables accounts and
	// score keeping entirely.
	Store *storage.Store

	// Symbols optionally replaces the card face pool.
	Symbols []string

	// Relax disables move and time limits.
	Relax bool

	// StartLevel is the zero-based level to start on.
	StartLevel int

	// Seed fixes deck shuffles for reproducible play. 0 uses the clock.
	Seed int64

	// User is a pre-authenticated account; skips the login form.
	User *storage.User

	// Guest skips the login form and plays without an account.
	Guest bool

	// SSHUser prefills the login form's username field.
	SSHUser string

	// Logger receives background persistence warnings. May be nil.
	Logger *log.Logger

	Width  int
	Height int
}

// sessionState tracks which screen the session is on.
type sessionState int

const (
	stateLogin sessionState = iota
	stateGame
	stateScoreboard
)

// SessionModel manages the full session flow: login -> game, with the
// scoreboard reachable from the board. This is the top-level model for
// both local and SSH play.
type SessionModel struct {
	opts    Options
	catalog *game.Catalog
	seed    int64

	state      sessionState
	login      LoginModel
	board      GameModel
	scoreboard ScoreboardModel

	user     *storage.User
	prog     *game.Progression
	quitting bool
}

// NewSessionModel creates a session model from options.
func NewSessionModel(opts Options) SessionModel {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	catalog := game.NewCatalogWithSymbols(rand.New(rand.NewSource(seed)), opts.Symbols)

	m := SessionModel{
		opts:    opts,
		catalog: catalog,
		seed:    seed,
	}

	switch {
	case opts.User != nil:
		m.startGame(opts.User)
	case opts.Guest || opts.Store == nil:
		m.startGame(nil)
	default:
		m.state = stateLogin
		m.login = NewLoginModel(auth.NewService(opts.Store), opts.Width, opts.Height)
		if opts.SSHUser != "" {
			m.login.username.SetValue(opts.SSHUser)
		}
	}

	return m
}

// startGame builds the progression for the given account (nil for
// guest) and switches to the board.
func (m *SessionModel) startGame(user *storage.User) {
	var onOutcome func(game.Outcome)
	if m.opts.Store != nil && user != nil {
		agg := stats.New(m.opts.Store, m.opts.Logger)
		userID := user.ID
		onOutcome = func(o game.Outcome) {
			agg.RecordAsync(userID, o)
		}
	}

	rng := rand.New(rand.NewSource(m.seed))
	prog := game.NewProgression(m.catalog, rng, m.opts.Relax, game.NewScheduler(), onOutcome)
	prog.Start(m.opts.StartLevel)

	label := ""
	if user != nil {
		label = user.Username
	}

	m.user = user
	m.prog = prog
	m.board = NewGameModel(prog, m.catalog, label, m.opts.Width, m.opts.Height)
	m.state = stateGame
}

// CloseGame releases the engine. Safe to call after the program exits.
func (m SessionModel) CloseGame() {
	if m.prog != nil {
		m.prog.Close()
	}
}

// Init initializes the active screen.
func (m SessionModel) Init() tea.Cmd {
	if m.state == stateLogin {
		return m.login.Init()
	}
	return m.board.Init()
}

// Update routes messages to the active screen. Engine ticks and events
// always reach the board so the event pump never stalls.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case TickMsg, EventMsg:
		if m.prog == nil {
			return m, nil
		}
		next, cmd := m.board.Update(msg)
		m.board = next.(GameModel)
		return m, cmd
	}

	switch m.state {
	case stateLogin:
		next, cmd := m.login.Update(msg)
		m.login = next.(LoginModel)
		if m.login.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if m.login.Done() {
			m.startGame(m.login.User())
			return m, m.board.Init()
		}
		return m, cmd

	case stateGame:
		next, cmd := m.board.Update(msg)
		m.board = next.(GameModel)
		if m.board.IsQuitting() {
			m.quitting = true
			return m, cmd
		}
		if m.board.ToggleRelaxRequested() {
			m.opts.Relax = !m.opts.Relax
			m.opts.StartLevel = m.prog.LevelIndex()
			m.prog.Close()
			m.startGame(m.user)
			return m, m.board.Init()
		}
		if m.board.OpenScoreboard() {
			m.board.clearScoreboardRequest()
			if m.user != nil && m.opts.Store != nil {
				m.scoreboard = NewScoreboardModel(m.opts.Store, m.user.ID, m.user.Username, m.opts.Width, m.opts.Height)
				m.state = stateScoreboard
			}
		}
		return m, cmd

	case stateScoreboard:
		next, cmd := m.scoreboard.Update(msg)
		m.scoreboard = next.(ScoreboardModel)
		if m.scoreboard.IsQuitting() {
			m.quitting = true
			m.CloseGame()
			return m, tea.Quit
		}
		if m.scoreboard.Closed() {
			m.state = stateGame
		}
		return m, cmd
	}

	return m, nil
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}
	switch m.state {
	case stateLogin:
		return m.login.View()
	case stateScoreboard:
		return m.scoreboard.View()
	default:
		return m.board.View()
	}
}

// Run starts a local terminal session and blocks until it ends.
func Run(opts Options) error {
	model := NewSessionModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: program failed: %w", err)
	}
	if session, ok := final.(SessionModel); ok {
		session.CloseGame()
	}
	return nil
}
