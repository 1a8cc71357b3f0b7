package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/auth"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// LoginModel is the account form shown before the game. The player can
// log in, register a new account, or skip to guest play with esc.
type LoginModel struct {
	auth     *auth.Service
	username textinput.Model
	password textinput.Model
	errMsg   string

	user     *storage.User
	guest    bool
	done     bool
	quitting bool

	width  int
	height int
}

// NewLoginModel creates the login form.
func NewLoginModel(authSvc *auth.Service, width, height int) LoginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 32
	username.Width = 24
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.Width = 24
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return LoginModel{
		auth:     authSvc,
		username: username,
		password: password,
		width:    width,
		height:   height,
	}
}

// Init initializes the form.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.guest = true
			m.done = true
			return m, nil
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, nil
		case "enter":
			if m.username.Focused() {
				m.toggleFocus()
				return m, nil
			}
			m.submitLogin()
			return m, nil
		case "ctrl+r":
			m.submitRegister()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *LoginModel) toggleFocus() {
	if m.username.Focused() {
		m.username.Blur()
		m.password.Focus()
	} else {
		m.password.Blur()
		m.username.Focus()
	}
}

func (m *LoginModel) submitLogin() {
	user, err := m.auth.Login(m.username.Value(), m.password.Value())
	if err != nil {
		m.errMsg = loginErrorText(err)
		return
	}
	m.user = user
	m.done = true
}

func (m *LoginModel) submitRegister() {
	if _, err := m.auth.Register(m.username.Value(), m.password.Value()); err != nil {
		m.errMsg = loginErrorText(err)
		return
	}
	// Log straight in with the fresh account.
	m.submitLogin()
}

// loginErrorText maps auth errors to short form messages.
func loginErrorText(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, auth.ErrUsernameTaken):
		return "that username is taken"
	case errors.Is(err, auth.ErrUsernameTooShort):
		return "username is too short"
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "password is too short"
	default:
		return "something went wrong, try again"
	}
}

// Done reports whether the form finished.
func (m LoginModel) Done() bool {
	return m.done
}

// User returns the authenticated user, or nil for guest play.
func (m LoginModel) User() *storage.User {
	return m.user
}

// IsQuitting reports whether the player quit from the form.
func (m LoginModel) IsQuitting() bool {
	return m.quitting
}

// View renders the form.
func (m LoginModel) View() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Memory"))
	sb.WriteString("\n\n")
	sb.WriteString(m.username.View())
	sb.WriteString("\n")
	sb.WriteString(m.password.View())
	sb.WriteString("\n\n")

	if m.errMsg != "" {
		sb.WriteString(styleHUDWarn.Render(m.errMsg))
		sb.WriteString("\n\n")
	}

	sb.WriteString(styleControls.Render("enter: log in   ctrl+r: register   esc: play as guest"))

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("13")).
		Padding(1, 3).
		Render(sb.String())

	return centerText(form, m.width, m.height)
}
