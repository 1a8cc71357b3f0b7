// Package auth implements the local account service: registration and
// login backed by bcrypt password hashes. Failures are user-visible
// messages, never fatal; the storage boundary is a small interface so
// the service can be tested without a database.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-memory/internal/storage"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4
)

// Validation and credential errors shown directly to the player.
var (
	ErrUsernameTooShort   = fmt.Errorf("username must be at least %d characters", minUsernameLen)
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStore is the slice of the storage layer the service needs.
type UserStore interface {
	CreateUser(username, passwordHash string) (int64, error)
	FindUserByName(username string) (*storage.User, error)
	UsernameExists(username string) (bool, error)
}

// Service validates credentials against the user store.
type Service struct {
	store UserStore
}

// NewService creates an auth service backed by the given store.
func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Register creates a new account and returns its id.
func (s *Service) Register(username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if len([]rune(username)) < minUsernameLen {
		return 0, ErrUsernameTooShort
	}
	if len([]rune(password)) < minPasswordLen {
		return 0, ErrPasswordTooShort
	}

	exists, err := s.store.UsernameExists(username)
	if err != nil {
		return 0, fmt.Errorf("auth: cannot check username: %w", err)
	}
	if exists {
		return 0, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("auth: cannot hash password: %w", err)
	}

	id, err := s.store.CreateUser(username, string(hash))
	if err != nil {
		return 0, fmt.Errorf("auth: cannot create user: %w", err)
	}

	return id, nil
}

// Login checks a username/password pair and returns the matching user.
// A missing user and a wrong password produce the same error, so login
// attempts cannot probe which usernames exist.
func (s *Service) Login(username, password string) (*storage.User, error) {
	username = strings.TrimSpace(username)

	u, err := s.store.FindUserByName(username)
	if err != nil {
		return nil, fmt.Errorf("auth: cannot look up user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
