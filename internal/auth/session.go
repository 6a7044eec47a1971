// Package auth handles email/password authentication against the todo service.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/config"
)

// ErrNotLoggedIn is returned when no session token is stored.
var ErrNotLoggedIn = errors.New("not logged in: run 'todo-journal login' first")

// SessionStore persists the session between runs.
type SessionStore interface {
	Get() (*config.Session, error)
	Save(config.Session) error
	Clear() error
}

// KeyringStore keeps the session in the system keyring, falling back to a
// private file.
type KeyringStore struct{}

func (KeyringStore) Get() (*config.Session, error) { return config.GetSession() }
func (KeyringStore) Save(s config.Session) error   { return config.SaveSession(s) }
func (KeyringStore) Clear() error                  { return config.ClearSession() }

// Authenticator is the subset of the API client used for logging in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, email, password, username string) (*api.AuthResponse, error)
	SetToken(token string)
}

// Manager ties the API client to the stored session.
type Manager struct {
	client Authenticator
	store  SessionStore
}

// NewManager returns a Manager. A nil store selects KeyringStore.
func NewManager(client Authenticator, store SessionStore) *Manager {
	if store == nil {
		store = KeyringStore{}
	}
	return &Manager{client: client, store: store}
}

// Restore loads the stored session into the client.
func (m *Manager) Restore() (*config.Session, error) {
	s, err := m.store.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s == nil || s.Token == "" {
		return nil, ErrNotLoggedIn
	}
	m.client.SetToken(s.Token)
	return s, nil
}

// Login authenticates, stores the session and authorizes the client.
func (m *Manager) Login(ctx context.Context, email, password string) (*config.Session, error) {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.keep(resp)
}

// Register creates an account and logs into it.
func (m *Manager) Register(ctx context.Context, email, password, username string) (*config.Session, error) {
	resp, err := m.client.Register(ctx, email, password, username)
	if err != nil {
		return nil, err
	}
	return m.keep(resp)
}

// Logout forgets the session. The list view state is left alone so the next
// login starts where the user left off.
func (m *Manager) Logout() error {
	m.client.SetToken("")
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (m *Manager) keep(resp *api.AuthResponse) (*config.Session, error) {
	s := config.Session{Token: resp.Token, User: resp.User}
	if err := m.store.Save(s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	m.client.SetToken(s.Token)
	return &s, nil
}
