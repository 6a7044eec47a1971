package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = appName
	keyringUser    = "session"
	credFileName   = ".session"

	// EnvToken supplies a session token without logging in.
	EnvToken = "TODO_TOKEN"
)

// Session is what login and register leave behind.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// DataDir returns the path to the data directory for secure storage.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/todo-journal/
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, appName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// GetSession retrieves the stored session.
// Priority: 1. TODO_TOKEN env var, 2. System keyring, 3. Credentials file.
// A missing session is returned as nil without an error.
func GetSession() (*Session, error) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return &Session{Token: token}, nil
	}

	if data, err := keyring.Get(keyringService, keyringUser); err == nil && data != "" {
		if s, err := decodeSession([]byte(data)); err == nil {
			return s, nil
		}
	}

	credPath, err := sessionFile()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(credPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return decodeSession(data)
}

// SaveSession stores the session securely.
// Tries system keyring first, falls back to credentials file.
func SaveSession(s Session) error {
	s.Token = strings.TrimSpace(s.Token)
	if s.Token == "" {
		return errors.New("token cannot be empty")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := keyring.Set(keyringService, keyringUser, string(data)); err == nil {
		return nil
	}

	credPath, err := sessionFile()
	if err != nil {
		return err
	}
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// ClearSession removes the stored session from all locations.
func ClearSession() error {
	_ = keyring.Delete(keyringService, keyringUser)

	credPath, err := sessionFile()
	if err != nil {
		return err
	}
	if err := os.Remove(credPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

// HasSession returns true if a token is available from any source.
func HasSession() bool {
	s, _ := GetSession()
	return s != nil && s.Token != ""
}

func sessionFile() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, credFileName), nil
}

func decodeSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse stored session: %w", err)
	}
	s.Token = strings.TrimSpace(s.Token)
	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}
